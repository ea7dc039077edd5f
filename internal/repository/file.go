package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

var (
	ErrFileNotFound     = errors.New("文件不存在")
	ErrCategoryNotFound = errors.New("分类不存在")
	ErrCategoryExists   = errors.New("分类名称已存在")
	ErrCategoryInUse    = errors.New("分类下存在文件，无法删除")
)

// FileCategoryRepository 文件分类数据访问接口
type FileCategoryRepository interface {
	Create(ctx context.Context, category *model.FileCategory) error
	GetByID(ctx context.Context, id uint) (*model.FileCategory, error)
	Update(ctx context.Context, category *model.FileCategory) error
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*model.FileCategory, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// FileInfoRepository 文件元数据访问接口
type FileInfoRepository interface {
	Create(ctx context.Context, file *model.FileInfo) error
	GetByID(ctx context.Context, id uint) (*model.FileInfo, error)
	Update(ctx context.Context, file *model.FileInfo) error
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *FileFilter, page *Pagination) ([]*model.FileInfo, int64, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

// FileFilter 文件查询过滤器
type FileFilter struct {
	Name       string // 文件名（模糊匹配）
	CategoryID uint   // 分类 ID
	UploaderID uint   // 上传者 ID
}

type fileCategoryRepository struct {
	db *gorm.DB
}

// NewFileCategoryRepository 创建文件分类数据访问实例
func NewFileCategoryRepository(db *gorm.DB) FileCategoryRepository {
	return &fileCategoryRepository{db: db}
}

// Create 查重与插入在同一事务内执行，避免并发创建同名分类。
func (r *fileCategoryRepository) Create(ctx context.Context, category *model.FileCategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.FileCategory{}).
			Scopes(NotDeleted()).
			Where("name = ?", category.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryExists
		}
		return tx.Create(category).Error
	})
}

func (r *fileCategoryRepository) GetByID(ctx context.Context, id uint) (*model.FileCategory, error) {
	var category model.FileCategory
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *fileCategoryRepository) Update(ctx context.Context, category *model.FileCategory) error {
	result := r.db.WithContext(ctx).Model(&model.FileCategory{}).
		Scopes(NotDeleted()).
		Where("id = ?", category.ID).
		Updates(category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *fileCategoryRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.FileCategory{}).
		Scopes(NotDeleted()).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": model.Deleted,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *fileCategoryRepository) List(ctx context.Context) ([]*model.FileCategory, error) {
	var categories []*model.FileCategory
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).
		Order("sort ASC, id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *fileCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FileCategory{}).
		Scopes(NotDeleted()).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

type fileInfoRepository struct {
	db *gorm.DB
}

// NewFileInfoRepository 创建文件元数据访问实例
func NewFileInfoRepository(db *gorm.DB) FileInfoRepository {
	return &fileInfoRepository{db: db}
}

func (r *fileInfoRepository) Create(ctx context.Context, file *model.FileInfo) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileInfoRepository) GetByID(ctx context.Context, id uint) (*model.FileInfo, error) {
	var file model.FileInfo
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).
		Preload("Category").
		Where("id = ?", id).
		First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *fileInfoRepository) Update(ctx context.Context, file *model.FileInfo) error {
	result := r.db.WithContext(ctx).Model(&model.FileInfo{}).
		Scopes(NotDeleted()).
		Where("id = ?", file.ID).
		Updates(file)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (r *fileInfoRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.FileInfo{}).
		Scopes(NotDeleted()).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": model.Deleted,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (r *fileInfoRepository) List(ctx context.Context, filter *FileFilter, page *Pagination) ([]*model.FileInfo, int64, error) {
	var files []*model.FileInfo
	var total int64
	query := r.db.WithContext(ctx).Model(&model.FileInfo{}).Scopes(NotDeleted())
	if filter != nil {
		if filter.Name != "" {
			query = query.Where("name LIKE ?", "%"+filter.Name+"%")
		}
		if filter.CategoryID != 0 {
			query = query.Where("category_id = ?", filter.CategoryID)
		}
		if filter.UploaderID != 0 {
			query = query.Where("uploader_id = ?", filter.UploaderID)
		}
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = paginate(query, page)
	if err := query.Preload("Category").Order("id DESC").Find(&files).Error; err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

func (r *fileInfoRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FileInfo{}).
		Scopes(NotDeleted()).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
