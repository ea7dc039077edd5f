package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

var ErrArticleNotFound = errors.New("文章不存在")

// ArticleRepository 知识库文章数据访问接口
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	GetByID(ctx context.Context, id uint) (*model.Article, error)
	GetAnyByID(ctx context.Context, id uint) (*model.Article, error)
	Update(ctx context.Context, article *model.Article) error
	UpdateAuditStatus(ctx context.Context, id uint, status int) error
	IncrViewCount(ctx context.Context, id uint) error
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *ArticleFilter, page *Pagination) ([]*model.Article, int64, error)
	ListPublic(ctx context.Context, page *Pagination) ([]*model.Article, int64, error)
}

// ArticleFilter 文章查询过滤器
// AuditStatus 为 nil 时不过滤审核状态（管理视图）。
type ArticleFilter struct {
	Title       string // 标题（模糊匹配）
	CategoryID  uint   // 分类 ID
	AuthorID    uint   // 作者 ID
	AuditStatus *int   // 审核状态
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository 创建文章数据访问实例
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).Where("id = ?", id).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// GetAnyByID 审计读取，不过滤软删除标记
func (r *articleRepository) GetAnyByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Update 使用 map 显式写入各列，保证 audit_status 回到待审核（零值）也能落库
func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	result := r.db.WithContext(ctx).Model(&model.Article{}).
		Scopes(NotDeleted()).
		Where("id = ?", article.ID).
		Updates(map[string]interface{}{
			"title":        article.Title,
			"summary":      article.Summary,
			"content":      article.Content,
			"cover_url":    article.CoverURL,
			"category_id":  article.CategoryID,
			"audit_status": article.AuditStatus,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (r *articleRepository) UpdateAuditStatus(ctx context.Context, id uint, status int) error {
	result := r.db.WithContext(ctx).Model(&model.Article{}).
		Scopes(NotDeleted()).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"audit_status": status,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (r *articleRepository) IncrViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Article{}).
		Scopes(NotDeleted()).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *articleRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.Article{}).
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
		return ErrArticleNotFound
	}
	return nil
}

func (r *articleRepository) List(ctx context.Context, filter *ArticleFilter, page *Pagination) ([]*model.Article, int64, error) {
	var articles []*model.Article
	var total int64
	query := r.db.WithContext(ctx).Model(&model.Article{}).Scopes(NotDeleted())
	if filter != nil {
		if filter.Title != "" {
			query = query.Where("title LIKE ?", "%"+filter.Title+"%")
		}
		if filter.CategoryID != 0 {
			query = query.Where("category_id = ?", filter.CategoryID)
		}
		if filter.AuthorID != 0 {
			query = query.Where("author_id = ?", filter.AuthorID)
		}
		if filter.AuditStatus != nil {
			query = query.Where("audit_status = ?", *filter.AuditStatus)
		}
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = paginate(query, page)
	if err := query.Order("id DESC").Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// ListPublic 公开读取路径，只返回审核通过的文章
func (r *articleRepository) ListPublic(ctx context.Context, page *Pagination) ([]*model.Article, int64, error) {
	status := model.AuditApproved
	return r.List(ctx, &ArticleFilter{AuditStatus: &status}, page)
}
