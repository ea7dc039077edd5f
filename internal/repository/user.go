package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserUsernameExists = errors.New("用户名已存在")
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetAnyByID(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *UserFilter, page *Pagination) ([]*model.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// UserFilter 用户查询过滤器
type UserFilter struct {
	Username string // 用户名（模糊匹配）
	Nickname string // 昵称（模糊匹配）
	Role     string // 角色
	Status   string // 状态
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户数据访问实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 查重与插入在同一事务内执行，避免并发创建同名用户。
// 用户名唯一性只约束未删除的行，软删除后的用户名可以重新注册。
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).
			Scopes(NotDeleted()).
			Where("username = ?", user.Username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUserUsernameExists
		}
		return tx.Create(user).Error
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAnyByID 审计读取，不过滤软删除标记
func (r *userRepository) GetAnyByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Scopes(NotDeleted()).
		Where("id = ?", user.ID).
		Updates(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
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
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, filter *UserFilter, page *Pagination) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64
	query := r.db.WithContext(ctx).Model(&model.User{}).Scopes(NotDeleted())
	if filter != nil {
		if filter.Username != "" {
			query = query.Where("username LIKE ?", "%"+filter.Username+"%")
		}
		if filter.Nickname != "" {
			query = query.Where("nickname LIKE ?", "%"+filter.Nickname+"%")
		}
		if filter.Role != "" {
			query = query.Where("role = ?", filter.Role)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = paginate(query, page)
	if err := query.Order("id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Scopes(NotDeleted()).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}
