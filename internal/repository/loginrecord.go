package repository

import (
	"context"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

// LoginRecordRepository 登录记录数据访问接口
type LoginRecordRepository interface {
	Create(ctx context.Context, record *model.LoginRecord) error
	List(ctx context.Context, filter *LoginRecordFilter, page *Pagination) ([]*model.LoginRecord, int64, error)
	ListRecent(ctx context.Context, limit int) ([]*model.LoginRecord, error)
}

// LoginRecordFilter 登录记录查询过滤器
type LoginRecordFilter struct {
	UserID   uint   // 用户 ID
	Username string // 用户名（模糊匹配）
	Success  *bool  // 是否成功，nil 表示不过滤
}

type loginRecordRepository struct {
	db *gorm.DB
}

// NewLoginRecordRepository 创建登录记录数据访问实例
func NewLoginRecordRepository(db *gorm.DB) LoginRecordRepository {
	return &loginRecordRepository{db: db}
}

func (r *loginRecordRepository) Create(ctx context.Context, record *model.LoginRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *loginRecordRepository) List(ctx context.Context, filter *LoginRecordFilter, page *Pagination) ([]*model.LoginRecord, int64, error) {
	var records []*model.LoginRecord
	var total int64
	query := r.db.WithContext(ctx).Model(&model.LoginRecord{}).Scopes(NotDeleted())
	if filter != nil {
		if filter.UserID != 0 {
			query = query.Where("user_id = ?", filter.UserID)
		}
		if filter.Username != "" {
			query = query.Where("username LIKE ?", "%"+filter.Username+"%")
		}
		if filter.Success != nil {
			query = query.Where("success = ?", *filter.Success)
		}
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = paginate(query, page)
	if err := query.Order("id DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListRecent 最近的登录记录（登录地点地图用）
func (r *loginRecordRepository) ListRecent(ctx context.Context, limit int) ([]*model.LoginRecord, error) {
	var records []*model.LoginRecord
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
