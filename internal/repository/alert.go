package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("告警不存在")

// AlertRepository 告警数据访问接口
type AlertRepository interface {
	Create(ctx context.Context, alert *model.Alert) error
	GetByID(ctx context.Context, id uint) (*model.Alert, error)
	Handle(ctx context.Context, id uint, handlerID uint) error
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *AlertFilter, page *Pagination) ([]*model.Alert, int64, error)
	CountUnhandled(ctx context.Context) (int64, error)
}

// AlertFilter 告警查询过滤器
type AlertFilter struct {
	DeviceID uint   // 设备 ID
	Level    string // 级别
	Type     string // 类型
	Status   string // 处理状态
}

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository 创建告警数据访问实例
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *model.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) GetByID(ctx context.Context, id uint) (*model.Alert, error) {
	var alert model.Alert
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).
		Preload("Device").
		Where("id = ?", id).
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// Handle 标记告警为已处理
func (r *alertRepository) Handle(ctx context.Context, id uint, handlerID uint) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Alert{}).
		Scopes(NotDeleted()).
		Where("id = ? AND status = ?", id, model.AlertUnhandled).
		Updates(map[string]interface{}{
			"status":     model.AlertHandled,
			"handled_by": handlerID,
			"handled_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *alertRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.Alert{}).
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
		return ErrAlertNotFound
	}
	return nil
}

func (r *alertRepository) List(ctx context.Context, filter *AlertFilter, page *Pagination) ([]*model.Alert, int64, error) {
	var alerts []*model.Alert
	var total int64
	query := r.db.WithContext(ctx).Model(&model.Alert{}).Scopes(NotDeleted())
	if filter != nil {
		if filter.DeviceID != 0 {
			query = query.Where("device_id = ?", filter.DeviceID)
		}
		if filter.Level != "" {
			query = query.Where("level = ?", filter.Level)
		}
		if filter.Type != "" {
			query = query.Where("type = ?", filter.Type)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = paginate(query, page)
	if err := query.Preload("Device").Order("id DESC").Find(&alerts).Error; err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

func (r *alertRepository) CountUnhandled(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Alert{}).
		Scopes(NotDeleted()).
		Where("status = ?", model.AlertUnhandled).
		Count(&count).Error
	return count, err
}
