package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

var ErrWorkOrderNotFound = errors.New("工单不存在")

// WorkOrderRepository 工单数据访问接口
type WorkOrderRepository interface {
	Create(ctx context.Context, order *model.WorkOrder) error
	GetByID(ctx context.Context, id uint) (*model.WorkOrder, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*model.WorkOrder, error)
	Update(ctx context.Context, order *model.WorkOrder) error
	UpdateStatus(ctx context.Context, id uint, status string, finishedAt *time.Time) error
	Assign(ctx context.Context, id uint, assigneeID uint) error
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *WorkOrderFilter, page *Pagination) ([]*model.WorkOrder, int64, error)
}

// WorkOrderFilter 工单查询过滤器
type WorkOrderFilter struct {
	Title      string // 标题（模糊匹配）
	DeviceID   uint   // 设备 ID
	Status     string // 状态
	AssigneeID uint   // 处理人 ID
	CreatorID  uint   // 发起人 ID
}

type workOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository 创建工单数据访问实例
func NewWorkOrderRepository(db *gorm.DB) WorkOrderRepository {
	return &workOrderRepository{db: db}
}

func (r *workOrderRepository) Create(ctx context.Context, order *model.WorkOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *workOrderRepository) GetByID(ctx context.Context, id uint) (*model.WorkOrder, error) {
	var order model.WorkOrder
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).
		Preload("Device").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *workOrderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*model.WorkOrder, error) {
	var order model.WorkOrder
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).
		Where("order_no = ?", orderNo).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *workOrderRepository) Update(ctx context.Context, order *model.WorkOrder) error {
	result := r.db.WithContext(ctx).Model(&model.WorkOrder{}).
		Scopes(NotDeleted()).
		Where("id = ?", order.ID).
		Updates(order)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkOrderNotFound
	}
	return nil
}

func (r *workOrderRepository) UpdateStatus(ctx context.Context, id uint, status string, finishedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if finishedAt != nil {
		updates["finished_at"] = finishedAt
	}
	result := r.db.WithContext(ctx).Model(&model.WorkOrder{}).
		Scopes(NotDeleted()).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkOrderNotFound
	}
	return nil
}

func (r *workOrderRepository) Assign(ctx context.Context, id uint, assigneeID uint) error {
	result := r.db.WithContext(ctx).Model(&model.WorkOrder{}).
		Scopes(NotDeleted()).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"assignee_id": assigneeID,
			"status":      model.OrderProcessing,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkOrderNotFound
	}
	return nil
}

func (r *workOrderRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.WorkOrder{}).
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
		return ErrWorkOrderNotFound
	}
	return nil
}

func (r *workOrderRepository) List(ctx context.Context, filter *WorkOrderFilter, page *Pagination) ([]*model.WorkOrder, int64, error) {
	var orders []*model.WorkOrder
	var total int64
	query := r.db.WithContext(ctx).Model(&model.WorkOrder{}).Scopes(NotDeleted())
	if filter != nil {
		if filter.Title != "" {
			query = query.Where("title LIKE ?", "%"+filter.Title+"%")
		}
		if filter.DeviceID != 0 {
			query = query.Where("device_id = ?", filter.DeviceID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.AssigneeID != 0 {
			query = query.Where("assignee_id = ?", filter.AssigneeID)
		}
		if filter.CreatorID != 0 {
			query = query.Where("creator_id = ?", filter.CreatorID)
		}
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = paginate(query, page)
	if err := query.Preload("Device").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
