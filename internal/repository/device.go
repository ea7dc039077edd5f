package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

var (
	ErrDeviceNotFound = errors.New("设备不存在")
	ErrDeviceSNExists = errors.New("设备序列号已存在")
)

// DeviceRepository 设备数据访问接口
type DeviceRepository interface {
	Create(ctx context.Context, device *model.Device) error
	GetByID(ctx context.Context, id uint) (*model.Device, error)
	GetAnyByID(ctx context.Context, id uint) (*model.Device, error)
	Update(ctx context.Context, device *model.Device) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	SetEnabled(ctx context.Context, id uint, enabled bool) error
	SoftDelete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *DeviceFilter, page *Pagination) ([]*model.Device, int64, error)
	ListEnabled(ctx context.Context) ([]*model.Device, error)
	ExistsBySN(ctx context.Context, sn string) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// DeviceFilter 设备查询过滤器
type DeviceFilter struct {
	Name    string // 名称（模糊匹配）
	SN      string // 序列号
	Type    string // 类型
	Status  string // 运行状态
	Enabled *bool  // 启用状态，nil 表示不过滤
}

type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository 创建设备数据访问实例
func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

// Create 查重与插入在同一事务内执行，SN 唯一性只约束未删除的行。
func (r *deviceRepository) Create(ctx context.Context, device *model.Device) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Device{}).
			Scopes(NotDeleted()).
			Where("sn = ?", device.SN).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDeviceSNExists
		}
		return tx.Create(device).Error
	})
}

func (r *deviceRepository) GetByID(ctx context.Context, id uint) (*model.Device, error) {
	var device model.Device
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).Where("id = ?", id).First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return &device, nil
}

// GetAnyByID 审计读取，不过滤软删除标记
func (r *deviceRepository) GetAnyByID(ctx context.Context, id uint) (*model.Device, error) {
	var device model.Device
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) Update(ctx context.Context, device *model.Device) error {
	result := r.db.WithContext(ctx).Model(&model.Device{}).
		Scopes(NotDeleted()).
		Where("id = ?", device.ID).
		Updates(device)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

func (r *deviceRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&model.Device{}).
		Scopes(NotDeleted()).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

func (r *deviceRepository) SetEnabled(ctx context.Context, id uint, enabled bool) error {
	result := r.db.WithContext(ctx).Model(&model.Device{}).
		Scopes(NotDeleted()).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"enabled":    enabled,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

func (r *deviceRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.Device{}).
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
		return ErrDeviceNotFound
	}
	return nil
}

func (r *deviceRepository) List(ctx context.Context, filter *DeviceFilter, page *Pagination) ([]*model.Device, int64, error) {
	var devices []*model.Device
	var total int64
	query := r.db.WithContext(ctx).Model(&model.Device{}).Scopes(NotDeleted())
	if filter != nil {
		if filter.Name != "" {
			query = query.Where("name LIKE ?", "%"+filter.Name+"%")
		}
		if filter.SN != "" {
			query = query.Where("sn = ?", filter.SN)
		}
		if filter.Type != "" {
			query = query.Where("type = ?", filter.Type)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Enabled != nil {
			query = query.Where("enabled = ?", *filter.Enabled)
		}
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = paginate(query, page)
	if err := query.Order("id DESC").Find(&devices).Error; err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}

// ListEnabled 列出全部启用且未删除的设备（地图标注用）
func (r *deviceRepository) ListEnabled(ctx context.Context) ([]*model.Device, error) {
	var devices []*model.Device
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).
		Where("enabled = ?", true).
		Order("id DESC").
		Find(&devices).Error
	return devices, err
}

func (r *deviceRepository) ExistsBySN(ctx context.Context, sn string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Device{}).
		Scopes(NotDeleted()).
		Where("sn = ?", sn).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus 按运行状态统计设备数量
func (r *deviceRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Device{}).
		Scopes(NotDeleted()).
		Select("status, COUNT(*) AS total").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}
