package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

var ErrSettingNotFound = errors.New("配置项不存在")

// SettingEntry 批量更新条目
type SettingEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingRepository 系统设置数据访问接口
// 设置只由种子创建；按 key 更新，key 不存在即失败。
// 批量更新和重置必须在单个事务中完成，并发读取不会
// 看到部分更新的结果。
type SettingRepository interface {
	GetAll(ctx context.Context) ([]*model.SystemSetting, error)
	GetByKey(ctx context.Context, key string) (*model.SystemSetting, error)
	UpdateOne(ctx context.Context, key, value string) error
	UpdateBatch(ctx context.Context, entries []SettingEntry) error
	Reset(ctx context.Context, defaults []model.SystemSetting) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建系统设置数据访问实例
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetAll(ctx context.Context) ([]*model.SystemSetting, error) {
	var settings []*model.SystemSetting
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).
		Order("id ASC").
		Find(&settings).Error
	return settings, err
}

func (r *settingRepository) GetByKey(ctx context.Context, key string) (*model.SystemSetting, error) {
	var setting model.SystemSetting
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) UpdateOne(ctx context.Context, key, value string) error {
	return r.updateOne(r.db.WithContext(ctx), key, value)
}

// UpdateBatch 单事务批量更新，任一 key 不存在则整体回滚
func (r *settingRepository) UpdateBatch(ctx context.Context, entries []SettingEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			if err := r.updateOne(tx, entry.Key, entry.Value); err != nil {
				return fmt.Errorf("更新 %s 失败: %w", entry.Key, err)
			}
		}
		return nil
	})
}

// Reset 单事务内清空并重新写入默认值
func (r *settingRepository) Reset(ctx context.Context, defaults []model.SystemSetting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.SystemSetting{}).Error; err != nil {
			return err
		}
		for i := range defaults {
			row := defaults[i]
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *settingRepository) updateOne(db *gorm.DB, key, value string) error {
	result := db.Model(&model.SystemSetting{}).
		Scopes(NotDeleted()).
		Where("setting_key = ?", key).
		Updates(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}
