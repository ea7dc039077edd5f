package repository

import (
	"context"
	"errors"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

// ThemeRepository 用户主题设置数据访问接口
// 每个用户一行；不存在时按默认主题补建，重置覆盖行内容而不删行。
type ThemeRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*model.ThemeSetting, error)
	Save(ctx context.Context, setting *model.ThemeSetting) error
	Reset(ctx context.Context, userID uint) (*model.ThemeSetting, error)
}

type themeRepository struct {
	db *gorm.DB
}

// NewThemeRepository 创建主题设置数据访问实例
func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepository{db: db}
}

// GetByUserID 读取用户主题，行不存在时创建默认主题行
func (r *themeRepository) GetByUserID(ctx context.Context, userID uint) (*model.ThemeSetting, error) {
	var setting model.ThemeSetting
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			setting = model.ThemeSetting{UserID: userID, Theme: model.DefaultTheme()}
			if err := r.db.WithContext(ctx).Create(&setting).Error; err != nil {
				return nil, err
			}
			return &setting, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Save 写入用户主题，行不存在时创建
func (r *themeRepository) Save(ctx context.Context, setting *model.ThemeSetting) error {
	var existing model.ThemeSetting
	err := r.db.WithContext(ctx).Where("user_id = ?", setting.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(setting).Error
		}
		return err
	}
	return r.db.WithContext(ctx).Model(&model.ThemeSetting{}).
		Where("user_id = ?", setting.UserID).
		Update("theme", setting.Theme).Error
}

// Reset 用默认主题覆盖行内容
func (r *themeRepository) Reset(ctx context.Context, userID uint) (*model.ThemeSetting, error) {
	setting := &model.ThemeSetting{UserID: userID, Theme: model.DefaultTheme()}
	if err := r.Save(ctx, setting); err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}
