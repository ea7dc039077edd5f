package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
)

type mockThemeRepository struct {
	themes map[uint]*model.ThemeSetting
}

func newMockThemeRepository() *mockThemeRepository {
	return &mockThemeRepository{themes: make(map[uint]*model.ThemeSetting)}
}

func (m *mockThemeRepository) GetByUserID(ctx context.Context, userID uint) (*model.ThemeSetting, error) {
	if setting, ok := m.themes[userID]; ok {
		return setting, nil
	}
	setting := &model.ThemeSetting{UserID: userID, Theme: model.DefaultTheme()}
	m.themes[userID] = setting
	return setting, nil
}

func (m *mockThemeRepository) Save(ctx context.Context, setting *model.ThemeSetting) error {
	m.themes[setting.UserID] = setting
	return nil
}

func (m *mockThemeRepository) Reset(ctx context.Context, userID uint) (*model.ThemeSetting, error) {
	setting := &model.ThemeSetting{UserID: userID, Theme: model.DefaultTheme()}
	m.themes[userID] = setting
	return setting, nil
}

var _ repository.ThemeRepository = (*mockThemeRepository)(nil)

func TestThemeServiceSaveValidation(t *testing.T) {
	svc := NewThemeService(newMockThemeRepository())
	ctx := context.Background()

	cases := []struct {
		name    string
		theme   model.Theme
		wantErr error
	}{
		{"颜色非法", model.Theme{PrimaryColor: "red", Layout: "side"}, ErrThemeColorInvalid},
		{"颜色缺井号", model.Theme{PrimaryColor: "1677ff", Layout: "side"}, ErrThemeColorInvalid},
		{"布局非法", model.Theme{PrimaryColor: "#1677ff", Layout: "grid"}, ErrThemeLayoutInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Save(ctx, 1, &tc.theme); !errors.Is(err, tc.wantErr) {
				t.Errorf("期望 %v, 实际 %v", tc.wantErr, err)
			}
		})
	}
}

func TestThemeServiceSaveAndReset(t *testing.T) {
	svc := NewThemeService(newMockThemeRepository())
	ctx := context.Background()

	custom := &model.Theme{PrimaryColor: "#ff4d4f", Layout: "top", DarkMode: true, Compact: true}
	if err := svc.Save(ctx, 1, custom); err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	got, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if got.PrimaryColor != "#ff4d4f" || got.Layout != "top" || !got.DarkMode {
		t.Errorf("保存未生效: %+v", got)
	}

	// 其他用户拿到默认主题
	other, err := svc.Get(ctx, 2)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	def := model.DefaultTheme()
	if other.PrimaryColor != def.PrimaryColor {
		t.Errorf("其他用户应为默认主题: %+v", other)
	}

	reset, err := svc.Reset(ctx, 1)
	if err != nil {
		t.Fatalf("重置失败: %v", err)
	}
	if reset.PrimaryColor != def.PrimaryColor || reset.DarkMode {
		t.Errorf("重置后应为默认主题: %+v", reset)
	}
}
