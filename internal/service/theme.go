package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
)

// 主题相关错误
var (
	ErrThemeColorInvalid  = errors.New("主题色必须是十六进制颜色值")
	ErrThemeLayoutInvalid = errors.New("布局只能是 side 或 top")
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ThemeService 个人主题服务接口
type ThemeService interface {
	Get(ctx context.Context, userID uint) (*model.Theme, error)
	Save(ctx context.Context, userID uint, theme *model.Theme) error
	Reset(ctx context.Context, userID uint) (*model.Theme, error)
}

type themeService struct {
	themeRepo repository.ThemeRepository
}

// NewThemeService 创建主题服务
func NewThemeService(themeRepo repository.ThemeRepository) ThemeService {
	return &themeService{themeRepo: themeRepo}
}

func (s *themeService) Get(ctx context.Context, userID uint) (*model.Theme, error) {
	if userID == 0 {
		return nil, ErrUserIDEmpty
	}
	setting, err := s.themeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &setting.Theme, nil
}

func (s *themeService) Save(ctx context.Context, userID uint, theme *model.Theme) error {
	if userID == 0 {
		return ErrUserIDEmpty
	}
	if !hexColorRegex.MatchString(theme.PrimaryColor) {
		return ErrThemeColorInvalid
	}
	if theme.Layout != "side" && theme.Layout != "top" {
		return ErrThemeLayoutInvalid
	}
	setting, err := s.themeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	setting.Theme = *theme
	return s.themeRepo.Save(ctx, setting)
}

func (s *themeService) Reset(ctx context.Context, userID uint) (*model.Theme, error) {
	if userID == 0 {
		return nil, ErrUserIDEmpty
	}
	setting, err := s.themeRepo.Reset(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &setting.Theme, nil
}
