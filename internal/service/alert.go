package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/pkg/logger"
)

// 告警相关错误
var (
	ErrAlertIDEmpty      = errors.New("告警 ID 不能为空")
	ErrAlertTitleEmpty   = errors.New("告警标题不能为空")
	ErrAlertLevelInvalid = errors.New("告警级别无效")
)

// AlertService 告警服务接口
type AlertService interface {
	// Report 上报告警，严重告警同时向管理员推送消息
	Report(ctx context.Context, alert *model.Alert) error
	GetByID(ctx context.Context, id uint) (*model.Alert, error)
	Handle(ctx context.Context, id uint, handlerID uint) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *repository.AlertFilter, page *repository.Pagination) ([]*model.Alert, int64, error)
	CountUnhandled(ctx context.Context) (int64, error)
}

type alertService struct {
	alertRepo   repository.AlertRepository
	deviceRepo  repository.DeviceRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	settingRepo repository.SettingRepository
}

// NewAlertService 创建告警服务
func NewAlertService(alertRepo repository.AlertRepository, deviceRepo repository.DeviceRepository, messageRepo repository.MessageRepository, userRepo repository.UserRepository, settingRepo repository.SettingRepository) AlertService {
	return &alertService{alertRepo: alertRepo, deviceRepo: deviceRepo, messageRepo: messageRepo, userRepo: userRepo, settingRepo: settingRepo}
}

func (s *alertService) Report(ctx context.Context, alert *model.Alert) error {
	if alert.Title == "" {
		return ErrAlertTitleEmpty
	}
	if !validAlertLevel(alert.Level) {
		return ErrAlertLevelInvalid
	}
	if alert.DeviceID != 0 {
		if _, err := s.deviceRepo.GetByID(ctx, alert.DeviceID); err != nil {
			return err
		}
	}
	if alert.Status == "" {
		alert.Status = model.AlertUnhandled
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return err
	}
	// 严重告警推送给所有管理员，推送失败不影响告警落库
	if alert.Level == model.AlertCritical {
		s.notifyAdmins(ctx, alert)
	}
	return nil
}

func (s *alertService) notifyAdmins(ctx context.Context, alert *model.Alert) {
	if !s.notifyEnabled(ctx) {
		return
	}
	admins, _, err := s.userRepo.List(ctx, &repository.UserFilter{Role: model.RoleAdmin}, nil)
	if err != nil || len(admins) == 0 {
		return
	}
	ids := make([]uint, 0, len(admins))
	for _, u := range admins {
		ids = append(ids, u.ID)
	}
	msg := &model.Message{
		Title:   fmt.Sprintf("严重告警：%s", alert.Title),
		Content: alert.Content,
		Type:    model.MessageAlert,
	}
	if sendErr := s.messageRepo.Send(ctx, msg, ids); sendErr != nil {
		logger.Warn("推送严重告警消息失败", zap.Error(sendErr))
	}
}

// notifyEnabled 读取 ALERT_NOTIFY_ENABLED 开关，读取失败时按默认开启处理
func (s *alertService) notifyEnabled(ctx context.Context) bool {
	setting, err := s.settingRepo.GetByKey(ctx, model.SettingKeyAlertNotifyEnabled)
	if err != nil {
		logger.Warn("读取告警推送开关失败", zap.Error(err))
		return true
	}
	return setting.Value != "false"
}

func (s *alertService) GetByID(ctx context.Context, id uint) (*model.Alert, error) {
	if id == 0 {
		return nil, ErrAlertIDEmpty
	}
	return s.alertRepo.GetByID(ctx, id)
}

func (s *alertService) Handle(ctx context.Context, id uint, handlerID uint) error {
	if id == 0 {
		return ErrAlertIDEmpty
	}
	return s.alertRepo.Handle(ctx, id, handlerID)
}

func (s *alertService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrAlertIDEmpty
	}
	return s.alertRepo.SoftDelete(ctx, id)
}

func (s *alertService) List(ctx context.Context, filter *repository.AlertFilter, page *repository.Pagination) ([]*model.Alert, int64, error) {
	return s.alertRepo.List(ctx, filter, page)
}

func (s *alertService) CountUnhandled(ctx context.Context) (int64, error) {
	return s.alertRepo.CountUnhandled(ctx)
}

func validAlertLevel(level string) bool {
	switch level {
	case model.AlertInfo, model.AlertWarning, model.AlertCritical:
		return true
	}
	return false
}
