package service

import (
	"context"
	"errors"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
)

// 设备相关错误
var (
	ErrDeviceIDEmpty       = errors.New("设备 ID 不能为空")
	ErrDeviceNameEmpty     = errors.New("设备名称不能为空")
	ErrDeviceSNEmpty       = errors.New("设备序列号不能为空")
	ErrDeviceStatusInvalid = errors.New("设备状态无效")
)

// DeviceOverview 设备状态概览
type DeviceOverview struct {
	Total     int64 `json:"total"`
	Online    int64 `json:"online"`
	Offline   int64 `json:"offline"`
	Fault     int64 `json:"fault"`
	Unhandled int64 `json:"unhandled_alerts"`
}

// DeviceService 设备服务接口
type DeviceService interface {
	Create(ctx context.Context, device *model.Device) error
	GetByID(ctx context.Context, id uint) (*model.Device, error)
	Update(ctx context.Context, device *model.Device) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	SetEnabled(ctx context.Context, id uint, enabled bool) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *repository.DeviceFilter, page *repository.Pagination) ([]*model.Device, int64, error)
	ListMarkers(ctx context.Context) ([]*model.Marker, error)
	Overview(ctx context.Context) (*DeviceOverview, error)
}

type deviceService struct {
	deviceRepo repository.DeviceRepository
	alertRepo  repository.AlertRepository
}

// NewDeviceService 创建设备服务
func NewDeviceService(deviceRepo repository.DeviceRepository, alertRepo repository.AlertRepository) DeviceService {
	return &deviceService{deviceRepo: deviceRepo, alertRepo: alertRepo}
}

func (s *deviceService) Create(ctx context.Context, device *model.Device) error {
	if err := s.validateDevice(device); err != nil {
		return err
	}
	if device.Status == "" {
		device.Status = model.DeviceOffline
	}
	return s.deviceRepo.Create(ctx, device)
}

func (s *deviceService) GetByID(ctx context.Context, id uint) (*model.Device, error) {
	if id == 0 {
		return nil, ErrDeviceIDEmpty
	}
	return s.deviceRepo.GetByID(ctx, id)
}

func (s *deviceService) Update(ctx context.Context, device *model.Device) error {
	if device.ID == 0 {
		return ErrDeviceIDEmpty
	}
	if err := s.validateDevice(device); err != nil {
		return err
	}
	return s.deviceRepo.Update(ctx, device)
}

func (s *deviceService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if id == 0 {
		return ErrDeviceIDEmpty
	}
	if !validDeviceStatus(status) {
		return ErrDeviceStatusInvalid
	}
	return s.deviceRepo.UpdateStatus(ctx, id, status)
}

func (s *deviceService) SetEnabled(ctx context.Context, id uint, enabled bool) error {
	if id == 0 {
		return ErrDeviceIDEmpty
	}
	return s.deviceRepo.SetEnabled(ctx, id, enabled)
}

func (s *deviceService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrDeviceIDEmpty
	}
	return s.deviceRepo.SoftDelete(ctx, id)
}

func (s *deviceService) List(ctx context.Context, filter *repository.DeviceFilter, page *repository.Pagination) ([]*model.Device, int64, error) {
	return s.deviceRepo.List(ctx, filter, page)
}

// ListMarkers 返回启用设备的地图点位
func (s *deviceService) ListMarkers(ctx context.Context) ([]*model.Marker, error) {
	devices, err := s.deviceRepo.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}
	markers := make([]*model.Marker, 0, len(devices))
	for _, d := range devices {
		markers = append(markers, d.ToMarker())
	}
	return markers, nil
}

// Overview 汇总各状态设备数和待处理告警数，用于工作台
func (s *deviceService) Overview(ctx context.Context) (*DeviceOverview, error) {
	counts, err := s.deviceRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	unhandled, err := s.alertRepo.CountUnhandled(ctx)
	if err != nil {
		return nil, err
	}
	overview := &DeviceOverview{
		Online:    counts[model.DeviceOnline],
		Offline:   counts[model.DeviceOffline],
		Fault:     counts[model.DeviceFault],
		Unhandled: unhandled,
	}
	overview.Total = overview.Online + overview.Offline + overview.Fault
	return overview, nil
}

func (s *deviceService) validateDevice(device *model.Device) error {
	if device.Name == "" {
		return ErrDeviceNameEmpty
	}
	if device.SN == "" {
		return ErrDeviceSNEmpty
	}
	if device.Status != "" && !validDeviceStatus(device.Status) {
		return ErrDeviceStatusInvalid
	}
	return nil
}

func validDeviceStatus(status string) bool {
	switch status {
	case model.DeviceOnline, model.DeviceOffline, model.DeviceFault:
		return true
	}
	return false
}
