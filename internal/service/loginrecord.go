package service

import (
	"context"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
)

// LoginRecordService 登录记录服务接口
type LoginRecordService interface {
	// Record 写入一条登录记录，失败只记日志不阻断登录
	Record(ctx context.Context, record *model.LoginRecord) error
	List(ctx context.Context, filter *repository.LoginRecordFilter, page *repository.Pagination) ([]*model.LoginRecord, int64, error)
	// ListMarkers 返回最近成功登录的地图点位
	ListMarkers(ctx context.Context, limit int) ([]*model.Marker, error)
}

type loginRecordService struct {
	recordRepo repository.LoginRecordRepository
}

// NewLoginRecordService 创建登录记录服务
func NewLoginRecordService(recordRepo repository.LoginRecordRepository) LoginRecordService {
	return &loginRecordService{recordRepo: recordRepo}
}

func (s *loginRecordService) Record(ctx context.Context, record *model.LoginRecord) error {
	return s.recordRepo.Create(ctx, record)
}

func (s *loginRecordService) List(ctx context.Context, filter *repository.LoginRecordFilter, page *repository.Pagination) ([]*model.LoginRecord, int64, error) {
	return s.recordRepo.List(ctx, filter, page)
}

func (s *loginRecordService) ListMarkers(ctx context.Context, limit int) ([]*model.Marker, error) {
	if limit <= 0 {
		limit = 100
	}
	records, err := s.recordRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	markers := make([]*model.Marker, 0, len(records))
	for _, r := range records {
		if !r.Success {
			continue
		}
		markers = append(markers, r.ToMarker())
	}
	return markers, nil
}
