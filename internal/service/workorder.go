package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/pkg/logger"
)

// 工单相关错误
var (
	ErrOrderIDEmpty          = errors.New("工单 ID 不能为空")
	ErrOrderTitleEmpty       = errors.New("工单标题不能为空")
	ErrOrderAssigneeEmpty    = errors.New("处理人不能为空")
	ErrOrderStatusInvalid    = errors.New("工单状态无效")
	ErrOrderAlreadyFinished  = errors.New("工单已完结")
	ErrOrderTransitionDenied = errors.New("工单状态不允许该流转")
)

// WorkOrderService 工单服务接口
type WorkOrderService interface {
	Create(ctx context.Context, order *model.WorkOrder) error
	GetByID(ctx context.Context, id uint) (*model.WorkOrder, error)
	Assign(ctx context.Context, id uint, assigneeID uint) error
	Finish(ctx context.Context, id uint) error
	Close(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *repository.WorkOrderFilter, page *repository.Pagination) ([]*model.WorkOrder, int64, error)
}

type workOrderService struct {
	orderRepo   repository.WorkOrderRepository
	messageRepo repository.MessageRepository
}

// NewWorkOrderService 创建工单服务
func NewWorkOrderService(orderRepo repository.WorkOrderRepository, messageRepo repository.MessageRepository) WorkOrderService {
	return &workOrderService{orderRepo: orderRepo, messageRepo: messageRepo}
}

// Create 创建工单并生成单号
func (s *workOrderService) Create(ctx context.Context, order *model.WorkOrder) error {
	if order.Title == "" {
		return ErrOrderTitleEmpty
	}
	if order.OrderNo == "" {
		order.OrderNo = generateOrderNo()
	}
	if order.Status == "" {
		order.Status = model.OrderPending
	}
	return s.orderRepo.Create(ctx, order)
}

func (s *workOrderService) GetByID(ctx context.Context, id uint) (*model.WorkOrder, error) {
	if id == 0 {
		return nil, ErrOrderIDEmpty
	}
	return s.orderRepo.GetByID(ctx, id)
}

// Assign 指派工单给处理人，并向处理人推送工单消息
func (s *workOrderService) Assign(ctx context.Context, id uint, assigneeID uint) error {
	if id == 0 {
		return ErrOrderIDEmpty
	}
	if assigneeID == 0 {
		return ErrOrderAssigneeEmpty
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == model.OrderFinished || order.Status == model.OrderClosed {
		return ErrOrderAlreadyFinished
	}
	if err := s.orderRepo.Assign(ctx, id, assigneeID); err != nil {
		return err
	}
	// 推送失败不回滚指派
	msg := &model.Message{
		Title:   fmt.Sprintf("工单指派：%s", order.Title),
		Content: fmt.Sprintf("工单 %s 已指派给你处理", order.OrderNo),
		Type:    model.MessageWorkOrder,
	}
	if sendErr := s.messageRepo.Send(ctx, msg, []uint{assigneeID}); sendErr != nil {
		logger.Warn("推送工单指派消息失败", zap.Error(sendErr))
	}
	return nil
}

// Finish 完结工单，仅处理中的工单可完结
func (s *workOrderService) Finish(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrOrderIDEmpty
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != model.OrderProcessing {
		return ErrOrderTransitionDenied
	}
	now := time.Now()
	return s.orderRepo.UpdateStatus(ctx, id, model.OrderFinished, &now)
}

// Close 关闭工单，已完结的工单不能再关闭
func (s *workOrderService) Close(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrOrderIDEmpty
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == model.OrderFinished || order.Status == model.OrderClosed {
		return ErrOrderAlreadyFinished
	}
	return s.orderRepo.UpdateStatus(ctx, id, model.OrderClosed, nil)
}

func (s *workOrderService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrOrderIDEmpty
	}
	return s.orderRepo.SoftDelete(ctx, id)
}

func (s *workOrderService) List(ctx context.Context, filter *repository.WorkOrderFilter, page *repository.Pagination) ([]*model.WorkOrder, int64, error) {
	return s.orderRepo.List(ctx, filter, page)
}

// generateOrderNo 生成工单号：WO-日期-随机后缀
func generateOrderNo() string {
	return fmt.Sprintf("WO-%s-%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
}
