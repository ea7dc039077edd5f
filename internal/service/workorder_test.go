package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yunwei-iot/ams-backend/internal/model"
)

func TestWorkOrderServiceCreate(t *testing.T) {
	svc := NewWorkOrderService(newMockWorkOrderRepository(), newMockMessageRepository())
	ctx := context.Background()

	order := &model.WorkOrder{Title: "更换电池", Content: "3 号设备电量低", CreatorID: 1}
	if err := svc.Create(ctx, order); err != nil {
		t.Fatalf("创建工单失败: %v", err)
	}
	if !strings.HasPrefix(order.OrderNo, "WO-") {
		t.Errorf("应自动生成单号, 实际 %q", order.OrderNo)
	}
	if order.Status != model.OrderPending {
		t.Errorf("新工单应为待接单, 实际 %s", order.Status)
	}

	if err := svc.Create(ctx, &model.WorkOrder{}); !errors.Is(err, ErrOrderTitleEmpty) {
		t.Errorf("期望 ErrOrderTitleEmpty, 实际 %v", err)
	}
}

// 指派使工单进入处理中，并向处理人推送工单消息
func TestWorkOrderServiceAssign(t *testing.T) {
	messageRepo := newMockMessageRepository()
	svc := NewWorkOrderService(newMockWorkOrderRepository(), messageRepo)
	ctx := context.Background()

	order := &model.WorkOrder{Title: "巡检", CreatorID: 1}
	if err := svc.Create(ctx, order); err != nil {
		t.Fatalf("创建工单失败: %v", err)
	}
	if err := svc.Assign(ctx, order.ID, 5); err != nil {
		t.Fatalf("指派失败: %v", err)
	}

	got, err := svc.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if got.Status != model.OrderProcessing || got.AssigneeID != 5 {
		t.Errorf("指派结果不符: %s/%d", got.Status, got.AssigneeID)
	}
	count, _ := messageRepo.UnreadCount(ctx, 5)
	if count != 1 {
		t.Errorf("处理人应收到 1 条工单消息, 实际 %d", count)
	}

	if err := svc.Assign(ctx, order.ID, 0); !errors.Is(err, ErrOrderAssigneeEmpty) {
		t.Errorf("期望 ErrOrderAssigneeEmpty, 实际 %v", err)
	}
}

// 状态机：只有处理中的工单可完结，完结后不能再指派或关闭
func TestWorkOrderServiceTransitions(t *testing.T) {
	svc := NewWorkOrderService(newMockWorkOrderRepository(), newMockMessageRepository())
	ctx := context.Background()

	order := &model.WorkOrder{Title: "维修", CreatorID: 1}
	if err := svc.Create(ctx, order); err != nil {
		t.Fatalf("创建工单失败: %v", err)
	}

	// 待接单不能直接完结
	if err := svc.Finish(ctx, order.ID); !errors.Is(err, ErrOrderTransitionDenied) {
		t.Errorf("期望 ErrOrderTransitionDenied, 实际 %v", err)
	}

	if err := svc.Assign(ctx, order.ID, 5); err != nil {
		t.Fatalf("指派失败: %v", err)
	}
	if err := svc.Finish(ctx, order.ID); err != nil {
		t.Fatalf("完结失败: %v", err)
	}
	got, _ := svc.GetByID(ctx, order.ID)
	if got.Status != model.OrderFinished || got.FinishedAt == nil {
		t.Errorf("完结后状态不符: %s/%v", got.Status, got.FinishedAt)
	}

	// 已完结的工单不能再操作
	if err := svc.Assign(ctx, order.ID, 6); !errors.Is(err, ErrOrderAlreadyFinished) {
		t.Errorf("期望 ErrOrderAlreadyFinished, 实际 %v", err)
	}
	if err := svc.Close(ctx, order.ID); !errors.Is(err, ErrOrderAlreadyFinished) {
		t.Errorf("期望 ErrOrderAlreadyFinished, 实际 %v", err)
	}
}

func TestWorkOrderServiceClose(t *testing.T) {
	svc := NewWorkOrderService(newMockWorkOrderRepository(), newMockMessageRepository())
	ctx := context.Background()

	order := &model.WorkOrder{Title: "误报工单", CreatorID: 1}
	if err := svc.Create(ctx, order); err != nil {
		t.Fatalf("创建工单失败: %v", err)
	}
	if err := svc.Close(ctx, order.ID); err != nil {
		t.Fatalf("关闭失败: %v", err)
	}
	got, _ := svc.GetByID(ctx, order.ID)
	if got.Status != model.OrderClosed {
		t.Errorf("期望 closed, 实际 %s", got.Status)
	}
}
