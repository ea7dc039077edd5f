package repository

import (
	"context"
	"testing"

	"github.com/yunwei-iot/ams-backend/internal/model"
)

// TestLoginRecordListFilter 测试登录记录的写入和过滤
func TestLoginRecordListFilter(t *testing.T) {
	repo := NewLoginRecordRepository(setupTestDB(t))
	ctx := context.Background()

	records := []*model.LoginRecord{
		{UserID: 1, Username: "admin", IP: "10.0.0.1", Location: "北京", Success: true},
		{UserID: 1, Username: "admin", IP: "10.0.0.2", Location: "上海", Success: false},
		{UserID: 2, Username: "zhangsan", IP: "10.0.0.3", Location: "广州", Success: true},
	}
	for _, r := range records {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("写入登录记录失败: %v", err)
		}
	}

	_, total, err := repo.List(ctx, &LoginRecordFilter{UserID: 1}, nil)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 2 {
		t.Errorf("用户过滤期望 2 条, 实际 %d", total)
	}

	ok := true
	list, total, err := repo.List(ctx, &LoginRecordFilter{Success: &ok}, nil)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 2 {
		t.Errorf("成功过滤期望 2 条, 实际 %d", total)
	}
	for _, r := range list {
		if !r.Success {
			t.Error("成功过滤不应返回失败记录")
		}
	}

	recent, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent 失败: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("最近记录期望 2 条, 实际 %d", len(recent))
	}
	// 最近的排在前面
	if recent[0].ID < recent[1].ID {
		t.Error("最近记录应按 id 倒序")
	}
}
