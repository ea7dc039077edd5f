package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/yunwei-iot/ams-backend/internal/model"
)

func newTestUser(username string) *model.User {
	u := &model.User{
		Username: username,
		Nickname: "测试用户",
		Email:    username + "@example.com",
		Role:     model.RoleUser,
		Status:   model.UserEnabled,
	}
	_ = u.SetPassword("Passw0rd!")
	return u
}

// TestUserCreateAndGet 测试创建和读取
func TestUserCreateAndGet(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := newTestUser("zhangsan")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("创建后应分配主键")
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("读取用户失败: %v", err)
	}
	if got.Username != "zhangsan" {
		t.Errorf("期望 zhangsan, 实际 %s", got.Username)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("创建/更新时间应已写入")
	}
}

// TestUserUsernameUnique 测试用户名唯一性
// 同名的第二次创建必须失败，且不写入任何行。
func TestUserUsernameUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newTestUser("lisi")); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	err := repo.Create(ctx, newTestUser("lisi"))
	if !errors.Is(err, ErrUserUsernameExists) {
		t.Errorf("期望 ErrUserUsernameExists, 实际 %v", err)
	}

	var count int64
	db.Table("users").Where("username = ?", "lisi").Count(&count)
	if count != 1 {
		t.Errorf("期望仅 1 行, 实际 %d", count)
	}
}

// TestUserUsernameReusableAfterDelete 软删除后的用户名可以重新注册
// 旧行保留做审计，新行独立分配主键，常规读路径只命中新行。
func TestUserUsernameReusableAfterDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	old := newTestUser("zhaoliu")
	if err := repo.Create(ctx, old); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	if err := repo.SoftDelete(ctx, old.ID); err != nil {
		t.Fatalf("软删除失败: %v", err)
	}

	fresh := newTestUser("zhaoliu")
	if err := repo.Create(ctx, fresh); err != nil {
		t.Fatalf("删除后重新注册同名用户失败: %v", err)
	}
	if fresh.ID == old.ID {
		t.Error("重新注册应写入新行")
	}

	got, err := repo.GetByUsername(ctx, "zhaoliu")
	if err != nil {
		t.Fatalf("读取用户失败: %v", err)
	}
	if got.ID != fresh.ID {
		t.Errorf("按用户名读取应命中新行 %d, 实际 %d", fresh.ID, got.ID)
	}

	var count int64
	db.Table("users").Where("username = ?", "zhaoliu").Count(&count)
	if count != 2 {
		t.Errorf("期望新旧共 2 行, 实际 %d", count)
	}
}

// TestUserSoftDelete 测试软删除
// 软删除后常规读路径视为不存在，但审计读取仍能取到原始行。
func TestUserSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := newTestUser("wangwu")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	if err := repo.SoftDelete(ctx, user.ID); err != nil {
		t.Fatalf("软删除失败: %v", err)
	}

	// 读路径不可见
	if _, err := repo.GetByID(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound, 实际 %v", err)
	}
	users, total, err := repo.List(ctx, nil, nil)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 0 || len(users) != 0 {
		t.Errorf("列表不应包含已删除用户, 实际 %d 条", total)
	}

	// 审计读取仍可见，数据除标记和更新时间外不变
	audit, err := repo.GetAnyByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("审计读取失败: %v", err)
	}
	if audit.IsDeleted != model.Deleted {
		t.Errorf("期望 is_deleted = 1, 实际 %d", audit.IsDeleted)
	}
	if audit.Username != "wangwu" || audit.Email != user.Email {
		t.Error("审计行的业务字段不应被修改")
	}

	// 重复删除视为不存在
	if err := repo.SoftDelete(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("重复删除期望 ErrUserNotFound, 实际 %v", err)
	}
}

// TestUserUpdate 测试更新
func TestUserUpdate(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := newTestUser("zhaoliu")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	user.Nickname = "新昵称"
	user.Status = model.UserDisabled
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if got.Nickname != "新昵称" || got.Status != model.UserDisabled {
		t.Errorf("更新未生效: %s/%s", got.Nickname, got.Status)
	}

	// 更新不存在的行
	missing := newTestUser("nobody")
	missing.ID = 9999
	if err := repo.Update(ctx, missing); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound, 实际 %v", err)
	}
}

// TestUserListFilter 测试过滤和分页
// 禁用但未删除的用户仍出现在全量列表中。
func TestUserListFilter(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	for i, name := range []string{"ops01", "ops02", "dev01"} {
		u := newTestUser(name)
		if i == 2 {
			u.Status = model.UserDisabled
		}
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("创建用户失败: %v", err)
		}
	}

	// 模糊匹配
	users, total, err := repo.List(ctx, &UserFilter{Username: "ops"}, nil)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Errorf("期望 2 条, 实际 %d", total)
	}

	// 全量列表包含禁用用户
	_, total, err = repo.List(ctx, nil, nil)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 3 {
		t.Errorf("全量列表期望 3 条, 实际 %d", total)
	}

	// 仅启用
	users, total, err = repo.List(ctx, &UserFilter{Status: model.UserEnabled}, nil)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 2 {
		t.Errorf("启用列表期望 2 条, 实际 %d", total)
	}

	// 分页：总数用过滤条件统计，不受切片影响
	users, total, err = repo.List(ctx, nil, &Pagination{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 3 {
		t.Errorf("分页总数期望 3, 实际 %d", total)
	}
	if len(users) != 2 {
		t.Errorf("分页切片期望 2 条, 实际 %d", len(users))
	}
	// 默认按主键倒序
	if users[0].ID < users[1].ID {
		t.Error("列表应按 id 倒序")
	}
}
