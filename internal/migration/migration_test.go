package migration

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 打开内存数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// 每个测试使用独立的命名内存库，避免连接间互相干扰
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	return db
}

// 生成一条计数迁移：up 每执行一次计数加一
func countingMigration(name string, counter *int) *Migration {
	return &Migration{
		Name: name,
		Up: func(tx *gorm.DB) error {
			*counter++
			return nil
		},
		Down: func(tx *gorm.DB) error { return nil },
	}
}

// TestRunAppliesInOrder 测试迁移按顺序执行并登记
func TestRunAppliesInOrder(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db)

	var order []string
	mk := func(name string) *Migration {
		return &Migration{
			Name: name,
			Up: func(tx *gorm.DB) error {
				order = append(order, name)
				return nil
			},
			Down: func(tx *gorm.DB) error { return nil },
		}
	}

	migrations := []*Migration{mk("001_a"), mk("002_b"), mk("003_c")}
	results, err := runner.Run(migrations)
	if err != nil {
		t.Fatalf("Run 失败: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("期望 3 条结果, 实际 %d", len(results))
	}
	for i, want := range []string{"001_a", "002_b", "003_c"} {
		if results[i].Name != want || results[i].Status != StatusApplied {
			t.Errorf("结果 %d 期望 %s/applied, 实际 %s/%s", i, want, results[i].Name, results[i].Status)
		}
		if order[i] != want {
			t.Errorf("执行顺序 %d 期望 %s, 实际 %s", i, want, order[i])
		}
	}
}

// TestRunIdempotent 测试重复执行不会再次调用 up
// 对账本重跑一次，第二次的 up 调用次数必须为零。
func TestRunIdempotent(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db)

	var c1, c2 int
	migrations := []*Migration{
		countingMigration("001_first", &c1),
		countingMigration("002_second", &c2),
	}

	if _, err := runner.Run(migrations); err != nil {
		t.Fatalf("首次 Run 失败: %v", err)
	}
	results, err := runner.Run(migrations)
	if err != nil {
		t.Fatalf("二次 Run 失败: %v", err)
	}

	if c1 != 1 || c2 != 1 {
		t.Errorf("up 调用次数期望各 1 次, 实际 %d/%d", c1, c2)
	}
	for _, r := range results {
		if r.Status != StatusAlreadyApplied {
			t.Errorf("迁移 %s 期望 already-applied, 实际 %s", r.Name, r.Status)
		}
	}
}

// TestRunNewMigrationOnly 测试追加迁移时只执行新条目
func TestRunNewMigrationOnly(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db)

	var c1, c2 int
	first := []*Migration{countingMigration("001_first", &c1)}
	if _, err := runner.Run(first); err != nil {
		t.Fatalf("首次 Run 失败: %v", err)
	}

	both := append(first, countingMigration("002_second", &c2))
	results, err := runner.Run(both)
	if err != nil {
		t.Fatalf("二次 Run 失败: %v", err)
	}

	if c1 != 1 {
		t.Errorf("已登记迁移的 up 不应再执行, 实际调用 %d 次", c1)
	}
	if c2 != 1 {
		t.Errorf("新迁移应执行一次, 实际调用 %d 次", c2)
	}
	if results[0].Status != StatusAlreadyApplied || results[1].Status != StatusApplied {
		t.Errorf("状态不符: %s/%s", results[0].Status, results[1].Status)
	}
}

// TestRunStopsOnFailure 测试首条失败后停止执行
func TestRunStopsOnFailure(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db)

	var c1, c3 int
	boom := errors.New("建表失败")
	migrations := []*Migration{
		countingMigration("001_ok", &c1),
		{
			Name: "002_bad",
			Up:   func(tx *gorm.DB) error { return boom },
			Down: func(tx *gorm.DB) error { return nil },
		},
		countingMigration("003_never", &c3),
	}

	results, err := runner.Run(migrations)
	if err == nil {
		t.Fatal("期望返回错误，但没有")
	}

	if results[0].Status != StatusApplied {
		t.Errorf("001_ok 期望 applied, 实际 %s", results[0].Status)
	}
	if results[1].Status != StatusFailed || !errors.Is(results[1].Err, boom) {
		t.Errorf("002_bad 期望 failed, 实际 %s/%v", results[1].Status, results[1].Err)
	}
	if results[2].Status != StatusSkipped || c3 != 0 {
		t.Errorf("003_never 期望 skipped 且不执行, 实际 %s/%d 次", results[2].Status, c3)
	}

	// 失败的迁移不应登记，修复后重跑应能继续
	migrations[1].Up = func(tx *gorm.DB) error { return nil }
	results, err = runner.Run(migrations)
	if err != nil {
		t.Fatalf("修复后 Run 失败: %v", err)
	}
	if results[0].Status != StatusAlreadyApplied ||
		results[1].Status != StatusApplied ||
		results[2].Status != StatusApplied {
		t.Errorf("修复后状态不符: %s/%s/%s", results[0].Status, results[1].Status, results[2].Status)
	}
	if c1 != 1 {
		t.Errorf("001_ok 不应重复执行, 实际 %d 次", c1)
	}
}

// TestRunFailedUpRolledBack 测试失败迁移的写入被回滚
func TestRunFailedUpRolledBack(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db)

	type probe struct {
		ID   uint `gorm:"primaryKey"`
		Name string
	}

	migrations := []*Migration{
		{
			Name: "001_probe",
			Up: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&probe{}); err != nil {
					return err
				}
				if err := tx.Create(&probe{Name: "x"}).Error; err != nil {
					return err
				}
				return errors.New("事后失败")
			},
			Down: func(tx *gorm.DB) error { return nil },
		},
	}

	if _, err := runner.Run(migrations); err == nil {
		t.Fatal("期望返回错误，但没有")
	}

	// 账本中不应出现失败的迁移
	var count int64
	if err := db.Model(&Record{}).Where("name = ?", "001_probe").Count(&count).Error; err != nil {
		t.Fatalf("查询账本失败: %v", err)
	}
	if count != 0 {
		t.Errorf("失败迁移不应登记, 账本行数 %d", count)
	}
}

// TestRunDuplicateName 测试重复名称被拒绝
func TestRunDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db)

	var c int
	migrations := []*Migration{
		countingMigration("001_dup", &c),
		countingMigration("001_dup", &c),
	}
	if _, err := runner.Run(migrations); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("期望 ErrDuplicateName, 实际 %v", err)
	}
	if c != 0 {
		t.Errorf("校验失败时不应执行任何迁移, 实际 %d 次", c)
	}
}

// TestRollback 测试手工回滚
func TestRollback(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db)

	var ups, downs int
	m := &Migration{
		Name: "001_r",
		Up: func(tx *gorm.DB) error {
			ups++
			return nil
		},
		Down: func(tx *gorm.DB) error {
			downs++
			return nil
		},
	}
	migrations := []*Migration{m}

	// 未执行时回滚应报错
	if err := runner.Rollback(migrations, "001_r"); !errors.Is(err, ErrNotApplied) {
		t.Errorf("期望 ErrNotApplied, 实际 %v", err)
	}

	if _, err := runner.Run(migrations); err != nil {
		t.Fatalf("Run 失败: %v", err)
	}
	if err := runner.Rollback(migrations, "001_r"); err != nil {
		t.Fatalf("Rollback 失败: %v", err)
	}
	if downs != 1 {
		t.Errorf("down 期望执行 1 次, 实际 %d", downs)
	}

	// 回滚后重跑应再次执行 up
	if _, err := runner.Run(migrations); err != nil {
		t.Fatalf("回滚后 Run 失败: %v", err)
	}
	if ups != 2 {
		t.Errorf("回滚后 up 期望共执行 2 次, 实际 %d", ups)
	}

	// 不存在的名称
	if err := runner.Rollback(migrations, "999_none"); !errors.Is(err, ErrNotFound) {
		t.Errorf("期望 ErrNotFound, 实际 %v", err)
	}
}

// TestAllMigrations 测试生产迁移列表可完整执行
func TestAllMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db)

	results, err := runner.Run(All())
	if err != nil {
		t.Fatalf("执行生产迁移列表失败: %v", err)
	}
	for _, r := range results {
		if r.Status != StatusApplied {
			t.Errorf("迁移 %s 期望 applied, 实际 %s", r.Name, r.Status)
		}
	}

	// 种子数据应已写入
	var settings int64
	if err := db.Table("system_settings").Count(&settings).Error; err != nil {
		t.Fatalf("查询 system_settings 失败: %v", err)
	}
	if settings == 0 {
		t.Error("system_settings 种子数据为空")
	}
	var admins int64
	if err := db.Table("users").Where("username = ?", "admin").Count(&admins).Error; err != nil {
		t.Fatalf("查询 users 失败: %v", err)
	}
	if admins != 1 {
		t.Errorf("期望 1 个管理员账号, 实际 %d", admins)
	}
}
