// Package migration 数据库迁移执行器
//
// 迁移按名称在 schema_migrations 账本表中登记，已登记的名称
// 永远不会再次执行 up；每条迁移连同账本写入跑在同一个事务里，
// 遇到第一条失败的迁移即停止，后续迁移记为 skipped。
// down 仅供手工回滚工具调用，执行器本身从不自动回滚。
package migration

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Migration 一条具名迁移
type Migration struct {
	Name string
	Up   func(tx *gorm.DB) error
	Down func(tx *gorm.DB) error
}

// 迁移执行状态
const (
	StatusApplied        = "applied"         // 本次执行成功
	StatusAlreadyApplied = "already-applied" // 账本中已登记，跳过
	StatusFailed         = "failed"          // 执行失败
	StatusSkipped        = "skipped"         // 因前序失败未执行
)

// Result 单条迁移的执行结果
type Result struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Err    error  `json:"error,omitempty"`
}

// Record 账本表行
type Record struct {
	Name      string    `gorm:"type:varchar(255);primaryKey"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Record) TableName() string {
	return "schema_migrations"
}

var (
	ErrDuplicateName = errors.New("迁移名称重复")
	ErrNotApplied    = errors.New("迁移尚未执行，无法回滚")
	ErrNotFound      = errors.New("迁移不存在")
)

// Runner 迁移执行器
type Runner struct {
	db *gorm.DB
}

// NewRunner 创建迁移执行器
func NewRunner(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// Run 按顺序执行未登记的迁移，返回每条迁移的结果
// 第一条失败的迁移之后不再继续，整体错误一并返回。
func (r *Runner) Run(migrations []*Migration) ([]Result, error) {
	if err := r.ensureLedger(); err != nil {
		return nil, err
	}
	if err := checkNames(migrations); err != nil {
		return nil, err
	}

	applied, err := r.appliedNames()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(migrations))
	var failed error
	for _, m := range migrations {
		if failed != nil {
			results = append(results, Result{Name: m.Name, Status: StatusSkipped})
			continue
		}
		if applied[m.Name] {
			results = append(results, Result{Name: m.Name, Status: StatusAlreadyApplied})
			continue
		}

		// 迁移体和账本写入在同一个事务中提交
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&Record{Name: m.Name}).Error
		})
		if err != nil {
			failed = fmt.Errorf("迁移 %s 失败: %w", m.Name, err)
			results = append(results, Result{Name: m.Name, Status: StatusFailed, Err: err})
			continue
		}
		results = append(results, Result{Name: m.Name, Status: StatusApplied})
	}

	return results, failed
}

// Rollback 手工回滚一条已登记的迁移
func (r *Runner) Rollback(migrations []*Migration, name string) error {
	if err := r.ensureLedger(); err != nil {
		return err
	}

	var target *Migration
	for _, m := range migrations {
		if m.Name == name {
			target = m
			break
		}
	}
	if target == nil {
		return ErrNotFound
	}

	applied, err := r.appliedNames()
	if err != nil {
		return err
	}
	if !applied[name] {
		return ErrNotApplied
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return err
		}
		return tx.Where("name = ?", name).Delete(&Record{}).Error
	})
}

// ensureLedger 创建账本表
func (r *Runner) ensureLedger() error {
	return r.db.AutoMigrate(&Record{})
}

// appliedNames 读取已登记的迁移名称
func (r *Runner) appliedNames() (map[string]bool, error) {
	var records []Record
	if err := r.db.Find(&records).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(records))
	for _, rec := range records {
		applied[rec.Name] = true
	}
	return applied, nil
}

// checkNames 校验名称非空且不重复
func checkNames(migrations []*Migration) error {
	seen := make(map[string]bool, len(migrations))
	for _, m := range migrations {
		if m.Name == "" {
			return errors.New("迁移名称不能为空")
		}
		if seen[m.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateName, m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}
