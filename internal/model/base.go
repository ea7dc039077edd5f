// Package model 定义数据模型
package model

import (
	"time"
)

// 软删除标记
const (
	NotDeleted = 0 // 未删除
	Deleted    = 1 // 已删除
)

// 审核状态
const (
	AuditPending  = 0 // 待审核
	AuditApproved = 1 // 审核通过
	AuditRejected = 2 // 审核驳回
)

// BaseModel 基础模型，包含通用字段
// 所有业务表统一使用自增整型主键和软删除标记，
// 删除操作只翻转 is_deleted，不做物理删除。
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	IsDeleted int       `gorm:"type:tinyint;default:0;index" json:"-"`
}
