package model

import "time"

// 工单状态
const (
	OrderPending    = "pending"    // 待接单
	OrderProcessing = "processing" // 处理中
	OrderFinished   = "finished"   // 已完成
	OrderClosed     = "closed"     // 已关闭
)

// WorkOrder 工单模型
type WorkOrder struct {
	BaseModel
	OrderNo    string     `gorm:"type:varchar(40);uniqueIndex" json:"order_no"`
	Title      string     `gorm:"type:varchar(255);not null" json:"title"`
	Content    string     `gorm:"type:text" json:"content"`
	DeviceID   uint       `gorm:"index" json:"device_id,omitempty"`
	Status     string     `gorm:"type:varchar(20);default:pending;index" json:"status"`
	AssigneeID uint       `gorm:"index" json:"assignee_id,omitempty"`
	CreatorID  uint       `gorm:"index;not null" json:"creator_id"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// 关联
	Device *Device `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
}

// TableName 指定表名
func (WorkOrder) TableName() string {
	return "work_orders"
}
