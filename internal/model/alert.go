package model

import "time"

// 告警级别
const (
	AlertInfo     = "info"     // 提示
	AlertWarning  = "warning"  // 警告
	AlertCritical = "critical" // 严重
)

// 告警处理状态
const (
	AlertUnhandled = "unhandled" // 待处理
	AlertHandled   = "handled"   // 已处理
)

// Alert 设备告警
type Alert struct {
	BaseModel
	DeviceID  uint       `gorm:"index;not null" json:"device_id"`
	Level     string     `gorm:"type:varchar(20);default:info;index" json:"level"`
	Type      string     `gorm:"type:varchar(50)" json:"type"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	Content   string     `gorm:"type:text" json:"content"`
	Status    string     `gorm:"type:varchar(20);default:unhandled;index" json:"status"`
	HandledBy uint       `json:"handled_by,omitempty"`
	HandledAt *time.Time `json:"handled_at,omitempty"`

	// 关联
	Device *Device `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
}

// TableName 指定表名
func (Alert) TableName() string {
	return "alerts"
}
