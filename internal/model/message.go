package model

import "time"

// 消息类型
const (
	MessageSystem    = "system"    // 系统通知
	MessageAlert     = "alert"     // 告警通知
	MessageWorkOrder = "workorder" // 工单通知
)

// 消息阅读状态
const (
	MessageUnread = 0 // 未读
	MessageRead   = 1 // 已读
)

// Message 消息内容
// 内容行由发送者创建一次，之后不可变；每个接收者的阅读/删除
// 状态保存在 user_messages 投影行上，互不影响。
type Message struct {
	BaseModel
	Title    string `gorm:"type:varchar(255);not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Type     string `gorm:"type:varchar(20);default:system" json:"type"`
	SenderID uint   `gorm:"index" json:"sender_id"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}

// UserMessage 用户-消息投影行
type UserMessage struct {
	BaseModel
	MessageID uint       `gorm:"index;not null" json:"message_id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	Status    int        `gorm:"type:tinyint;default:0;index" json:"status"`
	ReadAt    *time.Time `json:"read_at,omitempty"`

	// 关联
	Message *Message `gorm:"foreignKey:MessageID" json:"message,omitempty"`
}

// TableName 指定表名
func (UserMessage) TableName() string {
	return "user_messages"
}
