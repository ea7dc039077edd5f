package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// SystemSetting 系统设置项
// key 全局唯一且集合封闭：设置只由种子数据创建，
// 运行期只能按 key 更新，不能新增。
type SystemSetting struct {
	BaseModel
	Key         string `gorm:"type:varchar(100);uniqueIndex;not null;column:setting_key" json:"key"`
	Value       string `gorm:"type:varchar(1024)" json:"value"`
	Group       string `gorm:"type:varchar(50);index;column:group_name" json:"group"`
	Description string `gorm:"type:varchar(255)" json:"description"`
}

// TableName 指定表名
func (SystemSetting) TableName() string {
	return "system_settings"
}

// Theme 主题配置
type Theme struct {
	PrimaryColor string `json:"primary_color"` // 主题色
	Layout       string `json:"layout"`        // 布局：side, top
	DarkMode     bool   `json:"dark_mode"`     // 暗色模式
	Compact      bool   `json:"compact"`       // 紧凑模式
}

// DefaultTheme 默认主题
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor: "#1677ff",
		Layout:       "side",
		DarkMode:     false,
		Compact:      false,
	}
}

// Value 实现 driver.Valuer 接口
func (t Theme) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan 实现 sql.Scanner 接口
func (t *Theme) Scan(value interface{}) error {
	if value == nil {
		*t = DefaultTheme()
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("无法将值转换为 []byte")
	}
	return json.Unmarshal(bytes, t)
}

// ThemeSetting 用户主题设置，每个用户一行
// 重置时用默认主题覆盖行内容，不删除行。
type ThemeSetting struct {
	BaseModel
	UserID uint  `gorm:"uniqueIndex;not null" json:"user_id"`
	Theme  Theme `gorm:"type:json" json:"theme"`
}

// TableName 指定表名
func (ThemeSetting) TableName() string {
	return "theme_settings"
}
