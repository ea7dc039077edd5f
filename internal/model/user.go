package model

import (
	"golang.org/x/crypto/bcrypt"
)

// 用户角色
const (
	RoleAdmin = "admin" // 管理员
	RoleUser  = "user"  // 普通用户
)

// 用户状态（启用/禁用，与软删除相互独立）
const (
	UserEnabled  = "enabled"  // 启用
	UserDisabled = "disabled" // 禁用
)

// User 用户模型
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(100);index" json:"username"`
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
	Nickname     string `gorm:"type:varchar(100)" json:"nickname"`
	Email        string `gorm:"type:varchar(255);index" json:"email"`
	Phone        string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role         string `gorm:"type:varchar(20);default:user" json:"role"`
	AvatarURL    string `gorm:"type:varchar(500)" json:"avatar_url,omitempty"`
	Status       string `gorm:"type:varchar(20);default:enabled" json:"status"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// SetPassword 设置密码（哈希存储）
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword 验证密码
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsEnabled 检查用户是否启用
func (u *User) IsEnabled() bool {
	return u.Status == UserEnabled
}

// IsAdmin 检查用户是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
