package model

// LoginRecord 登录记录
// 记录登录 IP 与定位坐标，供登录地点地图页展示。
type LoginRecord struct {
	BaseModel
	UserID    uint    `gorm:"index;not null" json:"user_id"`
	Username  string  `gorm:"type:varchar(100)" json:"username"`
	IP        string  `gorm:"type:varchar(45)" json:"ip"`
	Location  string  `gorm:"type:varchar(255)" json:"location"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	UserAgent string  `gorm:"type:varchar(500)" json:"user_agent"`
	Success   bool    `gorm:"default:true" json:"success"`
}

// TableName 指定表名
func (LoginRecord) TableName() string {
	return "login_records"
}

// ToMarker 转换为地图标注点
func (r *LoginRecord) ToMarker() *Marker {
	status := "success"
	if !r.Success {
		status = "failed"
	}
	return &Marker{
		ID:          r.ID,
		Longitude:   r.Longitude,
		Latitude:    r.Latitude,
		Title:       r.Username,
		Description: r.Location,
		Status:      status,
		Type:        "login",
	}
}
