package model

// 设备运行状态
const (
	DeviceOnline  = "online"  // 在线
	DeviceOffline = "offline" // 离线
	DeviceFault   = "fault"   // 故障
)

// Device 设备/资产模型
// Enabled 与软删除相互独立：停用的设备仍出现在管理列表，
// 但不参与地图展示和告警联动。
type Device struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	SN          string  `gorm:"type:varchar(100);index" json:"sn"`
	Type        string  `gorm:"type:varchar(50);index" json:"type"`
	Model       string  `gorm:"type:varchar(100)" json:"model"`
	Status      string  `gorm:"type:varchar(20);default:offline;index" json:"status"`
	Enabled     bool    `gorm:"default:true" json:"enabled"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	Address     string  `gorm:"type:varchar(500)" json:"address"`
	IconURL     string  `gorm:"type:varchar(500)" json:"icon_url,omitempty"`
	Description string  `gorm:"type:text" json:"description"`
}

// TableName 指定表名
func (Device) TableName() string {
	return "devices"
}

// Marker 地图标注点
// 供管理端/移动端地图组件聚合展示，字段齐备即可，渲染逻辑在前端。
type Marker struct {
	ID          uint    `json:"id"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IconURL     string  `json:"icon_url,omitempty"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`
}

// ToMarker 转换为地图标注点
func (d *Device) ToMarker() *Marker {
	return &Marker{
		ID:          d.ID,
		Longitude:   d.Longitude,
		Latitude:    d.Latitude,
		Title:       d.Name,
		Description: d.Description,
		IconURL:     d.IconURL,
		Status:      d.Status,
		Type:        d.Type,
	}
}
