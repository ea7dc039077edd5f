package model

// FileCategory 文件分类
type FileCategory struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	Sort int    `gorm:"default:0" json:"sort"`
}

// TableName 指定表名
func (FileCategory) TableName() string {
	return "file_categories"
}

// FileInfo 文件元数据
// 文件内容由客户端凭上传策略直传对象存储，服务端只保存元数据。
type FileInfo struct {
	BaseModel
	Name        string `gorm:"type:varchar(512);not null" json:"name"`
	ObjectKey   string `gorm:"type:varchar(1024);index" json:"object_key"`
	URL         string `gorm:"type:varchar(1024)" json:"url"`
	Size        int64  `json:"size"`
	ContentType string `gorm:"type:varchar(255)" json:"content_type"`
	CategoryID  uint   `gorm:"index" json:"category_id,omitempty"`
	UploaderID  uint   `gorm:"index" json:"uploader_id"`

	// 关联
	Category *FileCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName 指定表名
func (FileInfo) TableName() string {
	return "file_infos"
}
