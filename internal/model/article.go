package model

// Article 知识库文章
// AuditStatus 控制公开可见性：只有审核通过的文章才会出现在
// 未认证的公开读取路径（如首页资讯），待审核/驳回的文章仅
// 管理视图可见。
type Article struct {
	BaseModel
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Summary     string `gorm:"type:varchar(500)" json:"summary"`
	Content     string `gorm:"type:text" json:"content"`
	CoverURL    string `gorm:"type:varchar(1024)" json:"cover_url,omitempty"`
	CategoryID  uint   `gorm:"index" json:"category_id,omitempty"`
	AuditStatus int    `gorm:"type:tinyint;default:0;index" json:"audit_status"`
	ViewCount   int64  `gorm:"default:0" json:"view_count"`
	AuthorID    uint   `gorm:"index" json:"author_id"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}

// IsApproved 检查文章是否审核通过
func (a *Article) IsApproved() bool {
	return a.AuditStatus == AuditApproved
}
