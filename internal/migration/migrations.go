package migration

import (
	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

// All 返回按顺序排列的全部迁移
// 新迁移只能追加到列表末尾，已发布的名称和内容不允许改动。
func All() []*Migration {
	return []*Migration{
		{
			Name: "202406010001_create_users",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.User{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.User{})
			},
		},
		{
			Name: "202406010002_create_devices",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.Device{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.Device{})
			},
		},
		{
			Name: "202406010003_create_alerts",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.Alert{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.Alert{})
			},
		},
		{
			Name: "202406010004_create_work_orders",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.WorkOrder{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.WorkOrder{})
			},
		},
		{
			Name: "202406010005_create_files",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.FileCategory{}, &model.FileInfo{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.FileInfo{}, &model.FileCategory{})
			},
		},
		{
			Name: "202406010006_create_articles",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.Article{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.Article{})
			},
		},
		{
			Name: "202406010007_create_messages",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.Message{}, &model.UserMessage{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.UserMessage{}, &model.Message{})
			},
		},
		{
			Name: "202406010008_create_settings",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.SystemSetting{}, &model.ThemeSetting{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.ThemeSetting{}, &model.SystemSetting{})
			},
		},
		{
			Name: "202406010009_create_login_records",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.LoginRecord{})
			},
			Down: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.LoginRecord{})
			},
		},
		{
			Name: "202406020001_seed_system_settings",
			Up: func(tx *gorm.DB) error {
				for _, row := range model.DefaultSettings() {
					row := row
					if err := tx.Create(&row).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(tx *gorm.DB) error {
				return tx.Where("1 = 1").Delete(&model.SystemSetting{}).Error
			},
		},
		{
			Name: "202406020002_seed_admin_user",
			Up: func(tx *gorm.DB) error {
				admin := &model.User{
					Username: "admin",
					Nickname: "系统管理员",
					Email:    "admin@example.com",
					Role:     model.RoleAdmin,
					Status:   model.UserEnabled,
				}
				// 初始密码，首次登录后应立即修改
				if err := admin.SetPassword("Admin@12345"); err != nil {
					return err
				}
				return tx.Create(admin).Error
			},
			Down: func(tx *gorm.DB) error {
				return tx.Where("username = ?", "admin").Delete(&model.User{}).Error
			},
		},
	}
}
