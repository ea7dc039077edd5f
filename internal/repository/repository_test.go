package repository

import (
	"testing"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 打开独立的内存数据库并建表
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.Device{},
		&model.Alert{},
		&model.WorkOrder{},
		&model.FileCategory{},
		&model.FileInfo{},
		&model.Article{},
		&model.Message{},
		&model.UserMessage{},
		&model.SystemSetting{},
		&model.ThemeSetting{},
		&model.LoginRecord{},
	)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}
