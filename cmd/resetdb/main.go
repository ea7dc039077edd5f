package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm/schema"

	"github.com/yunwei-iot/ams-backend/internal/config"
	"github.com/yunwei-iot/ams-backend/internal/database"
	"github.com/yunwei-iot/ams-backend/internal/migration"
	"github.com/yunwei-iot/ams-backend/internal/model"
)

// 开发用工具：删除全部业务表并重建。重建通过迁移执行器完成，
// 默认配置与初始管理员由种子迁移写入。
func main() {
	configPath := flag.String("config", "", "配置文件路径，留空时按默认路径查找")
	force := flag.Bool("force", false, "确认执行，未指定时仅打印将被删除的表")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer database.Close()

	tables := []schema.Tabler{
		model.User{}, model.Device{}, model.Alert{}, model.WorkOrder{},
		model.Message{}, model.UserMessage{}, model.Article{},
		model.FileInfo{}, model.FileCategory{}, model.SystemSetting{},
		model.ThemeSetting{}, model.LoginRecord{}, migration.Record{},
	}

	if !*force {
		fmt.Println("以下表将被删除并重建（加 -force 确认执行）:")
		for _, table := range tables {
			fmt.Printf("  %s\n", table.TableName())
		}
		os.Exit(0)
	}

	db := database.GetDB()
	for _, table := range tables {
		if err := db.Migrator().DropTable(table); err != nil {
			log.Fatalf("删除表 %s 失败: %v", table.TableName(), err)
		}
	}
	fmt.Println("全部表已删除")

	results, err := migration.NewRunner(db).Run(migration.All())
	if err != nil {
		for _, r := range results {
			if r.Status == migration.StatusFailed {
				log.Printf("迁移 %s 失败: %v", r.Name, r.Err)
			}
		}
		log.Fatalf("重建表失败: %v", err)
	}
	fmt.Println("全部表已重建，初始管理员与默认配置已写入")
}
