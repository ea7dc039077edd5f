package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yunwei-iot/ams-backend/internal/config"
	"github.com/yunwei-iot/ams-backend/internal/database"
	"github.com/yunwei-iot/ams-backend/internal/migration"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径，留空时按默认路径查找")
	down := flag.String("down", "", "回滚指定名称的迁移")
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

	runner := migration.NewRunner(database.GetDB())

	if *down != "" {
		if err := runner.Rollback(migration.All(), *down); err != nil {
			log.Fatalf("回滚迁移 %s 失败: %v", *down, err)
		}
		fmt.Printf("已回滚: %s\n", *down)
		return
	}

	results, runErr := runner.Run(migration.All())
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%-40s %s  %v\n", r.Name, r.Status, r.Err)
		} else {
			fmt.Printf("%-40s %s\n", r.Name, r.Status)
		}
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "迁移未全部完成: %v\n", runErr)
		os.Exit(1)
	}
	fmt.Println("全部迁移已完成")
}
