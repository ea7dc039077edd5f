package database

import (
	"testing"

	"github.com/yunwei-iot/ams-backend/internal/config"
)

// TestPostgresDSN 测试 PostgreSQL 连接串构造
func TestPostgresDSN(t *testing.T) {
	cfg := &config.PostgresConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "ams",
		Password: "secret",
		DBName:   "ams",
		SSLMode:  "require",
	}
	want := "host=db.internal port=5433 user=ams password=secret dbname=ams sslmode=require"
	if got := postgresDSN(cfg); got != want {
		t.Errorf("postgresDSN 期望 %q, 实际 %q", want, got)
	}
}

// TestMySQLDSN 测试 MySQL 连接串构造
func TestMySQLDSN(t *testing.T) {
	cfg := &config.MySQLConfig{
		Host:      "db.internal",
		Port:      3306,
		User:      "ams",
		Password:  "secret",
		DBName:    "ams",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Local",
	}
	want := "ams:secret@tcp(db.internal:3306)/ams?charset=utf8mb4&parseTime=true&loc=Local"
	if got := mysqlDSN(cfg); got != want {
		t.Errorf("mysqlDSN 期望 %q, 实际 %q", want, got)
	}
}

// TestInitUnknownDriver 测试不支持的驱动
func TestInitUnknownDriver(t *testing.T) {
	err := Init(&config.DatabaseConfig{Driver: "oracle"})
	if err == nil {
		t.Error("期望返回错误，但没有")
	}
}

// TestPingUninitialized 测试未初始化时 Ping
func TestPingUninitialized(t *testing.T) {
	old := db
	db = nil
	defer func() { db = old }()

	if err := Ping(); err == nil {
		t.Error("期望返回错误，但没有")
	}
}
