package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yunwei-iot/ams-backend/internal/config"
)

var client *redis.Client

// Init 初始化 Redis 连接
func Init(cfg *config.RedisConfig) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("连接 Redis 失败: %w", err)
	}

	return nil
}

// GetClient 获取 Redis 客户端实例
func GetClient() *redis.Client {
	return client
}

// Close 关闭 Redis 连接
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// ErrNotInitialized 客户端未初始化
var ErrNotInitialized = errors.New("Redis 客户端未初始化")

// Set 设置键值对
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if client == nil {
		return ErrNotInitialized
	}
	return client.Set(ctx, key, value, expiration).Err()
}

// Get 获取值
func Get(ctx context.Context, key string) (string, error) {
	if client == nil {
		return "", ErrNotInitialized
	}
	return client.Get(ctx, key).Result()
}

// Del 删除键
func Del(ctx context.Context, keys ...string) error {
	if client == nil {
		return ErrNotInitialized
	}
	return client.Del(ctx, keys...).Err()
}

// Incr 自增
func Incr(ctx context.Context, key string) (int64, error) {
	if client == nil {
		return 0, ErrNotInitialized
	}
	return client.Incr(ctx, key).Result()
}

// Expire 设置过期时间
func Expire(ctx context.Context, key string, expiration time.Duration) error {
	if client == nil {
		return ErrNotInitialized
	}
	return client.Expire(ctx, key, expiration).Err()
}
