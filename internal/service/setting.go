package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/redis"
	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/pkg/logger"
)

// 设置相关错误
var (
	ErrSettingKeyUnknown  = errors.New("未知的配置项")
	ErrSettingValueBool   = errors.New("配置值必须是 true 或 false")
	ErrSettingValueInt    = errors.New("配置值必须是整数")
	ErrSettingBatchEmpty  = errors.New("更新批次不能为空")
	ErrSettingDuplicateIn = errors.New("批次中存在重复的配置项")
)

const snapshotCacheKey = "ams:settings:snapshot"

// SettingGroup 按分组聚合的配置项
type SettingGroup struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Items       []SettingItem `json:"items"`
}

// SettingItem 单个配置项及其元信息
type SettingItem struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Type        string `json:"type"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

// SettingService 系统设置服务接口
type SettingService interface {
	// ListGrouped 按分组顺序返回全部配置
	ListGrouped(ctx context.Context) ([]SettingGroup, error)
	// Get 读取单个配置项
	Get(ctx context.Context, key string) (string, error)
	// UpdateBatch 批量更新，任一项校验失败则整体不生效
	UpdateBatch(ctx context.Context, entries []repository.SettingEntry) error
	// Reset 恢复全部配置为默认值
	Reset(ctx context.Context) error
	// Snapshot 返回 key-value 快照，带短期缓存
	Snapshot(ctx context.Context) (map[string]string, error)
}

type settingService struct {
	settingRepo repository.SettingRepository
	snapshotTTL time.Duration
}

// NewSettingService 创建系统设置服务
func NewSettingService(settingRepo repository.SettingRepository, snapshotTTL time.Duration) SettingService {
	return &settingService{settingRepo: settingRepo, snapshotTTL: snapshotTTL}
}

func (s *settingService) ListGrouped(ctx context.Context) ([]SettingGroup, error) {
	settings, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, row := range settings {
		values[row.Key] = row.Value
	}

	groups := make([]SettingGroup, 0, len(model.SettingGroups))
	for _, g := range model.SettingGroups {
		group := SettingGroup{Name: g.Name, Description: g.Description}
		for _, def := range model.SettingDefinitions {
			if def.Group != g.Name {
				continue
			}
			value, ok := values[def.Key]
			if !ok {
				value = def.Default
			}
			group.Items = append(group.Items, SettingItem{
				Key:         def.Key,
				Value:       value,
				Type:        def.Type,
				Default:     def.Default,
				Description: def.Description,
			})
		}
		if len(group.Items) > 0 {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

func (s *settingService) Get(ctx context.Context, key string) (string, error) {
	if model.FindSettingDefinition(key) == nil {
		return "", ErrSettingKeyUnknown
	}
	setting, err := s.settingRepo.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *settingService) UpdateBatch(ctx context.Context, entries []repository.SettingEntry) error {
	if len(entries) == 0 {
		return ErrSettingBatchEmpty
	}
	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		entry := &entries[i]
		def := model.FindSettingDefinition(entry.Key)
		if def == nil {
			return fmt.Errorf("%w: %s", ErrSettingKeyUnknown, entry.Key)
		}
		if _, dup := seen[entry.Key]; dup {
			return fmt.Errorf("%w: %s", ErrSettingDuplicateIn, entry.Key)
		}
		seen[entry.Key] = struct{}{}
		normalized, err := normalizeSettingValue(def, entry.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Key, err)
		}
		entry.Value = normalized
	}
	if err := s.settingRepo.UpdateBatch(ctx, entries); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *settingService) Reset(ctx context.Context) error {
	if err := s.settingRepo.Reset(ctx, model.DefaultSettings()); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	return nil
}

// Snapshot 前端启动时拉取的全量配置
// 先查缓存，未命中时回源数据库并写回。缓存不可用时直接回源。
func (s *settingService) Snapshot(ctx context.Context) (map[string]string, error) {
	if cached, err := redis.Get(ctx, snapshotCacheKey); err == nil && cached != "" {
		var snapshot map[string]string
		if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
			return snapshot, nil
		}
	}

	settings, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string]string, len(model.SettingDefinitions))
	for _, def := range model.SettingDefinitions {
		snapshot[def.Key] = def.Default
	}
	for _, row := range settings {
		snapshot[row.Key] = row.Value
	}

	if raw, err := json.Marshal(snapshot); err == nil {
		if err := redis.Set(ctx, snapshotCacheKey, string(raw), s.snapshotTTL); err != nil {
			logger.Warn("写入配置快照缓存失败", zap.Error(err))
		}
	}
	return snapshot, nil
}

func (s *settingService) invalidateSnapshot(ctx context.Context) {
	if err := redis.Del(ctx, snapshotCacheKey); err != nil {
		logger.Warn("清除配置快照缓存失败", zap.Error(err))
	}
}

// normalizeSettingValue 按设置项类型校验并归一化取值
func normalizeSettingValue(def *model.SettingDefinition, value string) (string, error) {
	switch def.Type {
	case model.SettingBool:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true":
			return "true", nil
		case "false":
			return "false", nil
		}
		return "", ErrSettingValueBool
	case model.SettingInt:
		trimmed := strings.TrimSpace(value)
		if _, err := strconv.Atoi(trimmed); err != nil {
			return "", ErrSettingValueInt
		}
		return trimmed, nil
	case model.SettingList:
		parts := strings.Split(value, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return strings.Join(parts, ","), nil
	default:
		return value, nil
	}
}
