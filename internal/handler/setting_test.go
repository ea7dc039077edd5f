package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
)

// mockSettingService 模拟系统设置服务
type mockSettingService struct {
	values map[string]string
}

var _ service.SettingService = (*mockSettingService)(nil)

func newMockSettingService() *mockSettingService {
	values := make(map[string]string)
	for _, row := range model.DefaultSettings() {
		values[row.Key] = row.Value
	}
	return &mockSettingService{values: values}
}

func (m *mockSettingService) ListGrouped(ctx context.Context) ([]service.SettingGroup, error) {
	return nil, nil
}

func (m *mockSettingService) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", service.ErrSettingKeyUnknown
	}
	return value, nil
}

func (m *mockSettingService) UpdateBatch(ctx context.Context, entries []repository.SettingEntry) error {
	if len(entries) == 0 {
		return service.ErrSettingBatchEmpty
	}
	for _, entry := range entries {
		if _, ok := m.values[entry.Key]; !ok {
			return service.ErrSettingKeyUnknown
		}
	}
	for _, entry := range entries {
		m.values[entry.Key] = entry.Value
	}
	return nil
}

func (m *mockSettingService) Reset(ctx context.Context) error {
	values := make(map[string]string)
	for _, row := range model.DefaultSettings() {
		values[row.Key] = row.Value
	}
	m.values = values
	return nil
}

func (m *mockSettingService) Snapshot(ctx context.Context) (map[string]string, error) {
	return m.values, nil
}

func setupSettingRouter() (*gin.Engine, *mockSettingService) {
	svc := newMockSettingService()
	h := NewSettingHandler(svc)

	router := gin.New()
	router.PUT("/api/v1/settings", h.UpdateBatch)
	router.POST("/api/v1/settings/reset", h.Reset)
	router.GET("/api/v1/public/config", h.PublicConfig)
	return router, svc
}

func TestSettingHandler_UpdateBatch(t *testing.T) {
	router, svc := setupSettingRouter()

	w, resp := doJSON(t, router, http.MethodPut, "/api/v1/settings", gin.H{
		"entries": []gin.H{
			{"key": "SITE_NAME", "value": "新平台名称"},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, "新平台名称", svc.values["SITE_NAME"])
}

func TestSettingHandler_UpdateBatch_UnknownKey(t *testing.T) {
	router, svc := setupSettingRouter()
	original := svc.values["SITE_NAME"]

	// 一批中含未知键，整体不生效
	w, resp := doJSON(t, router, http.MethodPut, "/api/v1/settings", gin.H{
		"entries": []gin.H{
			{"key": "SITE_NAME", "value": "不应写入"},
			{"key": "NO_SUCH_KEY", "value": "1"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeInvalidRequest, resp.Code)
	assert.Equal(t, original, svc.values["SITE_NAME"])
}

func TestSettingHandler_PublicConfig(t *testing.T) {
	router, _ := setupSettingRouter()

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/public/config", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "设备资产管理平台", data["SITE_NAME"])
}

func TestSettingHandler_Reset(t *testing.T) {
	router, svc := setupSettingRouter()
	svc.values["SITE_NAME"] = "改过的名字"

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/settings/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, "设备资产管理平台", svc.values["SITE_NAME"])
}
