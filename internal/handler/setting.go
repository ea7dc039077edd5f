package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
)

// SettingHandler 系统设置处理器
type SettingHandler struct {
	settingService service.SettingService
}

// NewSettingHandler 创建系统设置处理器
func NewSettingHandler(settingSvc service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingSvc}
}

// List 按分组返回全部配置项
// GET /api/v1/settings
func (h *SettingHandler) List(c *gin.Context) {
	groups, err := h.settingService.ListGrouped(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, groups)
}

// UpdateBatchRequest 批量更新请求
type UpdateBatchRequest struct {
	Entries []repository.SettingEntry `json:"entries" binding:"required"`
}

// UpdateBatch 批量更新配置，任一项非法则整体不生效
// PUT /api/v1/settings
func (h *SettingHandler) UpdateBatch(c *gin.Context) {
	var req UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	if err := h.settingService.UpdateBatch(c.Request.Context(), req.Entries); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "保存成功", nil)
}

// Reset 恢复全部配置为默认值
// POST /api/v1/settings/reset
func (h *SettingHandler) Reset(c *gin.Context) {
	if err := h.settingService.Reset(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "已恢复默认配置", nil)
}

// PublicConfig 公开配置快照，供前端初始化使用
// GET /api/v1/public/config
func (h *SettingHandler) PublicConfig(c *gin.Context) {
	snapshot, err := h.settingService.Snapshot(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, snapshot)
}
