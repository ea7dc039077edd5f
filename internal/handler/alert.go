package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yunwei-iot/ams-backend/internal/middleware"
	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
)

// AlertHandler 告警管理处理器
type AlertHandler struct {
	alertService service.AlertService
}

// NewAlertHandler 创建告警管理处理器
func NewAlertHandler(alertSvc service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertSvc}
}

// List 告警列表
// GET /api/v1/alerts
func (h *AlertHandler) List(c *gin.Context) {
	filter := &repository.AlertFilter{
		Level:  c.Query("level"),
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}
	if raw := c.Query("device_id"); raw != "" {
		deviceID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, response.CodeInvalidValue)
			return
		}
		filter.DeviceID = uint(deviceID)
	}
	page := parsePagination(c)

	alerts, total, err := h.alertService.List(c.Request.Context(), filter, page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Page(c, alerts, total, page.Page, page.PageSize)
}

// Get 告警详情
// GET /api/v1/alerts/:id
func (h *AlertHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	alert, err := h.alertService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, alert)
}

// ReportRequest 上报告警请求
type ReportRequest struct {
	DeviceID uint   `json:"device_id"`
	Level    string `json:"level" binding:"required"`
	Type     string `json:"type"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
}

// Report 上报告警
// POST /api/v1/alerts
func (h *AlertHandler) Report(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}

	alert := &model.Alert{
		DeviceID: req.DeviceID,
		Level:    req.Level,
		Type:     req.Type,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := h.alertService.Report(c.Request.Context(), alert); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, alert)
}

// Handle 处理告警
// PUT /api/v1/alerts/:id/handle
func (h *AlertHandler) Handle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.alertService.Handle(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "告警已处理", nil)
}

// Delete 删除告警
// DELETE /api/v1/alerts/:id
func (h *AlertHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.alertService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
