package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
)

// DeviceHandler 设备管理处理器
type DeviceHandler struct {
	deviceService service.DeviceService
}

// NewDeviceHandler 创建设备管理处理器
func NewDeviceHandler(deviceSvc service.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceSvc}
}

// List 设备列表
// GET /api/v1/devices
func (h *DeviceHandler) List(c *gin.Context) {
	filter := &repository.DeviceFilter{
		Name:   c.Query("name"),
		SN:     c.Query("sn"),
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}
	if raw := c.Query("enabled"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, response.CodeInvalidValue)
			return
		}
		filter.Enabled = &enabled
	}
	page := parsePagination(c)

	devices, total, err := h.deviceService.List(c.Request.Context(), filter, page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Page(c, devices, total, page.Page, page.PageSize)
}

// Get 设备详情
// GET /api/v1/devices/:id
func (h *DeviceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	device, err := h.deviceService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, device)
}

// DeviceRequest 创建/更新设备请求
type DeviceRequest struct {
	Name        string  `json:"name" binding:"required"`
	SN          string  `json:"sn" binding:"required"`
	Type        string  `json:"type"`
	Model       string  `json:"model"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	Address     string  `json:"address"`
	IconURL     string  `json:"icon_url"`
	Description string  `json:"description"`
}

// Create 创建设备
// POST /api/v1/devices
func (h *DeviceHandler) Create(c *gin.Context) {
	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}

	device := &model.Device{
		Name:        req.Name,
		SN:          req.SN,
		Type:        req.Type,
		Model:       req.Model,
		Enabled:     true,
		Longitude:   req.Longitude,
		Latitude:    req.Latitude,
		Address:     req.Address,
		IconURL:     req.IconURL,
		Description: req.Description,
	}
	if err := h.deviceService.Create(c.Request.Context(), device); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, device)
}

// Update 更新设备
// PUT /api/v1/devices/:id
func (h *DeviceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}

	device, err := h.deviceService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	device.Name = req.Name
	device.SN = req.SN
	device.Type = req.Type
	device.Model = req.Model
	device.Longitude = req.Longitude
	device.Latitude = req.Latitude
	device.Address = req.Address
	device.IconURL = req.IconURL
	device.Description = req.Description

	if err := h.deviceService.Update(c.Request.Context(), device); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, device)
}

// UpdateStatusRequest 更新设备状态请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus 更新设备运行状态
// PUT /api/v1/devices/:id/status
func (h *DeviceHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	if err := h.deviceService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "状态已更新", nil)
}

// SetEnabledRequest 启停设备请求
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetEnabled 启用/停用设备
// PUT /api/v1/devices/:id/enabled
func (h *DeviceHandler) SetEnabled(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	if err := h.deviceService.SetEnabled(c.Request.Context(), id, *req.Enabled); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "设备状态已切换", nil)
}

// Delete 删除设备
// DELETE /api/v1/devices/:id
func (h *DeviceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.deviceService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// Markers 启用设备的地图点位
// GET /api/v1/devices/markers
func (h *DeviceHandler) Markers(c *gin.Context) {
	markers, err := h.deviceService.ListMarkers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, markers)
}

// Overview 设备状态概览
// GET /api/v1/devices/overview
func (h *DeviceHandler) Overview(c *gin.Context) {
	overview, err := h.deviceService.Overview(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, overview)
}
