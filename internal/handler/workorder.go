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

// WorkOrderHandler 工单管理处理器
type WorkOrderHandler struct {
	orderService service.WorkOrderService
}

// NewWorkOrderHandler 创建工单管理处理器
func NewWorkOrderHandler(orderSvc service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{orderService: orderSvc}
}

// List 工单列表
// GET /api/v1/workorders
func (h *WorkOrderHandler) List(c *gin.Context) {
	filter := &repository.WorkOrderFilter{
		Title:  c.Query("title"),
		Status: c.Query("status"),
	}
	if raw := c.Query("assignee_id"); raw != "" {
		assigneeID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, response.CodeInvalidValue)
			return
		}
		filter.AssigneeID = uint(assigneeID)
	}
	page := parsePagination(c)

	orders, total, err := h.orderService.List(c.Request.Context(), filter, page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Page(c, orders, total, page.Page, page.PageSize)
}

// Get 工单详情
// GET /api/v1/workorders/:id
func (h *WorkOrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, order)
}

// CreateOrderRequest 创建工单请求
type CreateOrderRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	DeviceID uint   `json:"device_id"`
}

// Create 创建工单
// POST /api/v1/workorders
func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}

	order := &model.WorkOrder{
		Title:     req.Title,
		Content:   req.Content,
		DeviceID:  req.DeviceID,
		CreatorID: middleware.CurrentUserID(c),
	}
	if err := h.orderService.Create(c.Request.Context(), order); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, order)
}

// AssignRequest 指派工单请求
type AssignRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

// Assign 指派工单
// PUT /api/v1/workorders/:id/assign
func (h *WorkOrderHandler) Assign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	if err := h.orderService.Assign(c.Request.Context(), id, req.AssigneeID); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "工单已指派", nil)
}

// Finish 完结工单
// PUT /api/v1/workorders/:id/finish
func (h *WorkOrderHandler) Finish(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.orderService.Finish(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "工单已完结", nil)
}

// Close 关闭工单
// PUT /api/v1/workorders/:id/close
func (h *WorkOrderHandler) Close(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.orderService.Close(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "工单已关闭", nil)
}

// Delete 删除工单
// DELETE /api/v1/workorders/:id
func (h *WorkOrderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
