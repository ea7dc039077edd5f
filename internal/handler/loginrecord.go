package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
)

// LoginRecordHandler 登录记录处理器
type LoginRecordHandler struct {
	recordService service.LoginRecordService
}

// NewLoginRecordHandler 创建登录记录处理器
func NewLoginRecordHandler(recordSvc service.LoginRecordService) *LoginRecordHandler {
	return &LoginRecordHandler{recordService: recordSvc}
}

// List 登录记录列表
// GET /api/v1/login-records
func (h *LoginRecordHandler) List(c *gin.Context) {
	filter := &repository.LoginRecordFilter{
		Username: c.Query("username"),
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, response.CodeInvalidValue)
			return
		}
		filter.UserID = uint(userID)
	}
	if raw := c.Query("success"); raw != "" {
		success, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, response.CodeInvalidValue)
			return
		}
		filter.Success = &success
	}
	page := parsePagination(c)

	records, total, err := h.recordService.List(c.Request.Context(), filter, page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Page(c, records, total, page.Page, page.PageSize)
}

// Markers 最近成功登录的地图点位
// GET /api/v1/login-records/markers
func (h *LoginRecordHandler) Markers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Error(c, response.CodeInvalidValue)
			return
		}
		limit = n
	}
	markers, err := h.recordService.ListMarkers(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, markers)
}
