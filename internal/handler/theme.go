package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yunwei-iot/ams-backend/internal/middleware"
	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
)

// ThemeHandler 个人主题处理器
type ThemeHandler struct {
	themeService service.ThemeService
}

// NewThemeHandler 创建个人主题处理器
func NewThemeHandler(themeSvc service.ThemeService) *ThemeHandler {
	return &ThemeHandler{themeService: themeSvc}
}

// Get 读取当前用户主题，不存在时返回默认主题
// GET /api/v1/theme
func (h *ThemeHandler) Get(c *gin.Context) {
	theme, err := h.themeService.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, theme)
}

// Save 保存当前用户主题
// PUT /api/v1/theme
func (h *ThemeHandler) Save(c *gin.Context) {
	var theme model.Theme
	if err := c.ShouldBindJSON(&theme); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	if err := h.themeService.Save(c.Request.Context(), middleware.CurrentUserID(c), &theme); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, theme)
}

// Reset 恢复当前用户主题为默认值
// POST /api/v1/theme/reset
func (h *ThemeHandler) Reset(c *gin.Context) {
	theme, err := h.themeService.Reset(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, theme)
}
