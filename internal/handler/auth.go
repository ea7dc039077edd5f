package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yunwei-iot/ams-backend/internal/middleware"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService) *AuthHandler {
	return &AuthHandler{authService: authSvc, userService: userSvc}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	Location  string  `json:"location"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Login 登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IP:        c.ClientIP(),
		Location:  req.Location,
		Longitude: req.Longitude,
		Latitude:  req.Latitude,
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh 刷新令牌
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, tokens)
}

// Profile 当前用户信息
// GET /api/v1/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, user)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword 修改当前用户密码
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	err := h.userService.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "密码修改成功", nil)
}
