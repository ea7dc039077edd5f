package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yunwei-iot/ams-backend/internal/middleware"
	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userService: userSvc}
}

// List 用户列表
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	filter := &repository.UserFilter{
		Username: c.Query("username"),
		Nickname: c.Query("nickname"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
	}
	page := parsePagination(c)

	users, total, err := h.userService.List(c.Request.Context(), filter, page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Page(c, users, total, page.Page, page.PageSize)
}

// Get 用户详情
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, user)
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3"`
	Password  string `json:"password" binding:"required,min=8"`
	Nickname  string `json:"nickname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

// Create 创建用户
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}

	user := &model.User{
		Username:  req.Username,
		Nickname:  req.Nickname,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
	}
	if err := h.userService.Create(c.Request.Context(), user, req.Password); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
	Status    string `json:"status"`
}

// Update 更新用户
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.Status != "" {
		user.Status = req.Status
	}

	if err := h.userService.Update(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, user)
}

// UserStatusRequest 启用/禁用请求
type UserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus 启用或禁用用户
// PUT /api/v1/users/:id/status
func (h *UserHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	if err := h.userService.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete 删除用户
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
