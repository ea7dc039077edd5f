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

// FileHandler 文件管理处理器
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler 创建文件管理处理器
func NewFileHandler(fileSvc service.FileService) *FileHandler {
	return &FileHandler{fileService: fileSvc}
}

// UploadPolicy 获取直传凭据
// GET /api/v1/files/upload-policy?filename=xxx
func (h *FileHandler) UploadPolicy(c *gin.Context) {
	filename := c.Query("filename")
	policy, err := h.fileService.BuildUploadPolicy(c.Request.Context(), filename)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, policy)
}

// SaveFileRequest 登记文件请求
type SaveFileRequest struct {
	Name        string `json:"name" binding:"required"`
	ObjectKey   string `json:"object_key" binding:"required"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	CategoryID  uint   `json:"category_id"`
}

// Save 上传完成后登记文件
// POST /api/v1/files
func (h *FileHandler) Save(c *gin.Context) {
	var req SaveFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}

	file := &model.FileInfo{
		Name:        req.Name,
		ObjectKey:   req.ObjectKey,
		Size:        req.Size,
		ContentType: req.ContentType,
		CategoryID:  req.CategoryID,
		UploaderID:  middleware.CurrentUserID(c),
	}
	if err := h.fileService.SaveFileInfo(c.Request.Context(), file); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, file)
}

// List 文件列表
// GET /api/v1/files
func (h *FileHandler) List(c *gin.Context) {
	filter := &repository.FileFilter{
		Name: c.Query("name"),
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, response.CodeInvalidValue)
			return
		}
		filter.CategoryID = uint(categoryID)
	}
	page := parsePagination(c)

	files, total, err := h.fileService.List(c.Request.Context(), filter, page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Page(c, files, total, page.Page, page.PageSize)
}

// Delete 删除文件
// DELETE /api/v1/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.fileService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Sort int    `json:"sort"`
}

// ListCategories 分类列表
// GET /api/v1/file-categories
func (h *FileHandler) ListCategories(c *gin.Context) {
	categories, err := h.fileService.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
// POST /api/v1/file-categories
func (h *FileHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	category := &model.FileCategory{Name: req.Name, Sort: req.Sort}
	if err := h.fileService.CreateCategory(c.Request.Context(), category); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
// PUT /api/v1/file-categories/:id
func (h *FileHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	category := &model.FileCategory{Name: req.Name, Sort: req.Sort}
	category.ID = id
	if err := h.fileService.UpdateCategory(c.Request.Context(), category); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
// DELETE /api/v1/file-categories/:id
func (h *FileHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.fileService.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
