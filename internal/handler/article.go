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

// ArticleHandler 内容管理处理器
type ArticleHandler struct {
	articleService service.ArticleService
}

// NewArticleHandler 创建内容管理处理器
func NewArticleHandler(articleSvc service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleSvc}
}

// ArticleRequest 文章请求
type ArticleRequest struct {
	Title      string `json:"title" binding:"required"`
	Summary    string `json:"summary"`
	Content    string `json:"content"`
	CoverURL   string `json:"cover_url"`
	CategoryID uint   `json:"category_id"`
}

// List 后台文章列表（含未审核）
// GET /api/v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	filter := &repository.ArticleFilter{
		Title: c.Query("title"),
	}
	if raw := c.Query("audit_status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, response.CodeInvalidValue)
			return
		}
		filter.AuditStatus = &status
	}
	page := parsePagination(c)

	articles, total, err := h.articleService.List(c.Request.Context(), filter, page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Page(c, articles, total, page.Page, page.PageSize)
}

// Get 后台查看文章详情
// GET /api/v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	article, err := h.articleService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, article)
}

// Create 创建文章，初始为待审核
// POST /api/v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	article := &model.Article{
		Title:      req.Title,
		Summary:    req.Summary,
		Content:    req.Content,
		CoverURL:   req.CoverURL,
		CategoryID: req.CategoryID,
		AuthorID:   middleware.CurrentUserID(c),
	}
	if err := h.articleService.Create(c.Request.Context(), article); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, article)
}

// Update 更新文章，重置为待审核
// PUT /api/v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	article, err := h.articleService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	article.Title = req.Title
	article.Summary = req.Summary
	article.Content = req.Content
	article.CoverURL = req.CoverURL
	article.CategoryID = req.CategoryID
	if err := h.articleService.Update(c.Request.Context(), article); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, article)
}

// AuditRequest 审核请求
type AuditRequest struct {
	Status *int `json:"status" binding:"required"`
}

// Audit 审核文章
// PUT /api/v1/articles/:id/audit
func (h *ArticleHandler) Audit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	if err := h.articleService.Audit(c.Request.Context(), id, *req.Status); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "审核完成", nil)
}

// Delete 删除文章
// DELETE /api/v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// ListPublic 公开文章列表，仅审核通过
// GET /api/v1/public/articles
func (h *ArticleHandler) ListPublic(c *gin.Context) {
	page := parsePagination(c)
	articles, total, err := h.articleService.ListPublic(c.Request.Context(), page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Page(c, articles, total, page.Page, page.PageSize)
}

// GetPublic 公开文章详情，累加浏览量
// GET /api/v1/public/articles/:id
func (h *ArticleHandler) GetPublic(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	article, err := h.articleService.GetPublic(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, article)
}
