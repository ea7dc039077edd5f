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

// MessageHandler 站内消息处理器
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler 创建站内消息处理器
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageSvc}
}

// SendMessageRequest 定向发送请求
type SendMessageRequest struct {
	Title        string `json:"title" binding:"required"`
	Content      string `json:"content"`
	Type         string `json:"type"`
	RecipientIDs []uint `json:"recipient_ids" binding:"required"`
}

// Send 向指定用户发送消息
// POST /api/v1/messages/send
func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	message := &model.Message{
		Title:    req.Title,
		Content:  req.Content,
		Type:     req.Type,
		SenderID: middleware.CurrentUserID(c),
	}
	if message.Type == "" {
		message.Type = model.MessageSystem
	}
	if err := h.messageService.Send(c.Request.Context(), message, req.RecipientIDs); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "发送成功", nil)
}

// BroadcastRequest 全员广播请求
type BroadcastRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// Broadcast 向全部启用用户广播消息
// POST /api/v1/messages/broadcast
func (h *MessageHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return
	}
	message := &model.Message{
		Title:    req.Title,
		Content:  req.Content,
		Type:     req.Type,
		SenderID: middleware.CurrentUserID(c),
	}
	if message.Type == "" {
		message.Type = model.MessageSystem
	}
	if err := h.messageService.Broadcast(c.Request.Context(), message); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "发送成功", nil)
}

// ListMine 当前用户的消息列表
// GET /api/v1/messages
func (h *MessageHandler) ListMine(c *gin.Context) {
	filter := &repository.MessageFilter{
		Type: c.Query("type"),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, response.CodeInvalidValue)
			return
		}
		filter.Status = &status
	}
	page := parsePagination(c)

	messages, total, err := h.messageService.ListForUser(c.Request.Context(), middleware.CurrentUserID(c), filter, page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Page(c, messages, total, page.Page, page.PageSize)
}

// MarkRead 标记已读
// PUT /api/v1/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.messageService.MarkRead(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete 删除自己的消息副本
// DELETE /api/v1/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.messageService.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// UnreadCount 未读消息数
// GET /api/v1/messages/unread-count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.messageService.UnreadCount(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}
