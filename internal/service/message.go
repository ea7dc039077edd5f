package service

import (
	"context"
	"errors"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
)

// 消息相关错误
var (
	ErrMessageIDEmpty    = errors.New("消息 ID 不能为空")
	ErrMessageTitleEmpty = errors.New("消息标题不能为空")
	ErrMessageTypeBad    = errors.New("消息类型无效")
)

// MessageService 消息服务接口
type MessageService interface {
	// Send 向指定接收人发送消息
	Send(ctx context.Context, message *model.Message, recipientIDs []uint) error
	// Broadcast 向全部启用用户发送消息
	Broadcast(ctx context.Context, message *model.Message) error
	ListForUser(ctx context.Context, userID uint, filter *repository.MessageFilter, page *repository.Pagination) ([]*model.UserMessage, int64, error)
	MarkRead(ctx context.Context, userID, messageID uint) error
	Delete(ctx context.Context, userID, messageID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService 创建消息服务
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{messageRepo: messageRepo, userRepo: userRepo}
}

func (s *messageService) Send(ctx context.Context, message *model.Message, recipientIDs []uint) error {
	if err := s.validate(message); err != nil {
		return err
	}
	return s.messageRepo.Send(ctx, message, recipientIDs)
}

func (s *messageService) Broadcast(ctx context.Context, message *model.Message) error {
	if err := s.validate(message); err != nil {
		return err
	}
	users, _, err := s.userRepo.List(ctx, &repository.UserFilter{Status: model.UserEnabled}, nil)
	if err != nil {
		return err
	}
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return s.messageRepo.Send(ctx, message, ids)
}

func (s *messageService) ListForUser(ctx context.Context, userID uint, filter *repository.MessageFilter, page *repository.Pagination) ([]*model.UserMessage, int64, error) {
	if userID == 0 {
		return nil, 0, ErrUserIDEmpty
	}
	return s.messageRepo.ListForUser(ctx, userID, filter, page)
}

func (s *messageService) MarkRead(ctx context.Context, userID, messageID uint) error {
	if messageID == 0 {
		return ErrMessageIDEmpty
	}
	return s.messageRepo.MarkRead(ctx, userID, messageID)
}

func (s *messageService) Delete(ctx context.Context, userID, messageID uint) error {
	if messageID == 0 {
		return ErrMessageIDEmpty
	}
	return s.messageRepo.DeleteForUser(ctx, userID, messageID)
}

func (s *messageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, ErrUserIDEmpty
	}
	return s.messageRepo.UnreadCount(ctx, userID)
}

func (s *messageService) validate(message *model.Message) error {
	if message.Title == "" {
		return ErrMessageTitleEmpty
	}
	switch message.Type {
	case model.MessageSystem, model.MessageAlert, model.MessageWorkOrder:
		return nil
	}
	return ErrMessageTypeBad
}
