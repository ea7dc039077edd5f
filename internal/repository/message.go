package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("消息不存在")
	ErrNoRecipients    = errors.New("接收人列表不能为空")
)

// MessageRepository 消息数据访问接口
// 消息内容行只创建不修改；每个接收者的已读/删除状态只落在
// 自己的 user_messages 投影行上。
type MessageRepository interface {
	Send(ctx context.Context, message *model.Message, recipientIDs []uint) error
	GetContent(ctx context.Context, messageID uint) (*model.Message, error)
	ListForUser(ctx context.Context, userID uint, filter *MessageFilter, page *Pagination) ([]*model.UserMessage, int64, error)
	MarkRead(ctx context.Context, userID, messageID uint) error
	DeleteForUser(ctx context.Context, userID, messageID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

// MessageFilter 消息查询过滤器
// Status 为 nil 时不过滤阅读状态。
type MessageFilter struct {
	Type   string // 消息类型
	Status *int   // 阅读状态
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息数据访问实例
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Send 创建消息内容并为每个接收者写入投影行，整体在一个事务中
func (r *messageRepository) Send(ctx context.Context, message *model.Message, recipientIDs []uint) error {
	if len(recipientIDs) == 0 {
		return ErrNoRecipients
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		projections := make([]model.UserMessage, 0, len(recipientIDs))
		for _, uid := range recipientIDs {
			projections = append(projections, model.UserMessage{
				MessageID: message.ID,
				UserID:    uid,
				Status:    model.MessageUnread,
			})
		}
		return tx.Create(&projections).Error
	})
}

func (r *messageRepository) GetContent(ctx context.Context, messageID uint) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).Scopes(NotDeleted()).Where("id = ?", messageID).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// ListForUser 只返回调用者自己的投影行，携带消息内容
func (r *messageRepository) ListForUser(ctx context.Context, userID uint, filter *MessageFilter, page *Pagination) ([]*model.UserMessage, int64, error) {
	var items []*model.UserMessage
	var total int64
	query := r.db.WithContext(ctx).Model(&model.UserMessage{}).
		Scopes(NotDeleted()).
		Where("user_id = ?", userID)
	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.Type != "" {
			query = query.Where(
				"message_id IN (?)",
				r.db.Model(&model.Message{}).Select("id").Where("type = ?", filter.Type),
			)
		}
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = paginate(query, page)
	if err := query.Preload("Message").Order("id DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// MarkRead 只更新调用者自己的投影行
func (r *messageRepository) MarkRead(ctx context.Context, userID, messageID uint) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&model.UserMessage{}).
		Scopes(NotDeleted()).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Updates(map[string]interface{}{
			"status":     model.MessageRead,
			"read_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// DeleteForUser 软删除调用者自己的投影行，不影响消息内容和其他接收者
func (r *messageRepository) DeleteForUser(ctx context.Context, userID, messageID uint) error {
	result := r.db.WithContext(ctx).Model(&model.UserMessage{}).
		Scopes(NotDeleted()).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Updates(map[string]interface{}{
			"is_deleted": model.Deleted,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *messageRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserMessage{}).
		Scopes(NotDeleted()).
		Where("user_id = ? AND status = ?", userID, model.MessageUnread).
		Count(&count).Error
	return count, err
}
