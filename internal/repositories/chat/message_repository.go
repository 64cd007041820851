package chat

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"sabytin_backend/internal/models/chat"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

// Create сохраняет сообщение
func (r *MessageRepository) Create(ctx context.Context, message *chat.Message) error {
	return r.DB.WithContext(ctx).Create(message).Error
}

// FindByID возвращает сообщение по ID, удаленные не отдаются
func (r *MessageRepository) FindByID(ctx context.Context, id string) (*chat.Message, error) {
	var message chat.Message
	err := r.DB.WithContext(ctx).First(&message, "id = ? AND deleted_at IS NULL", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// ListByDialogue возвращает страницу сообщений диалога, новые сверху
func (r *MessageRepository) ListByDialogue(ctx context.Context, dialogueID string, limit, offset int) ([]chat.Message, error) {
	var messages []chat.Message
	query := r.DB.WithContext(ctx).
		Where("dialogue_id = ? AND deleted_at IS NULL", dialogueID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&messages).Error
	return messages, err
}

// UpdateText изменяет текст сообщения и помечает его отредактированным
func (r *MessageRepository) UpdateText(ctx context.Context, id string, text string) error {
	result := r.DB.WithContext(ctx).Model(&chat.Message{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"text":   text,
			"edited": true,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// SoftDelete прячет сообщение, не удаляя строку
func (r *MessageRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	result := r.DB.WithContext(ctx).Model(&chat.Message{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
