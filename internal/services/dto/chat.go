package dto

import (
	"time"

	chatmodels "sabytin_backend/internal/models/chat"
)

// SendMessageRequest - отправка сообщения в диалог
type SendMessageRequest struct {
	DialogueID string `json:"dialogue_id" binding:"required"`
	Text       string `json:"message" binding:"required"`
}

// EditMessageRequest - правка текста сообщения
type EditMessageRequest struct {
	Text string `json:"message" binding:"required"`
}

// LoadMessagesRequest - параметры выборки истории диалога
type LoadMessagesRequest struct {
	DialogueID string `form:"dialogue_id" binding:"required"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset     int    `form:"offset" validate:"omitempty,min=0"`
}

// MessageResponse - сообщение в выдаче и в ws-доставке
type MessageResponse struct {
	ID         string    `json:"id"`
	DialogueID string    `json:"dialogue_id"`
	UserID     string    `json:"user_id"`
	Text       string    `json:"message"`
	Edited     bool      `json:"edited"`
	CreatedAt  time.Time `json:"created_at"`
}

// MessageResponseFromModel собирает ответ из модели сообщения
func MessageResponseFromModel(message *chatmodels.Message) *MessageResponse {
	return &MessageResponse{
		ID:         message.ID,
		DialogueID: message.DialogueID,
		UserID:     message.UserID,
		Text:       message.Text,
		Edited:     message.Edited,
		CreatedAt:  message.CreatedAt,
	}
}

// DialogueResponse - диалог в списке диалогов пользователя
type DialogueResponse struct {
	ID            string    `json:"id"`
	CompanionID   string    `json:"companion_id"`
	LastMessageID *string   `json:"last_message_id"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DialogueResponseFromModel собирает ответ глазами пользователя viewerID
func DialogueResponseFromModel(dialogue *chatmodels.Dialogue, viewerID string) *DialogueResponse {
	companionID := dialogue.UserAID
	if companionID == viewerID {
		companionID = dialogue.UserBID
	}
	return &DialogueResponse{
		ID:            dialogue.ID,
		CompanionID:   companionID,
		LastMessageID: dialogue.LastMessageID,
		UpdatedAt:     dialogue.UpdatedAt,
	}
}
