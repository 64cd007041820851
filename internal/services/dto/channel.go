package dto

import (
	"time"

	"sabytin_backend/internal/models"
)

// CreateChannelRequest - создание канала
type CreateChannelRequest struct {
	Title string `json:"title" binding:"required"`
}

// ChannelResponse - канал в выдаче
type ChannelResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ChannelResponseFromModel собирает ответ из модели канала
func ChannelResponseFromModel(channel *models.Channel) *ChannelResponse {
	return &ChannelResponse{
		ID:        channel.ID,
		Title:     channel.Title,
		CreatedAt: channel.CreatedAt,
	}
}
