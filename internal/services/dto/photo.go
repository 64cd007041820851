package dto

import (
	"time"

	"sabytin_backend/internal/models"
)

// PhotoResponse - фото пользователя в выдаче
type PhotoResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	IsProfile   bool      `json:"is_profile"`
	CreatedAt   time.Time `json:"created_at"`
}

// PhotoResponseFromModel собирает ответ из модели фото
func PhotoResponseFromModel(photo *models.Photo, url string) *PhotoResponse {
	return &PhotoResponse{
		ID:          photo.ID,
		URL:         url,
		ContentType: photo.ContentType,
		Size:        photo.Size,
		IsProfile:   photo.IsProfile,
		CreatedAt:   photo.CreatedAt,
	}
}
