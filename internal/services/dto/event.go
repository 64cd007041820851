package dto

import (
	"time"

	"sabytin_backend/internal/models"
)

// CreateEventRequest - создание события
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Place       string    `json:"place"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	UsersLimit  *int      `json:"users_limit" validate:"omitempty,min=2"`
	Online      bool      `json:"online"`
	Images      []string  `json:"images"`
	Tags        []string  `json:"tags"`
}

// UpdateEventRequest - частичное обновление события
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Place       *string    `json:"place"`
	StartsAt    *time.Time `json:"starts_at"`
	UsersLimit  *int       `json:"users_limit" validate:"omitempty,min=2"`
	Online      *bool      `json:"online"`
	Images      []string   `json:"images"`
	Tags        []string   `json:"tags"`
}

// EventResponse - событие в выдаче
type EventResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Place        string    `json:"place"`
	StartsAt     time.Time `json:"starts_at"`
	CreatorID    string    `json:"creator_id"`
	UsersLimit   *int      `json:"users_limit"`
	Online       bool      `json:"online"`
	Images       []string  `json:"images"`
	Tags         []string  `json:"tags"`
	Participants int64     `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

// EventResponseFromModel собирает ответ из модели события
func EventResponseFromModel(event *models.Event, participants int64) *EventResponse {
	tags := make([]string, 0, len(event.Tags))
	for _, tag := range event.Tags {
		tags = append(tags, tag.Title)
	}
	return &EventResponse{
		ID:           event.ID,
		Title:        event.Title,
		Description:  event.Description,
		Place:        event.Place,
		StartsAt:     event.StartsAt,
		CreatorID:    event.CreatorID,
		UsersLimit:   event.UsersLimit,
		Online:       event.Online,
		Images:       event.GetImages(),
		Tags:         tags,
		Participants: participants,
		CreatedAt:    event.CreatedAt,
	}
}
