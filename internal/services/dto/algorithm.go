package dto

import (
	"time"

	"sabytin_backend/internal/models"
)

// QuestionnaireResponse - анкета кандидата в выдаче подбора
type QuestionnaireResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	City            string `json:"city"`
	Age             int    `json:"age"`
	Position        string `json:"position"`
	Height          int    `json:"height"`
	GenderID        int    `json:"gender_id"`
	TargetID        int    `json:"target_id"`
	CommunicationID int    `json:"communication_id"`
	Bio             string `json:"bio"`
	PhotoURL        string `json:"photo_url,omitempty"`
}

// QuestionnaireFromModel собирает анкету из модели пользователя
func QuestionnaireFromModel(user *models.User, now time.Time) QuestionnaireResponse {
	return QuestionnaireResponse{
		ID:              user.ID,
		Name:            user.Name,
		City:            user.City,
		Age:             user.Age(now),
		Position:        user.Position,
		Height:          user.Height,
		GenderID:        user.GenderID,
		TargetID:        user.TargetID,
		CommunicationID: user.CommunicationID,
		Bio:             user.Bio,
	}
}

// ReactionResult - ответ на create_like/create_dislike. DialogueID
// заполняется только когда лайк оказался взаимным.
type ReactionResult struct {
	Matched    bool   `json:"matched"`
	DialogueID string `json:"dialogue_id,omitempty"`
}

// ClearedResponse - ответ на массовое удаление реакций
type ClearedResponse struct {
	Deleted int64 `json:"deleted"`
}

// CreateFilterRequest - создание фильтров подбора
type CreateFilterRequest struct {
	AgeMin          *int     `json:"age_min" validate:"omitempty,min=18"`
	AgeMax          *int     `json:"age_max" validate:"omitempty,min=18"`
	HeightMin       *int     `json:"height_min"`
	HeightMax       *int     `json:"height_max"`
	CommunicationID *int     `json:"communication_id"`
	TargetID        *int     `json:"target_id"`
	GenderID        *int     `json:"gender_id"`
	City            *string  `json:"city"`
	Interests       []string `json:"interests"`
}

// PatchFilterRequest - частичное обновление фильтров. nil-поля
// не трогаются, присланный Interests заменяет набор целиком,
// пустой список очищает его.
type PatchFilterRequest struct {
	AgeMin          *int     `json:"age_min" validate:"omitempty,min=18"`
	AgeMax          *int     `json:"age_max" validate:"omitempty,min=18"`
	HeightMin       *int     `json:"height_min"`
	HeightMax       *int     `json:"height_max"`
	CommunicationID *int     `json:"communication_id"`
	TargetID        *int     `json:"target_id"`
	GenderID        *int     `json:"gender_id"`
	City            *string  `json:"city"`
	Interests       []string `json:"interests"`
}

// FilterResponse - сохраненные фильтры пользователя
type FilterResponse struct {
	UserID          string   `json:"user_id"`
	AgeMin          *int     `json:"age_min"`
	AgeMax          *int     `json:"age_max"`
	HeightMin       *int     `json:"height_min"`
	HeightMax       *int     `json:"height_max"`
	CommunicationID *int     `json:"communication_id"`
	TargetID        *int     `json:"target_id"`
	GenderID        *int     `json:"gender_id"`
	City            *string  `json:"city"`
	Interests       []string `json:"interests"`
}

// FilterResponseFromModel собирает ответ из модели фильтра
func FilterResponseFromModel(filter *models.Filter, interests []string) *FilterResponse {
	return &FilterResponse{
		UserID:          filter.UserID,
		AgeMin:          filter.AgeMin,
		AgeMax:          filter.AgeMax,
		HeightMin:       filter.HeightMin,
		HeightMax:       filter.HeightMax,
		CommunicationID: filter.CommunicationID,
		TargetID:        filter.TargetID,
		GenderID:        filter.GenderID,
		City:            filter.City,
		Interests:       interests,
	}
}
