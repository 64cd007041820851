package dto

// UpdateUserRequest - частичное обновление анкеты пользователя
type UpdateUserRequest struct {
	Name            *string `json:"name"`
	City            *string `json:"city"`
	Position        *string `json:"position"`
	Height          *int    `json:"height"`
	GenderID        *int    `json:"gender_id"`
	TargetID        *int    `json:"target_id"`
	CommunicationID *int    `json:"communication_id"`
	Bio             *string `json:"bio"`
}
