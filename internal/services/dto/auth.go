package dto

import (
	"time"

	"sabytin_backend/internal/models"
)

// RegisterRequest - запрос регистрации. Анкета заполняется сразу,
// отдельного шага "создать профиль" нет.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	City     string `json:"city"`
	// Birthday в формате "2006-01-02"
	Birthday        string   `json:"birthday" validate:"omitempty,is-birthday"`
	Position        string   `json:"position"`
	Height          int      `json:"height"`
	GenderID        int      `json:"gender_id"`
	TargetID        int      `json:"target_id"`
	CommunicationID int      `json:"communication_id"`
	Bio             string   `json:"bio"`
	Interests       []string `json:"interests"`
}

// LoginRequest - запрос входа. Принимается как форма в стиле
// OAuth2 password flow, поэтому поле называется username.
type LoginRequest struct {
	Email    string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// TokenResponse - ответ с access токеном
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ForgotPasswordRequest - запрос письма для сброса пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest - установка нового пароля по токену из письма
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserResponse - полные данные пользователя для /authorization/user/me
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	City            string    `json:"city"`
	Birthday        time.Time `json:"birthday"`
	Age             int       `json:"age"`
	Position        string    `json:"position"`
	Height          int       `json:"height"`
	GenderID        int       `json:"gender_id"`
	TargetID        int       `json:"target_id"`
	CommunicationID int       `json:"communication_id"`
	Bio             string    `json:"bio"`
	IsVerified      bool      `json:"is_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserResponseFromModel собирает UserResponse из модели
func UserResponseFromModel(user *models.User, now time.Time) *UserResponse {
	return &UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		City:            user.City,
		Birthday:        user.Birthday,
		Age:             user.Age(now),
		Position:        user.Position,
		Height:          user.Height,
		GenderID:        user.GenderID,
		TargetID:        user.TargetID,
		CommunicationID: user.CommunicationID,
		Bio:             user.Bio,
		IsVerified:      user.IsVerified,
		CreatedAt:       user.CreatedAt,
	}
}
