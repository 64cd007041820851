package services

import (
	"sabytin_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
	UserService          UserService
	ReactionService      ReactionService
	CandidateService     CandidateService
	FilterService        FilterService
	EventService         EventService
	ChannelService       ChannelService
	ChatService          ChatService
	PhotoService         PhotoService
	EmailService         email.Provider
}
