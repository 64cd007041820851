package services

import (
	"context"
	"fmt"
	"time"

	"sabytin_backend/internal/auth"
	"sabytin_backend/internal/cache"
	"sabytin_backend/internal/email"
	"sabytin_backend/internal/logger"
	"sabytin_backend/internal/repositories"
	"sabytin_backend/pkg/apperrors"
)

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type PasswordResetServiceImpl struct {
	userRepo      repositories.UserRepository
	tokens        *auth.TokenManager
	cache         *cache.RedisCache
	emailProvider email.Provider
	baseURL       string
	resetTTL      time.Duration
}

func NewPasswordResetService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	redisCache *cache.RedisCache,
	emailProvider email.Provider,
	baseURL string,
	resetTTL time.Duration,
) PasswordResetService {
	return &PasswordResetServiceImpl{
		userRepo:      userRepo,
		tokens:        tokens,
		cache:         redisCache,
		emailProvider: emailProvider,
		baseURL:       baseURL,
		resetTTL:      resetTTL,
	}
}

// RequestReset отправляет письмо со ссылкой сброса. Для неизвестного
// email отвечаем так же, как для известного, чтобы не раскрывать
// наличие аккаунта.
func (s *PasswordResetServiceImpl) RequestReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := s.tokens.GenerateResetToken(user.ID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("%s/authorization/reset_password?token=%s", s.baseURL, token)
	if err := s.emailProvider.SendPasswordReset(user.Email, resetURL); err != nil {
		logger.WithError(err).Error("failed to send password reset email", "user_id", user.ID)
		return apperrors.InternalError(err)
	}
	return nil
}

// ResetPassword устанавливает новый пароль по токену из письма.
// Токен одноразовый: после успешного сброса он помечается
// использованным в Redis до конца своего срока жизни.
func (s *PasswordResetServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.ParseResetToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	used, err := s.cache.IsResetTokenUsed(ctx, token)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if used {
		return apperrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(ctx, claims.UserID, hashed); err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if err := s.cache.MarkResetTokenUsed(ctx, token, s.resetTTL); err != nil {
		logger.WithError(err).Warn("failed to mark reset token as used")
	}
	return nil
}
