package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sabytin_backend/internal/auth"
	"sabytin_backend/internal/cache"
	"sabytin_backend/internal/email"
	"sabytin_backend/internal/logger"
	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

// Срок жизни токена подтверждения email в Redis
const verificationTTL = 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	ConfirmEmail(ctx context.Context, token string) error
	Login(ctx context.Context, clientIP string, req *dto.LoginRequest) (*dto.TokenResponse, error)
	CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	filterRepo    repositories.FilterRepository
	tokens        *auth.TokenManager
	cache         *cache.RedisCache
	emailProvider email.Provider
	baseURL       string
	maxAttempts   int
	attemptWindow time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	filterRepo repositories.FilterRepository,
	tokens *auth.TokenManager,
	redisCache *cache.RedisCache,
	emailProvider email.Provider,
	baseURL string,
	maxAttempts int,
	attemptWindow time.Duration,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		filterRepo:    filterRepo,
		tokens:        tokens,
		cache:         redisCache,
		emailProvider: emailProvider,
		baseURL:       baseURL,
		maxAttempts:   maxAttempts,
		attemptWindow: attemptWindow,
	}
}

// Register - регистрация нового пользователя. Пользователь создается
// сразу с is_verified=false, токен подтверждения живет в Redis до TTL.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var birthday time.Time
	if req.Birthday != "" {
		birthday, err = time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"birthday": "must be in format YYYY-MM-DD"})
		}
	}

	user := &models.User{
		Email:           req.Email,
		PasswordHash:    hashed,
		Name:            req.Name,
		City:            req.City,
		Birthday:        birthday,
		Position:        req.Position,
		Height:          req.Height,
		GenderID:        req.GenderID,
		TargetID:        req.TargetID,
		CommunicationID: req.CommunicationID,
		Bio:             req.Bio,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repositories.ErrUserAlreadyExists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.saveInterests(ctx, user.ID, req.Interests); err != nil {
		return nil, apperrors.InternalError(err)
	}

	token := uuid.NewString()
	if err := s.cache.SetVerificationToken(ctx, token, user.ID, verificationTTL); err != nil {
		return nil, apperrors.InternalError(err)
	}

	confirmURL := fmt.Sprintf("%s/authorization/confirm/%s", s.baseURL, token)
	if err := s.emailProvider.SendVerification(user.Email, confirmURL); err != nil {
		// Регистрацию не откатываем: письмо можно запросить повторно
		logger.WithError(err).Warn("failed to send verification email", "user_id", user.ID)
	}

	return dto.UserResponseFromModel(user, time.Now()), nil
}

func (s *AuthServiceImpl) saveInterests(ctx context.Context, userID string, titles []string) error {
	for _, title := range titles {
		interest, err := s.filterRepo.FindOrCreateInterest(ctx, title)
		if err != nil {
			return err
		}
		if err := s.filterRepo.CreateUserInterest(ctx, userID, interest.ID); err != nil {
			return err
		}
	}
	return nil
}

// ConfirmEmail подтверждает адрес по токену из письма. Токен одноразовый.
func (s *AuthServiceImpl) ConfirmEmail(ctx context.Context, token string) error {
	userID, err := s.cache.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if err == cache.ErrNotFound {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.SetVerified(ctx, userID); err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Login проверяет учетные данные и выдает access токен.
// Попытки считаются в Redis в фиксированном окне по адресу клиента,
// после превышения лимита вход с этого адреса блокируется до конца окна.
func (s *AuthServiceImpl) Login(ctx context.Context, clientIP string, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	attempts, err := s.cache.CountLoginAttempt(ctx, clientIP, s.attemptWindow)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if attempts > int64(s.maxAttempts) {
		return nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.cache.ResetLoginAttempts(ctx, clientIP); err != nil {
		logger.WithError(err).Warn("failed to reset login attempts", "client_ip", clientIP)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// CurrentUser возвращает профиль по ID из токена
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.NewNotFoundError("auth", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.UserResponseFromModel(user, time.Now()), nil
}
