package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sabytin_backend/internal/auth"
	"sabytin_backend/internal/cache"
	"sabytin_backend/internal/email"
	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
	"sabytin_backend/internal/services"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

// recordingEmailProvider запоминает отправленные письма вместо доставки
type recordingEmailProvider struct {
	verificationURLs []string
	resetURLs        []string
}

func (p *recordingEmailProvider) Send(msg *email.Email) error { return nil }

func (p *recordingEmailProvider) SendVerification(to, confirmURL string) error {
	p.verificationURLs = append(p.verificationURLs, confirmURL)
	return nil
}

func (p *recordingEmailProvider) SendPasswordReset(to, resetURL string) error {
	p.resetURLs = append(p.resetURLs, resetURL)
	return nil
}

func (p *recordingEmailProvider) Close() error { return nil }

var _ email.Provider = (*recordingEmailProvider)(nil)

type authFixture struct {
	service  services.AuthService
	reset    services.PasswordResetService
	db       *gorm.DB
	redis    *miniredis.Miniredis
	emails   *recordingEmailProvider
	tokens   *auth.TokenManager
	userRepo repositories.UserRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db := setupTestDB(t)
	mr := miniredis.RunT(t)
	redisCache := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	emails := &recordingEmailProvider{}
	tokens := auth.NewTokenManager("test-secret", time.Hour, 30*time.Minute)
	userRepo := repositories.NewUserRepository(db)
	filterRepo := repositories.NewFilterRepository(db)

	return &authFixture{
		service: services.NewAuthService(
			userRepo, filterRepo, tokens, redisCache, emails,
			"http://localhost:8080", 5, time.Minute,
		),
		reset: services.NewPasswordResetService(
			userRepo, tokens, redisCache, emails,
			"http://localhost:8080", 30*time.Minute,
		),
		db:       db,
		redis:    mr,
		emails:   emails,
		tokens:   tokens,
		userRepo: userRepo,
	}
}

func lastPathSegment(url string) string {
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}

func TestRegisterConfirmLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.service.Register(ctx, &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
		Name:     "Alice",
		Birthday: "1995-06-15",
		City:     "Almaty",
	})
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Equal(t, "Alice", user.Name)

	// письмо с токеном подтверждения ушло
	require.Len(t, f.emails.verificationURLs, 1)
	token := lastPathSegment(f.emails.verificationURLs[0])
	require.NotEmpty(t, token)

	require.NoError(t, f.service.ConfirmEmail(ctx, token))

	stored, err := f.userRepo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)

	// токен одноразовый
	err = f.service.ConfirmEmail(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	resp, err := f.service.Login(ctx, "203.0.113.7", &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := f.tokens.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	req := &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
		Name:     "Alice",
	}
	_, err := f.service.Register(ctx, req)
	require.NoError(t, err)

	_, err = f.service.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterWeakPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "short",
		Name:     "Alice",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestRegisterBadBirthday(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
		Name:     "Alice",
		Birthday: "15.06.1995",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestRegisterSavesInterests(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.service.Register(ctx, &dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "Passw0rd!",
		Name:      "Alice",
		Interests: []string{"hiking", "books"},
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&models.UserInterest{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
		Name:     "Alice",
	})
	require.NoError(t, err)

	_, err = f.service.Login(ctx, "203.0.113.7", &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// неизвестный email дает тот же ответ
	_, err = f.service.Login(ctx, "203.0.113.7", &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Passw0rd!",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRateLimited(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
		Name:     "Alice",
	})
	require.NoError(t, err)

	bad := &dto.LoginRequest{Email: "alice@example.com", Password: "wrong"}
	for i := 0; i < 5; i++ {
		_, err = f.service.Login(ctx, "203.0.113.7", bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// шестая попытка блокируется, даже с верным паролем
	_, err = f.service.Login(ctx, "203.0.113.7", &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
	})
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)

	// окно истекло, вход снова возможен
	f.redis.FastForward(2 * time.Minute)
	_, err = f.service.Login(ctx, "203.0.113.7", &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
	})
	assert.NoError(t, err)
}

func TestLoginRateLimitKeyedByClientIP(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
		Name:     "Alice",
	})
	require.NoError(t, err)

	// перебор разных email с одного адреса не обнуляет счетчик
	for i := 0; i < 5; i++ {
		_, err = f.service.Login(ctx, "203.0.113.7", &dto.LoginRequest{
			Email:    fmt.Sprintf("victim%d@example.com", i),
			Password: "wrong",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
	_, err = f.service.Login(ctx, "203.0.113.7", &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
	})
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)

	// чужие неудачные попытки не блокируют владельца аккаунта
	resp, err := f.service.Login(ctx, "198.51.100.4", &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
		Name:     "Alice",
	})
	require.NoError(t, err)

	require.NoError(t, f.reset.RequestReset(ctx, "alice@example.com"))
	require.Len(t, f.emails.resetURLs, 1)

	token := f.emails.resetURLs[0][strings.Index(f.emails.resetURLs[0], "token=")+len("token="):]
	require.NotEmpty(t, token)

	require.NoError(t, f.reset.ResetPassword(ctx, token, "NewPassw0rd!"))

	// старый пароль больше не подходит
	_, err = f.service.Login(ctx, "203.0.113.7", &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	resp, err := f.service.Login(ctx, "203.0.113.7", &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "NewPassw0rd!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// токен сброса одноразовый
	err = f.reset.ResetPassword(ctx, token, "AnotherPassw0rd!")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRequestResetUnknownEmailSilent(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.reset.RequestReset(context.Background(), "nobody@example.com"))
	assert.Empty(t, f.emails.resetURLs)
}

func TestResetPasswordGarbageToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.reset.ResetPassword(context.Background(), "not-a-jwt", "NewPassw0rd!")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestCurrentUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
		Name:     "Alice",
		Birthday: "1995-06-15",
	})
	require.NoError(t, err)

	current, err := f.service.CurrentUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", current.Email)
	assert.Positive(t, current.Age)

	_, err = f.service.CurrentUser(ctx, "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
}
