package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sabytin_backend/pkg/apperrors"
)

// Claims - полезная нагрузка access токена
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ResetClaims - полезная нагрузка токена сброса пароля.
// Scope отличает его от access токена, чтобы один нельзя было
// использовать вместо другого.
type ResetClaims struct {
	UserID string `json:"user_id"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

const resetScope = "password_reset"

// TokenManager выпускает и проверяет JWT токены
type TokenManager struct {
	secret   []byte
	tokenTTL time.Duration
	resetTTL time.Duration
}

func NewTokenManager(secret string, tokenTTL, resetTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		resetTTL: resetTTL,
	}
}

// GenerateToken выпускает access токен для пользователя
func (m *TokenManager) GenerateToken(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken проверяет подпись и срок действия access токена
func (m *TokenManager) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// GenerateResetToken выпускает короткоживущий токен для сброса пароля
func (m *TokenManager) GenerateResetToken(userID string) (string, error) {
	now := time.Now()
	claims := ResetClaims{
		UserID: userID,
		Scope:  resetScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.resetTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseResetToken проверяет токен сброса, включая его scope
func (m *TokenManager) ParseResetToken(tokenString string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Scope != resetScope {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	return m.secret, nil
}
