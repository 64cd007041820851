package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"sabytin_backend/pkg/apperrors"
)

// specialChars - набор спецсимволов, которых требует политика паролей
const specialChars = "!=+$@#%^"

// HashPassword создает bcrypt хеш пароля
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash проверяет пароль против хеша
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword проверяет сложность пароля: минимум 8 символов,
// хотя бы одна буква, цифра и спецсимвол из !=+$@#%^
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.ErrWeakPassword
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, symb := range password {
		switch {
		case unicode.IsLetter(symb):
			hasLetter = true
		case unicode.IsDigit(symb):
			hasDigit = true
		}
		if strings.ContainsRune(specialChars, symb) {
			hasSpecial = true
		}
	}

	if !hasLetter || !hasDigit || !hasSpecial {
		return apperrors.ErrWeakPassword
	}
	return nil
}
