package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sabytin_backend/internal/auth"
	"sabytin_backend/pkg/apperrors"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Passw0rd!", false},
		{"valid with other special", "abc123=xyz", false},
		{"too short", "aB1!", true},
		{"no digit", "Password!", true},
		{"no letter", "12345678!", true},
		{"no special", "Password1", true},
		{"special not from allowed set", "Password1?", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := auth.ValidatePassword(tc.password)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("Passw0rd!")
	assert.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hash)

	assert.True(t, auth.CheckPasswordHash("Passw0rd!", hash))
	assert.False(t, auth.CheckPasswordHash("wrong", hash))
}
