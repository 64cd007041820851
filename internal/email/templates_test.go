package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sabytin_backend/internal/email"
)

func TestRenderVerificationTemplate(t *testing.T) {
	tm, err := email.NewTemplateManager()
	require.NoError(t, err)

	body, err := tm.Render("verification", email.TemplateData{
		"Name":       "Alice",
		"ConfirmURL": "http://localhost:8080/authorization/confirm/tok-123",
		"TTLMinutes": 1440,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "http://localhost:8080/authorization/confirm/tok-123")
	assert.Contains(t, body, "1440")
}

func TestRenderPasswordResetTemplate(t *testing.T) {
	tm, err := email.NewTemplateManager()
	require.NoError(t, err)

	body, err := tm.Render("password_reset", email.TemplateData{
		"ResetURL":   "http://localhost:8080/authorization/reset_password?token=tok",
		"TTLMinutes": 30,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "reset_password?token=tok")
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm, err := email.NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestAddTemplate(t *testing.T) {
	tm, err := email.NewTemplateManager()
	require.NoError(t, err)

	require.NoError(t, tm.AddTemplate("custom", "Hello, {{.Name}}"))

	body, err := tm.Render("custom", email.TemplateData{"Name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Bob", body)

	assert.Error(t, tm.AddTemplate("broken", "{{.Unclosed"))
}
