package app

import (
	"sabytin_backend/internal/email"
	"sabytin_backend/internal/logger"
)

// LoggingEmailProvider пишет письма в лог вместо отправки.
// Используется, когда SMTP не сконфигурирован.
type LoggingEmailProvider struct{}

func (p *LoggingEmailProvider) Send(msg *email.Email) error {
	logger.Info("email (not sent)", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (p *LoggingEmailProvider) SendVerification(to string, confirmURL string) error {
	logger.Info("verification email (not sent)", "to", to, "confirm_url", confirmURL)
	return nil
}

func (p *LoggingEmailProvider) SendPasswordReset(to string, resetURL string) error {
	logger.Info("password reset email (not sent)", "to", to, "reset_url", resetURL)
	return nil
}

func (p *LoggingEmailProvider) Close() error {
	return nil
}
