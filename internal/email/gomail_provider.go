package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"sabytin_backend/internal/config"
)

// GomailProvider реализует Provider поверх gomail
type GomailProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
	renderer  *TemplateManager
	ttl       int // Минуты жизни ссылок в письмах
}

// NewGomailProvider создает провайдер из конфигурации приложения
func NewGomailProvider(cfg *config.Config) (*GomailProvider, error) {
	if cfg.Email.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.Email.SMTPPort <= 0 || cfg.Email.SMTPPort > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", cfg.Email.SMTPPort)
	}

	renderer, err := NewTemplateManager()
	if err != nil {
		return nil, err
	}

	dialer := gomail.NewDialer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
	)
	dialer.SSL = false

	return &GomailProvider{
		dialer:    dialer,
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
		renderer:  renderer,
		ttl:       cfg.JWT.ResetTTL,
	}, nil
}

// Send отправляет email сообщение
func (p *GomailProvider) Send(email *Email) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendVerification отправляет письмо подтверждения адреса
func (p *GomailProvider) SendVerification(to string, confirmURL string) error {
	html, err := p.renderer.Render("verification", TemplateData{
		"Name":       to,
		"ConfirmURL": confirmURL,
		"TTLMinutes": p.ttl,
	})
	if err != nil {
		return err
	}
	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Подтверждение email",
		HTMLBody: html,
	})
}

// SendPasswordReset отправляет письмо со ссылкой сброса пароля
func (p *GomailProvider) SendPasswordReset(to string, resetURL string) error {
	html, err := p.renderer.Render("password_reset", TemplateData{
		"ResetURL":   resetURL,
		"TTLMinutes": p.ttl,
	})
	if err != nil {
		return err
	}
	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Сброс пароля",
		HTMLBody: html,
	})
}

// Close закрывает соединение (gomail открывает его на каждую отправку)
func (p *GomailProvider) Close() error {
	return nil
}
