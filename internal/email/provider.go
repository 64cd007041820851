package email

// Email представляет структуру email сообщения
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendVerification отправляет письмо подтверждения адреса
	SendVerification(to string, confirmURL string) error

	// SendPasswordReset отправляет письмо сброса пароля
	SendPasswordReset(to string, resetURL string) error

	// Close закрывает соединение с провайдером
	Close() error
}
