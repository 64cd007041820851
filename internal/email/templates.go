package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Встроенные шаблоны писем. Вложенные файлы не используем,
// писем всего два и они маленькие.
const verificationTemplate = `<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Добро пожаловать, {{.Name}}!</h2>
  <p>Чтобы подтвердить свой email, перейдите по ссылке:</p>
  <p><a href="{{.ConfirmURL}}">Подтвердить email</a></p>
  <p>Ссылка действует {{.TTLMinutes}} минут. Если вы не регистрировались, просто проигнорируйте это письмо.</p>
</body>
</html>`

const passwordResetTemplate = `<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Сброс пароля</h2>
  <p>Мы получили запрос на сброс пароля для вашего аккаунта.</p>
  <p><a href="{{.ResetURL}}">Задать новый пароль</a></p>
  <p>Ссылка действует {{.TTLMinutes}} минут и работает только один раз.</p>
</body>
</html>`

// TemplateManager хранит распарсенные шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с предзагруженными шаблонами
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	if err := tm.AddTemplate("verification", verificationTemplate); err != nil {
		return nil, err
	}
	if err := tm.AddTemplate("password_reset", passwordResetTemplate); err != nil {
		return nil, err
	}
	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
