package validator

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"sabytin_backend/internal/models"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без этого правила приложение работать не должно
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-reaction-kind", validateReactionKind)
	mustRegister("is-birthday", validateBirthday)
}

// --- Функции валидации ---

func validateReactionKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch models.ReactionKind(value) {
	case models.ReactionLike, models.ReactionDislike:
		return true
	default:
		return false
	}
}

// validateBirthday проверяет дату рождения в формате "2006-01-02"
// и требует, чтобы она была в прошлом.
func validateBirthday(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return false
	}
	return day.Before(time.Now())
}
