package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// Ключи, под которыми auth middleware кладет данные текущего
// пользователя в gin.Context. Хэндлеры и ws-слой читают их отсюда,
// а не по "магическим" строкам.
const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)
