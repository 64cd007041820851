package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// --- Auth ---

// ErrWeakPassword - пароль не проходит политику сложности.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 8 characters long and contain a letter, a digit and a special character (!=+$@#%^)",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется.
// Оригинал отвечал 400, сохраняем это поведение при коде ALREADY_EXISTS.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusBadRequest,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Incorrect email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен (access, verify, reset).
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrTooManyAttempts - сработал rate limit на логин.
var ErrTooManyAttempts = New(
	CodeRateLimited,
	"auth",
	"Try later",
	http.StatusTooManyRequests,
)

// --- Algorithm (лайки/дизлайки/кандидаты) ---

// ErrSelfReaction - попытка лайкнуть/дизлайкнуть самого себя.
var ErrSelfReaction = New(
	CodeInvalidOperation,
	"algorithm",
	"Reaction to yourself is not allowed",
	http.StatusBadRequest,
)

// ErrAlreadyLiked - лайк на эту пару уже существует.
// Оригинал отвечал 400 на IntegrityError, сохраняем статус.
var ErrAlreadyLiked = New(
	CodeConflict,
	"algorithm",
	"The user has already been liked",
	http.StatusBadRequest,
)

// ErrAlreadyDisliked - дизлайк на эту пару уже существует.
var ErrAlreadyDisliked = New(
	CodeConflict,
	"algorithm",
	"The user has already been disliked",
	http.StatusBadRequest,
)

// ErrNoQuestionnaires - кандидаты не найдены даже после fallback-запроса.
var ErrNoQuestionnaires = New(
	CodeNotFound,
	"algorithm",
	"Questionnaires not found",
	http.StatusNotFound,
)

// --- Chat ---

// ErrDialogueNotFound - диалог не найден.
var ErrDialogueNotFound = New(
	CodeNotFound,
	"chat",
	"Dialogue not found",
	http.StatusNotFound,
)

// ErrDialogueAccessDenied - пользователь не является участником диалога.
var ErrDialogueAccessDenied = New(
	CodeForbidden,
	"chat",
	"Access to dialogue denied",
	http.StatusForbidden,
)

// ErrCannotModifyMessage - нет прав на изменение этого сообщения.
var ErrCannotModifyMessage = New(
	CodeForbidden,
	"chat",
	"You do not have permission to modify this message",
	http.StatusForbidden,
)

// --- Events & Channels ---

// ErrEventFull - лимит участников события исчерпан.
var ErrEventFull = New(
	CodeLimitExceeded,
	"events",
	"Event participant limit has been reached",
	http.StatusConflict,
)

// --- Photos & Uploads ---

// ErrFileTooLarge - файл превышает максимальный размер для одного запроса.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - MIME-тип файла не разрешен.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// ErrNoProfilePhoto - фото профиля не установлено.
var ErrNoProfilePhoto = New(
	CodeNotFound,
	"photos",
	"Profile photo is not set",
	http.StatusNotFound,
)
