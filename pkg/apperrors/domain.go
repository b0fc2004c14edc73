package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для ошибок домена:
резюме, пользователи, загрузки файлов.
*/

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Resume ---

// ErrResumeNotFound - резюме не существует или принадлежит другому пользователю.
// Чужое резюме намеренно неотличимо от несуществующего.
var ErrResumeNotFound = New(
	CodeNotFound,
	"resume",
	"Resume not found",
	http.StatusNotFound,
)

// ErrTemplateNotFound - шаблон-заготовка с таким id отсутствует.
var ErrTemplateNotFound = New(
	CodeNotFound,
	"template",
	"Template not found",
	http.StatusNotFound,
)

// ErrPhotoUploadFailed - blob-хранилище не приняло фото резюме.
var ErrPhotoUploadFailed = New(
	CodeExternalServiceError,
	"storage",
	"Failed to upload photo",
	http.StatusBadGateway,
)

// --- Uploads & Files ---

// ErrFileTooLarge - файл превышает максимальный размер.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge, // 413
)

// ErrRequestTooLarge - тело запроса больше допустимого.
var ErrRequestTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"Request body exceeds the allowed limit",
	http.StatusRequestEntityTooLarge, // 413
)

// ErrInvalidFileType - MIME-тип файла не разрешен.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType, // 415
)

// ErrNoFileProvided - в multipart-форме нет ожидаемого поля.
var ErrNoFileProvided = New(
	CodeValidationFailed,
	"validation",
	"No file provided",
	http.StatusBadRequest,
)

// --- Auth & Users ---

// ErrCannotModifySelf - админ пытается понизить или удалить себя.
var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrUserNotFound - пользователь не найден.
var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// ErrWeakPassword - пароль не удовлетворяет правилам сложности.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 6 characters and contain upper and lower case letters, a digit and a special character",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrWrongPassword - текущий пароль при смене указан неверно.
var ErrWrongPassword = New(
	CodeInvalidCredentials,
	"auth",
	"Current password is incorrect",
	http.StatusBadRequest,
)

// ErrInvalidToken - неверный или просроченный токен сессии.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
