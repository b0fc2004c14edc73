package validator

import (
	"log"
	"regexp"
	"time"
	"unicode"

	"cvbuilder_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// DateLayout - формат дат в черновике резюме.
const DateLayout = "2006-01-02"

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// registerCustomRules регистрирует все кастомные функции валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка конфигурации на старте: дальше работать нельзя.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Правила на основе statuses.go
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-template-type", validateTemplateType)
	mustRegister("is-border-style", validateBorderStyle)

	// Форматы
	mustRegister("is-hex-color", validateHexColor)
	mustRegister("iso-date", validateISODate)
	mustRegister("strong-password", validateStrongPassword)
}

// --- Функции валидации ---
// Пустые значения пропускаются: для них есть 'required'.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UserRole(value).IsValid()
}

func validateTemplateType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.TemplateType(value).IsValid()
}

func validateBorderStyle(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.BorderStyle(value).IsValid()
}

func validateHexColor(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return hexColorRe.MatchString(value)
}

func validateISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// validateStrongPassword: строчная, заглавная, цифра и спецсимвол.
// Длину проверяют min/max.
func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword проверяет состав пароля.
func IsStrongPassword(password string) bool {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
