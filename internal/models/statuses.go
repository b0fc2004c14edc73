package models

import "strings"

type UserRole string
type TemplateType string
type BorderStyle string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

const (
	TemplateBlank        TemplateType = "blank"
	TemplateProfessional TemplateType = "professional"
	TemplateCreative     TemplateType = "creative"
	TemplateMinimal      TemplateType = "minimal"
)

const (
	BorderSquare   BorderStyle = "square"
	BorderCircle   BorderStyle = "circle"
	BorderSquircle BorderStyle = "squircle"
)

// TemplateTypes - все варианты шаблонов в порядке показа в галерее.
func TemplateTypes() []TemplateType {
	return []TemplateType{TemplateBlank, TemplateProfessional, TemplateCreative, TemplateMinimal}
}

func (t TemplateType) IsValid() bool {
	switch t {
	case TemplateBlank, TemplateProfessional, TemplateCreative, TemplateMinimal:
		return true
	default:
		return false
	}
}

// ParseTemplateType приводит строку к TemplateType; неизвестное значение - blank.
func ParseTemplateType(s string) TemplateType {
	t := TemplateType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t
	}
	return TemplateBlank
}

func (b BorderStyle) IsValid() bool {
	switch b {
	case BorderSquare, BorderCircle, BorderSquircle:
		return true
	default:
		return false
	}
}

// ParseBorderStyle приводит строку к BorderStyle; неизвестное значение - squircle.
func ParseBorderStyle(s string) BorderStyle {
	b := BorderStyle(strings.ToLower(strings.TrimSpace(s)))
	if b.IsValid() {
		return b
	}
	return BorderSquircle
}

// Radius возвращает CSS border-radius для фото.
func (b BorderStyle) Radius() string {
	switch b {
	case BorderSquare:
		return "0px"
	case BorderCircle:
		return "9999px"
	default:
		return "10%"
	}
}

func (r UserRole) IsValid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}
