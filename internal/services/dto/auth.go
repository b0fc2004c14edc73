package dto

import "cvbuilder_backend/internal/models"

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=128,strong-password"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest - смена пароля текущим пользователем
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128,strong-password"`
}

// UpdateProfileRequest - обновление профиля текущим пользователем
type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,max=100"`
	LastName    *string `json:"lastName" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=30"`
}

// UserSession - данные сессии, зашитые в токен
type UserSession struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// UserResponse - пользователь в ответах API
type UserResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	PhoneNumber string          `json:"phoneNumber"`
	AvatarURL   *string         `json:"avatarUrl"`
	CreatedAt   string          `json:"createdAt"`
	ResumeCount *int64          `json:"resumeCount,omitempty"`
}

// Features - флаги интерфейса, приходящие из конфигурации
type Features struct {
	PremiumModal bool   `json:"premiumModal"`
	Plan         string `json:"plan"`
}

// AuthResponse - ответ на вход/регистрацию
type AuthResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
}

// MeResponse - текущий пользователь и флаги
type MeResponse struct {
	User     *UserResponse `json:"user"`
	Features Features      `json:"features"`
}

// NewUserResponse собирает UserResponse из модели.
func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
