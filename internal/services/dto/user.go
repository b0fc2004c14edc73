package dto

import "cvbuilder_backend/internal/models"

// ============================================
// ADMIN: USERS
// ============================================

// UserListQuery - фильтр списка пользователей
type UserListQuery struct {
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Search string `form:"search" validate:"max=100"`
}

// UserListResponse - страница пользователей
type UserListResponse struct {
	Users      []*UserResponse `json:"users"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// AdminCreateUserRequest - создание пользователя администратором
type AdminCreateUserRequest struct {
	Email       string          `json:"email" validate:"required,email,max=255"`
	Password    string          `json:"password" validate:"required,min=6,max=128,strong-password"`
	Role        models.UserRole `json:"role" validate:"omitempty,is-user-role"`
	FirstName   string          `json:"firstName" validate:"max=100"`
	LastName    string          `json:"lastName" validate:"max=100"`
	PhoneNumber string          `json:"phoneNumber" validate:"max=30"`
}

// AdminUpdateUserRequest - частичное обновление пользователя администратором
type AdminUpdateUserRequest struct {
	Email       *string          `json:"email" validate:"omitempty,email,max=255"`
	Role        *models.UserRole `json:"role" validate:"omitempty,is-user-role"`
	FirstName   *string          `json:"firstName" validate:"omitempty,max=100"`
	LastName    *string          `json:"lastName" validate:"omitempty,max=100"`
	PhoneNumber *string          `json:"phoneNumber" validate:"omitempty,max=30"`
}

// ============================================
// ADMIN: DASHBOARD
// ============================================

// DashboardStats - сводка для админ-панели
type DashboardStats struct {
	TotalUsers        int64            `json:"totalUsers"`
	UsersByRole       map[string]int64 `json:"usersByRole"`
	TotalResumes      int64            `json:"totalResumes"`
	NewUsersMonth     int64            `json:"newUsersThisMonth"`
	NewResumesMonth   int64            `json:"newResumesThisMonth"`
	UserGrowthPct     float64          `json:"userGrowthPercent"`
	ResumeGrowthPct   float64          `json:"resumeGrowthPercent"`
	ResumesByTemplate map[string]int64 `json:"resumesByTemplate"`
}

// MonthlyPoint - новые пользователи и резюме за один календарный месяц
type MonthlyPoint struct {
	Month   string `json:"month"` // YYYY-MM
	Users   int64  `json:"users"`
	Resumes int64  `json:"resumes"`
}

// TemplateUsage - число резюме с данным шаблоном
type TemplateUsage struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// MonthlyStats - ряд по месяцам (от старого к текущему) и использование шаблонов
type MonthlyStats struct {
	MonthlyData   []MonthlyPoint  `json:"monthlyData"`
	TemplateUsage []TemplateUsage `json:"templateUsage"`
}
