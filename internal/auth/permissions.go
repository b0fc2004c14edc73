package auth

import "cvbuilder_backend/internal/models"

// Разрешения
const (
	PermResumeOwn    = "resumes:write:self"
	PermProfileOwn   = "users:write:self"
	PermUsersRead    = "users:read"
	PermUsersWrite   = "users:write"
	PermUsersDelete  = "users:delete"
	PermUploadsAdmin = "uploads:admin"
	PermStatsRead    = "stats:read"
)

// Permissions - разрешения по ролям
var Permissions = map[models.UserRole][]string{
	models.UserRoleAdmin: {
		PermResumeOwn,
		PermProfileOwn,
		PermUsersRead,
		PermUsersWrite,
		PermUsersDelete,
		PermUploadsAdmin,
		PermStatsRead,
	},
	models.UserRoleUser: {
		PermResumeOwn,
		PermProfileOwn,
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role models.UserRole, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// IsAdmin проверяет является ли пользователь администратором
func IsAdmin(claims *Claims) bool {
	return models.UserRole(claims.Role) == models.UserRoleAdmin
}
