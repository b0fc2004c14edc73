package middleware

import (
	"strings"

	"cvbuilder_backend/internal/auth"
	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/pkg/apperrors"
	"cvbuilder_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthCookieName - имя HttpOnly cookie с токеном сессии
const AuthCookieName = "auth_token"

// ExtractToken: сначала cookie, затем заголовок Authorization: Bearer
func ExtractToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// AuthMiddleware - middleware проверки JWT; отозванные через logout токены отклоняются
func AuthMiddleware(tokens *auth.TokenManager, blacklist auth.TokenBlacklist, cookieName string) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = AuthCookieName
	}
	return func(c *gin.Context) {
		tokenStr := ExtractToken(c, cookieName)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "rejected session token", "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.CtxWithError(c.Request.Context(), "token blacklist lookup failed", err)
				apperrors.HandleError(c, apperrors.ExternalServiceError(err, "auth", "Session check failed"))
				return
			}
			if revoked {
				apperrors.HandleError(c, apperrors.ErrInvalidToken)
				return
			}
		}

		// Сохраняем claims в контекст
		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Set(contextkeys.RoleKey, models.UserRole(claims.Role))
		c.Set(contextkeys.EmailKey, claims.Email)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

func roleFromContext(c *gin.Context) (models.UserRole, bool) {
	roleVal, exists := c.Get(contextkeys.RoleKey)
	if !exists {
		return "", false
	}
	switch role := roleVal.(type) {
	case models.UserRole:
		return role, true
	case string:
		return models.UserRole(role), true
	default:
		return "", false
	}
}

// RequireRoles - пропускает только перечисленные роли
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !roleSet[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// RequirePermission - проверка по таблице разрешений auth.Permissions
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !auth.HasPermission(role, permission) {
			logger.CtxWarn(c.Request.Context(), "permission denied", "permission", permission, "role", role)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}
