package handlers

import (
	"net/http"
	"time"

	"cvbuilder_backend/internal/middleware"
	"cvbuilder_backend/internal/services"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// CookieConfig - параметры cookie сессии
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

type AuthHandler struct {
	*BaseHandler
	authService   services.AuthService
	uploadService services.UploadService
	uploadConfig  *services.UploadConfig
	cookie        CookieConfig
}

func NewAuthHandler(
	base *BaseHandler,
	authService services.AuthService,
	uploadService services.UploadService,
	uploadConfig *services.UploadConfig,
	cookie CookieConfig,
) *AuthHandler {
	if uploadConfig == nil {
		uploadConfig = services.GetDefaultUploadConfig()
	}
	return &AuthHandler{
		BaseHandler:   base,
		authService:   authService,
		uploadService: uploadService,
		uploadConfig:  uploadConfig,
		cookie:        cookie,
	}
}

// RegisterRoutes регистрирует маршруты /auth
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}

	protected := auth.Group("")
	protected.Use(h.RequireAuth())
	{
		protected.GET("/me", h.Me)
		protected.PUT("/update-profile", h.UpdateProfile)
		protected.POST("/change-password", h.ChangePassword)
		protected.POST("/upload-avatar", h.UploadAvatar)
		protected.DELETE("/delete-avatar", h.DeleteAvatar)
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
}

// Register godoc
// @Summary Регистрация
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Email и пароль"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, response.Token, int(h.cookie.MaxAge.Seconds()))
	c.JSON(http.StatusCreated, response)
}

// Login godoc
// @Summary Вход
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Email и пароль"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, response.Token, int(h.cookie.MaxAge.Seconds()))
	c.JSON(http.StatusOK, response)
}

// Logout godoc
// @Summary Выход
// @Description Отзывает текущий токен (если он есть) и очищает cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.ExtractToken(c, h.cookie.Name)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.authService.Me(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// UploadAvatar godoc
// @Summary Загрузка аватара
// @Description multipart-поле avatar, не больше 2MB, только изображения
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Изображение"
// @Success 200 {object} dto.UploadResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Failure 415 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/upload-avatar [post]
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNoFileProvided)
		return
	}

	// Размер и тип проверяются до любых изменений хранилища и БД
	file, err := services.ReadImage(fh, h.uploadConfig.AvatarMaxSize, h.uploadConfig.AllowedTypes)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	response, err := h.uploadService.UploadAvatar(c.Request.Context(), h.GetDB(c), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) DeleteAvatar(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.uploadService.DeleteAvatar(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Avatar deleted"})
}
