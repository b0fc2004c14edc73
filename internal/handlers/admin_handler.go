package handlers

import (
	"net/http"

	"cvbuilder_backend/internal/auth"
	"cvbuilder_backend/internal/middleware"
	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/services"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================
// ADMIN HANDLER
// ============================================

type AdminHandler struct {
	*BaseHandler
	adminService   services.AdminService
	uploadService  services.UploadService
	cleanupService services.CleanupService
	uploadConfig   *services.UploadConfig
}

func NewAdminHandler(
	base *BaseHandler,
	adminService services.AdminService,
	uploadService services.UploadService,
	cleanupService services.CleanupService,
	uploadConfig *services.UploadConfig,
) *AdminHandler {
	if uploadConfig == nil {
		uploadConfig = services.GetDefaultUploadConfig()
	}
	return &AdminHandler{
		BaseHandler:    base,
		adminService:   adminService,
		uploadService:  uploadService,
		cleanupService: cleanupService,
		uploadConfig:   uploadConfig,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(h.RequireAuth())
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/users", middleware.RequirePermission(auth.PermUsersRead), h.ListUsers)
		admin.POST("/users", middleware.RequirePermission(auth.PermUsersWrite), h.CreateUser)
		admin.PATCH("/users/:id", middleware.RequirePermission(auth.PermUsersWrite), h.UpdateUser)
		admin.DELETE("/users/:id", middleware.RequirePermission(auth.PermUsersDelete), h.DeleteUser)

		admin.GET("/dashboard", middleware.RequirePermission(auth.PermStatsRead), h.Dashboard)
		admin.GET("/dashboard/monthly", middleware.RequirePermission(auth.PermStatsRead), h.MonthlyStats)

		admin.POST("/upload-thumbnail", middleware.RequirePermission(auth.PermUploadsAdmin), h.UploadThumbnail)
		admin.POST("/cleanup-blobs", middleware.RequirePermission(auth.PermUploadsAdmin), h.CleanupBlobs)
	}
}

// ============================================
// USERS
// ============================================

// ListUsers godoc
// @Summary Список пользователей
// @Tags admin
// @Produce json
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Param search query string false "Поиск по email и имени"
// @Success 200 {object} dto.UserListResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	response, err := h.adminService.ListUsers(c.Request.Context(), h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.adminService.CreateUser(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created", "user": user})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AdminUpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), h.GetDB(c), actorID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": user})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), h.GetDB(c), actorID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// MonthlyStats godoc
// @Summary Новые пользователи и резюме по месяцам
// @Tags admin
// @Produce json
// @Param months query int false "Число месяцев (по умолчанию 6, не больше 24)"
// @Success 200 {object} dto.MonthlyStats
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/dashboard/monthly [get]
func (h *AdminHandler) MonthlyStats(c *gin.Context) {
	var query struct {
		Months int `form:"months" validate:"omitempty,min=1,max=24"`
	}
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	stats, err := h.adminService.MonthlyStats(c.Request.Context(), h.GetDB(c), query.Months)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ============================================
// FILES
// ============================================

// UploadThumbnail: multipart-поле thumbnail; previousUrl освобождается после загрузки
func (h *AdminHandler) UploadThumbnail(c *gin.Context) {
	fh, err := c.FormFile("thumbnail")
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNoFileProvided)
		return
	}

	file, err := services.ReadImage(fh, h.uploadConfig.ThumbnailMaxSize, h.uploadConfig.AllowedTypes)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	response, err := h.uploadService.UploadThumbnail(c.Request.Context(), file, c.PostForm("previousUrl"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// CleanupBlobs godoc
// @Summary Удалить неиспользуемые изображения
// @Tags admin
// @Produce json
// @Success 200 {object} dto.CleanupResponse
// @Router /api/v1/admin/cleanup-blobs [post]
func (h *AdminHandler) CleanupBlobs(c *gin.Context) {
	response, err := h.cleanupService.CleanupBlobs(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
