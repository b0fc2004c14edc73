package routes

import (
	"cvbuilder_backend/internal/handlers"
	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options - необязательные маршруты
type Options struct {
	// FilesPrefix - публичный префикс локального хранилища; пусто - файлы не раздаются
	FilesPrefix string
	Swagger     bool
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	opts Options,
) {
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)
	ginRouter.GET("/metrics", metrics.Handler())

	if opts.Swagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if appHandlers.FileHandler != nil && opts.FilesPrefix != "" {
		appHandlers.FileHandler.RegisterRoutes(ginRouter, opts.FilesPrefix)
		logger.Info("Local files route registered", "prefix", opts.FilesPrefix)
	}

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ResumeHandler.RegisterRoutes(api)
		appHandlers.TemplateHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
	}
}
