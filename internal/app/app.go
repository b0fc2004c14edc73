package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cvbuilder_backend/database"
	_ "cvbuilder_backend/docs"
	"cvbuilder_backend/internal/auth"
	"cvbuilder_backend/internal/config"
	"cvbuilder_backend/internal/handlers"
	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/metrics"
	"cvbuilder_backend/internal/middleware"
	"cvbuilder_backend/internal/repositories"
	"cvbuilder_backend/internal/routes"
	"cvbuilder_backend/internal/services"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/internal/storage"
	"cvbuilder_backend/internal/validator"
	"cvbuilder_backend/internal/workers"
	"cvbuilder_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(ctx, database.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Debug:  cfg.Server.Env == "development",
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	storageInstance, err := newStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	blacklist, closeBlacklist, err := newTokenBlacklist(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize token blacklist", "error", err)
	}
	defer closeBlacklist()

	serviceContainer := initializeServices(cfg, storageInstance, blacklist)

	if err := seedFirstAdmin(ctx, gormDB, cfg, serviceContainer.AdminService); err != nil {
		// Если не удалось создать админа (проблемы с БД и т.д.) - не запускаем сервер
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	workers.NewBlobSweepWorker(gormDB, serviceContainer.CleanupService, cfg.SweepInterval()).Start(workerCtx)

	ginRouter := SetupRouter(cfg, gormDB, storageInstance, serviceContainer)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	stopWorkers()
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	return storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
}

// SetupRouter собирает gin.Engine из готовых сервисов.
// serviceContainer == nil - сервисы создаются по cfg поверх storageInstance.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage, serviceContainer *services.ServiceContainer) *gin.Engine {
	if serviceContainer == nil {
		serviceContainer = initializeServices(cfg, storageInstance, auth.NewMemoryBlacklist())
	}

	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance)
	ginRouter := initializeGinRouter(cfg, gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers, routes.Options{
		FilesPrefix: filesPrefix(cfg),
		Swagger:     !cfg.IsProduction(),
	})
	return ginRouter
}

// newTokenBlacklist: Redis, если задан redis.url, иначе память процесса
func newTokenBlacklist(ctx context.Context, cfg *config.Config) (auth.TokenBlacklist, func(), error) {
	if cfg.Redis.URL == "" {
		logger.Info("Token blacklist: in-memory")
		return auth.NewMemoryBlacklist(), func() {}, nil
	}
	client, err := auth.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Token blacklist: redis")
	return auth.NewRedisBlacklist(client), func() { client.Close() }, nil
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage, blacklist auth.TokenBlacklist) *services.ServiceContainer {
	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	resumeRepo := repositories.NewResumeRepository()

	blobs := storage.NewBlobGateway(storageInstance, storage.GatewayOptions{RetryUnit: cfg.RetryUnit()})
	uploadConfig := services.NewUploadConfig(cfg)
	features := dto.Features{PremiumModal: cfg.Features.PremiumModal, Plan: cfg.Features.Plan}
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())

	// --- Инициализация сервисов ---
	return &services.ServiceContainer{
		AuthService:    services.NewAuthService(userRepo, tokens, blacklist, features),
		ResumeService:  services.NewResumeService(resumeRepo, blobs, validator.New(), uploadConfig),
		UploadService:  services.NewUploadService(userRepo, blobs, uploadConfig),
		AdminService:   services.NewAdminService(userRepo, resumeRepo, blobs, uploadConfig),
		CleanupService: services.NewCleanupService(userRepo, resumeRepo, blobs),
		Blobs:          blobs,
		UploadConfig:   uploadConfig,
		Tokens:         tokens,
		TokenBlacklist: blacklist,
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	requireAuth := middleware.AuthMiddleware(svc.Tokens, svc.TokenBlacklist, cfg.JWT.CookieName)
	baseHandler := handlers.NewBaseHandler(validator.New(), requireAuth)

	cookie := handlers.CookieConfig{
		Name:   cfg.JWT.CookieName,
		MaxAge: cfg.TokenTTL(),
		Secure: cfg.IsProduction(),
	}

	appHandlers := &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, svc.AuthService, svc.UploadService, svc.UploadConfig, cookie),
		ResumeHandler:   handlers.NewResumeHandler(baseHandler, svc.ResumeService, svc.UploadConfig),
		TemplateHandler: handlers.NewTemplateHandler(baseHandler),
		AdminHandler:    handlers.NewAdminHandler(baseHandler, svc.AdminService, svc.UploadService, svc.CleanupService, svc.UploadConfig),
		HealthHandler:   handlers.NewHealthHandler(baseHandler),
	}
	if _, ok := storageInstance.(*storage.LocalStorage); ok {
		appHandlers.FileHandler = handlers.NewFileHandler(baseHandler, storageInstance)
	}
	return appHandlers
}

// filesPrefix - путь публичного URL локального хранилища ("/files")
func filesPrefix(cfg *config.Config) string {
	if cfg.Storage.Type != "local" {
		return ""
	}
	u, err := url.Parse(cfg.Storage.BaseURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return ""
	}
	return u.Path
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.Middleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	// multipart держим в памяти не больше 8MB, остальное уходит во временные файлы
	router.MaxMultipartMemory = 8 << 20
	return router
}

func seedFirstAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, admins services.AdminService) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}
	return admins.EnsureAdmin(ctx, db, cfg.FirstAdminEmail, cfg.FirstAdminPassword)
}
