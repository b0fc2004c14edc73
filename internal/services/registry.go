package services

import (
	"cvbuilder_backend/internal/auth"
	"cvbuilder_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService    AuthService
	ResumeService  ResumeService
	UploadService  UploadService
	AdminService   AdminService
	CleanupService CleanupService
	Blobs          storage.BlobGateway
	UploadConfig   *UploadConfig
	Tokens         *auth.TokenManager
	TokenBlacklist auth.TokenBlacklist
}
