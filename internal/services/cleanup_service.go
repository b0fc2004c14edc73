package services

import (
	"context"
	"fmt"

	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/repositories"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/internal/storage"
	"cvbuilder_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CleanupService удаляет из хранилища изображения, на которые не ссылается ни одна строка.
type CleanupService interface {
	CleanupBlobs(ctx context.Context, db *gorm.DB) (*dto.CleanupResponse, error)
}

type cleanupService struct {
	userRepo   repositories.UserRepository
	resumeRepo repositories.ResumeRepository
	blobs      storage.BlobGateway
}

func NewCleanupService(
	userRepo repositories.UserRepository,
	resumeRepo repositories.ResumeRepository,
	blobs storage.BlobGateway,
) CleanupService {
	return &cleanupService{
		userRepo:   userRepo,
		resumeRepo: resumeRepo,
		blobs:      blobs,
	}
}

func (s *cleanupService) CleanupBlobs(ctx context.Context, db *gorm.DB) (*dto.CleanupResponse, error) {
	avatars, err := s.userRepo.AvatarURLs(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	photos, err := s.resumeRepo.PhotoURLs(db)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	// обложки блога хранятся в строках вне этого сервиса
	result, err := s.blobs.Sweep(ctx, append(avatars, photos...), storage.FolderBlogThumbnails)
	if err != nil {
		return nil, apperrors.ExternalServiceError(err, "storage", "Failed to list stored blobs")
	}

	logger.CtxInfo(ctx, "blob cleanup finished",
		"total", result.TotalBlobs,
		"unused", result.UnusedBlobs,
		"deleted", result.DeletedSuccess,
		"failed", result.DeletedFailed,
	)

	return &dto.CleanupResponse{
		Success:        result.DeletedFailed == 0,
		Message:        fmt.Sprintf("Deleted %d of %d unused blobs", result.DeletedSuccess, result.UnusedBlobs),
		TotalBlobs:     result.TotalBlobs,
		UsedBlobs:      result.UsedBlobs,
		UnusedBlobs:    result.UnusedBlobs,
		DeletedSuccess: result.DeletedSuccess,
		DeletedFailed:  result.DeletedFailed,
	}, nil
}
