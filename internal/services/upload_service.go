package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"cvbuilder_backend/internal/config"
	"cvbuilder_backend/internal/imageprocessor"
	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/repositories"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/internal/storage"
	"cvbuilder_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ============================================
// КОНФИГУРАЦИЯ
// ============================================

type UploadConfig struct {
	AvatarMaxSize       int64
	ThumbnailMaxSize    int64
	PhotoMaxSize        int64
	AllowedTypes        []string
	RetryAttempts       int
	AvatarRetryAttempts int
}

// GetDefaultUploadConfig - лимиты по умолчанию
func GetDefaultUploadConfig() *UploadConfig {
	return NewUploadConfig(config.Default())
}

func NewUploadConfig(cfg *config.Config) *UploadConfig {
	return &UploadConfig{
		AvatarMaxSize:       cfg.Upload.AvatarMaxSize,
		ThumbnailMaxSize:    cfg.Upload.ThumbnailMaxSize,
		PhotoMaxSize:        cfg.Upload.PhotoMaxSize,
		AllowedTypes:        cfg.Upload.AllowedTypes,
		RetryAttempts:       cfg.Blob.RetryAttempts,
		AvatarRetryAttempts: cfg.Blob.AvatarRetryAttempts,
	}
}

// ============================================
// ЧТЕНИЕ И ПРОВЕРКА ИЗОБРАЖЕНИЙ
// ============================================

// ReadImage читает файл из multipart-формы. Размер проверяется до чтения
// содержимого, тип - по содержимому. Ничего не сохраняет.
func ReadImage(fh *multipart.FileHeader, maxSize int64, allowed []string) (*dto.PendingFile, error) {
	if fh == nil {
		return nil, apperrors.ErrNoFileProvided
	}
	if fh.Size > maxSize {
		return nil, apperrors.ErrFileTooLarge.WithDetails(map[string]int64{"maxSize": maxSize, "size": fh.Size})
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.NewBadRequestError("failed to read uploaded file")
	}
	defer f.Close()

	// Заголовок Size мог соврать: читаем не больше лимита + 1 байт
	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, apperrors.NewBadRequestError("failed to read uploaded file")
	}

	pending := &dto.PendingFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}
	if err := CheckImage(pending, maxSize, allowed); err != nil {
		return nil, err
	}
	return pending, nil
}

// CheckImage проверяет уже прочитанный файл: размер, заявленный и реальный тип.
func CheckImage(file *dto.PendingFile, maxSize int64, allowed []string) error {
	if file == nil {
		return apperrors.ErrNoFileProvided
	}
	if int64(len(file.Data)) > maxSize {
		return apperrors.ErrFileTooLarge.WithDetails(map[string]int64{"maxSize": maxSize})
	}

	info, err := imageprocessor.Inspect(file.Data)
	if err != nil {
		return apperrors.ErrInvalidFileType.WithError(err)
	}
	if !imageprocessor.IsAllowed(info.MIME, allowed) {
		return apperrors.ErrInvalidFileType.WithDetails(map[string]string{"detected": info.MIME})
	}
	// Заявленный тип принимаем только image/*, реальный берем из содержимого
	if file.ContentType != "" && !isImageType(file.ContentType) {
		return apperrors.ErrInvalidFileType.WithDetails(map[string]string{"declared": file.ContentType})
	}
	file.ContentType = info.MIME
	return nil
}

func isImageType(contentType string) bool {
	return len(contentType) >= 6 && contentType[:6] == "image/"
}

func toStorageFile(file *dto.PendingFile) storage.File {
	return storage.File{
		Name:        file.Filename,
		ContentType: file.ContentType,
		Reader:      bytes.NewReader(file.Data),
	}
}

// ============================================
// UPLOAD SERVICE
// ============================================

type UploadService interface {
	// UploadAvatar сохраняет новый аватар и освобождает предыдущий
	UploadAvatar(ctx context.Context, db *gorm.DB, userID string, file *dto.PendingFile) (*dto.UploadResponse, error)
	// DeleteAvatar удаляет аватар пользователя
	DeleteAvatar(ctx context.Context, db *gorm.DB, userID string) error
	// UploadThumbnail сохраняет обложку записи блога; previousURL освобождается
	UploadThumbnail(ctx context.Context, file *dto.PendingFile, previousURL string) (*dto.UploadResponse, error)
}

type uploadService struct {
	userRepo repositories.UserRepository
	blobs    storage.BlobGateway
	config   *UploadConfig
}

func NewUploadService(
	userRepo repositories.UserRepository,
	blobs storage.BlobGateway,
	config *UploadConfig,
) UploadService {
	if config == nil {
		config = GetDefaultUploadConfig()
	}
	return &uploadService{
		userRepo: userRepo,
		blobs:    blobs,
		config:   config,
	}
}

func (s *uploadService) UploadAvatar(ctx context.Context, db *gorm.DB, userID string, file *dto.PendingFile) (*dto.UploadResponse, error) {
	// Сначала проверки: при отказе не создаем blob и не трогаем пользователя
	if err := CheckImage(file, s.config.AvatarMaxSize, s.config.AllowedTypes); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapUserError(err)
	}

	result, err := s.blobs.Upload(ctx, storage.FolderAvatars, toStorageFile(file))
	if err != nil {
		return nil, apperrors.ExternalServiceError(err, "storage", "Failed to upload avatar")
	}

	if user.AvatarURL != nil && *user.AvatarURL != "" {
		s.blobs.DeleteWithRetry(ctx, *user.AvatarURL, s.config.AvatarRetryAttempts)
	}

	if err := s.userRepo.UpdateFields(db, userID, map[string]interface{}{"avatar_url": result.URL}); err != nil {
		// Новый файл никому не принадлежит - освобождаем
		s.blobs.Delete(ctx, result.URL)
		return nil, mapUserError(err)
	}

	logger.CtxInfo(ctx, "avatar updated", "user_id", userID, "path", result.Path)
	return &dto.UploadResponse{
		Message:  "Avatar uploaded successfully",
		URL:      result.URL,
		Path:     result.Path,
		Filename: result.Filename,
	}, nil
}

func (s *uploadService) DeleteAvatar(ctx context.Context, db *gorm.DB, userID string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return mapUserError(err)
	}
	if user.AvatarURL == nil || *user.AvatarURL == "" {
		return nil
	}

	s.blobs.DeleteWithRetry(ctx, *user.AvatarURL, s.config.AvatarRetryAttempts)

	if err := s.userRepo.UpdateFields(db, userID, map[string]interface{}{"avatar_url": nil}); err != nil {
		return mapUserError(err)
	}
	return nil
}

func (s *uploadService) UploadThumbnail(ctx context.Context, file *dto.PendingFile, previousURL string) (*dto.UploadResponse, error) {
	if err := CheckImage(file, s.config.ThumbnailMaxSize, s.config.AllowedTypes); err != nil {
		return nil, err
	}

	result, err := s.blobs.Upload(ctx, storage.FolderBlogThumbnails, toStorageFile(file))
	if err != nil {
		return nil, apperrors.ExternalServiceError(err, "storage", "Failed to upload thumbnail")
	}

	if previousURL != "" {
		s.blobs.DeleteWithRetry(ctx, previousURL, s.config.RetryAttempts)
	}

	return &dto.UploadResponse{
		Message:  "Thumbnail uploaded successfully",
		URL:      result.URL,
		Path:     result.Path,
		Filename: result.Filename,
	}, nil
}

// mapUserError переводит ошибки репозитория пользователей в AppError
func mapUserError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	default:
		return apperrors.DatabaseError(fmt.Errorf("user repository: %w", err))
	}
}
