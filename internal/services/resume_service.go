package services

import (
	"context"
	"errors"
	"fmt"

	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/metrics"
	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/repositories"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/internal/storage"
	"cvbuilder_backend/internal/validator"
	"cvbuilder_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ============================================
// RESUME SERVICE
// ============================================

type ResumeService interface {
	// Save создает резюме (пустой ID) или обновляет резюме владельца.
	Save(ctx context.Context, db *gorm.DB, userID string, values dto.ResumeValues) (*dto.ResumeResponse, error)
	Get(ctx context.Context, db *gorm.DB, userID, resumeID string) (*dto.ResumeResponse, error)
	List(ctx context.Context, db *gorm.DB, userID string) ([]*dto.ResumeResponse, error)
	// Delete удаляет резюме с дочерними записями и освобождает фото.
	Delete(ctx context.Context, db *gorm.DB, userID, resumeID string) error
}

type resumeService struct {
	resumeRepo repositories.ResumeRepository
	blobs      storage.BlobGateway
	validator  *validator.Validator
	config     *UploadConfig
}

func NewResumeService(
	resumeRepo repositories.ResumeRepository,
	blobs storage.BlobGateway,
	v *validator.Validator,
	config *UploadConfig,
) ResumeService {
	if config == nil {
		config = GetDefaultUploadConfig()
	}
	return &resumeService{
		resumeRepo: resumeRepo,
		blobs:      blobs,
		validator:  v,
		config:     config,
	}
}

func (s *resumeService) Save(ctx context.Context, db *gorm.DB, userID string, values dto.ResumeValues) (*dto.ResumeResponse, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}

	normalized, err := s.validator.ValidateResume(values)
	if err != nil {
		return nil, toValidationAppError(err)
	}

	var existing *models.Resume
	if normalized.ID != "" {
		existing, err = s.resumeRepo.FindByIDForUser(db, normalized.ID, userID)
		if err != nil {
			return nil, mapResumeError(err)
		}
	}

	photoURL, err := s.resolvePhoto(ctx, existing, normalized.Photo)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return s.update(ctx, db, existing, normalized, photoURL)
	}
	return s.create(ctx, db, userID, normalized, photoURL)
}

// resolvePhoto вычисляет итоговый photo_url. Новый файл загружается до
// освобождения старого: сбой загрузки прерывает сохранение, ничего не меняя.
// Старое фото освобождается до записи в БД.
func (s *resumeService) resolvePhoto(ctx context.Context, existing *models.Resume, photo dto.Photo) (*string, error) {
	var current *string
	if existing != nil {
		current = existing.PhotoURL
	}

	switch photo.Kind {
	case dto.PhotoPending:
		if err := CheckImage(photo.Pending, s.config.PhotoMaxSize, s.config.AllowedTypes); err != nil {
			return nil, err
		}
		result, err := s.blobs.Upload(ctx, storage.FolderResumePhotos, toStorageFile(photo.Pending))
		if err != nil {
			logger.CtxWithError(ctx, "resume photo upload failed", err)
			return nil, apperrors.ErrPhotoUploadFailed.WithError(err)
		}
		s.releasePhoto(ctx, current)
		return &result.URL, nil

	case dto.PhotoNone:
		s.releasePhoto(ctx, current)
		return nil, nil

	default:
		// PhotoKeep и PhotoURL: фото не меняется
		return current, nil
	}
}

func (s *resumeService) releasePhoto(ctx context.Context, url *string) {
	if url == nil || *url == "" {
		return
	}
	s.blobs.DeleteWithRetry(ctx, *url, s.config.RetryAttempts)
}

func (s *resumeService) create(ctx context.Context, db *gorm.DB, userID string, values dto.ResumeValues, photoURL *string) (*dto.ResumeResponse, error) {
	resume := &models.Resume{UserID: userID, PhotoURL: photoURL}
	resumeScalars(resume, values)

	children := resumeChildren(values)
	resume.WorkExperiences = children.WorkExperiences
	resume.Educations = children.Educations
	resume.Projects = children.Projects
	resume.Hobbies = children.Hobbies

	if err := s.resumeRepo.Create(db, resume); err != nil {
		return nil, apperrors.DatabaseError(fmt.Errorf("create resume: %w", err))
	}

	metrics.ResumeSaved(true)
	logger.CtxInfo(ctx, "resume created", "resume_id", resume.ID)
	return s.reload(db, resume.ID, userID)
}

// update обновляет скалярные поля и заменяет дочерние коллекции целиком.
// Последовательность не транзакционная: сбой между удалением и созданием
// оставит резюме с частью дочерних записей.
func (s *resumeService) update(ctx context.Context, db *gorm.DB, existing *models.Resume, values dto.ResumeValues, photoURL *string) (*dto.ResumeResponse, error) {
	resume := &models.Resume{UserID: existing.UserID, PhotoURL: photoURL}
	resume.ID = existing.ID
	resumeScalars(resume, values)

	if err := s.resumeRepo.UpdateScalars(db, resume); err != nil {
		return nil, mapResumeError(err)
	}
	if err := s.resumeRepo.ReplaceChildren(db, resume.ID, resumeChildren(values)); err != nil {
		return nil, apperrors.DatabaseError(fmt.Errorf("replace resume children: %w", err))
	}

	metrics.ResumeSaved(false)
	logger.CtxInfo(ctx, "resume updated", "resume_id", resume.ID)
	return s.reload(db, resume.ID, resume.UserID)
}

func (s *resumeService) reload(db *gorm.DB, resumeID, userID string) (*dto.ResumeResponse, error) {
	saved, err := s.resumeRepo.FindByIDForUser(db, resumeID, userID)
	if err != nil {
		return nil, mapResumeError(err)
	}
	return newResumeResponse(saved), nil
}

func (s *resumeService) Get(ctx context.Context, db *gorm.DB, userID, resumeID string) (*dto.ResumeResponse, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	resume, err := s.resumeRepo.FindByIDForUser(db, resumeID, userID)
	if err != nil {
		return nil, mapResumeError(err)
	}
	return newResumeResponse(resume), nil
}

func (s *resumeService) List(ctx context.Context, db *gorm.DB, userID string) ([]*dto.ResumeResponse, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	resumes, err := s.resumeRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := make([]*dto.ResumeResponse, 0, len(resumes))
	for i := range resumes {
		out = append(out, newResumeResponse(&resumes[i]))
	}
	return out, nil
}

func (s *resumeService) Delete(ctx context.Context, db *gorm.DB, userID, resumeID string) error {
	if userID == "" {
		return apperrors.NewUnauthorizedError("User not authenticated")
	}
	resume, err := s.resumeRepo.FindByIDForUser(db, resumeID, userID)
	if err != nil {
		return mapResumeError(err)
	}

	// Одна попытка; результат не влияет на удаление строки
	if resume.PhotoURL != nil && *resume.PhotoURL != "" {
		s.blobs.Delete(ctx, *resume.PhotoURL)
	}

	if err := s.resumeRepo.Delete(db, resume); err != nil {
		return mapResumeError(err)
	}

	logger.CtxInfo(ctx, "resume deleted", "resume_id", resumeID)
	return nil
}

func mapResumeError(err error) error {
	if errors.Is(err, repositories.ErrResumeNotFound) {
		return apperrors.ErrResumeNotFound
	}
	return apperrors.DatabaseError(err)
}

func toValidationAppError(err error) error {
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		return apperrors.ValidationError(vErr.Errors)
	}
	return apperrors.InternalError(err)
}
