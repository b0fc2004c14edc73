package repositories

import (
	"errors"
	"time"

	"cvbuilder_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrResumeNotFound = errors.New("resume not found")

// ResumeChildren - четыре дочерние коллекции резюме
type ResumeChildren struct {
	WorkExperiences []models.WorkExperience
	Educations      []models.Education
	Projects        []models.Project
	Hobbies         []models.Hobby
}

type ResumeRepository interface {
	FindByIDForUser(db *gorm.DB, id, userID string) (*models.Resume, error)
	ListByUser(db *gorm.DB, userID string) ([]models.Resume, error)
	ListIDsByUser(db *gorm.DB, userID string) ([]models.Resume, error)

	Create(db *gorm.DB, resume *models.Resume) error
	UpdateScalars(db *gorm.DB, resume *models.Resume) error
	// ReplaceChildren удаляет все дочерние записи и создает переданные.
	ReplaceChildren(db *gorm.DB, resumeID string, children ResumeChildren) error
	Delete(db *gorm.DB, resume *models.Resume) error

	// Admin / cleanup
	CountAll(db *gorm.DB) (int64, error)
	CountCreatedBetween(db *gorm.DB, from, to time.Time) (int64, error)
	CountByTemplate(db *gorm.DB) (map[string]int64, error)
	CountByUsers(db *gorm.DB, userIDs []string) (map[string]int64, error)
	PhotoURLs(db *gorm.DB) ([]string, error)
}

type ResumeRepositoryImpl struct{}

func NewResumeRepository() ResumeRepository {
	return &ResumeRepositoryImpl{}
}

func byOrderIndex(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

func preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("WorkExperiences", byOrderIndex).
		Preload("Educations", byOrderIndex).
		Preload("Projects", byOrderIndex).
		Preload("Hobbies", byOrderIndex)
}

func (r *ResumeRepositoryImpl) FindByIDForUser(db *gorm.DB, id, userID string) (*models.Resume, error) {
	var resume models.Resume
	err := preloadChildren(db).
		Where("id = ? AND user_id = ?", id, userID).
		First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := preloadChildren(db).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&resumes).Error
	return resumes, err
}

// ListIDsByUser возвращает только id и photo_url - для каскадного удаления пользователя
func (r *ResumeRepositoryImpl) ListIDsByUser(db *gorm.DB, userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := db.Select("id", "user_id", "photo_url").
		Where("user_id = ?", userID).
		Find(&resumes).Error
	return resumes, err
}

func (r *ResumeRepositoryImpl) Create(db *gorm.DB, resume *models.Resume) error {
	return db.Create(resume).Error
}

func (r *ResumeRepositoryImpl) UpdateScalars(db *gorm.DB, resume *models.Resume) error {
	result := db.Model(&models.Resume{}).
		Where("id = ? AND user_id = ?", resume.ID, resume.UserID).
		Updates(map[string]interface{}{
			"title":         resume.Title,
			"description":   resume.Description,
			"photo_url":     resume.PhotoURL,
			"color_hex":     resume.ColorHex,
			"border_style":  resume.BorderStyle,
			"template_type": resume.TemplateType,
			"summary":       resume.Summary,
			"first_name":    resume.FirstName,
			"last_name":     resume.LastName,
			"job_title":     resume.JobTitle,
			"city":          resume.City,
			"country":       resume.Country,
			"phone":         resume.Phone,
			"email":         resume.Email,
			"skills":        resume.Skills,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *ResumeRepositoryImpl) ReplaceChildren(db *gorm.DB, resumeID string, children ResumeChildren) error {
	if err := db.Where("resume_id = ?", resumeID).Delete(&models.WorkExperience{}).Error; err != nil {
		return err
	}
	if err := db.Where("resume_id = ?", resumeID).Delete(&models.Education{}).Error; err != nil {
		return err
	}
	if err := db.Where("resume_id = ?", resumeID).Delete(&models.Project{}).Error; err != nil {
		return err
	}
	if err := db.Where("resume_id = ?", resumeID).Delete(&models.Hobby{}).Error; err != nil {
		return err
	}

	for i := range children.WorkExperiences {
		children.WorkExperiences[i].ResumeID = resumeID
	}
	for i := range children.Educations {
		children.Educations[i].ResumeID = resumeID
	}
	for i := range children.Projects {
		children.Projects[i].ResumeID = resumeID
	}
	for i := range children.Hobbies {
		children.Hobbies[i].ResumeID = resumeID
	}

	if len(children.WorkExperiences) > 0 {
		if err := db.Create(&children.WorkExperiences).Error; err != nil {
			return err
		}
	}
	if len(children.Educations) > 0 {
		if err := db.Create(&children.Educations).Error; err != nil {
			return err
		}
	}
	if len(children.Projects) > 0 {
		if err := db.Create(&children.Projects).Error; err != nil {
			return err
		}
	}
	if len(children.Hobbies) > 0 {
		if err := db.Create(&children.Hobbies).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete удаляет резюме вместе с дочерними записями
func (r *ResumeRepositoryImpl) Delete(db *gorm.DB, resume *models.Resume) error {
	result := db.Select(clause.Associations).Delete(resume)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *ResumeRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Resume{}).Count(&count).Error
	return count, err
}

func (r *ResumeRepositoryImpl) CountCreatedBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Resume{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *ResumeRepositoryImpl) CountByTemplate(db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		TemplateType string
		Count        int64
	}
	err := db.Model(&models.Resume{}).
		Select("template_type, COUNT(*) AS count").
		Group("template_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.TemplateType] = row.Count
	}
	return result, nil
}

func (r *ResumeRepositoryImpl) CountByUsers(db *gorm.DB, userIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		UserID string
		Count  int64
	}
	err := db.Model(&models.Resume{}).
		Select("user_id, COUNT(*) AS count").
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.UserID] = row.Count
	}
	return result, nil
}

func (r *ResumeRepositoryImpl) PhotoURLs(db *gorm.DB) ([]string, error) {
	var urls []string
	err := db.Model(&models.Resume{}).
		Where("photo_url IS NOT NULL AND photo_url <> ''").
		Pluck("photo_url", &urls).Error
	return urls, err
}
