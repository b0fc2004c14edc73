package services

import (
	"strings"
	"time"

	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/repositories"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/internal/validator"

	"gorm.io/datatypes"
)

// parseDate: пустая строка - отсутствующая дата. Значение уже проверено схемой.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(validator.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(validator.DateLayout)
}

func stringSlice(in []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], len(in))
	copy(out, in)
	return out
}

// resumeScalars переносит скалярные поля черновика в модель.
func resumeScalars(r *models.Resume, v dto.ResumeValues) {
	r.Title = v.Title
	r.Description = v.Description
	r.ColorHex = v.ColorHex
	if r.ColorHex == "" {
		r.ColorHex = "#000000"
	}
	r.BorderStyle = models.ParseBorderStyle(v.BorderStyle)
	r.TemplateType = models.ParseTemplateType(v.TemplateType)
	r.Summary = v.Summary
	r.FirstName = v.FirstName
	r.LastName = v.LastName
	r.JobTitle = v.JobTitle
	r.City = v.City
	r.Country = v.Country
	r.Phone = v.Phone
	r.Email = v.Email
	r.Skills = stringSlice(v.Skills)
}

// resumeChildren строит дочерние строки с порядковыми индексами.
func resumeChildren(v dto.ResumeValues) repositories.ResumeChildren {
	children := repositories.ResumeChildren{
		WorkExperiences: make([]models.WorkExperience, 0, len(v.WorkExperiences)),
		Educations:      make([]models.Education, 0, len(v.Educations)),
		Projects:        make([]models.Project, 0, len(v.Projects)),
		Hobbies:         make([]models.Hobby, 0, len(v.Hobbies)),
	}
	for i, w := range v.WorkExperiences {
		children.WorkExperiences = append(children.WorkExperiences, models.WorkExperience{
			OrderIndex:  i,
			Position:    w.Position,
			Company:     w.Company,
			StartDate:   parseDate(w.StartDate),
			EndDate:     parseDate(w.EndDate),
			Description: w.Description,
		})
	}
	for i, e := range v.Educations {
		children.Educations = append(children.Educations, models.Education{
			OrderIndex: i,
			Degree:     e.Degree,
			School:     e.School,
			StartDate:  parseDate(e.StartDate),
			EndDate:    parseDate(e.EndDate),
		})
	}
	for i, p := range v.Projects {
		children.Projects = append(children.Projects, models.Project{
			OrderIndex:  i,
			Name:        p.Name,
			Role:        p.Role,
			StartDate:   parseDate(p.StartDate),
			EndDate:     parseDate(p.EndDate),
			Description: p.Description,
			TechStack:   stringSlice(p.TechStack),
		})
	}
	for i, h := range v.Hobbies {
		children.Hobbies = append(children.Hobbies, models.Hobby{
			OrderIndex:  i,
			Name:        h.Name,
			Description: h.Description,
		})
	}
	return children
}

// ResumeToValues переводит сохраненное резюме обратно в схему редактора.
func ResumeToValues(r *models.Resume) dto.ResumeValues {
	v := dto.ResumeValues{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Photo:           dto.NoPhoto(),
		ColorHex:        r.ColorHex,
		BorderStyle:     string(r.BorderStyle),
		TemplateType:    string(r.TemplateType),
		Summary:         r.Summary,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		JobTitle:        r.JobTitle,
		City:            r.City,
		Country:         r.Country,
		Phone:           r.Phone,
		Email:           r.Email,
		WorkExperiences: make([]dto.WorkExperienceValues, 0, len(r.WorkExperiences)),
		Educations:      make([]dto.EducationValues, 0, len(r.Educations)),
		Projects:        make([]dto.ProjectValues, 0, len(r.Projects)),
		Skills:          append([]string{}, r.Skills...),
		Hobbies:         make([]dto.HobbyValues, 0, len(r.Hobbies)),
	}
	if r.PhotoURL != nil && strings.TrimSpace(*r.PhotoURL) != "" {
		v.Photo = dto.PhotoFromURL(*r.PhotoURL)
	}
	for _, w := range r.WorkExperiences {
		v.WorkExperiences = append(v.WorkExperiences, dto.WorkExperienceValues{
			Position:    w.Position,
			Company:     w.Company,
			StartDate:   formatDate(w.StartDate),
			EndDate:     formatDate(w.EndDate),
			Description: w.Description,
		})
	}
	for _, e := range r.Educations {
		v.Educations = append(v.Educations, dto.EducationValues{
			Degree:    e.Degree,
			School:    e.School,
			StartDate: formatDate(e.StartDate),
			EndDate:   formatDate(e.EndDate),
		})
	}
	for _, p := range r.Projects {
		v.Projects = append(v.Projects, dto.ProjectValues{
			Name:        p.Name,
			Role:        p.Role,
			StartDate:   formatDate(p.StartDate),
			EndDate:     formatDate(p.EndDate),
			Description: p.Description,
			TechStack:   append([]string{}, p.TechStack...),
		})
	}
	for _, h := range r.Hobbies {
		v.Hobbies = append(v.Hobbies, dto.HobbyValues{Name: h.Name, Description: h.Description})
	}
	return v
}

func newResumeResponse(r *models.Resume) *dto.ResumeResponse {
	return &dto.ResumeResponse{
		ResumeValues: ResumeToValues(r),
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
