package editor

import (
	"encoding/json"
	"fmt"

	"cvbuilder_backend/internal/services/dto"
)

// Event - изменение одного среза черновика, отправленное формой шага.
// Событие заменяет свой срез целиком и не трогает остальные поля.
type Event interface {
	Step() Step
	apply(draft *dto.ResumeValues)
}

type GeneralInfoChanged struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (GeneralInfoChanged) Step() Step { return StepGeneralInfo }

func (e GeneralInfoChanged) apply(d *dto.ResumeValues) {
	d.Title = e.Title
	d.Description = e.Description
}

// PersonalInfoChanged - контакты и фото. Фото меняется только если
// поле photo присутствовало в событии.
type PersonalInfoChanged struct {
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	JobTitle  string    `json:"jobTitle"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Photo     dto.Photo `json:"photo"`
}

func (PersonalInfoChanged) Step() Step { return StepPersonalInfo }

func (e PersonalInfoChanged) apply(d *dto.ResumeValues) {
	d.FirstName = e.FirstName
	d.LastName = e.LastName
	d.JobTitle = e.JobTitle
	d.City = e.City
	d.Country = e.Country
	d.Phone = e.Phone
	d.Email = e.Email
	if e.Photo.Kind != dto.PhotoKeep {
		d.Photo = e.Photo
	}
}

type SummaryChanged struct {
	Summary string `json:"summary"`
}

func (SummaryChanged) Step() Step { return StepCareerGoals }

func (e SummaryChanged) apply(d *dto.ResumeValues) { d.Summary = e.Summary }

// StyleChanged - цвет, рамка фото и шаблон из панели инструментов.
// Не привязан к шагу: панель доступна на любом шаге.
type StyleChanged struct {
	ColorHex     string `json:"colorHex"`
	BorderStyle  string `json:"borderStyle"`
	TemplateType string `json:"templateType"`
}

func (StyleChanged) Step() Step { return "" }

func (e StyleChanged) apply(d *dto.ResumeValues) {
	if e.ColorHex != "" {
		d.ColorHex = e.ColorHex
	}
	if e.BorderStyle != "" {
		d.BorderStyle = e.BorderStyle
	}
	if e.TemplateType != "" {
		d.TemplateType = e.TemplateType
	}
}

// Списочные события принимают срезы указателей: форма может прислать
// незаполненную строку как nil, такие элементы отбрасываются.

type EducationsChanged struct {
	Educations []*dto.EducationValues `json:"educations"`
}

func (EducationsChanged) Step() Step { return StepEducation }

func (e EducationsChanged) apply(d *dto.ResumeValues) {
	d.Educations = compact(e.Educations)
}

type WorkExperiencesChanged struct {
	WorkExperiences []*dto.WorkExperienceValues `json:"workExperiences"`
}

func (WorkExperiencesChanged) Step() Step { return StepWorkExperience }

func (e WorkExperiencesChanged) apply(d *dto.ResumeValues) {
	d.WorkExperiences = compact(e.WorkExperiences)
}

type SkillsChanged struct {
	Skills []*string `json:"skills"`
}

func (SkillsChanged) Step() Step { return StepSkills }

func (e SkillsChanged) apply(d *dto.ResumeValues) {
	d.Skills = compact(e.Skills)
}

type ProjectsChanged struct {
	Projects []*dto.ProjectValues `json:"projects"`
}

func (ProjectsChanged) Step() Step { return StepProjects }

func (e ProjectsChanged) apply(d *dto.ResumeValues) {
	projects := compact(e.Projects)
	for i := range projects {
		if projects[i].TechStack == nil {
			projects[i].TechStack = []string{}
		} else {
			projects[i].TechStack = append([]string{}, projects[i].TechStack...)
		}
	}
	d.Projects = projects
}

type HobbiesChanged struct {
	Hobbies []*dto.HobbyValues `json:"hobbies"`
}

func (HobbiesChanged) Step() Step { return StepHobbies }

func (e HobbiesChanged) apply(d *dto.ResumeValues) {
	d.Hobbies = compact(e.Hobbies)
}

// compact копирует значения, пропуская nil. Результат не nil.
func compact[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, item := range in {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}

// DecodeEvent разбирает JSON формы шага в событие этого шага.
func DecodeEvent(step Step, data []byte) (Event, error) {
	var evt Event
	switch step {
	case StepGeneralInfo:
		var e GeneralInfoChanged
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		evt = e
	case StepPersonalInfo:
		var e PersonalInfoChanged
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		evt = e
	case StepCareerGoals:
		var e SummaryChanged
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		evt = e
	case StepEducation:
		var e EducationsChanged
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		evt = e
	case StepWorkExperience:
		var e WorkExperiencesChanged
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		evt = e
	case StepSkills:
		var e SkillsChanged
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		evt = e
	case StepProjects:
		var e ProjectsChanged
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		evt = e
	case StepHobbies:
		var e HobbiesChanged
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		evt = e
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	return evt, nil
}
