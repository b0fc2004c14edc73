package dto

import (
	"bytes"
	"encoding/json"
	"html"
	"regexp"
	"strings"

	"cvbuilder_backend/internal/models"

	"github.com/microcosm-cc/bluemonday"
)

// ============================================
// PHOTO
// ============================================

// PhotoKind - состояние фото в черновике резюме.
type PhotoKind int

const (
	// PhotoKeep - поле отсутствовало во входных данных: фото не трогаем.
	PhotoKeep PhotoKind = iota
	// PhotoNone - явное удаление фото.
	PhotoNone
	// PhotoURL - уже сохраненное фото.
	PhotoURL
	// PhotoPending - выбранный, но еще не загруженный файл.
	PhotoPending
)

// PendingFile - содержимое файла, ожидающего загрузки.
type PendingFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Photo - размеченное объединение "нет / URL / файл".
type Photo struct {
	Kind    PhotoKind
	URL     string
	Pending *PendingFile
}

func NoPhoto() Photo                     { return Photo{Kind: PhotoNone} }
func PhotoFromURL(url string) Photo      { return Photo{Kind: PhotoURL, URL: url} }
func PhotoFromFile(f *PendingFile) Photo { return Photo{Kind: PhotoPending, Pending: f} }

// IsSet сообщает, что фото явно присутствует (URL или файл).
func (p Photo) IsSet() bool {
	return p.Kind == PhotoURL || p.Kind == PhotoPending
}

// UnmarshalJSON: null - удаление, строка - URL.
// Отсутствующее поле не вызывает UnmarshalJSON и остается PhotoKeep.
func (p *Photo) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = NoPhoto()
		return nil
	}
	var url string
	if err := json.Unmarshal(data, &url); err != nil {
		return err
	}
	url = strings.TrimSpace(url)
	if url == "" {
		*p = NoPhoto()
		return nil
	}
	*p = PhotoFromURL(url)
	return nil
}

// MarshalJSON отдает URL строкой, остальные состояния - null.
func (p Photo) MarshalJSON() ([]byte, error) {
	if p.Kind == PhotoURL {
		return json.Marshal(p.URL)
	}
	return []byte("null"), nil
}

// ============================================
// RESUME VALUES
// ============================================

// ResumeValues - единая схема резюме для редактора и API.
type ResumeValues struct {
	ID           string `json:"id,omitempty" validate:"omitempty,max=64"`
	Title        string `json:"title" validate:"max=200"`
	Description  string `json:"description" validate:"max=1000"`
	Photo        Photo  `json:"photo"`
	ColorHex     string `json:"colorHex" validate:"omitempty,is-hex-color"`
	BorderStyle  string `json:"borderStyle" validate:"omitempty,is-border-style"`
	TemplateType string `json:"templateType" validate:"omitempty,is-template-type"`
	Summary      string `json:"summary" validate:"max=5000"`

	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	JobTitle  string `json:"jobTitle" validate:"max=150"`
	City      string `json:"city" validate:"max=100"`
	Country   string `json:"country" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=30"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`

	WorkExperiences []WorkExperienceValues `json:"workExperiences" validate:"max=50,dive"`
	Educations      []EducationValues      `json:"educations" validate:"max=50,dive"`
	Projects        []ProjectValues        `json:"projects" validate:"max=50,dive"`
	Skills          []string               `json:"skills" validate:"max=50,dive,max=100"`
	Hobbies         []HobbyValues          `json:"hobbies" validate:"max=50,dive"`
}

// Даты - строки YYYY-MM-DD; пустая дата окончания означает "по настоящее время".
type WorkExperienceValues struct {
	Position    string `json:"position" validate:"max=150"`
	Company     string `json:"company" validate:"max=150"`
	StartDate   string `json:"startDate" validate:"omitempty,iso-date"`
	EndDate     string `json:"endDate" validate:"omitempty,iso-date"`
	Description string `json:"description" validate:"max=5000"`
}

type EducationValues struct {
	Degree    string `json:"degree" validate:"max=150"`
	School    string `json:"school" validate:"max=150"`
	StartDate string `json:"startDate" validate:"omitempty,iso-date"`
	EndDate   string `json:"endDate" validate:"omitempty,iso-date"`
}

type ProjectValues struct {
	Name        string   `json:"name" validate:"max=150"`
	Role        string   `json:"role" validate:"max=150"`
	StartDate   string   `json:"startDate" validate:"omitempty,iso-date"`
	EndDate     string   `json:"endDate" validate:"omitempty,iso-date"`
	Description string   `json:"description" validate:"max=5000"`
	TechStack   []string `json:"techStack" validate:"max=30,dive,max=60"`
}

type HobbyValues struct {
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=1000"`
}

func (w WorkExperienceValues) IsEmpty() bool {
	return w.Position == "" && w.Company == "" && w.StartDate == "" && w.EndDate == "" && w.Description == ""
}

func (e EducationValues) IsEmpty() bool {
	return e.Degree == "" && e.School == "" && e.StartDate == "" && e.EndDate == ""
}

func (p ProjectValues) IsEmpty() bool {
	return p.Name == "" && p.Role == "" && p.StartDate == "" && p.EndDate == "" &&
		p.Description == "" && len(p.TechStack) == 0
}

func (h HobbyValues) IsEmpty() bool {
	return h.Name == "" && h.Description == ""
}

// ============================================
// NORMALIZE
// ============================================

var textPolicy = bluemonday.StrictPolicy()

// markupTag находит настоящие HTML-теги и комментарии. Текст вроде
// "C++ & <Go>" разметкой не считается и остается как есть.
var markupTag = regexp.MustCompile(`(?i)<!--|</?(?:a|abbr|address|area|article|aside|audio|b|base|bdo|big|blink|blockquote|body|br|button|canvas|center|code|col|dd|del|details|dialog|div|dl|dt|em|embed|fieldset|font|footer|form|frame|frameset|h[1-6]|head|header|hr|html|i|iframe|img|input|ins|kbd|label|li|link|main|mark|marquee|math|meta|nav|noscript|object|ol|option|p|param|pre|q|s|script|section|select|small|source|span|strike|strong|style|sub|summary|sup|svg|table|tbody|td|template|textarea|tfoot|th|thead|title|tr|u|ul|video|xmp)(?:[\s/][^<>]*)?>`)

// cleanText убирает разметку и пробелы по краям. Текст без тегов
// не декодируется. Повторный вызов на результате ничего не меняет.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	for markupTag.MatchString(s) {
		next := strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
		// каждый проход убирает хотя бы один тег
		if len(next) >= len(s) {
			break
		}
		s = next
	}
	return s
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = cleanText(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Normalize возвращает очищенную копию: текст без разметки и пробелов
// по краям, без пустых записей в коллекциях, все коллекции не nil.
// Normalize(Normalize(v)) == Normalize(v).
func (v ResumeValues) Normalize() ResumeValues {
	out := v
	out.ID = strings.TrimSpace(v.ID)
	out.Title = cleanText(v.Title)
	out.Description = cleanText(v.Description)
	out.ColorHex = strings.ToLower(strings.TrimSpace(v.ColorHex))
	out.BorderStyle = strings.ToLower(strings.TrimSpace(v.BorderStyle))
	if tt := strings.TrimSpace(v.TemplateType); tt != "" {
		out.TemplateType = string(models.ParseTemplateType(tt))
	}
	out.Summary = cleanText(v.Summary)

	out.FirstName = cleanText(v.FirstName)
	out.LastName = cleanText(v.LastName)
	out.JobTitle = cleanText(v.JobTitle)
	out.City = cleanText(v.City)
	out.Country = cleanText(v.Country)
	out.Phone = cleanText(v.Phone)
	out.Email = strings.TrimSpace(v.Email)

	if v.Photo.Kind == PhotoURL {
		out.Photo.URL = strings.TrimSpace(v.Photo.URL)
		if out.Photo.URL == "" {
			out.Photo = NoPhoto()
		}
	}

	out.WorkExperiences = make([]WorkExperienceValues, 0, len(v.WorkExperiences))
	for _, w := range v.WorkExperiences {
		w = WorkExperienceValues{
			Position:    cleanText(w.Position),
			Company:     cleanText(w.Company),
			StartDate:   strings.TrimSpace(w.StartDate),
			EndDate:     strings.TrimSpace(w.EndDate),
			Description: cleanText(w.Description),
		}
		if !w.IsEmpty() {
			out.WorkExperiences = append(out.WorkExperiences, w)
		}
	}

	out.Educations = make([]EducationValues, 0, len(v.Educations))
	for _, e := range v.Educations {
		e = EducationValues{
			Degree:    cleanText(e.Degree),
			School:    cleanText(e.School),
			StartDate: strings.TrimSpace(e.StartDate),
			EndDate:   strings.TrimSpace(e.EndDate),
		}
		if !e.IsEmpty() {
			out.Educations = append(out.Educations, e)
		}
	}

	out.Projects = make([]ProjectValues, 0, len(v.Projects))
	for _, p := range v.Projects {
		p = ProjectValues{
			Name:        cleanText(p.Name),
			Role:        cleanText(p.Role),
			StartDate:   strings.TrimSpace(p.StartDate),
			EndDate:     strings.TrimSpace(p.EndDate),
			Description: cleanText(p.Description),
			TechStack:   cleanList(p.TechStack),
		}
		if !p.IsEmpty() {
			out.Projects = append(out.Projects, p)
		}
	}

	out.Hobbies = make([]HobbyValues, 0, len(v.Hobbies))
	for _, h := range v.Hobbies {
		h = HobbyValues{Name: cleanText(h.Name), Description: cleanText(h.Description)}
		if !h.IsEmpty() {
			out.Hobbies = append(out.Hobbies, h)
		}
	}

	out.Skills = cleanList(v.Skills)
	return out
}

// Clone возвращает глубокую копию черновика.
func (v ResumeValues) Clone() ResumeValues {
	out := v
	out.WorkExperiences = append([]WorkExperienceValues(nil), v.WorkExperiences...)
	out.Educations = append([]EducationValues(nil), v.Educations...)
	out.Hobbies = append([]HobbyValues(nil), v.Hobbies...)
	out.Skills = append([]string(nil), v.Skills...)
	out.Projects = make([]ProjectValues, len(v.Projects))
	for i, p := range v.Projects {
		p.TechStack = append([]string(nil), p.TechStack...)
		out.Projects[i] = p
	}
	if v.Photo.Pending != nil {
		f := *v.Photo.Pending
		f.Data = append([]byte(nil), v.Photo.Pending.Data...)
		out.Photo.Pending = &f
	}
	return out
}

// FullName - "Имя Фамилия" без лишних пробелов.
func (v ResumeValues) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

// ============================================
// RESPONSES
// ============================================

// ResumeResponse - резюме в ответах API.
type ResumeResponse struct {
	ResumeValues
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SaveResumeResponse - ответ на сохранение (с текстом для уведомления).
type SaveResumeResponse struct {
	Message string          `json:"message"`
	Resume  *ResumeResponse `json:"resume"`
}
