// Package render строит из черновика резюме дерево документа для одного
// из шаблонов и сериализует его в HTML для предпросмотра.
package render

import "cvbuilder_backend/internal/models"

type SectionKind string

const (
	SectionPersonalInfo SectionKind = "personal-info"
	SectionSummary      SectionKind = "summary"
	SectionEducation    SectionKind = "education"
	SectionExperience   SectionKind = "work-experience"
	SectionSkills       SectionKind = "skills"
	SectionProjects     SectionKind = "projects"
	SectionHobbies      SectionKind = "hobbies"
)

// Заголовки разделов
var sectionTitles = map[SectionKind]string{
	SectionPersonalInfo: "Thông tin cá nhân",
	SectionSummary:      "Mục tiêu nghề nghiệp",
	SectionEducation:    "Học vấn",
	SectionExperience:   "Kinh nghiệm làm việc",
	SectionSkills:       "Kỹ năng",
	SectionProjects:     "Dự án",
	SectionHobbies:      "Sở thích",
}

type Layout string

const (
	LayoutSingleColumn   Layout = "single-column"
	LayoutSidebar        Layout = "sidebar"
	LayoutGradientHeader Layout = "gradient-header"
	LayoutCentered       Layout = "centered"
)

// Header - блок личной информации; присутствует всегда.
type Header struct {
	FullName    string
	JobTitle    string
	Location    string
	Phone       string
	Email       string
	Photo       string
	PhotoRadius string
}

type Item struct {
	Heading    string
	Subheading string
	DateLine   string
	Body       string
	Tags       []string
}

type Section struct {
	Kind  SectionKind
	Title string
	Body  string
	Items []Item
	Tags  []string
}

// Document - отрисованное резюме. Sidebar - боковая колонка
// (professional, creative), у одноколоночных шаблонов пуста.
type Document struct {
	Template models.TemplateType
	Layout   Layout
	Accent   string
	Gradient string
	ChipText string
	Header   Header
	Main     []Section
	Sidebar  []Section

	transientPhoto bool
}

// Kinds - разделы в порядке чтения: личная информация, основная колонка, боковая.
func (d *Document) Kinds() []SectionKind {
	kinds := []SectionKind{SectionPersonalInfo}
	for _, s := range d.Main {
		kinds = append(kinds, s.Kind)
	}
	for _, s := range d.Sidebar {
		kinds = append(kinds, s.Kind)
	}
	return kinds
}

// Section ищет раздел по виду.
func (d *Document) Section(kind SectionKind) (Section, bool) {
	for _, cols := range [][]Section{d.Main, d.Sidebar} {
		for _, s := range cols {
			if s.Kind == kind {
				return s, true
			}
		}
	}
	return Section{}, false
}

// Release сбрасывает временную ссылку на фото (data URI ожидающего файла).
func (d *Document) Release() {
	if d.transientPhoto {
		d.Header.Photo = ""
		d.transientPhoto = false
	}
}
