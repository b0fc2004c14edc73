package render

import (
	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/services/dto"
)

const (
	defaultAccent             = "#000000"
	defaultProfessionalAccent = "#0f172a"
	defaultCreativeAccent     = "#ec4899"
	gradientBrighten          = 40
)

type options struct {
	photos PhotoResolver
}

type Option func(*options)

func WithPhotoResolver(r PhotoResolver) Option {
	return func(o *options) { o.photos = r }
}

// Render строит документ для шаблона t. Неизвестный шаблон отрисовывается как blank.
func Render(resume dto.ResumeValues, t models.TemplateType, opts ...Option) *Document {
	o := options{photos: DataURIResolver}
	for _, opt := range opts {
		opt(&o)
	}

	var doc *Document
	switch t {
	case models.TemplateProfessional:
		doc = renderProfessional(resume)
	case models.TemplateCreative:
		doc = renderCreative(resume)
	case models.TemplateMinimal:
		doc = renderMinimal(resume)
	default:
		doc = renderBlank(resume)
	}

	doc.Header = header(resume)
	if o.photos != nil {
		doc.Header.Photo, doc.transientPhoto = o.photos.Resolve(resume.Photo)
	}
	doc.ChipText = chipTextColor(doc.Accent)
	return doc
}

func accentOr(colorHex, fallback string) string {
	if colorHex == "" {
		return fallback
	}
	return colorHex
}

func renderBlank(r dto.ResumeValues) *Document {
	return &Document{
		Template: models.TemplateBlank,
		Layout:   LayoutSingleColumn,
		Accent:   accentOr(r.ColorHex, defaultAccent),
		Main: sections(
			summarySection(r),
			educationSection(r),
			experienceSection(r),
			skillsSection(r),
			projectsSection(r),
			hobbiesSection(r),
		),
	}
}

func renderProfessional(r dto.ResumeValues) *Document {
	return &Document{
		Template: models.TemplateProfessional,
		Layout:   LayoutSidebar,
		Accent:   accentOr(r.ColorHex, defaultProfessionalAccent),
		Sidebar:  sections(skillsSection(r)),
		Main: sections(
			summarySection(r),
			educationSection(r),
			experienceSection(r),
			projectsSection(r),
			hobbiesSection(r),
		),
	}
}

func renderCreative(r dto.ResumeValues) *Document {
	accent := accentOr(r.ColorHex, defaultCreativeAccent)
	return &Document{
		Template: models.TemplateCreative,
		Layout:   LayoutGradientHeader,
		Accent:   accent,
		Gradient: brighten(accent, gradientBrighten),
		Main: sections(
			summarySection(r),
			educationSection(r),
			experienceSection(r),
			projectsSection(r),
		),
		Sidebar: sections(
			skillsSection(r),
			hobbiesSection(r),
		),
	}
}

func renderMinimal(r dto.ResumeValues) *Document {
	return &Document{
		Template: models.TemplateMinimal,
		Layout:   LayoutCentered,
		Accent:   accentOr(r.ColorHex, defaultAccent),
		Main: sections(
			summarySection(r),
			experienceSection(r),
			educationSection(r),
			skillsSection(r),
			projectsSection(r),
			hobbiesSection(r),
		),
	}
}

func header(r dto.ResumeValues) Header {
	return Header{
		FullName:    r.FullName(),
		JobTitle:    r.JobTitle,
		Location:    joinNonEmpty(", ", r.City, r.Country),
		Phone:       r.Phone,
		Email:       r.Email,
		PhotoRadius: models.ParseBorderStyle(r.BorderStyle).Radius(),
	}
}

// sections отбрасывает пропущенные (nil) разделы.
func sections(in ...*Section) []Section {
	out := make([]Section, 0, len(in))
	for _, s := range in {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

func newSection(kind SectionKind) *Section {
	return &Section{Kind: kind, Title: sectionTitles[kind]}
}

func summarySection(r dto.ResumeValues) *Section {
	if r.Summary == "" {
		return nil
	}
	s := newSection(SectionSummary)
	s.Body = r.Summary
	return s
}

func educationSection(r dto.ResumeValues) *Section {
	var items []Item
	for _, e := range r.Educations {
		if e.IsEmpty() {
			continue
		}
		items = append(items, Item{
			Heading:    e.Degree,
			Subheading: e.School,
			DateLine:   dateLine(e.StartDate, e.EndDate),
		})
	}
	return itemSection(SectionEducation, items)
}

func experienceSection(r dto.ResumeValues) *Section {
	var items []Item
	for _, w := range r.WorkExperiences {
		if w.IsEmpty() {
			continue
		}
		items = append(items, Item{
			Heading:    w.Position,
			Subheading: w.Company,
			DateLine:   dateLine(w.StartDate, w.EndDate),
			Body:       w.Description,
		})
	}
	return itemSection(SectionExperience, items)
}

func projectsSection(r dto.ResumeValues) *Section {
	var items []Item
	for _, p := range r.Projects {
		if p.IsEmpty() {
			continue
		}
		items = append(items, Item{
			Heading:    p.Name,
			Subheading: p.Role,
			DateLine:   dateLine(p.StartDate, p.EndDate),
			Body:       p.Description,
			Tags:       nonEmpty(p.TechStack),
		})
	}
	return itemSection(SectionProjects, items)
}

func hobbiesSection(r dto.ResumeValues) *Section {
	var items []Item
	for _, h := range r.Hobbies {
		if h.IsEmpty() {
			continue
		}
		items = append(items, Item{Heading: h.Name, Body: h.Description})
	}
	return itemSection(SectionHobbies, items)
}

func skillsSection(r dto.ResumeValues) *Section {
	tags := nonEmpty(r.Skills)
	if len(tags) == 0 {
		return nil
	}
	s := newSection(SectionSkills)
	s.Tags = tags
	return s
}

func itemSection(kind SectionKind, items []Item) *Section {
	if len(items) == 0 {
		return nil
	}
	s := newSection(kind)
	s.Items = items
	return s
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
