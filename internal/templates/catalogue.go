// Package templates содержит каталог шаблонов-заготовок резюме.
// Заготовка никогда не сохраняется как есть: NewDraft возвращает копию.
package templates

import (
	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/services/dto"
)

// Template - элемент галереи шаблонов.
type Template struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Thumbnail    string              `json:"thumbnail"`
	TemplateType models.TemplateType `json:"templateType"`
	Data         dto.ResumeValues    `json:"data"`
}

var catalogue = []Template{
	{
		ID:           "blank",
		Name:         "Template trắng",
		Description:  "Bắt đầu với một template trống, tùy chỉnh theo ý của bạn",
		Thumbnail:    "/templates/blank.png",
		TemplateType: models.TemplateBlank,
		Data: dto.ResumeValues{
			Title:       "CV của tôi",
			ColorHex:    "#2563eb",
			BorderStyle: string(models.BorderSquare),
		},
	},
	{
		ID:           "professional",
		Name:         "Chuyên nghiệp",
		Description:  "Template hiện đại, chuyên nghiệp phù hợp cho hầu hết các ngành",
		Thumbnail:    "/templates/professional.png",
		TemplateType: models.TemplateProfessional,
		Data: dto.ResumeValues{
			Title:     "CV Chuyên nghiệp",
			FirstName: "Nguyễn",
			LastName:  "Văn A",
			JobTitle:  "Kỹ sư phần mềm",
			City:      "Hà Nội",
			Country:   "Việt Nam",
			Email:     "example@email.com",
			Phone:     "0123456789",
			Summary:   "Kỹ sư phần mềm với 5 năm kinh nghiệm trong phát triển web và mobile.",
			WorkExperiences: []dto.WorkExperienceValues{
				{
					Position:    "Senior Frontend Developer",
					Company:     "Tech Company X",
					StartDate:   "2021-01-01",
					EndDate:     "2023-12-31",
					Description: "Phát triển và duy trì các ứng dụng web. Tối ưu hiệu suất và trải nghiệm người dùng.",
				},
				{
					Position:    "Web Developer",
					Company:     "Agency Y",
					StartDate:   "2018-06-01",
					EndDate:     "2020-12-31",
					Description: "Xây dựng website cho khách hàng.",
				},
			},
			Educations: []dto.EducationValues{
				{Degree: "Kỹ sư Công nghệ thông tin", School: "Đại học Bách Khoa Hà Nội", StartDate: "2014-09-01", EndDate: "2018-05-31"},
			},
			Skills:      []string{"HTML", "CSS", "JavaScript", "Go", "PostgreSQL", "Git", "Docker", "TypeScript"},
			ColorHex:    "#2563eb",
			BorderStyle: string(models.BorderSquare),
		},
	},
	{
		ID:           "creative",
		Name:         "Sáng tạo",
		Description:  "Template năng động, sáng tạo phù hợp cho ngành thiết kế và marketing",
		Thumbnail:    "/templates/creative.png",
		TemplateType: models.TemplateCreative,
		Data: dto.ResumeValues{
			Title:     "CV Sáng tạo",
			FirstName: "Trần",
			LastName:  "Thị B",
			JobTitle:  "UI/UX Designer",
			City:      "Hồ Chí Minh",
			Country:   "Việt Nam",
			Email:     "design@email.com",
			Phone:     "0987654321",
			Summary:   "Designer với 4 năm kinh nghiệm trong thiết kế UI/UX.",
			WorkExperiences: []dto.WorkExperienceValues{
				{
					Position:    "Senior UI/UX Designer",
					Company:     "Creative Studio Z",
					StartDate:   "2020-03-01",
					EndDate:     "2023-12-31",
					Description: "Thiết kế giao diện và trải nghiệm người dùng cho ứng dụng web và mobile.",
				},
				{
					Position:    "Graphic Designer",
					Company:     "Marketing Agency W",
					StartDate:   "2018-01-01",
					EndDate:     "2020-02-28",
					Description: "Thiết kế tài liệu marketing, banner và logo.",
				},
			},
			Educations: []dto.EducationValues{
				{Degree: "Cử nhân Thiết kế Đồ họa", School: "Đại học Mỹ thuật TP.HCM", StartDate: "2014-09-01", EndDate: "2018-05-31"},
			},
			Skills:      []string{"Figma", "Adobe XD", "Photoshop", "Illustrator", "UI Design", "UX Research", "Wireframing", "Prototyping"},
			ColorHex:    "#ec4899",
			BorderStyle: string(models.BorderSquircle),
		},
	},
	{
		ID:           "minimal",
		Name:         "Tối giản",
		Description:  "Template đơn giản và đầy đủ thông tin, phù hợp cho mọi ngành nghề",
		Thumbnail:    "/templates/minimal.png",
		TemplateType: models.TemplateMinimal,
		Data: dto.ResumeValues{
			Title:     "CV Tối giản",
			FirstName: "Lê",
			LastName:  "Văn C",
			JobTitle:  "Project Manager",
			City:      "Đà Nẵng",
			Country:   "Việt Nam",
			Email:     "manager@email.com",
			Phone:     "0369852147",
			Summary:   "Quản lý dự án với hơn 7 năm kinh nghiệm trong lĩnh vực công nghệ.",
			WorkExperiences: []dto.WorkExperienceValues{
				{
					Position:    "Senior Project Manager",
					Company:     "Tech Solutions Corp",
					StartDate:   "2019-06-01",
					EndDate:     "2023-12-31",
					Description: "Quản lý 5+ dự án phát triển phần mềm quy mô lớn.\nĐiều phối đội ngũ 15 người.",
				},
				{
					Position:    "Project Coordinator",
					Company:     "Digital Agency V",
					StartDate:   "2016-02-01",
					EndDate:     "2019-05-31",
					Description: "Hỗ trợ quản lý 10+ dự án web và mobile app.",
				},
			},
			Educations: []dto.EducationValues{
				{Degree: "Thạc sĩ Quản trị Kinh doanh", School: "Đại học Kinh tế Đà Nẵng", StartDate: "2014-09-01", EndDate: "2016-05-31"},
				{Degree: "Cử nhân Công nghệ Thông tin", School: "Đại học Đà Nẵng", StartDate: "2010-09-01", EndDate: "2014-05-31"},
			},
			Skills:      []string{"Quản lý dự án", "Agile/Scrum", "Kanban", "Jira", "Lãnh đạo", "Quản lý rủi ro"},
			ColorHex:    "#000000",
			BorderStyle: string(models.BorderSquare),
		},
	},
}

// All возвращает копию каталога в порядке показа.
func All() []Template {
	out := make([]Template, len(catalogue))
	for i, t := range catalogue {
		t.Data = t.Data.Clone()
		out[i] = t
	}
	return out
}

// Get ищет шаблон по id.
func Get(id string) (Template, bool) {
	for _, t := range catalogue {
		if t.ID == id {
			t.Data = t.Data.Clone()
			return t, true
		}
	}
	return Template{}, false
}

// NewDraft копирует данные шаблона в новый несохраненный черновик.
func NewDraft(id string) (dto.ResumeValues, bool) {
	t, ok := Get(id)
	if !ok {
		return dto.ResumeValues{}, false
	}
	draft := t.Data.Normalize()
	draft.ID = ""
	draft.Photo = dto.NoPhoto()
	draft.TemplateType = string(t.TemplateType)
	return draft, true
}
