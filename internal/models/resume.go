package models

import (
	"time"

	"gorm.io/datatypes"
)

type Resume struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);not null;index" json:"userId"`

	Title        string       `gorm:"type:varchar(200)" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	PhotoURL     *string      `json:"photoUrl"`
	ColorHex     string       `gorm:"type:varchar(9);not null;default:'#000000'" json:"colorHex"`
	BorderStyle  BorderStyle  `gorm:"type:varchar(20);not null;default:'squircle'" json:"borderStyle"`
	TemplateType TemplateType `gorm:"type:varchar(20);not null;default:'blank'" json:"templateType"`
	Summary      string       `gorm:"type:text" json:"summary"`

	FirstName string `gorm:"type:varchar(100)" json:"firstName"`
	LastName  string `gorm:"type:varchar(100)" json:"lastName"`
	JobTitle  string `gorm:"type:varchar(150)" json:"jobTitle"`
	City      string `gorm:"type:varchar(100)" json:"city"`
	Country   string `gorm:"type:varchar(100)" json:"country"`
	Phone     string `gorm:"type:varchar(30)" json:"phone"`
	Email     string `gorm:"type:varchar(255)" json:"email"`

	Skills datatypes.JSONSlice[string] `json:"skills"`

	WorkExperiences []WorkExperience `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"workExperiences"`
	Educations      []Education      `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"educations"`
	Projects        []Project        `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"projects"`
	Hobbies         []Hobby          `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"hobbies"`
}

type WorkExperience struct {
	BaseModel
	ResumeID    string     `gorm:"type:varchar(36);not null;index" json:"-"`
	OrderIndex  int        `gorm:"not null;default:0" json:"-"`
	Position    string     `gorm:"type:varchar(150)" json:"position"`
	Company     string     `gorm:"type:varchar(150)" json:"company"`
	StartDate   *time.Time `gorm:"type:date" json:"startDate"`
	EndDate     *time.Time `gorm:"type:date" json:"endDate"`
	Description string     `gorm:"type:text" json:"description"`
}

type Education struct {
	BaseModel
	ResumeID   string     `gorm:"type:varchar(36);not null;index" json:"-"`
	OrderIndex int        `gorm:"not null;default:0" json:"-"`
	Degree     string     `gorm:"type:varchar(150)" json:"degree"`
	School     string     `gorm:"type:varchar(150)" json:"school"`
	StartDate  *time.Time `gorm:"type:date" json:"startDate"`
	EndDate    *time.Time `gorm:"type:date" json:"endDate"`
}

type Project struct {
	BaseModel
	ResumeID    string                      `gorm:"type:varchar(36);not null;index" json:"-"`
	OrderIndex  int                         `gorm:"not null;default:0" json:"-"`
	Name        string                      `gorm:"type:varchar(150)" json:"name"`
	Role        string                      `gorm:"type:varchar(150)" json:"role"`
	StartDate   *time.Time                  `gorm:"type:date" json:"startDate"`
	EndDate     *time.Time                  `gorm:"type:date" json:"endDate"`
	Description string                      `gorm:"type:text" json:"description"`
	TechStack   datatypes.JSONSlice[string] `json:"techStack"`
}

type Hobby struct {
	BaseModel
	ResumeID    string `gorm:"type:varchar(36);not null;index" json:"-"`
	OrderIndex  int    `gorm:"not null;default:0" json:"-"`
	Name        string `gorm:"type:varchar(100)" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}
