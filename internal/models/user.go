package models

type User struct {
	BaseModel
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	FirstName    string   `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string   `gorm:"type:varchar(100)" json:"lastName"`
	PhoneNumber  string   `gorm:"type:varchar(30)" json:"phoneNumber"`
	AvatarURL    *string  `json:"avatarUrl"`

	Resumes []Resume `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
