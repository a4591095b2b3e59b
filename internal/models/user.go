package models

type User struct {
	BaseModel
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Relations
	Memberships   []ProjectMember `gorm:"foreignKey:UserID" json:"-"`
	Notifications []Notification  `gorm:"foreignKey:UserID" json:"-"`
}
