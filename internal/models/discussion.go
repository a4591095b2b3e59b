package models

type ProjectDiscussion struct {
	BaseModel
	ProjectID string `gorm:"type:uuid;not null;index" json:"projectId"`
	UserID    string `gorm:"type:uuid;not null" json:"userId"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"not null" json:"content"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
