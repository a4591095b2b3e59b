package models

import "time"

type Project struct {
	BaseModel
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedByID string        `gorm:"type:uuid;not null;index" json:"createdById"`

	// Relations
	CreatedBy   *User               `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	Members     []ProjectMember     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Tasks       []Task              `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Discussions []ProjectDiscussion `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"discussions,omitempty"`
}

type ProjectMember struct {
	BaseModel
	ProjectID string     `gorm:"type:uuid;not null;uniqueIndex:idx_project_user" json:"projectId"`
	UserID    string     `gorm:"type:uuid;not null;uniqueIndex:idx_project_user" json:"userId"`
	Role      MemberRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time  `gorm:"default:now()" json:"joinedAt"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}
