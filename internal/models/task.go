package models

import "time"

type Task struct {
	BaseModel
	ProjectID   string       `gorm:"type:uuid;not null;index" json:"projectId"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	CreatedByID string       `gorm:"type:uuid;not null" json:"createdById"`
	// Assignment is optional; membership of the assignee is checked at
	// assignment time only, never retroactively.
	AssignedToID *string `gorm:"type:uuid;index" json:"assignedToId"`

	// Relations
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	CreatedBy  *User     `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	AssignedTo *User     `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	Comments   []Comment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// Comment content is immutable once posted; there is no update or delete path.
type Comment struct {
	BaseModel
	TaskID  string `gorm:"type:uuid;not null;index" json:"taskId"`
	UserID  string `gorm:"type:uuid;not null" json:"userId"`
	Content string `gorm:"not null" json:"content"`

	// Relations
	Task *Task `gorm:"foreignKey:TaskID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
