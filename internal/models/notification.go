package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTaskAssigned    NotificationType = "TASK_ASSIGNED"
	NotificationTaskUpdated     NotificationType = "TASK_UPDATED"
	NotificationTaskDueSoon     NotificationType = "TASK_DUE_SOON"
	NotificationTaskOverdue     NotificationType = "TASK_OVERDUE"
	NotificationProjectInvited  NotificationType = "PROJECT_INVITED"
	NotificationCommentAdded    NotificationType = "COMMENT_ADDED"
	NotificationDiscussionAdded NotificationType = "DISCUSSION_ADDED"
)

type Notification struct {
	BaseModel
	UserID  string           `gorm:"type:uuid;not null;index" json:"userId"`
	Type    NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `json:"message"`
	Data    datatypes.JSON   `gorm:"type:jsonb" json:"data,omitempty"` // {"project_id": "...", "task_id": "..."}
	IsRead  bool             `gorm:"default:false" json:"read"`
	ReadAt  *time.Time       `json:"readAt,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
