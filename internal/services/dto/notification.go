package dto

import (
	"time"

	"projecthub_backend/internal/models"
)

type MarkReadRequest struct {
	NotificationIDs []string `json:"notificationIds" validate:"required,min=1"`
}

type NotificationResponse struct {
	ID        string                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Data      map[string]string       `json:"data,omitempty"`
	Read      bool                    `json:"read"`
	ReadAt    *time.Time              `json:"readAt,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}
