package handlers

import (
	"projecthub_backend/internal/services"
	"projecthub_backend/internal/validator"
)

// AppHandlers holds every route handler of the application.
type AppHandlers struct {
	Auth          *AuthHandler
	Projects      *ProjectHandler
	Tasks         *TaskHandler
	Notifications *NotificationHandler
	Health        *HealthHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:          NewAuthHandler(base, sc.Auth),
		Projects:      NewProjectHandler(base, sc.Projects, sc.Members, sc.Discussions),
		Tasks:         NewTaskHandler(base, sc.Tasks, sc.Comments),
		Notifications: NewNotificationHandler(base, sc.Notifications),
		Health:        NewHealthHandler(base),
	}
}
