package services

import (
	"projecthub_backend/internal/email"
	"projecthub_backend/internal/repositories"
)

// ServiceContainer wires every service over the shared repository set.
type ServiceContainer struct {
	Guard         AccessGuard
	Auth          AuthService
	Projects      ProjectService
	Members       MemberService
	Tasks         TaskService
	Comments      CommentService
	Discussions   DiscussionService
	Notifications NotificationService
}

func NewServiceContainer(emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	projectRepo := repositories.NewProjectRepository()
	memberRepo := repositories.NewMemberRepository()
	taskRepo := repositories.NewTaskRepository()
	commentRepo := repositories.NewCommentRepository()
	discussionRepo := repositories.NewDiscussionRepository()
	notificationRepo := repositories.NewNotificationRepository()

	guard := NewAccessGuard(projectRepo, memberRepo, taskRepo)
	notifications := NewNotificationService(notificationRepo)

	return &ServiceContainer{
		Guard:         guard,
		Auth:          NewAuthService(userRepo),
		Projects:      NewProjectService(guard, projectRepo, memberRepo, taskRepo),
		Members:       NewMemberService(guard, memberRepo, userRepo, notifications, emailProvider),
		Tasks:         NewTaskService(guard, taskRepo, memberRepo, notifications),
		Comments:      NewCommentService(guard, commentRepo, memberRepo, userRepo, notifications),
		Discussions:   NewDiscussionService(guard, discussionRepo, memberRepo, userRepo, notifications),
		Notifications: notifications,
	}
}
