package services

import (
	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services/dto"
	"projecthub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CommentService interface {
	Add(db *gorm.DB, taskID, actorID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListByTask(db *gorm.DB, taskID, actorID string) ([]dto.CommentResponse, error)
}

type CommentServiceImpl struct {
	guard               AccessGuard
	commentRepo         repositories.CommentRepository
	memberRepo          repositories.MemberRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
}

func NewCommentService(
	guard AccessGuard,
	commentRepo repositories.CommentRepository,
	memberRepo repositories.MemberRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
) CommentService {
	return &CommentServiceImpl{
		guard:               guard,
		commentRepo:         commentRepo,
		memberRepo:          memberRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *CommentServiceImpl) Add(db *gorm.DB, taskID, actorID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	task, access, err := s.guard.CheckTask(db, taskID, actorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:  task.ID,
		UserID:  actorID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	memberIDs, err := projectMemberIDs(db, s.memberRepo, access.Project.ID)
	if err != nil {
		// The comment is already committed; recipient resolution failure
		// only degrades fan-out.
		logger.Error("failed to resolve comment notification recipients",
			"project_id", access.Project.ID, "task_id", task.ID, "error", err)
		memberIDs = nil
	}
	s.notificationService.Fanout(db, CommentAddedEvent{
		Task:      task,
		MemberIDs: memberIDs,
		ActorID:   actorID,
	})

	if author, err := s.userRepo.FindByID(db, actorID); err == nil {
		comment.User = author
	}
	return dto.NewCommentResponse(comment), nil
}

func (s *CommentServiceImpl) ListByTask(db *gorm.DB, taskID, actorID string) ([]dto.CommentResponse, error) {
	if _, _, err := s.guard.CheckTask(db, taskID, actorID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByTask(db, taskID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.NewCommentResponse(&comments[i]))
	}
	return responses, nil
}

func projectMemberIDs(db *gorm.DB, memberRepo repositories.MemberRepository, projectID string) ([]string, error) {
	members, err := memberRepo.FindByProject(db, projectID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for i := range members {
		ids = append(ids, members[i].UserID)
	}
	return ids, nil
}
