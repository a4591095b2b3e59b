package services

import (
	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services/dto"
	"projecthub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type DiscussionService interface {
	Add(db *gorm.DB, projectID, actorID string, req *dto.CreateDiscussionRequest) (*dto.DiscussionResponse, error)
	ListByProject(db *gorm.DB, projectID, actorID string) ([]dto.DiscussionResponse, error)
}

type DiscussionServiceImpl struct {
	guard               AccessGuard
	discussionRepo      repositories.DiscussionRepository
	memberRepo          repositories.MemberRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
}

func NewDiscussionService(
	guard AccessGuard,
	discussionRepo repositories.DiscussionRepository,
	memberRepo repositories.MemberRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
) DiscussionService {
	return &DiscussionServiceImpl{
		guard:               guard,
		discussionRepo:      discussionRepo,
		memberRepo:          memberRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *DiscussionServiceImpl) Add(db *gorm.DB, projectID, actorID string, req *dto.CreateDiscussionRequest) (*dto.DiscussionResponse, error) {
	if _, err := s.guard.CheckProject(db, projectID, actorID); err != nil {
		return nil, err
	}

	discussion := &models.ProjectDiscussion{
		ProjectID: projectID,
		UserID:    actorID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := s.discussionRepo.Create(db, discussion); err != nil {
		return nil, apperrors.InternalError(err)
	}

	memberIDs, err := projectMemberIDs(db, s.memberRepo, projectID)
	if err != nil {
		logger.Error("failed to resolve discussion notification recipients",
			"project_id", projectID, "error", err)
		memberIDs = nil
	}
	s.notificationService.Fanout(db, DiscussionAddedEvent{
		Discussion: discussion,
		MemberIDs:  memberIDs,
		ActorID:    actorID,
	})

	if author, err := s.userRepo.FindByID(db, actorID); err == nil {
		discussion.User = author
	}
	return dto.NewDiscussionResponse(discussion), nil
}

func (s *DiscussionServiceImpl) ListByProject(db *gorm.DB, projectID, actorID string) ([]dto.DiscussionResponse, error) {
	if _, err := s.guard.CheckProject(db, projectID, actorID); err != nil {
		return nil, err
	}

	discussions, err := s.discussionRepo.FindByProject(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.DiscussionResponse, 0, len(discussions))
	for i := range discussions {
		responses = append(responses, *dto.NewDiscussionResponse(&discussions[i]))
	}
	return responses, nil
}
