package services

import (
	"errors"
	"fmt"

	"projecthub_backend/internal/email"
	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services/dto"
	"projecthub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MemberService interface {
	List(db *gorm.DB, projectID, actorID string) ([]dto.MemberResponse, error)
	Add(db *gorm.DB, projectID, actorID string, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	Remove(db *gorm.DB, projectID, actorID, userID string) error
}

type MemberServiceImpl struct {
	guard               AccessGuard
	memberRepo          repositories.MemberRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
	emailProvider       email.Provider
}

func NewMemberService(
	guard AccessGuard,
	memberRepo repositories.MemberRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
	emailProvider email.Provider,
) MemberService {
	return &MemberServiceImpl{
		guard:               guard,
		memberRepo:          memberRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		emailProvider:       emailProvider,
	}
}

func (s *MemberServiceImpl) List(db *gorm.DB, projectID, actorID string) ([]dto.MemberResponse, error) {
	if _, err := s.guard.CheckProject(db, projectID, actorID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.FindByProject(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, dto.NewMemberResponse(&members[i]))
	}
	return responses, nil
}

// Add requires OWNER or ADMIN. The unique index on (project_id, user_id)
// settles concurrent duplicate adds; the violation surfaces as the
// "already a member" rule violation, never a 500.
func (s *MemberServiceImpl) Add(db *gorm.DB, projectID, actorID string, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	access, err := s.guard.CheckProject(db, projectID, actorID, models.RoleOwner, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(db, req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      models.MemberRole(req.Role),
	}
	if err := s.memberRepo.Create(db, member); err != nil {
		if errors.Is(err, repositories.ErrDuplicateMember) {
			return nil, apperrors.ErrAlreadyMember
		}
		return nil, apperrors.InternalError(err)
	}

	s.notificationService.Fanout(db, MemberAddedEvent{
		Project:     access.Project,
		NewMemberID: user.ID,
	})
	s.sendInvitationEmail(user, access.Project)

	member.User = user
	return ptrMemberResponse(member), nil
}

// Remove requires OWNER or ADMIN. The recorded creator's membership is
// protected; removing it would leave the project ownerless.
func (s *MemberServiceImpl) Remove(db *gorm.DB, projectID, actorID, userID string) error {
	access, err := s.guard.CheckProject(db, projectID, actorID, models.RoleOwner, models.RoleAdmin)
	if err != nil {
		return err
	}

	if userID == access.Project.CreatedByID {
		return apperrors.ErrCannotRemoveOwner
	}

	if err := s.memberRepo.Delete(db, projectID, userID); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return apperrors.NewNotFoundError("Member")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// sendInvitationEmail is fire-and-forget: a delivery failure only logs.
func (s *MemberServiceImpl) sendInvitationEmail(user *models.User, project *models.Project) {
	if s.emailProvider == nil {
		return
	}

	msg := &email.Email{
		To:      []string{user.Email},
		Subject: fmt.Sprintf("You have been added to %s", project.Name),
		Body: fmt.Sprintf(
			"Hi %s,\r\n\r\nYou have been added to the project %q. Log in to see its tasks and discussions.\r\n",
			user.Name, project.Name,
		),
	}

	go func() {
		if err := s.emailProvider.Send(msg); err != nil {
			logger.Error("invitation email failed", "user_id", user.ID, "error", err)
		}
	}()
}

func ptrMemberResponse(m *models.ProjectMember) *dto.MemberResponse {
	resp := dto.NewMemberResponse(m)
	return &resp
}
