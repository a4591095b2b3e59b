package services

import (
	"errors"

	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Access is the result of a successful guard check: the resolved project and
// the actor's role in it, so callers can make further role-sensitive
// decisions without re-querying.
type Access struct {
	Project *models.Project
	Member  *models.ProjectMember
}

func (a *Access) Role() models.MemberRole {
	return a.Member.Role
}

// AccessGuard decides whether an acting user may touch a project-scoped
// resource. Every denial is reported as NotFound: a non-member, or a member
// with an insufficient role, cannot tell a hidden project from a missing one.
type AccessGuard interface {
	// CheckProject resolves the actor's membership in the project. With no
	// required roles, any membership suffices.
	CheckProject(db *gorm.DB, projectID, actorID string, required ...models.MemberRole) (*Access, error)

	// CheckTask resolves the task first, then runs the project check on the
	// task's project. Denials surface as "Task not found".
	CheckTask(db *gorm.DB, taskID, actorID string, required ...models.MemberRole) (*models.Task, *Access, error)
}

type AccessGuardImpl struct {
	projectRepo repositories.ProjectRepository
	memberRepo  repositories.MemberRepository
	taskRepo    repositories.TaskRepository
}

func NewAccessGuard(
	projectRepo repositories.ProjectRepository,
	memberRepo repositories.MemberRepository,
	taskRepo repositories.TaskRepository,
) AccessGuard {
	return &AccessGuardImpl{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		taskRepo:    taskRepo,
	}
}

func (g *AccessGuardImpl) CheckProject(db *gorm.DB, projectID, actorID string, required ...models.MemberRole) (*Access, error) {
	member, err := g.memberRepo.Find(db, projectID, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !roleAllowed(member.Role, required) {
		return nil, apperrors.ErrProjectNotFound
	}

	project, err := g.projectRepo.FindByID(db, projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return &Access{Project: project, Member: member}, nil
}

func (g *AccessGuardImpl) CheckTask(db *gorm.DB, taskID, actorID string, required ...models.MemberRole) (*models.Task, *Access, error) {
	task, err := g.taskRepo.FindByID(db, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			return nil, nil, apperrors.ErrTaskNotFound
		}
		return nil, nil, apperrors.InternalError(err)
	}

	access, err := g.CheckProject(db, task.ProjectID, actorID, required...)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrProjectNotFound) {
			return nil, nil, apperrors.ErrTaskNotFound
		}
		return nil, nil, err
	}

	return task, access, nil
}

// roleAllowed treats an empty required set as "any membership".
func roleAllowed(role models.MemberRole, required []models.MemberRole) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}
