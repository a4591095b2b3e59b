package services

import (
	"errors"
	"time"

	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services/dto"
	"projecthub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProjectService interface {
	Create(db *gorm.DB, actorID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	List(db *gorm.DB, actorID string) ([]dto.ProjectResponse, error)
	Get(db *gorm.DB, projectID, actorID string) (*dto.ProjectResponse, error)
	Update(db *gorm.DB, projectID, actorID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(db *gorm.DB, projectID, actorID string) error
	Dashboard(db *gorm.DB, projectID, actorID string) (*dto.DashboardResponse, error)
}

type ProjectServiceImpl struct {
	guard       AccessGuard
	projectRepo repositories.ProjectRepository
	memberRepo  repositories.MemberRepository
	taskRepo    repositories.TaskRepository
}

func NewProjectService(
	guard AccessGuard,
	projectRepo repositories.ProjectRepository,
	memberRepo repositories.MemberRepository,
	taskRepo repositories.TaskRepository,
) ProjectService {
	return &ProjectServiceImpl{
		guard:       guard,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		taskRepo:    taskRepo,
	}
}

// Create persists the project together with the creator's OWNER membership
// in one transaction; a project never exists without an owner.
func (s *ProjectServiceImpl) Create(db *gorm.DB, actorID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatusActive,
		CreatedByID: actorID,
	}
	if err := s.projectRepo.CreateWithOwner(db, project); err != nil {
		return nil, apperrors.InternalError(err)
	}

	detail, err := s.projectRepo.FindDetail(db, project.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewProjectResponse(detail), nil
}

func (s *ProjectServiceImpl) List(db *gorm.DB, actorID string) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindByMember(db, actorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *dto.NewProjectResponse(&projects[i]))
	}
	return responses, nil
}

func (s *ProjectServiceImpl) Get(db *gorm.DB, projectID, actorID string) (*dto.ProjectResponse, error) {
	if _, err := s.guard.CheckProject(db, projectID, actorID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindDetail(db, projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewProjectResponse(project), nil
}

func (s *ProjectServiceImpl) Update(db *gorm.DB, projectID, actorID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	access, err := s.guard.CheckProject(db, projectID, actorID, models.RoleOwner, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	project := access.Project
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = models.ProjectStatus(*req.Status)
	}

	if err := s.projectRepo.Update(db, project); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewProjectResponse(project), nil
}

// Delete requires the OWNER role; cascade takes members, tasks, comments and
// discussions with the project.
func (s *ProjectServiceImpl) Delete(db *gorm.DB, projectID, actorID string) error {
	if _, err := s.guard.CheckProject(db, projectID, actorID, models.RoleOwner); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(db, projectID); err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProjectServiceImpl) Dashboard(db *gorm.DB, projectID, actorID string) (*dto.DashboardResponse, error) {
	if _, err := s.guard.CheckProject(db, projectID, actorID); err != nil {
		return nil, err
	}

	memberCount, err := s.memberRepo.CountByProject(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	byStatus, err := s.taskRepo.CountByStatus(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byPriority, err := s.taskRepo.CountByPriority(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	overdue, err := s.taskRepo.CountOverdue(db, projectID, time.Now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.DashboardResponse{
		ProjectID:    projectID,
		MemberCount:  memberCount,
		TasksByState: make(map[string]int64, len(byStatus)),
		TasksByPrio:  make(map[string]int64, len(byPriority)),
		OverdueCount: overdue,
	}
	for status, count := range byStatus {
		resp.TasksByState[string(status)] = count
		resp.TaskCount += count
	}
	for priority, count := range byPriority {
		resp.TasksByPrio[string(priority)] = count
	}
	return resp, nil
}
