package services

import (
	"errors"

	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services/dto"
	"projecthub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TaskService interface {
	Create(db *gorm.DB, projectID, actorID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	ListByProject(db *gorm.DB, projectID, actorID string) ([]dto.TaskResponse, error)
	Get(db *gorm.DB, taskID, actorID string) (*dto.TaskResponse, error)
	Update(db *gorm.DB, taskID, actorID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Delete(db *gorm.DB, taskID, actorID string) error
}

type TaskServiceImpl struct {
	guard               AccessGuard
	taskRepo            repositories.TaskRepository
	memberRepo          repositories.MemberRepository
	notificationService NotificationService
}

func NewTaskService(
	guard AccessGuard,
	taskRepo repositories.TaskRepository,
	memberRepo repositories.MemberRepository,
	notificationService NotificationService,
) TaskService {
	return &TaskServiceImpl{
		guard:               guard,
		taskRepo:            taskRepo,
		memberRepo:          memberRepo,
		notificationService: notificationService,
	}
}

func (s *TaskServiceImpl) Create(db *gorm.DB, projectID, actorID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if _, err := s.guard.CheckProject(db, projectID, actorID); err != nil {
		return nil, err
	}

	if req.AssignedToID != nil && *req.AssignedToID != "" {
		if err := s.requireMembership(db, projectID, *req.AssignedToID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		ProjectID:    projectID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       models.TaskStatusTodo,
		Priority:     models.TaskPriorityMedium,
		DueDate:      req.DueDate,
		CreatedByID:  actorID,
		AssignedToID: normalizeID(req.AssignedToID),
	}
	if req.Priority != "" {
		task.Priority = models.TaskPriority(req.Priority)
	}

	if err := s.taskRepo.Create(db, task); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if task.AssignedToID != nil {
		s.notificationService.Fanout(db, TaskAssignedEvent{
			Task:       task,
			AssigneeID: *task.AssignedToID,
			ActorID:    actorID,
		})
	}

	detail, err := s.taskRepo.FindDetail(db, task.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTaskResponse(detail), nil
}

func (s *TaskServiceImpl) ListByProject(db *gorm.DB, projectID, actorID string) ([]dto.TaskResponse, error) {
	if _, err := s.guard.CheckProject(db, projectID, actorID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByProject(db, projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *dto.NewTaskResponse(&tasks[i]))
	}
	return responses, nil
}

func (s *TaskServiceImpl) Get(db *gorm.DB, taskID, actorID string) (*dto.TaskResponse, error) {
	task, _, err := s.guard.CheckTask(db, taskID, actorID)
	if err != nil {
		return nil, err
	}

	detail, err := s.taskRepo.FindDetail(db, task.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTaskResponse(detail), nil
}

func (s *TaskServiceImpl) Update(db *gorm.DB, taskID, actorID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, _, err := s.guard.CheckTask(db, taskID, actorID)
	if err != nil {
		return nil, err
	}

	previousAssignee := ""
	if task.AssignedToID != nil {
		previousAssignee = *task.AssignedToID
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = models.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	assigneeTouched := false
	if req.AssignedToID != nil {
		assigneeTouched = true
		if *req.AssignedToID == "" {
			task.AssignedToID = nil
		} else {
			// Membership is checked at assignment time only, never
			// retroactively for existing assignees.
			if err := s.requireMembership(db, task.ProjectID, *req.AssignedToID); err != nil {
				return nil, err
			}
			task.AssignedToID = req.AssignedToID
		}
	}

	if err := s.taskRepo.Update(db, task); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if assigneeTouched && task.AssignedToID != nil {
		if *task.AssignedToID != previousAssignee {
			s.notificationService.Fanout(db, TaskAssignedEvent{
				Task:       task,
				AssigneeID: *task.AssignedToID,
				ActorID:    actorID,
				Reassigned: true,
			})
		}
		s.notificationService.Fanout(db, TaskUpdatedEvent{Task: task, ActorID: actorID})
	}

	detail, err := s.taskRepo.FindDetail(db, task.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTaskResponse(detail), nil
}

// Delete requires OWNER or ADMIN; the denial reads as "Task not found".
func (s *TaskServiceImpl) Delete(db *gorm.DB, taskID, actorID string) error {
	task, _, err := s.guard.CheckTask(db, taskID, actorID, models.RoleOwner, models.RoleAdmin)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(db, task.ID); err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// requireMembership validates that the assignee is a current project member.
func (s *TaskServiceImpl) requireMembership(db *gorm.DB, projectID, userID string) error {
	_, err := s.memberRepo.Find(db, projectID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return apperrors.ErrAssigneeNotMember
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
