package repositories

import (
	"errors"
	"time"

	"projecthub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepository interface {
	Create(db *gorm.DB, task *models.Task) error
	FindByID(db *gorm.DB, id string) (*models.Task, error)
	FindDetail(db *gorm.DB, id string) (*models.Task, error)
	FindByProject(db *gorm.DB, projectID string) ([]models.Task, error)
	Update(db *gorm.DB, task *models.Task) error
	Delete(db *gorm.DB, id string) error

	// Dashboard counters
	CountByStatus(db *gorm.DB, projectID string) (map[models.TaskStatus]int64, error)
	CountByPriority(db *gorm.DB, projectID string) (map[models.TaskPriority]int64, error)
	CountOverdue(db *gorm.DB, projectID string, now time.Time) (int64, error)

	// Worker scan: open tasks with an assignee and a due date inside the window.
	FindDueBetween(db *gorm.DB, from, to time.Time) ([]models.Task, error)
	FindOverdue(db *gorm.DB, now time.Time) ([]models.Task, error)
}

type TaskRepositoryImpl struct{}

func NewTaskRepository() TaskRepository {
	return &TaskRepositoryImpl{}
}

func (r *TaskRepositoryImpl) Create(db *gorm.DB, task *models.Task) error {
	return db.Create(task).Error
}

func (r *TaskRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Task, error) {
	var task models.Task
	err := db.First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) FindDetail(db *gorm.DB, id string) (*models.Task, error) {
	var task models.Task
	err := db.
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.User").
		First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) FindByProject(db *gorm.DB, projectID string) ([]models.Task, error) {
	var tasks []models.Task
	err := db.
		Preload("AssignedTo").
		Preload("CreatedBy").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Update(db *gorm.DB, task *models.Task) error {
	return db.Save(task).Error
}

func (r *TaskRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// --- Dashboard counters ---

type statusCountRow struct {
	Status models.TaskStatus
	Count  int64
}

func (r *TaskRepositoryImpl) CountByStatus(db *gorm.DB, projectID string) (map[models.TaskStatus]int64, error) {
	var rows []statusCountRow
	err := db.Model(&models.Task{}).
		Select("status, count(*) as count").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

type priorityCountRow struct {
	Priority models.TaskPriority
	Count    int64
}

func (r *TaskRepositoryImpl) CountByPriority(db *gorm.DB, projectID string) (map[models.TaskPriority]int64, error) {
	var rows []priorityCountRow
	err := db.Model(&models.Task{}).
		Select("priority, count(*) as count").
		Where("project_id = ?", projectID).
		Group("priority").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskPriority]int64, len(rows))
	for _, row := range rows {
		counts[row.Priority] = row.Count
	}
	return counts, nil
}

func (r *TaskRepositoryImpl) CountOverdue(db *gorm.DB, projectID string, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Task{}).
		Where("project_id = ? AND due_date < ? AND status NOT IN ?", projectID, now,
			[]models.TaskStatus{models.TaskStatusDone, models.TaskStatusCancelled}).
		Count(&count).Error
	return count, err
}

// --- Worker scans ---

func (r *TaskRepositoryImpl) FindDueBetween(db *gorm.DB, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := db.
		Where("assigned_to_id IS NOT NULL AND due_date >= ? AND due_date < ? AND status NOT IN ?", from, to,
			[]models.TaskStatus{models.TaskStatusDone, models.TaskStatusCancelled}).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) FindOverdue(db *gorm.DB, now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := db.
		Where("assigned_to_id IS NOT NULL AND due_date < ? AND status NOT IN ?", now,
			[]models.TaskStatus{models.TaskStatusDone, models.TaskStatusCancelled}).
		Find(&tasks).Error
	return tasks, err
}
