package repositories

import (
	"errors"
	"time"

	"projecthub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	// CreateWithOwner persists the project together with its first OWNER
	// membership in one transaction; a project never exists without an owner.
	CreateWithOwner(db *gorm.DB, project *models.Project) error
	FindByID(db *gorm.DB, id string) (*models.Project, error)
	FindDetail(db *gorm.DB, id string) (*models.Project, error)
	FindByMember(db *gorm.DB, userID string) ([]models.Project, error)
	Update(db *gorm.DB, project *models.Project) error
	Delete(db *gorm.DB, id string) error
}

type ProjectRepositoryImpl struct{}

func NewProjectRepository() ProjectRepository {
	return &ProjectRepositoryImpl{}
}

func (r *ProjectRepositoryImpl) CreateWithOwner(db *gorm.DB, project *models.Project) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		member := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    project.CreatedByID,
			Role:      models.RoleOwner,
			JoinedAt:  time.Now(),
		}
		return tx.Create(member).Error
	})
}

func (r *ProjectRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	err := db.First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) FindDetail(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	err := db.
		Preload("Members.User").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at DESC")
		}).
		Preload("Tasks.AssignedTo").
		Preload("Tasks.CreatedBy").
		Preload("Discussions", func(db *gorm.DB) *gorm.DB {
			return db.Order("project_discussions.created_at DESC")
		}).
		Preload("Discussions.User").
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) FindByMember(db *gorm.DB, userID string) ([]models.Project, error) {
	var projects []models.Project
	err := db.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Preload("Members.User").
		Order("projects.created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) Update(db *gorm.DB, project *models.Project) error {
	return db.Save(project).Error
}

func (r *ProjectRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
