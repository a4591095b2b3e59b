package repositories

import (
	"projecthub_backend/internal/models"

	"gorm.io/gorm"
)

type DiscussionRepository interface {
	Create(db *gorm.DB, discussion *models.ProjectDiscussion) error
	FindByProject(db *gorm.DB, projectID string) ([]models.ProjectDiscussion, error)
}

type DiscussionRepositoryImpl struct{}

func NewDiscussionRepository() DiscussionRepository {
	return &DiscussionRepositoryImpl{}
}

func (r *DiscussionRepositoryImpl) Create(db *gorm.DB, discussion *models.ProjectDiscussion) error {
	return db.Create(discussion).Error
}

func (r *DiscussionRepositoryImpl) FindByProject(db *gorm.DB, projectID string) ([]models.ProjectDiscussion, error) {
	var discussions []models.ProjectDiscussion
	err := db.Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&discussions).Error
	return discussions, err
}
