package repositories

import (
	"projecthub_backend/internal/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.Comment) error
	FindByTask(db *gorm.DB, taskID string) ([]models.Comment, error)
}

type CommentRepositoryImpl struct{}

func NewCommentRepository() CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *CommentRepositoryImpl) FindByTask(db *gorm.DB, taskID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
