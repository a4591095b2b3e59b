package repositories

import (
	"errors"

	"projecthub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMemberNotFound  = errors.New("project member not found")
	ErrDuplicateMember = errors.New("user is already a member of this project")
)

type MemberRepository interface {
	Find(db *gorm.DB, projectID, userID string) (*models.ProjectMember, error)
	FindByProject(db *gorm.DB, projectID string) ([]models.ProjectMember, error)
	CountByProject(db *gorm.DB, projectID string) (int64, error)
	Create(db *gorm.DB, member *models.ProjectMember) error
	Delete(db *gorm.DB, projectID, userID string) error
}

type MemberRepositoryImpl struct{}

func NewMemberRepository() MemberRepository {
	return &MemberRepositoryImpl{}
}

func (r *MemberRepositoryImpl) Find(db *gorm.DB, projectID, userID string) (*models.ProjectMember, error) {
	var member models.ProjectMember
	err := db.First(&member, "project_id = ? AND user_id = ?", projectID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepositoryImpl) FindByProject(db *gorm.DB, projectID string) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := db.Preload("User").Where("project_id = ?", projectID).Find(&members).Error
	return members, err
}

func (r *MemberRepositoryImpl) CountByProject(db *gorm.DB, projectID string) (int64, error) {
	var count int64
	err := db.Model(&models.ProjectMember{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// Create inserts a membership. The unique index on (project_id, user_id)
// resolves concurrent duplicate adds; the violation surfaces here as
// ErrDuplicateMember, not as an internal error.
func (r *MemberRepositoryImpl) Create(db *gorm.DB, member *models.ProjectMember) error {
	err := db.Create(member).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMember
	}
	return err
}

func (r *MemberRepositoryImpl) Delete(db *gorm.DB, projectID, userID string) error {
	result := db.Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&models.ProjectMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
