package repositories

import (
	"errors"
	"time"

	"projecthub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationCriteria struct {
	UnreadOnly bool
	Type       models.NotificationType
}

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	CreateBulk(db *gorm.DB, notifications []*models.Notification) error
	FindByID(db *gorm.DB, id string) (*models.Notification, error)
	FindByUser(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.Notification, error)
	MarkMultipleAsRead(db *gorm.DB, ids []string) error
	MarkAllAsRead(db *gorm.DB, userID string) error
	UnreadCount(db *gorm.DB, userID string) (int64, error)

	// ExistsForTask reports whether the user already got a notification of
	// the given type referencing the task (worker dedup).
	ExistsForTask(db *gorm.DB, userID string, nType models.NotificationType, taskID string) (bool, error)
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBulk(db *gorm.DB, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return db.CreateInBatches(notifications, 100).Error
}

func (r *NotificationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Notification, error) {
	var notification models.Notification
	err := db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindByUser(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, error) {
	query := db.Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) FindByIDs(db *gorm.DB, ids []string) ([]models.Notification, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var notifications []models.Notification
	err := db.Where("id IN ?", ids).Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) MarkMultipleAsRead(db *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return db.Model(&models.Notification{}).Where("id IN ?", ids).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	}).Error
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID string) error {
	return db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	}).Error
}

func (r *NotificationRepositoryImpl) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) ExistsForTask(db *gorm.DB, userID string, nType models.NotificationType, taskID string) (bool, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND data->>'task_id' = ?", userID, nType, taskID).
		Count(&count).Error
	return count > 0, err
}
