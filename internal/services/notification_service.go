package services

import (
	"encoding/json"
	"errors"

	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services/dto"
	"projecthub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NotificationService interface {
	// Fanout materializes the event's recipient set into unread notification
	// rows. Failures are logged and swallowed: the triggering mutation has
	// already committed and must not report failure because of this.
	Fanout(db *gorm.DB, event NotificationEvent)

	List(db *gorm.DB, userID string, criteria repositories.NotificationCriteria) ([]dto.NotificationResponse, error)
	UnreadCount(db *gorm.DB, userID string) (*dto.UnreadCountResponse, error)

	// MarkRead flips the listed notifications to read. Every id must belong
	// to the calling user; a foreign or unknown id fails the whole request.
	MarkRead(db *gorm.DB, userID string, ids []string) (*dto.MarkReadResponse, error)
	MarkAllRead(db *gorm.DB, userID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) Fanout(db *gorm.DB, event NotificationEvent) {
	notifications := buildNotifications(event)
	if len(notifications) == 0 {
		return
	}

	if err := s.notificationRepo.CreateBulk(db, notifications); err != nil {
		logger.Error("notification fan-out failed",
			"type", string(event.Type()),
			"recipients", len(notifications),
			"error", err,
		)
	}
}

// buildNotifications renders one unread row per recipient.
func buildNotifications(event NotificationEvent) []*models.Notification {
	recipients := event.Recipients()
	if len(recipients) == 0 {
		return nil
	}

	var data []byte
	if d := event.Data(); len(d) > 0 {
		data, _ = json.Marshal(d)
	}

	notifications := make([]*models.Notification, 0, len(recipients))
	for _, userID := range recipients {
		notifications = append(notifications, &models.Notification{
			UserID:  userID,
			Type:    event.Type(),
			Title:   event.Title(),
			Message: event.Message(),
			Data:    data,
		})
	}
	return notifications
}

func (s *NotificationServiceImpl) List(db *gorm.DB, userID string, criteria repositories.NotificationCriteria) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindByUser(db, userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, *dto.NewNotificationResponse(&notifications[i]))
	}
	return responses, nil
}

func (s *NotificationServiceImpl) UnreadCount(db *gorm.DB, userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.UnreadCount(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *NotificationServiceImpl) MarkRead(db *gorm.DB, userID string, ids []string) (*dto.MarkReadResponse, error) {
	// A repeated id is harmless; collapse duplicates so the count
	// comparison below only rejects genuinely missing ids.
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := s.notificationRepo.FindByIDs(db, unique)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Ownership check: an id that is missing or belongs to another user is
	// reported as not found, indistinguishably.
	if len(found) != len(unique) {
		return nil, apperrors.ErrNotificationNotFound
	}
	for i := range found {
		if found[i].UserID != userID {
			return nil, apperrors.ErrNotificationNotFound
		}
	}

	if err := s.notificationRepo.MarkMultipleAsRead(db, unique); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.MarkReadResponse{Updated: int64(len(unique))}, nil
}

func (s *NotificationServiceImpl) MarkAllRead(db *gorm.DB, userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
