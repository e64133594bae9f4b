package services

import (
	"MysteryBox/internal/models"
	"MysteryBox/internal/repository"
	"context"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NotificationService stores in-app notifications for sellers. Delivery over
// other channels is left to whoever reads the rows.
type NotificationService interface {
	Notify(ctx context.Context, notification *models.Notification) error
	ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]models.Notification, error)
}

type notificationServiceImpl struct {
	store      repository.Store
	logService LogService
}

func NewNotificationService(store repository.Store, logService LogService) NotificationService {
	return &notificationServiceImpl{store: store, logService: logService}
}

func (s *notificationServiceImpl) Notify(ctx context.Context, notification *models.Notification) error {
	if err := s.store.WithContext(ctx).Notifications().Create(notification); err != nil {
		return err
	}
	s.logService.Log.WithFields(logrus.Fields{
		"recipient": notification.RecipientID.String(),
		"type":      notification.Type,
	}).Info(notification.Title)
	return nil
}

func (s *notificationServiceImpl) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]models.Notification, error) {
	return s.store.WithContext(ctx).Notifications().FindByRecipient(recipientID)
}

// dispatch sends a notification produced by a committed unit of work. Failures
// are logged and otherwise ignored.
func dispatch(ctx context.Context, notifier NotificationService, log LogService, notification *models.Notification) {
	if notification == nil || notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, notification); err != nil {
		log.Log.WithFields(logrus.Fields{
			"recipient": notification.RecipientID.String(),
			"type":      notification.Type,
			"error":     err.Error(),
		}).Error("Failed to send notification")
	}
}
