package repository

import (
	"MysteryBox/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByRecipient(recipientID uuid.UUID) ([]models.Notification, error)
}

type notificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepositoryImpl) FindByRecipient(recipientID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).Order("id ASC").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
