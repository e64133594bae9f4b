package repository

import (
	"MysteryBox/internal/models"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type OwnedBoxRepository interface {
	Create(instance *models.OwnedBoxInstance) error
	FindAnyByID(id uint) (*models.OwnedBoxInstance, error)
	MarkOpened(id uint, at time.Time) (bool, error)
	Delete(id uint) error
}

type ownedBoxRepositoryImpl struct {
	db *gorm.DB
}

func NewOwnedBoxRepository(db *gorm.DB) OwnedBoxRepository {
	return &ownedBoxRepositoryImpl{db: db}
}

func (r *ownedBoxRepositoryImpl) Create(instance *models.OwnedBoxInstance) error {
	return r.db.Create(instance).Error
}

// FindAnyByID includes soft-deleted rows so callers can tell why an instance
// is unusable. Returns nil when the row does not exist at all.
func (r *ownedBoxRepositoryImpl) FindAnyByID(id uint) (*models.OwnedBoxInstance, error) {
	var instance models.OwnedBoxInstance
	err := r.db.Unscoped().First(&instance, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &instance, nil
}

// MarkOpened flips the opened flag exactly once.
func (r *ownedBoxRepositoryImpl) MarkOpened(id uint, at time.Time) (bool, error) {
	res := r.db.Model(&models.OwnedBoxInstance{}).
		Where("id = ? AND opened = ?", id, false).
		Updates(map[string]interface{}{"opened": true, "opened_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ownedBoxRepositoryImpl) Delete(id uint) error {
	return r.db.Delete(&models.OwnedBoxInstance{}, id).Error
}

type OwnedItemRepository interface {
	Create(item *models.OwnedItem) error
	FindByBuyer(buyerID uuid.UUID) ([]models.OwnedItem, error)
}

type ownedItemRepositoryImpl struct {
	db *gorm.DB
}

func NewOwnedItemRepository(db *gorm.DB) OwnedItemRepository {
	return &ownedItemRepositoryImpl{db: db}
}

func (r *ownedItemRepositoryImpl) Create(item *models.OwnedItem) error {
	return r.db.Create(item).Error
}

func (r *ownedItemRepositoryImpl) FindByBuyer(buyerID uuid.UUID) ([]models.OwnedItem, error) {
	var items []models.OwnedItem
	err := r.db.Where("buyer_id = ?", buyerID).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
