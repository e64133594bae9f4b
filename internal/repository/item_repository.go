package repository

import (
	"MysteryBox/internal/models"
	"gorm.io/gorm"
)

type ItemRepository interface {
	GenericRepository[models.BoxItem]
	FindActiveByBoxID(boxID uint) ([]models.BoxItem, error)
	DecrementStock(id uint, version int) error
	SoftRemoveByBoxID(boxID uint) error
	FindDepletedInLiveBoxes() ([]models.BoxItem, error)
}

type ItemRepositoryImpl[T models.BoxItem] struct {
	GenericRepository[models.BoxItem]
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &ItemRepositoryImpl[models.BoxItem]{
		GenericRepository: NewGenericRepository[models.BoxItem](db),
		db:                db,
	}
}

func (r *ItemRepositoryImpl[T]) FindActiveByBoxID(boxID uint) ([]models.BoxItem, error) {
	var items []models.BoxItem
	err := r.db.Preload("RarityWeight").
		Where("box_id = ? AND is_active = ?", boxID, true).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DecrementStock takes one unit off an item, provided nobody touched it since
// version was read and it is not already empty.
func (r *ItemRepositoryImpl[T]) DecrementStock(id uint, version int) error {
	res := r.db.Model(&models.BoxItem{}).
		Where("id = ? AND version = ? AND remaining_quantity > 0", id, version).
		Updates(map[string]interface{}{
			"remaining_quantity": gorm.Expr("remaining_quantity - 1"),
			"version":            gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStock
	}
	return nil
}

func (r *ItemRepositoryImpl[T]) SoftRemoveByBoxID(boxID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.BoxItem{}).
			Where("box_id = ? AND is_active = ?", boxID, true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Where("box_id = ?", boxID).Delete(&models.BoxItem{}).Error
	})
}

// FindDepletedInLiveBoxes lists empty, active items whose box is approved and
// has not been disabled yet.
func (r *ItemRepositoryImpl[T]) FindDepletedInLiveBoxes() ([]models.BoxItem, error) {
	var items []models.BoxItem
	err := r.db.
		Joins("JOIN boxes ON boxes.id = box_items.box_id AND boxes.deleted_at IS NULL").
		Where("box_items.remaining_quantity = 0 AND box_items.is_active = ?", true).
		Where("boxes.status = ? AND boxes.disabled_at IS NULL", models.BoxStatusApproved).
		Order("box_items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
