package repository

import (
	"MysteryBox/internal/models"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type BoxRepository interface {
	GenericRepository[models.Box]
	FindAggregate(id uint) (*models.Box, error)
	FindBySeller(sellerID uuid.UUID) ([]models.Box, error)
	Disable(id uint, at time.Time) (bool, error)
}

type BoxRepositoryImpl[T models.Box] struct {
	GenericRepository[models.Box]
	db *gorm.DB
}

func NewBoxRepository(db *gorm.DB) BoxRepository {
	return &BoxRepositoryImpl[models.Box]{
		GenericRepository: NewGenericRepository[models.Box](db),
		db:                db,
	}
}

// FindAggregate loads a box with its live items, their weights and every
// probability record ever published for them. Returns nil when missing.
func (r *BoxRepositoryImpl[T]) FindAggregate(id uint) (*models.Box, error) {
	var box models.Box
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("id ASC")
		}).
		Preload("Items.RarityWeight").
		Preload("Items.ProbabilityRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("effective_from DESC, id DESC")
		}).
		First(&box, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &box, nil
}

func (r *BoxRepositoryImpl[T]) FindBySeller(sellerID uuid.UUID) ([]models.Box, error) {
	var boxes []models.Box
	err := r.db.Where("seller_id = ?", sellerID).Order("id ASC").Find(&boxes).Error
	if err != nil {
		return nil, err
	}
	return boxes, nil
}

// Disable takes a box off sale once. It reports false when the box was
// already disabled.
func (r *BoxRepositoryImpl[T]) Disable(id uint, at time.Time) (bool, error) {
	res := r.db.Model(&models.Box{}).
		Where("id = ? AND disabled_at IS NULL", id).
		Updates(map[string]interface{}{
			"status":      models.BoxStatusRejected,
			"disabled_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
