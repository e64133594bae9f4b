package repository

import (
	"MysteryBox/internal/models"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogStockRepository is the box service's view of catalog inventory.
type CatalogStockRepository interface {
	Available(productID uuid.UUID) (int, error)
	SetAvailable(productID uuid.UUID, available int) error
	Reserve(productID uuid.UUID, quantity int) error
	Restore(productID uuid.UUID, quantity int) error
}

type catalogStockRepositoryImpl struct {
	db *gorm.DB
}

func NewCatalogStockRepository(db *gorm.DB) CatalogStockRepository {
	return &catalogStockRepositoryImpl{db: db}
}

func (r *catalogStockRepositoryImpl) Available(productID uuid.UUID) (int, error) {
	var stock models.CatalogStock
	err := r.db.First(&stock, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return stock.Available, nil
}

func (r *catalogStockRepositoryImpl) SetAvailable(productID uuid.UUID, available int) error {
	stock := models.CatalogStock{ProductID: productID, Available: available}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"available", "updated_at"}),
	}).Create(&stock).Error
}

func (r *catalogStockRepositoryImpl) Reserve(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	res := r.db.Model(&models.CatalogStock{}).
		Where("product_id = ? AND available >= ?", productID, quantity).
		Update("available", gorm.Expr("available - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *catalogStockRepositoryImpl) Restore(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	stock := models.CatalogStock{ProductID: productID, Available: quantity}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"available": gorm.Expr("catalog_stocks.available + ?", quantity)}),
	}).Create(&stock).Error
}
