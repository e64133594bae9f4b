package repository

import (
	"MysteryBox/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditFilter struct {
	BuyerID   *uuid.UUID
	ProductID *uuid.UUID
	Limit     int
	Offset    int
}

// AuditRepository only appends and reads; audit rows are never changed.
type AuditRepository interface {
	Create(record *models.UnboxAuditRecord) error
	Find(filter AuditFilter) ([]models.UnboxAuditRecord, error)
}

type auditRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepositoryImpl{db: db}
}

func (r *auditRepositoryImpl) Create(record *models.UnboxAuditRecord) error {
	return r.db.Create(record).Error
}

func (r *auditRepositoryImpl) Find(filter AuditFilter) ([]models.UnboxAuditRecord, error) {
	query := r.db.Model(&models.UnboxAuditRecord{})
	if filter.BuyerID != nil {
		query = query.Where("buyer_id = ?", *filter.BuyerID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	var records []models.UnboxAuditRecord
	err := query.
		Order("unboxed_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
