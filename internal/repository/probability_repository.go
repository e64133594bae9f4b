package repository

import (
	"MysteryBox/internal/models"
	"gorm.io/gorm"
)

// ProbabilityRepository is insert-only: published records are never edited.
type ProbabilityRepository interface {
	CreateBatch(records []models.ProbabilityRecord) error
	FindByBoxID(boxID uint) ([]models.ProbabilityRecord, error)
}

type probabilityRepositoryImpl struct {
	db *gorm.DB
}

func NewProbabilityRepository(db *gorm.DB) ProbabilityRepository {
	return &probabilityRepositoryImpl{db: db}
}

func (r *probabilityRepositoryImpl) CreateBatch(records []models.ProbabilityRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.Create(&records).Error
}

func (r *probabilityRepositoryImpl) FindByBoxID(boxID uint) ([]models.ProbabilityRecord, error) {
	var records []models.ProbabilityRecord
	err := r.db.Where("box_id = ?", boxID).
		Order("effective_from DESC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
