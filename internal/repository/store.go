package repository

import (
	"context"
	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle, so a unit of
// work can run all of them inside a single transaction.
type Store interface {
	Boxes() BoxRepository
	Items() ItemRepository
	Probabilities() ProbabilityRepository
	OwnedBoxes() OwnedBoxRepository
	OwnedItems() OwnedItemRepository
	Audits() AuditRepository
	Notifications() NotificationRepository
	CatalogStock() CatalogStockRepository
	WithContext(ctx context.Context) Store
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Boxes() BoxRepository                  { return NewBoxRepository(s.db) }
func (s *gormStore) Items() ItemRepository                 { return NewItemRepository(s.db) }
func (s *gormStore) Probabilities() ProbabilityRepository  { return NewProbabilityRepository(s.db) }
func (s *gormStore) OwnedBoxes() OwnedBoxRepository        { return NewOwnedBoxRepository(s.db) }
func (s *gormStore) OwnedItems() OwnedItemRepository       { return NewOwnedItemRepository(s.db) }
func (s *gormStore) Audits() AuditRepository               { return NewAuditRepository(s.db) }
func (s *gormStore) Notifications() NotificationRepository { return NewNotificationRepository(s.db) }
func (s *gormStore) CatalogStock() CatalogStockRepository  { return NewCatalogStockRepository(s.db) }

func (s *gormStore) WithContext(ctx context.Context) Store {
	return &gormStore{db: s.db.WithContext(ctx)}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
