package repository

import (
	"MysteryBox/database"
	"MysteryBox/internal/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedBox(t *testing.T, db *gorm.DB, status models.BoxStatus, quantities ...int) *models.Box {
	t.Helper()
	box := &models.Box{
		SellerID:    uuid.New(),
		Name:        "Seeded",
		Status:      status,
		ReleaseDate: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(box).Error)
	for i, q := range quantities {
		rarity := models.RarityCommon
		if i == len(quantities)-1 {
			rarity = models.RarityUltraRare
		}
		item := models.BoxItem{
			BoxID:             box.ID,
			ProductID:         uuid.New(),
			RemainingQuantity: q,
			DropRate:          decimal.NewFromInt(10),
			Rarity:            rarity,
			IsUltraRare:       rarity == models.RarityUltraRare,
			IsActive:          true,
			Version:           1,
			RarityWeight:      &models.RarityWeight{Rarity: rarity, Weight: 10},
		}
		require.NoError(t, db.Create(&item).Error)
		box.Items = append(box.Items, item)
	}
	return box
}
