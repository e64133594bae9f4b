package services

import (
	"MysteryBox/database"
	"MysteryBox/internal/config"
	"MysteryBox/internal/helpers"
	"MysteryBox/internal/metrics"
	"MysteryBox/internal/models"
	"MysteryBox/internal/odds"
	"MysteryBox/internal/repository"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// sequenceSource replays fixed draws in order, repeating the last one.
type sequenceSource struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func newSequenceSource(values ...float64) *sequenceSource {
	return &sequenceSource{values: values}
}

func (s *sequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.next
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	s.next++
	return s.values[idx]
}

type testEnv struct {
	db       *gorm.DB
	store    repository.Store
	clock    *helpers.FixedClock
	cfg      *config.Configuration
	log      LogService
	notifier NotificationService
	boxes    BoxService
	seller   uuid.UUID
	staff    uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := &config.Configuration{Unboxing: config.UnboxingConfig{MaxAttempts: 3, AuditPageSize: 25}}
	cfg.Server.SweepConfig.Schedule = "@every 1h"
	store := repository.NewStore(db)
	clock := helpers.NewFixedClock(testNow)
	log := NewDiscardLogService()
	notifier := NewNotificationService(store, log)
	return &testEnv{
		db:       db,
		store:    store,
		clock:    clock,
		cfg:      cfg,
		log:      log,
		notifier: notifier,
		boxes:    NewBoxService(store, notifier, clock, log),
		seller:   uuid.New(),
		staff:    uuid.New(),
	}
}

func (e *testEnv) unboxService(src odds.RandomSource, m *metrics.UnboxMetrics) UnboxService {
	return e.unboxServiceWithStore(e.store, src, m)
}

func (e *testEnv) unboxServiceWithStore(store repository.Store, src odds.RandomSource, m *metrics.UnboxMetrics) UnboxService {
	return NewUnboxService(store, NewDepletionHandler(e.clock, e.log), e.notifier, src, e.clock, m, e.cfg, e.log)
}

// validEntries is a six item set: common 60, rare 25, epic 14, ultra rare 1.
func validEntries() []odds.Entry {
	return []odds.Entry{
		{ProductID: uuid.New(), Quantity: 10, Rarity: models.RarityCommon, Weight: 30},
		{ProductID: uuid.New(), Quantity: 10, Rarity: models.RarityCommon, Weight: 30},
		{ProductID: uuid.New(), Quantity: 5, Rarity: models.RarityRare, Weight: 15},
		{ProductID: uuid.New(), Quantity: 5, Rarity: models.RarityRare, Weight: 10},
		{ProductID: uuid.New(), Quantity: 2, Rarity: models.RarityEpic, Weight: 14},
		{ProductID: uuid.New(), Quantity: 1, Rarity: models.RarityUltraRare, Weight: 1},
	}
}

func (e *testEnv) stock(t *testing.T, entries []odds.Entry, extra int) {
	t.Helper()
	for _, entry := range entries {
		require.NoError(t, e.store.CatalogStock().SetAvailable(entry.ProductID, entry.Quantity+extra))
	}
}

func (e *testEnv) draftWithItems(t *testing.T, entries []odds.Entry) *models.Box {
	t.Helper()
	ctx := context.Background()
	box, err := e.boxes.CreateBox(ctx, e.seller, "Summer Drop", testNow.Add(30*24*time.Hour))
	require.NoError(t, err)
	e.stock(t, entries, 0)
	box, err = e.boxes.SubmitItemSet(ctx, box.ID, e.seller, entries)
	require.NoError(t, err)
	return box
}

func (e *testEnv) approvedBox(t *testing.T, entries []odds.Entry) *models.Box {
	t.Helper()
	box := e.draftWithItems(t, entries)
	box, err := e.boxes.Approve(context.Background(), box.ID, e.staff)
	require.NoError(t, err)
	return box
}

func (e *testEnv) ownedBox(t *testing.T, boxID uint, buyer uuid.UUID) *models.OwnedBoxInstance {
	t.Helper()
	instance := &models.OwnedBoxInstance{BuyerID: buyer, BoxID: boxID}
	require.NoError(t, e.store.OwnedBoxes().Create(instance))
	return instance
}

// rawBox stores a box whose items carry the given remaining quantities and,
// when probabilities is non-nil, an active probability record each.
func (e *testEnv) rawBox(t *testing.T, quantities []int, weights []int, probabilities []string) *models.Box {
	t.Helper()
	box := &models.Box{SellerID: e.seller, Name: "Raw", Status: models.BoxStatusApproved, ReleaseDate: testNow.Add(24 * time.Hour)}
	require.NoError(t, e.db.Create(box).Error)
	for i, q := range quantities {
		item := models.BoxItem{
			BoxID:             box.ID,
			ProductID:         uuid.New(),
			RemainingQuantity: q,
			Rarity:            models.Rarities[i%len(models.Rarities)],
			IsActive:          true,
			Version:           1,
			RarityWeight:      &models.RarityWeight{Rarity: models.Rarities[i%len(models.Rarities)], Weight: weights[i]},
		}
		if probabilities != nil {
			item.DropRate = decimal.RequireFromString(probabilities[i])
		}
		require.NoError(t, e.db.Create(&item).Error)
		if probabilities != nil {
			require.NoError(t, e.db.Create(&models.ProbabilityRecord{
				BoxID:         box.ID,
				BoxItemID:     item.ID,
				Probability:   item.DropRate,
				EffectiveFrom: testNow.Add(-time.Hour),
				EffectiveTo:   testNow.Add(24 * time.Hour),
				ApprovedBy:    e.staff,
				ApprovedAt:    testNow.Add(-time.Hour),
			}).Error)
		}
		box.Items = append(box.Items, item)
	}
	return box
}
