package services

import (
	"MysteryBox/internal/apperror"
	"MysteryBox/internal/config"
	"MysteryBox/internal/helpers"
	"MysteryBox/internal/metrics"
	"MysteryBox/internal/models"
	"MysteryBox/internal/odds"
	"MysteryBox/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"time"
)

const MaxAuditPageSize = 100

var (
	ErrOwnedBoxNotFound = apperror.New(apperror.KindNotFound, "owned box not found or already opened")
	ErrBoxSoldOut       = apperror.New(apperror.KindConflict, "box is sold out")
	ErrUnboxContention  = apperror.New(apperror.KindConflict, "box stock changed while unboxing, try again")
)

type UnboxResult struct {
	OwnedBoxID uint            `json:"owned_box_id"`
	BoxID      uint            `json:"box_id"`
	BoxItemID  uint            `json:"box_item_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Rarity     models.Rarity   `json:"rarity"`
	DropRate   decimal.Decimal `json:"drop_rate"`
	UnboxedAt  time.Time       `json:"unboxed_at"`
}

type AuditQuery struct {
	BuyerID   *uuid.UUID
	ProductID *uuid.UUID
	Limit     int
	Offset    int
}

type AuditPage struct {
	Records []models.UnboxAuditRecord `json:"records"`
	Limit   int                       `json:"limit"`
	Offset  int                       `json:"offset"`
}

// Distribution is the table an unbox of the box would draw from right now.
type Distribution struct {
	BoxID       uint            `json:"box_id"`
	Source      string          `json:"source,omitempty"`
	SoldOut     bool            `json:"sold_out"`
	Total       decimal.Decimal `json:"total"`
	Table       []odds.Range    `json:"table"`
	EvaluatedAt time.Time       `json:"evaluated_at"`
}

type UnboxService interface {
	Unbox(ctx context.Context, ownedBoxID uint, buyerID uuid.UUID) (*UnboxResult, error)
	GetAuditLog(ctx context.Context, query AuditQuery) (*AuditPage, error)
	GetDistribution(ctx context.Context, boxID uint) (*Distribution, error)
}

type unboxServiceImpl struct {
	store         repository.Store
	depletion     DepletionHandler
	notifier      NotificationService
	random        odds.RandomSource
	clock         helpers.Clock
	metrics       *metrics.UnboxMetrics
	configuration *config.Configuration
	logService    LogService
}

func NewUnboxService(
	store repository.Store,
	depletion DepletionHandler,
	notifier NotificationService,
	random odds.RandomSource,
	clock helpers.Clock,
	unboxMetrics *metrics.UnboxMetrics,
	configuration *config.Configuration,
	logService LogService,
) UnboxService {
	return &unboxServiceImpl{
		store:         store,
		depletion:     depletion,
		notifier:      notifier,
		random:        random,
		clock:         clock,
		metrics:       unboxMetrics,
		configuration: configuration,
		logService:    logService,
	}
}

// attemptOutcome is what one committed unbox attempt hands back.
type attemptOutcome struct {
	result   *UnboxResult
	pending  *models.Notification
	depleted bool
}

// Unbox opens an owned box and grants exactly one item from it. Attempts that
// lose a stock race to a concurrent unbox are retried from scratch.
func (s *unboxServiceImpl) Unbox(ctx context.Context, ownedBoxID uint, buyerID uuid.UUID) (*UnboxResult, error) {
	maxAttempts := s.configuration.Unboxing.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		outcome, err := s.attempt(ctx, ownedBoxID, buyerID)
		if errors.Is(err, repository.ErrStaleStock) {
			s.metrics.IncRetry()
			s.logService.Log.WithFields(logrus.Fields{
				"owned_box": ownedBoxID,
				"attempt":   attempt,
			}).Debug("Stock changed during unbox, retrying")
			continue
		}
		if err != nil {
			s.observeFailure(ownedBoxID, buyerID, err)
			return nil, err
		}

		s.metrics.ObserveOutcome(metrics.OutcomeGranted, outcome.result.Rarity.String())
		if outcome.depleted {
			s.metrics.IncDepleted()
		}
		dispatch(ctx, s.notifier, s.logService, outcome.pending)
		s.logService.Log.WithFields(logrus.Fields{
			"owned_box": ownedBoxID,
			"buyer":     buyerID.String(),
			"box":       outcome.result.BoxID,
			"product":   outcome.result.ProductID.String(),
			"rarity":    outcome.result.Rarity.String(),
			"drop_rate": outcome.result.DropRate.StringFixed(odds.RatePlaces),
		}).Info("Box unboxed")
		return outcome.result, nil
	}

	s.observeFailure(ownedBoxID, buyerID, ErrUnboxContention)
	return nil, ErrUnboxContention
}

func (s *unboxServiceImpl) attempt(ctx context.Context, ownedBoxID uint, buyerID uuid.UUID) (*attemptOutcome, error) {
	var outcome attemptOutcome
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		instance, err := s.loadInstance(tx, ownedBoxID, buyerID)
		if err != nil {
			return err
		}
		box, err := tx.Boxes().FindAggregate(instance.BoxID)
		if err != nil {
			return err
		}
		if box == nil {
			s.logService.Log.WithFields(logrus.Fields{
				"owned_box": ownedBoxID,
				"box":       instance.BoxID,
			}).Warn("Unbox rejected: box no longer exists")
			return ErrBoxNotFound
		}

		now := s.clock.Now()
		candidates, source, err := drawCandidates(box, now)
		if err != nil {
			return err
		}
		draw, err := odds.Sample(candidates, s.random)
		if err != nil {
			return apperror.Wrap(apperror.KindInternal, err, "failed to sample box items")
		}
		item := findItem(box, draw.Selected.ItemID)
		if item == nil {
			return apperror.New(apperror.KindInternal, "sampled item is not part of the box")
		}

		if err := tx.Items().DecrementStock(item.ID, item.Version); err != nil {
			return err
		}
		item.RemainingQuantity--
		item.Version++

		granted := &models.OwnedItem{
			BuyerID:    buyerID,
			ProductID:  item.ProductID,
			OwnedBoxID: instance.ID,
			Quantity:   1,
			Status:     models.OwnedItemStatusAvailable,
		}
		if err := tx.OwnedItems().Create(granted); err != nil {
			return err
		}
		opened, err := tx.OwnedBoxes().MarkOpened(instance.ID, now)
		if err != nil {
			return err
		}
		if !opened {
			return ErrOwnedBoxNotFound
		}

		if item.RemainingQuantity == 0 {
			outcome.depleted = true
			outcome.pending, err = s.depletion.HandleDepletion(tx, box, item)
			if err != nil {
				return err
			}
		}

		table, err := json.Marshal(tableRows(draw.Table))
		if err != nil {
			return err
		}
		audit := &models.UnboxAuditRecord{
			OwnedBoxID:       instance.ID,
			BuyerID:          buyerID,
			BoxID:            box.ID,
			BoxItemID:        item.ID,
			ProductID:        item.ProductID,
			Rarity:           item.Rarity,
			DropRate:         draw.Selected.Probability,
			RollValue:        draw.Roll,
			Total:            draw.Total,
			Source:           source,
			ProbabilityTable: datatypes.JSON(table),
			UnboxedAt:        now,
		}
		if err := tx.Audits().Create(audit); err != nil {
			return err
		}

		outcome.result = &UnboxResult{
			OwnedBoxID: instance.ID,
			BoxID:      box.ID,
			BoxItemID:  item.ID,
			ProductID:  item.ProductID,
			Rarity:     item.Rarity,
			DropRate:   draw.Selected.Probability,
			UnboxedAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (s *unboxServiceImpl) loadInstance(tx repository.Store, ownedBoxID uint, buyerID uuid.UUID) (*models.OwnedBoxInstance, error) {
	instance, err := tx.OwnedBoxes().FindAnyByID(ownedBoxID)
	if err != nil {
		return nil, err
	}
	fields := logrus.Fields{"owned_box": ownedBoxID, "buyer": buyerID.String()}
	switch {
	case instance == nil:
		s.logService.Log.WithFields(fields).Warn("Unbox rejected: owned box does not exist")
	case instance.BuyerID != buyerID:
		s.logService.Log.WithFields(fields).Warn("Unbox rejected: owned box belongs to another buyer")
	case instance.DeletedAt.Valid:
		s.logService.Log.WithFields(fields).Warn("Unbox rejected: owned box was deleted")
	case instance.Opened:
		s.logService.Log.WithFields(fields).Warn("Unbox rejected: owned box already opened")
	default:
		return instance, nil
	}
	return nil, ErrOwnedBoxNotFound
}

func (s *unboxServiceImpl) observeFailure(ownedBoxID uint, buyerID uuid.UUID, err error) {
	fields := logrus.Fields{
		"owned_box": ownedBoxID,
		"buyer":     buyerID.String(),
		"error":     err.Error(),
	}
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		s.metrics.ObserveOutcome(metrics.OutcomeNotFound, "")
	case apperror.KindConflict:
		s.metrics.ObserveOutcome(metrics.OutcomeConflict, "")
		s.logService.Log.WithFields(fields).Warn("Unbox failed")
	default:
		s.metrics.ObserveOutcome(metrics.OutcomeFailed, "")
		s.logService.Log.WithFields(fields).Error("Unbox failed")
	}
}

func (s *unboxServiceImpl) GetAuditLog(ctx context.Context, query AuditQuery) (*AuditPage, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = s.configuration.Unboxing.AuditPageSize
	}
	if limit <= 0 {
		limit = 25
	}
	if limit > MaxAuditPageSize {
		limit = MaxAuditPageSize
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	records, err := s.store.WithContext(ctx).Audits().Find(repository.AuditFilter{
		BuyerID:   query.BuyerID,
		ProductID: query.ProductID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	return &AuditPage{Records: records, Limit: limit, Offset: offset}, nil
}

func (s *unboxServiceImpl) GetDistribution(ctx context.Context, boxID uint) (*Distribution, error) {
	box, err := s.store.WithContext(ctx).Boxes().FindAggregate(boxID)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, ErrBoxNotFound
	}
	now := s.clock.Now()
	distribution := &Distribution{BoxID: box.ID, Table: []odds.Range{}, EvaluatedAt: now}

	candidates, source, err := drawCandidates(box, now)
	if errors.Is(err, ErrBoxSoldOut) {
		distribution.SoldOut = true
		return distribution, nil
	}
	if err != nil {
		return nil, err
	}
	table, total, err := odds.BuildTable(candidates)
	if err != nil {
		return nil, err
	}
	distribution.Source = source
	distribution.Total = total
	distribution.Table = table
	return distribution, nil
}

// drawCandidates lists the items of box that can still be drawn, priced by
// their published probability when any candidate has one in effect, or by a
// live recomputation over remaining quantity and weight otherwise.
func drawCandidates(box *models.Box, now time.Time) ([]odds.Candidate, string, error) {
	available := make([]*models.BoxItem, 0, len(box.Items))
	for i := range box.Items {
		item := &box.Items[i]
		if item.IsActive && !item.DeletedAt.Valid && item.RemainingQuantity > 0 {
			available = append(available, item)
		}
	}
	if len(available) == 0 {
		return nil, "", ErrBoxSoldOut
	}

	candidates := make([]odds.Candidate, len(available))
	published := false
	for i, item := range available {
		candidates[i] = odds.Candidate{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			Rarity:      item.Rarity,
			Probability: decimal.Zero,
		}
		if record := item.ActiveRecord(now); record != nil {
			candidates[i].Probability = record.Probability
			published = true
		}
	}
	if published {
		return candidates, models.ProbabilitySourceApproved, nil
	}

	weighted := make([]odds.Weighted, len(available))
	for i, item := range available {
		weighted[i] = odds.Weighted{Quantity: item.RemainingQuantity, Weight: item.Weight()}
	}
	rates, err := odds.CalculateDropRates(weighted)
	if err != nil {
		return nil, "", apperror.Wrap(apperror.KindInternal, err, "failed to compute live drop rates")
	}
	for i := range candidates {
		candidates[i].Probability = rates[i]
	}
	return candidates, models.ProbabilitySourceLive, nil
}

func findItem(box *models.Box, itemID uint) *models.BoxItem {
	for i := range box.Items {
		if box.Items[i].ID == itemID {
			return &box.Items[i]
		}
	}
	return nil
}

func tableRows(table []odds.Range) []models.ProbabilityTableRow {
	rows := make([]models.ProbabilityTableRow, len(table))
	for i, r := range table {
		rows[i] = models.ProbabilityTableRow{
			BoxItemID: r.ItemID,
			ProductID: r.ProductID,
			Rarity:    r.Rarity,
			Rate:      r.Probability,
			From:      r.From,
			To:        r.To,
		}
	}
	return rows
}
