package services

import (
	"MysteryBox/internal/apperror"
	"MysteryBox/internal/helpers"
	"MysteryBox/internal/models"
	"MysteryBox/internal/odds"
	"MysteryBox/internal/repository"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"strings"
	"time"
)

type BoxService interface {
	CreateBox(ctx context.Context, sellerID uuid.UUID, name string, releaseDate time.Time) (*models.Box, error)
	GetBox(ctx context.Context, id uint) (*models.Box, error)
	GetSellerBoxes(ctx context.Context, sellerID uuid.UUID) ([]models.Box, error)
	SubmitItemSet(ctx context.Context, boxID uint, sellerID uuid.UUID, entries []odds.Entry) (*models.Box, error)
	ClearItems(ctx context.Context, boxID uint, sellerID uuid.UUID) (*models.Box, error)
	SubmitForApproval(ctx context.Context, boxID uint, sellerID uuid.UUID) (*models.Box, error)
	ReopenDraft(ctx context.Context, boxID uint, sellerID uuid.UUID) (*models.Box, error)
	Approve(ctx context.Context, boxID uint, approverID uuid.UUID) (*models.Box, error)
	Reject(ctx context.Context, boxID uint, approverID uuid.UUID, reason string) (*models.Box, error)
}

var (
	ErrBoxNotFound        = apperror.New(apperror.KindNotFound, "box not found")
	ErrNotBoxOwner        = apperror.New(apperror.KindForbidden, "box belongs to another seller")
	ErrBoxNotDraft        = apperror.New(apperror.KindInvalidState, "box items can only change while the box is a draft")
	ErrBoxNotReviewable   = apperror.New(apperror.KindInvalidState, "only draft or pending boxes can be approved or rejected")
	ErrBoxNotRejected     = apperror.New(apperror.KindInvalidState, "only rejected boxes can be reopened")
	ErrReleaseDatePassed  = apperror.New(apperror.KindValidation, "release date must be in the future")
	ErrRejectReasonNeeded = apperror.New(apperror.KindValidation, "a reason is required to reject a box")
	ErrBoxNameRequired    = apperror.New(apperror.KindValidation, "box name is required")
)

func NewBoxService(
	store repository.Store,
	notifier NotificationService,
	clock helpers.Clock,
	logService LogService,
) BoxService {
	return &boxServiceImpl{
		store:      store,
		notifier:   notifier,
		clock:      clock,
		logService: logService,
	}
}

type boxServiceImpl struct {
	store      repository.Store
	notifier   NotificationService
	clock      helpers.Clock
	logService LogService
}

func (s *boxServiceImpl) CreateBox(ctx context.Context, sellerID uuid.UUID, name string, releaseDate time.Time) (*models.Box, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBoxNameRequired
	}
	if !releaseDate.After(s.clock.Now()) {
		return nil, ErrReleaseDatePassed
	}
	box := &models.Box{
		SellerID:    sellerID,
		Name:        name,
		Status:      models.BoxStatusDraft,
		ReleaseDate: releaseDate.UTC(),
	}
	if err := s.store.WithContext(ctx).Boxes().Create(box); err != nil {
		return nil, err
	}
	return box, nil
}

func (s *boxServiceImpl) GetBox(ctx context.Context, id uint) (*models.Box, error) {
	box, err := s.store.WithContext(ctx).Boxes().FindAggregate(id)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, ErrBoxNotFound
	}
	return box, nil
}

func (s *boxServiceImpl) GetSellerBoxes(ctx context.Context, sellerID uuid.UUID) ([]models.Box, error) {
	return s.store.WithContext(ctx).Boxes().FindBySeller(sellerID)
}

// SubmitItemSet replaces the box's items with entries after validating their
// odds and reserving their quantities from catalog stock.
func (s *boxServiceImpl) SubmitItemSet(ctx context.Context, boxID uint, sellerID uuid.UUID, entries []odds.Entry) (*models.Box, error) {
	if err := odds.ValidateEntries(entries); err != nil {
		return nil, err
	}
	weighted := make([]odds.Weighted, len(entries))
	for i, entry := range entries {
		weighted[i] = odds.Weighted{Quantity: entry.Quantity, Weight: entry.Weight}
	}
	rates, err := odds.CalculateDropRates(weighted)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		box, err := s.loadOwned(tx, boxID, sellerID)
		if err != nil {
			return err
		}
		if box.Status != models.BoxStatusDraft {
			return ErrBoxNotDraft
		}
		if err := releaseItems(tx, box); err != nil {
			return err
		}

		total := 0
		ultraRareRate := decimal.Zero
		for i, entry := range entries {
			if err := tx.CatalogStock().Reserve(entry.ProductID, entry.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return apperror.Wrap(apperror.KindValidation, err,
						fmt.Sprintf("not enough stock for product %s", entry.ProductID))
				}
				return err
			}
			isUltraRare := entry.Rarity == models.RarityUltraRare
			item := &models.BoxItem{
				BoxID:             box.ID,
				ProductID:         entry.ProductID,
				RemainingQuantity: entry.Quantity,
				DropRate:          rates[i],
				Rarity:            entry.Rarity,
				IsUltraRare:       isUltraRare,
				IsActive:          true,
				Version:           1,
				RarityWeight:      &models.RarityWeight{Rarity: entry.Rarity, Weight: entry.Weight},
			}
			if err := tx.Items().Create(item); err != nil {
				return err
			}
			total += entry.Quantity
			if isUltraRare {
				ultraRareRate = rates[i]
			}
		}

		box.TotalQuantity = total
		box.HasUltraRare = true
		box.UltraRareProbability = ultraRareRate
		return tx.Boxes().Update(box)
	})
	if err != nil {
		return nil, err
	}

	s.logService.Log.WithFields(logrus.Fields{
		"box":   boxID,
		"items": len(entries),
	}).Info("Box item set submitted")
	return s.GetBox(ctx, boxID)
}

// ClearItems removes every item from a draft box and hands their remaining
// quantities back to catalog stock.
func (s *boxServiceImpl) ClearItems(ctx context.Context, boxID uint, sellerID uuid.UUID) (*models.Box, error) {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		box, err := s.loadOwned(tx, boxID, sellerID)
		if err != nil {
			return err
		}
		if box.Status != models.BoxStatusDraft {
			return ErrBoxNotDraft
		}
		if err := releaseItems(tx, box); err != nil {
			return err
		}
		box.TotalQuantity = 0
		box.HasUltraRare = false
		box.UltraRareProbability = decimal.Zero
		return tx.Boxes().Update(box)
	})
	if err != nil {
		return nil, err
	}
	return s.GetBox(ctx, boxID)
}

func (s *boxServiceImpl) SubmitForApproval(ctx context.Context, boxID uint, sellerID uuid.UUID) (*models.Box, error) {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		box, err := s.loadOwned(tx, boxID, sellerID)
		if err != nil {
			return err
		}
		if box.Status != models.BoxStatusDraft {
			return apperror.New(apperror.KindInvalidState, "only draft boxes can be submitted for approval")
		}
		if err := checkItemSet(box.Items); err != nil {
			return err
		}
		if !box.ReleaseDate.After(s.clock.Now()) {
			return ErrReleaseDatePassed
		}
		box.Status = models.BoxStatusPendingApproval
		return tx.Boxes().Update(box)
	})
	if err != nil {
		return nil, err
	}
	return s.GetBox(ctx, boxID)
}

// ReopenDraft moves a rejected or disabled box back to draft so its seller
// can rework and resubmit it.
func (s *boxServiceImpl) ReopenDraft(ctx context.Context, boxID uint, sellerID uuid.UUID) (*models.Box, error) {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		box, err := s.loadOwned(tx, boxID, sellerID)
		if err != nil {
			return err
		}
		if box.Status != models.BoxStatusRejected {
			return ErrBoxNotRejected
		}
		box.Status = models.BoxStatusDraft
		box.RejectReason = ""
		box.DisabledAt = nil
		return tx.Boxes().Update(box)
	})
	if err != nil {
		return nil, err
	}
	return s.GetBox(ctx, boxID)
}

// Approve publishes one probability record per active item, effective from
// now until the box's release date.
func (s *boxServiceImpl) Approve(ctx context.Context, boxID uint, approverID uuid.UUID) (*models.Box, error) {
	var approved *models.Box
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		box, err := tx.Boxes().FindAggregate(boxID)
		if err != nil {
			return err
		}
		if box == nil {
			return ErrBoxNotFound
		}
		if !reviewable(box.Status) {
			return ErrBoxNotReviewable
		}
		if err := checkItemSet(box.Items); err != nil {
			return err
		}
		now := s.clock.Now()
		if !box.ReleaseDate.After(now) {
			return ErrReleaseDatePassed
		}

		records := make([]models.ProbabilityRecord, 0, len(box.Items))
		for _, item := range box.Items {
			records = append(records, models.ProbabilityRecord{
				BoxID:         box.ID,
				BoxItemID:     item.ID,
				Probability:   item.DropRate,
				EffectiveFrom: now,
				EffectiveTo:   box.ReleaseDate,
				ApprovedBy:    approverID,
				ApprovedAt:    now,
			})
		}
		if err := tx.Probabilities().CreateBatch(records); err != nil {
			return err
		}
		box.Status = models.BoxStatusApproved
		box.RejectReason = ""
		approved = box
		return tx.Boxes().Update(box)
	})
	if err != nil {
		return nil, err
	}

	s.logService.Log.WithFields(logrus.Fields{
		"box":      boxID,
		"approver": approverID.String(),
		"items":    len(approved.Items),
	}).Info("Box approved, probabilities published")
	dispatch(ctx, s.notifier, s.logService, &models.Notification{
		RecipientID: approved.SellerID,
		Type:        models.NotificationBoxApproved,
		Title:       "Box approved",
		Message:     fmt.Sprintf("Your box %q has been approved and is now on sale.", approved.Name),
	})
	return s.GetBox(ctx, boxID)
}

// Reject refuses a box. No probabilities are published and the box's items
// are removed with their stock returned to the catalog.
func (s *boxServiceImpl) Reject(ctx context.Context, boxID uint, approverID uuid.UUID, reason string) (*models.Box, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectReasonNeeded
	}
	var rejected *models.Box
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		box, err := tx.Boxes().FindAggregate(boxID)
		if err != nil {
			return err
		}
		if box == nil {
			return ErrBoxNotFound
		}
		if !reviewable(box.Status) {
			return ErrBoxNotReviewable
		}
		if err := releaseItems(tx, box); err != nil {
			return err
		}
		box.Status = models.BoxStatusRejected
		box.RejectReason = reason
		box.TotalQuantity = 0
		box.HasUltraRare = false
		box.UltraRareProbability = decimal.Zero
		rejected = box
		return tx.Boxes().Update(box)
	})
	if err != nil {
		return nil, err
	}

	s.logService.Log.WithFields(logrus.Fields{
		"box":      boxID,
		"approver": approverID.String(),
		"reason":   reason,
	}).Info("Box rejected")
	dispatch(ctx, s.notifier, s.logService, &models.Notification{
		RecipientID: rejected.SellerID,
		Type:        models.NotificationBoxRejected,
		Title:       "Box rejected",
		Message:     fmt.Sprintf("Your box %q was rejected: %s", rejected.Name, reason),
	})
	return s.GetBox(ctx, boxID)
}

func (s *boxServiceImpl) loadOwned(tx repository.Store, boxID uint, sellerID uuid.UUID) (*models.Box, error) {
	box, err := tx.Boxes().FindAggregate(boxID)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, ErrBoxNotFound
	}
	if box.SellerID != sellerID {
		return nil, ErrNotBoxOwner
	}
	return box, nil
}

// releaseItems restores the remaining quantity of every active item to
// catalog stock and soft-removes the items.
func releaseItems(tx repository.Store, box *models.Box) error {
	active := box.ActiveItems()
	if len(active) == 0 {
		return nil
	}
	for _, item := range active {
		if err := tx.CatalogStock().Restore(item.ProductID, item.RemainingQuantity); err != nil {
			return err
		}
	}
	if err := tx.Items().SoftRemoveByBoxID(box.ID); err != nil {
		return err
	}
	box.Items = nil
	return nil
}

// checkItemSet re-validates a stored item set before it goes live.
func checkItemSet(items []models.BoxItem) error {
	entries := make([]odds.Entry, 0, len(items))
	for _, item := range items {
		if !item.IsActive {
			continue
		}
		entries = append(entries, odds.Entry{
			ProductID: item.ProductID,
			Quantity:  item.RemainingQuantity,
			Rarity:    item.Rarity,
			Weight:    item.Weight(),
		})
	}
	return odds.ValidateEntries(entries)
}

func reviewable(status models.BoxStatus) bool {
	return status == models.BoxStatusDraft || status == models.BoxStatusPendingApproval
}
