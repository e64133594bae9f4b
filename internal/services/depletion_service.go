package services

import (
	"MysteryBox/internal/helpers"
	"MysteryBox/internal/models"
	"MysteryBox/internal/repository"
	"fmt"
	"github.com/sirupsen/logrus"
)

// DepletionHandler takes a box off sale once one of its items runs out.
type DepletionHandler interface {
	// HandleDepletion runs inside the caller's transaction. It returns the
	// seller notification to send after commit, or nil when the box had
	// already been disabled.
	HandleDepletion(tx repository.Store, box *models.Box, item *models.BoxItem) (*models.Notification, error)
}

type depletionHandlerImpl struct {
	clock      helpers.Clock
	logService LogService
}

func NewDepletionHandler(clock helpers.Clock, logService LogService) DepletionHandler {
	return &depletionHandlerImpl{clock: clock, logService: logService}
}

func (h *depletionHandlerImpl) HandleDepletion(tx repository.Store, box *models.Box, item *models.BoxItem) (*models.Notification, error) {
	now := h.clock.Now()
	disabled, err := tx.Boxes().Disable(box.ID, now)
	if err != nil {
		return nil, err
	}
	if !disabled {
		return nil, nil
	}
	box.Status = models.BoxStatusRejected
	box.DisabledAt = &now

	h.logService.Log.WithFields(logrus.Fields{
		"box":     box.ID,
		"item":    item.ID,
		"product": item.ProductID.String(),
	}).Warn("Box disabled after an item ran out of stock")

	return &models.Notification{
		RecipientID: box.SellerID,
		Type:        models.NotificationStockDepleted,
		Title:       "Box taken off sale",
		Message: fmt.Sprintf("Product %s in box %q is out of stock. The box has been disabled; add stock and resubmit it for approval.",
			item.ProductID, box.Name),
	}, nil
}
