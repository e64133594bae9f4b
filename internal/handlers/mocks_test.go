package handlers

import (
	"MysteryBox/internal/middleware"
	"MysteryBox/internal/models"
	"MysteryBox/internal/odds"
	"MysteryBox/internal/services"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBoxService struct {
	mock.Mock
}

func (m *MockBoxService) box(args mock.Arguments) (*models.Box, error) {
	if box, ok := args.Get(0).(*models.Box); ok {
		return box, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBoxService) CreateBox(ctx context.Context, sellerID uuid.UUID, name string, releaseDate time.Time) (*models.Box, error) {
	return m.box(m.Called(sellerID, name, releaseDate))
}

func (m *MockBoxService) GetBox(ctx context.Context, id uint) (*models.Box, error) {
	return m.box(m.Called(id))
}

func (m *MockBoxService) GetSellerBoxes(ctx context.Context, sellerID uuid.UUID) ([]models.Box, error) {
	args := m.Called(sellerID)
	if boxes, ok := args.Get(0).([]models.Box); ok {
		return boxes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBoxService) SubmitItemSet(ctx context.Context, boxID uint, sellerID uuid.UUID, entries []odds.Entry) (*models.Box, error) {
	return m.box(m.Called(boxID, sellerID, entries))
}

func (m *MockBoxService) ClearItems(ctx context.Context, boxID uint, sellerID uuid.UUID) (*models.Box, error) {
	return m.box(m.Called(boxID, sellerID))
}

func (m *MockBoxService) SubmitForApproval(ctx context.Context, boxID uint, sellerID uuid.UUID) (*models.Box, error) {
	return m.box(m.Called(boxID, sellerID))
}

func (m *MockBoxService) ReopenDraft(ctx context.Context, boxID uint, sellerID uuid.UUID) (*models.Box, error) {
	return m.box(m.Called(boxID, sellerID))
}

func (m *MockBoxService) Approve(ctx context.Context, boxID uint, approverID uuid.UUID) (*models.Box, error) {
	return m.box(m.Called(boxID, approverID))
}

func (m *MockBoxService) Reject(ctx context.Context, boxID uint, approverID uuid.UUID, reason string) (*models.Box, error) {
	return m.box(m.Called(boxID, approverID, reason))
}

type MockUnboxService struct {
	mock.Mock
}

func (m *MockUnboxService) Unbox(ctx context.Context, ownedBoxID uint, buyerID uuid.UUID) (*services.UnboxResult, error) {
	args := m.Called(ownedBoxID, buyerID)
	if result, ok := args.Get(0).(*services.UnboxResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUnboxService) GetAuditLog(ctx context.Context, query services.AuditQuery) (*services.AuditPage, error) {
	args := m.Called(query)
	if page, ok := args.Get(0).(*services.AuditPage); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUnboxService) GetDistribution(ctx context.Context, boxID uint) (*services.Distribution, error) {
	args := m.Called(boxID)
	if distribution, ok := args.Get(0).(*services.Distribution); ok {
		return distribution, args.Error(1)
	}
	return nil, args.Error(1)
}

// newTestApp returns an app that authenticates requests the same way the
// real router does.
func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.Identity())
	return app
}
