package handlers

import (
	"MysteryBox/internal/mapper"
	"MysteryBox/internal/middleware"
	"MysteryBox/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"net/http"
)

type UnboxHandler struct {
	service services.UnboxService
}

func NewUnboxHandler(service services.UnboxService) *UnboxHandler {
	return &UnboxHandler{service: service}
}

func (h *UnboxHandler) Unbox(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid owned box ID"})
	}
	result, err := h.service.Unbox(c.UserContext(), id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToUnboxResultDTO(result))
}

type unboxLogQuery struct {
	BuyerID   string `query:"buyer_id"`
	ProductID string `query:"product_id"`
	Limit     int    `query:"limit" validate:"min=0"`
	Offset    int    `query:"offset" validate:"min=0"`
}

func (h *UnboxHandler) ListLogs(c *fiber.Ctx) error {
	var q unboxLogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid query"})
	}
	if err := validate.Struct(&q); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "limit and offset must not be negative"})
	}
	query := services.AuditQuery{Limit: q.Limit, Offset: q.Offset}
	if q.BuyerID != "" {
		id, err := uuid.Parse(q.BuyerID)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid buyer_id"})
		}
		query.BuyerID = &id
	}
	if q.ProductID != "" {
		id, err := uuid.Parse(q.ProductID)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid product_id"})
		}
		query.ProductID = &id
	}
	page, err := h.service.GetAuditLog(c.UserContext(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToUnboxLogPageDTO(page))
}
