package handlers

import (
	"MysteryBox/internal/dto"
	"MysteryBox/internal/mapper"
	"MysteryBox/internal/middleware"
	"MysteryBox/internal/services"
	"github.com/gofiber/fiber/v2"
	"net/http"
)

// ItemHandler serves a box's item set and its drawable distribution.
type ItemHandler struct {
	boxService   services.BoxService
	unboxService services.UnboxService
}

func NewItemHandler(boxService services.BoxService, unboxService services.UnboxService) *ItemHandler {
	return &ItemHandler{boxService: boxService, unboxService: unboxService}
}

func (h *ItemHandler) SubmitItems(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid box ID"})
	}
	var req dto.SubmitItemsDTO
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	box, err := h.boxService.SubmitItemSet(c.UserContext(), id, middleware.UserID(c), mapper.ToOddsEntries(req.Items))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *ItemHandler) ClearItems(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid box ID"})
	}
	box, err := h.boxService.ClearItems(c.UserContext(), id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *ItemHandler) GetDistribution(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid box ID"})
	}
	distribution, err := h.unboxService.GetDistribution(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToDistributionGetDTO(distribution))
}
