package handlers

import (
	"MysteryBox/internal/dto"
	"MysteryBox/internal/mapper"
	"MysteryBox/internal/middleware"
	"MysteryBox/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type BoxHandler struct {
	service services.BoxService
}

func NewBoxHandler(service services.BoxService) *BoxHandler {
	return &BoxHandler{service: service}
}

func (h *BoxHandler) CreateBox(c *fiber.Ctx) error {
	var req dto.CreateBoxDTO
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	box, err := h.service.CreateBox(c.UserContext(), middleware.UserID(c), req.Name, req.ReleaseDate)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToBoxGetDTO(box))
}

func (h *BoxHandler) GetBox(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid box ID"})
	}
	box, err := h.service.GetBox(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *BoxHandler) ListOwnBoxes(c *fiber.Ctx) error {
	boxes, err := h.service.GetSellerBoxes(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToBoxGetDTOs(boxes))
}

func (h *BoxHandler) SubmitForApproval(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid box ID"})
	}
	box, err := h.service.SubmitForApproval(c.UserContext(), id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *BoxHandler) ReopenDraft(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid box ID"})
	}
	box, err := h.service.ReopenDraft(c.UserContext(), id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *BoxHandler) Approve(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid box ID"})
	}
	box, err := h.service.Approve(c.UserContext(), id, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToBoxGetDTO(box))
}

func (h *BoxHandler) Reject(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid box ID"})
	}
	var req dto.RejectBoxDTO
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	box, err := h.service.Reject(c.UserContext(), id, middleware.UserID(c), req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapper.ToBoxGetDTO(box))
}
