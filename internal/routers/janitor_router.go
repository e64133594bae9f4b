package routers

import (
	"MysteryBox/cmd"
	"MysteryBox/internal/middleware"
	"MysteryBox/internal/services"
	"errors"
	"github.com/gofiber/fiber/v2"
)

func SetupJanitorRouter(router fiber.Router, server *cmd.Server) {
	sweeper := server.Sweeper
	router.Post("/janitor/sweep", middleware.RequireRole(middleware.RoleStaff), func(ctx *fiber.Ctx) error {
		err := sweeper.ForceSweep()
		if errors.Is(err, services.ErrSweepInProgress) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{})
	})
}
