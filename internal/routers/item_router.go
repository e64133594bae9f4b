package routers

import (
	"MysteryBox/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupItemRouter(router fiber.Router, server *cmd.Server) {
	itemHandler := server.ItemHandler
	router.Put("/boxes/:id/items", itemHandler.SubmitItems)
	router.Delete("/boxes/:id/items", itemHandler.ClearItems)
	router.Get("/boxes/:id/distribution", itemHandler.GetDistribution)
}
