package routers

import (
	"MysteryBox/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupUnboxRouter(router fiber.Router, server *cmd.Server) {
	unboxHandler := server.UnboxHandler
	router.Post("/owned-boxes/:id/unbox", unboxHandler.Unbox)
	router.Get("/unbox-logs", unboxHandler.ListLogs)
}
