package server

import (
	"MysteryBox/cmd"
	"MysteryBox/internal/config"
	"MysteryBox/internal/routers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the HTTP app with every route mounted. It does not listen.
func NewApp(server *cmd.Server, cfg *config.Configuration) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:   cfg.Server.RequestConfig.SizeLimit * 1024 * 1024,
		Concurrency: cfg.Server.Concurrency * 1024,
		AppName:     "MysteryBox",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	routers.SetupRoutes(app, server)
	return app
}
