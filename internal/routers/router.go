package routers

import (
	"MysteryBox/cmd"
	"MysteryBox/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes mounts /metrics unauthenticated and everything else behind the
// identity middleware.
func SetupRoutes(app *fiber.App, server *cmd.Server) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(server.Registry, promhttp.HandlerOpts{})))

	api := app.Group("/", middleware.Identity())
	SetupBoxRouter(api, server)
	SetupItemRouter(api, server)
	SetupUnboxRouter(api, server)
	SetupJanitorRouter(api, server)
}
