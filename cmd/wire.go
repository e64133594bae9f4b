package cmd

import (
	"MysteryBox/internal/config"
	"MysteryBox/internal/handlers"
	"MysteryBox/internal/services"
	"github.com/prometheus/client_golang/prometheus"
)

type Server struct {
	BoxService          services.BoxService
	BoxHandler          *handlers.BoxHandler
	ItemHandler         *handlers.ItemHandler
	UnboxService        services.UnboxService
	UnboxHandler        *handlers.UnboxHandler
	NotificationService services.NotificationService
	LogService          services.LogService
	Sweeper             *services.DepletionSweeper
	Registry            *prometheus.Registry
	Configuration       *config.Configuration
}

func NewServer(
	boxService services.BoxService,
	boxHandler *handlers.BoxHandler,
	itemHandler *handlers.ItemHandler,
	unboxService services.UnboxService,
	unboxHandler *handlers.UnboxHandler,
	notificationService services.NotificationService,
	logService services.LogService,
	sweeper *services.DepletionSweeper,
	registry *prometheus.Registry,
	configuration *config.Configuration,
) *Server {
	return &Server{
		BoxService:          boxService,
		BoxHandler:          boxHandler,
		ItemHandler:         itemHandler,
		UnboxService:        unboxService,
		UnboxHandler:        unboxHandler,
		NotificationService: notificationService,
		LogService:          logService,
		Sweeper:             sweeper,
		Registry:            registry,
		Configuration:       configuration,
	}
}
