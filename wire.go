//go:build wireinject
// +build wireinject

package main

import (
	"MysteryBox/cmd"
	"MysteryBox/database"
	"MysteryBox/internal/handlers"
	"MysteryBox/internal/helpers"
	"MysteryBox/internal/metrics"
	"MysteryBox/internal/repository"
	"MysteryBox/internal/services"
	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeServer() (*cmd.Server, *gorm.DB, error) {
	wire.Build(
		cmd.NewServer,
		ConfigurationProvider,
		database.SetupDatabase,
		repository.NewStore,
		helpers.NewSystemClock,
		metrics.NewRegistry,
		UnboxMetricsProvider,
		JobMetricsProvider,
		RandomSourceProvider,
		services.NewLogService,
		services.NewNotificationService,
		services.NewDepletionHandler,
		services.NewBoxService,
		services.NewUnboxService,
		services.NewDepletionSweeper,
		handlers.NewBoxHandler,
		handlers.NewItemHandler,
		handlers.NewUnboxHandler,
	)
	return nil, nil, nil
}
