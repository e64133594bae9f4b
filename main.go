package main

import (
	"MysteryBox/database"
	"MysteryBox/internal/server"
	"fmt"
	"github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	srv, db, err := InitializeServer()
	if err != nil {
		logrus.Fatalf("Failed to initialize server: %v", err)
	}
	defer database.CloseDatabase(db)

	cfg := srv.Configuration
	log := srv.LogService.Log

	if err := srv.Sweeper.Start(); err != nil {
		log.Fatalf("Failed to start depletion sweep: %v", err)
	}
	defer srv.Sweeper.Stop()

	app := server.NewApp(srv, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Failed to shut down cleanly")
		}
	}()

	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
