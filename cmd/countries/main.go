package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"scrapers/tools/internal/config"
	"scrapers/tools/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ConfigureLogging(cfg.Log); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	log.Info("Starting country lookups...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	if err := app.RunCountries(ctx); err != nil {
		log.Errorf("Country lookups interrupted: %v", err)
		return
	}

	log.Info("Application finished successfully")
}
