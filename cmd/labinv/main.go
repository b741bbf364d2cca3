package main

import (
	"context"
	"log"

	"github.com/vbonduro/labinv/internal/config"
	"github.com/vbonduro/labinv/internal/db"
	"github.com/vbonduro/labinv/internal/logging"
	"github.com/vbonduro/labinv/internal/service"
	"github.com/vbonduro/labinv/internal/store"
	"github.com/vbonduro/labinv/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	locationStore := store.NewLocationStore(database)
	itemStore := store.NewItemStore(database)
	inventoryService := service.NewInventoryService(locationStore, itemStore, logger)

	if cfg.SeedSampleData {
		seeded, err := inventoryService.SeedSampleData(context.Background())
		if err != nil {
			logger.Error("failed to seed sample data", "error", err)
			return
		}
		if seeded {
			logger.Info("seeded sample inventory")
		}
	}

	server := web.NewServer(inventoryService, cfg.CORSOrigins, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
