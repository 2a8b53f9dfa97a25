package main

import (
	"context"
	"fmt"
	"os"

	"convoyage-service/internal/auth"
	"convoyage-service/internal/config"
	"convoyage-service/internal/db"
	httphandler "convoyage-service/internal/http"
	"convoyage-service/internal/http/middleware"
	"convoyage-service/internal/logger"
	"convoyage-service/internal/maps"
	"convoyage-service/internal/repository"
	"convoyage-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	missionRepo := repository.NewMissionRepository(database)
	gridRepo := repository.NewGridRepository(database)
	invoiceRepo := repository.NewInvoiceRepository(database)

	var distance service.DistanceResolver
	if cfg.Maps.APIKey != "" {
		svc, err := maps.NewDistanceService(cfg.Maps.APIKey, cfg.Maps.Region, cfg.Maps.ReadRetries)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init maps client")
		}
		distance = svc
	} else {
		log.Warn().Msg("MAPS_API_KEY not set, distance must be provided by callers")
	}

	pricingService := service.NewPricingService(gridRepo)
	missionService := service.NewMissionService(missionRepo, invoiceRepo, pricingService, distance)
	invoiceService := service.NewInvoiceService(missionRepo, invoiceRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(missionService, pricingService, invoiceService, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), cfg.Environment, func(ctx context.Context) error {
		return db.HealthCheck(ctx, database)
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting convoyage service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
