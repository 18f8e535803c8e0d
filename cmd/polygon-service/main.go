package main

import (
	"context"
	"fmt"
	"os"

	"polygon-service/internal/auth"
	"polygon-service/internal/config"
	"polygon-service/internal/db"
	httphandler "polygon-service/internal/http"
	"polygon-service/internal/http/middleware"
	"polygon-service/internal/logger"
	"polygon-service/internal/repository"
	"polygon-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	polygonRepo := repository.NewPolygonRepository(database)
	markerRepo := repository.NewMarkerRepository(database)
	userRepo := repository.NewUserRepository(database)

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.TokenTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	polygonService := service.NewPolygonService(polygonRepo)
	markerService := service.NewMarkerService(markerRepo)
	userService := service.NewUserService(userRepo, tokenIssuer)

	handler := httphandler.NewHandler(polygonService, markerService, userService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	requestLogger := middleware.RequestLogger(appLogger)
	router := httphandler.NewRouter(handler, authMiddleware, requestLogger, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting polygon service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
