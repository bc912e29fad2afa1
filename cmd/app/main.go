package main

import (
	"hostmaster/config"
	"hostmaster/di"
	"hostmaster/helper"
	"hostmaster/shared/logger"

	"github.com/rs/zerolog/log"
)

//go:generate go run github.com/swaggo/swag/cmd/swag init -g ./cmd/app/main.go -o ./docs --parseInternal -d ../../

// @title Hostmaster API
// @version 1.0
// @description Hotel management backend: accommodations, rooms, reservations and notifications.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
