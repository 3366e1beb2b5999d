package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/muna8646/airtisan/config"
	"github.com/muna8646/airtisan/internal/app"
	"github.com/muna8646/airtisan/internal/infrastructure/database/postgres"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	config := config.CreateNewConfig()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if config.Environment == "local" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	db, err := postgres.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword,
		config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName, config.PostgreSQLConfig.DBSSLMode)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()

	if err := postgres.Migrate(db, config.PostgreSQLConfig.DBName); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate the database")
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	if err := server.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize the server")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Server stopped")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	if err := server.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to stop the server cleanly")
	}
}
