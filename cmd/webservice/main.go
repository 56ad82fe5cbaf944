package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimikegami/e-commerce/shop-service/config"
	"github.com/alimikegami/e-commerce/shop-service/internal/app"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/database/mongodb"
	"github.com/rs/zerolog/log"
)

func main() {
	config := config.CreateNewConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := mongodb.ConnectToMongoDB(ctx, config.MongoDBConfig.MongoURI(), config.MongoDBConfig.DBName)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Server stopped")
		}
	case <-quit:
		log.Info().Msg("Shutting down")
	}

	if err := server.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to shut down cleanly")
	}
}
