package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sillaskon/incidentreporthub-be/internal/api"
	"github.com/sillaskon/incidentreporthub-be/internal/auth"
	"github.com/sillaskon/incidentreporthub-be/internal/config"
	"github.com/sillaskon/incidentreporthub-be/internal/county"
	"github.com/sillaskon/incidentreporthub-be/internal/database"
	"github.com/sillaskon/incidentreporthub-be/internal/logger"
	"github.com/sillaskon/incidentreporthub-be/internal/mailer"
	"github.com/sillaskon/incidentreporthub-be/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Load the county directory once at startup
	directory, err := county.New(cfg.CountyCSVPath, cfg.CountyMapJSON)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load county directory")
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	sender := mailer.NewSendGridSender(cfg.SendGridAPIKey, cfg.FromEmail, cfg.ReplyToEmail)

	// Set up services
	userService := services.NewUserService(db)
	requestService := services.NewRequestService(db, directory, sender, userService)
	inboundService := services.NewInboundService(db)

	// Set up router
	router := api.NewRouter(cfg, db, issuer, directory, userService, requestService, inboundService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
