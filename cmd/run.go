package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"songbid/api"
	"songbid/config"
	"songbid/database"
	"songbid/events"
	"songbid/repository"
	"songbid/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting songbid service...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	// Initialize event bus and its logging consumers
	eventBus := events.NewBus()
	events.RegisterAuditLogging(eventBus)

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	userService := service.NewUserService(uowFactory, cfg.StartingTokenBalance)
	ledgerService := service.NewLedgerService(uowFactory)
	catalogService := service.NewCatalogService(uowFactory)
	biddingService := service.NewBiddingService(uowFactory)
	queueService := service.NewQueueService(uowFactory)
	eventService := service.NewEventService(uowFactory)
	log.Info("Services initialized successfully")

	server := api.NewServer(cfg, userService, ledgerService, catalogService, biddingService, queueService, eventService)

	log.Infof("Service is running in %s mode...", cfg.Environment)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("Shutdown completed")
	return nil
}
