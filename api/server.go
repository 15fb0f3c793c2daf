package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"songbid/config"
	"songbid/service"
)

// Server hosts the HTTP API for the bidding service
type Server struct {
	cfg            *config.Config
	userService    service.UserService
	ledgerService  service.LedgerService
	catalogService service.CatalogService
	biddingService service.BiddingService
	queueService   service.QueueService
	eventService   service.EventService
	httpServer     *http.Server
}

// NewServer creates a new API server wired to the given services
func NewServer(
	cfg *config.Config,
	userService service.UserService,
	ledgerService service.LedgerService,
	catalogService service.CatalogService,
	biddingService service.BiddingService,
	queueService service.QueueService,
	eventService service.EventService,
) *Server {
	return &Server{
		cfg:            cfg,
		userService:    userService,
		ledgerService:  ledgerService,
		catalogService: catalogService,
		biddingService: biddingService,
		queueService:   queueService,
		eventService:   eventService,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	if s.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/users", s.provisionUser)
		api.GET("/users/:id/balance", s.getBalance)
		api.GET("/users/:id/transactions", s.getTransactions)
		api.POST("/users/:id/credits", s.creditTokens)

		api.POST("/events", s.createEvent)
		api.GET("/events", s.listEvents)
		api.GET("/events/:id", s.getEvent)
		api.POST("/events/:id/state", s.transitionEvent)
		api.GET("/events/:id/requests", s.listRequests)
		api.GET("/events/:id/queue", s.getQueue)

		api.POST("/events/:id/bids", RequireIdentity(), s.placeBid)
	}

	return router
}

// Start runs the HTTP server until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.cfg.ListenAddr).Info("HTTP server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		log.Info("HTTP server stopped")
		return nil
	}
}

// respondError maps service error taxonomy onto HTTP status codes
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEventNotActive):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidStateTransition):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInsufficientFunds):
		// Covers the race variant as well, it wraps ErrInsufficientFunds
		status = http.StatusPaymentRequired
	default:
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}
