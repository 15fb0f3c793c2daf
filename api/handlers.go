package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"songbid/models"
	"songbid/service"
)

// provisionUser creates a user for an identity provider reference, or returns
// the existing one. Idempotent.
func (s *Server) provisionUser(c *gin.Context) {
	var req ProvisionUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	user, err := s.userService.GetOrCreateUser(c.Request.Context(), req.ExternalRef)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) getBalance(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	balance, err := s.ledgerService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{UserID: userID, TokenBalance: balance})
}

func (s *Server) getTransactions(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(c, fmt.Errorf("%w: limit must be a positive integer", service.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	transactions, err := s.ledgerService.GetHistory(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "transactions": transactions})
}

// creditTokens grants purchased tokens to a user. Operator facing.
func (s *Server) creditTokens(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	newBalance, err := s.ledgerService.Credit(c.Request.Context(), userID, req.Amount,
		models.TransactionTypePurchase, map[string]any{"source": "api"})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{UserID: userID, TokenBalance: newBalance})
}

func (s *Server) createEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	event, err := s.eventService.CreateEvent(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEventResponse(event))
}

// listEvents returns events in one lifecycle state, defaulting to the ones
// clients can bid on right now.
func (s *Server) listEvents(c *gin.Context) {
	state := models.EventState(c.DefaultQuery("state", string(models.EventStateActive)))

	eventList, err := s.eventService.ListEvents(c.Request.Context(), state)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]*EventResponse, 0, len(eventList))
	for _, event := range eventList {
		result = append(result, toEventResponse(event))
	}

	c.JSON(http.StatusOK, gin.H{"state": state, "events": result})
}

func (s *Server) getEvent(c *gin.Context) {
	eventID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	event, err := s.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(event))
}

func (s *Server) transitionEvent(c *gin.Context) {
	eventID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req TransitionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	event, err := s.eventService.TransitionState(c.Request.Context(), eventID, req.State)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(event))
}

func (s *Server) listRequests(c *gin.Context) {
	eventID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	requests, err := s.catalogService.ListForEvent(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]*SongRequestResponse, 0, len(requests))
	for _, request := range requests {
		result = append(result, &SongRequestResponse{
			SongRequestID: request.ID,
			SongTitle:     request.Title,
			Artist:        request.Artist,
			CreatedAt:     request.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "requests": result})
}

// getQueue returns the current ranked queue. The queue is derived on each
// read; clients are told how often to poll via a response header.
func (s *Server) getQueue(c *gin.Context) {
	eventID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	entries, err := s.queueService.GetQueue(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-Poll-Interval", strconv.Itoa(int(s.cfg.QueuePollInterval.Seconds())))
	c.JSON(http.StatusOK, QueueResponse{EventID: eventID, Queue: toQueueResponse(entries)})
}

func (s *Server) placeBid(c *gin.Context) {
	eventID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	userID := identityFromContext(c)

	result, err := s.biddingService.PlaceBid(c.Request.Context(), eventID, userID, req.SongTitle, req.Artist, req.TokenAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, PlaceBidResponse{
		BidID:      result.BidID,
		NewBalance: result.NewBalance,
		Queue:      toQueueResponse(result.Queue),
	})
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", service.ErrInvalidInput, name)
	}
	return id, nil
}
