package service

import (
	"context"
	"fmt"
	"strings"

	"songbid/events"
	"songbid/models"
)

type catalogService struct {
	uowFactory UnitOfWorkFactory
}

// NewCatalogService creates a new song request catalog service
func NewCatalogService(uowFactory UnitOfWorkFactory) CatalogService {
	return &catalogService{
		uowFactory: uowFactory,
	}
}

// GetOrCreateRequest returns the existing request matching (eventID, title,
// artist) case-insensitively, creating it when absent. Fails when the event
// is not active.
func (s *catalogService) GetOrCreateRequest(ctx context.Context, eventID int64, title, artist string) (*models.SongRequest, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(artist) == "" {
		return nil, fmt.Errorf("%w: title and artist must not be empty", ErrInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	request, err := resolveRequest(ctx, uow, eventID, title, artist)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return request, nil
}

// ListForEvent returns all requests for an event, unordered. Ordering is the
// queue ranker's job.
func (s *catalogService) ListForEvent(ctx context.Context, eventID int64) ([]*models.SongRequest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	requests, err := uow.SongRequestRepository().ListForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list song requests: %w", err)
	}

	return requests, nil
}

// resolveRequest checks the event is active and resolves or creates the song
// request inside the caller's unit of work. Shared with the bidding service
// so a bid and its request creation commit atomically.
func resolveRequest(ctx context.Context, uow UnitOfWork, eventID int64, title, artist string) (*models.SongRequest, error) {
	event, err := uow.EventRepository().GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
	}
	if !event.IsActive() {
		return nil, fmt.Errorf("%w: event %d is %s", ErrEventNotActive, eventID, event.State)
	}

	request, created, err := uow.SongRequestRepository().GetOrCreate(ctx, eventID, title, artist)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve song request: %w", err)
	}

	if created {
		uow.EventBus().Publish(events.SongRequestCreatedEvent{
			SongRequestID: request.ID,
			EventID:       eventID,
			Title:         request.Title,
			Artist:        request.Artist,
		})
	}

	return request, nil
}
