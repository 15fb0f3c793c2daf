package service

import (
	"context"
	"fmt"

	"songbid/models"
)

type queueService struct {
	uowFactory UnitOfWorkFactory
}

// NewQueueService creates a new queue service
func NewQueueService(uowFactory UnitOfWorkFactory) QueueService {
	return &queueService{
		uowFactory: uowFactory,
	}
}

// GetQueue derives the ranked playback queue for an event. The queue is never
// stored; every call recomputes it from committed bid data, so it always
// reflects the most recent committed bid.
func (s *queueService) GetQueue(ctx context.Context, eventID int64) ([]*models.QueueEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	event, err := uow.EventRepository().GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
	}

	return computeQueue(ctx, uow, eventID)
}
