package repository

import (
	"context"
	"fmt"

	"songbid/database"
	"songbid/models"
	"songbid/service"

	"github.com/jackc/pgx/v5"
)

// EventRepository implements the service.EventRepository interface
type EventRepository struct {
	q queryable
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{q: db.Pool}
}

// newEventRepositoryWithTx creates a new event repository with a transaction
func newEventRepositoryWithTx(tx queryable) *EventRepository {
	return &EventRepository{q: tx}
}

// Create creates a new event in the upcoming state
func (r *EventRepository) Create(ctx context.Context, name string) (*models.Event, error) {
	query := `
		INSERT INTO events (name, state)
		VALUES ($1, $2)
		RETURNING id, name, state, created_at, updated_at
	`

	var event models.Event
	err := r.q.QueryRow(ctx, query, name, models.EventStateUpcoming).Scan(
		&event.ID,
		&event.Name,
		&event.State,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create event %q: %w", name, err)
	}

	return &event, nil
}

// GetByID retrieves an event by id
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT id, name, state, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event models.Event
	err := r.q.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.State,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}

	return &event, nil
}

// UpdateState updates an event's lifecycle state
func (r *EventRepository) UpdateState(ctx context.Context, id int64, state models.EventState) error {
	query := `
		UPDATE events
		SET state = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, state, id)
	if err != nil {
		return fmt.Errorf("failed to update state for event %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: event %d", service.ErrNotFound, id)
	}

	return nil
}

// ListByState returns all events in the given state
func (r *EventRepository) ListByState(ctx context.Context, state models.EventState) ([]*models.Event, error) {
	query := `
		SELECT id, name, state, created_at, updated_at
		FROM events
		WHERE state = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list events in state %s: %w", state, err)
	}
	defer rows.Close()

	var result []*models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.State,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		result = append(result, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return result, nil
}
