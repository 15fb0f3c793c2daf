package repository

import (
	"context"
	"fmt"

	"songbid/database"
	"songbid/models"

	"github.com/jackc/pgx/v5"
)

// SongRequestRepository implements the service.SongRequestRepository interface
type SongRequestRepository struct {
	q queryable
}

// NewSongRequestRepository creates a new song request repository
func NewSongRequestRepository(db *database.DB) *SongRequestRepository {
	return &SongRequestRepository{q: db.Pool}
}

// newSongRequestRepositoryWithTx creates a new song request repository with a transaction
func newSongRequestRepositoryWithTx(tx queryable) *SongRequestRepository {
	return &SongRequestRepository{q: tx}
}

// GetOrCreate returns the request matching (eventID, title, artist)
// case-insensitively, creating it when absent. The unique index on
// (event_id, lower(title), lower(artist)) makes this race-safe; the loser of
// a concurrent insert reads the winner's row. The stored title and artist
// keep the casing of whoever created the request first.
func (r *SongRequestRepository) GetOrCreate(ctx context.Context, eventID int64, title, artist string) (*models.SongRequest, bool, error) {
	insertQuery := `
		INSERT INTO song_requests (event_id, title, artist)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, LOWER(title), LOWER(artist)) DO NOTHING
		RETURNING id, event_id, title, artist, created_at
	`

	var request models.SongRequest
	err := r.q.QueryRow(ctx, insertQuery, eventID, title, artist).Scan(
		&request.ID,
		&request.EventID,
		&request.Title,
		&request.Artist,
		&request.CreatedAt,
	)

	if err == nil {
		return &request, true, nil
	}
	if err != pgx.ErrNoRows {
		return nil, false, fmt.Errorf("failed to create song request: %w", err)
	}

	// Conflict: the request already exists
	selectQuery := `
		SELECT id, event_id, title, artist, created_at
		FROM song_requests
		WHERE event_id = $1 AND LOWER(title) = LOWER($2) AND LOWER(artist) = LOWER($3)
	`

	err = r.q.QueryRow(ctx, selectQuery, eventID, title, artist).Scan(
		&request.ID,
		&request.EventID,
		&request.Title,
		&request.Artist,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get song request for event %d: %w", eventID, err)
	}

	return &request, false, nil
}

// GetByID retrieves a song request by id
func (r *SongRequestRepository) GetByID(ctx context.Context, id int64) (*models.SongRequest, error) {
	query := `
		SELECT id, event_id, title, artist, created_at
		FROM song_requests
		WHERE id = $1
	`

	var request models.SongRequest
	err := r.q.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.EventID,
		&request.Title,
		&request.Artist,
		&request.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song request %d: %w", id, err)
	}

	return &request, nil
}

// ListForEvent returns all requests for an event, unordered
func (r *SongRequestRepository) ListForEvent(ctx context.Context, eventID int64) ([]*models.SongRequest, error) {
	query := `
		SELECT id, event_id, title, artist, created_at
		FROM song_requests
		WHERE event_id = $1
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list song requests for event %d: %w", eventID, err)
	}
	defer rows.Close()

	var requests []*models.SongRequest
	for rows.Next() {
		var request models.SongRequest
		err := rows.Scan(
			&request.ID,
			&request.EventID,
			&request.Title,
			&request.Artist,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song request: %w", err)
		}
		requests = append(requests, &request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate song requests: %w", err)
	}

	return requests, nil
}
