package models

import "time"

// SongRequest represents a song requested for an event.
// Created on the first bid for a title+artist pair and never mutated afterwards.
type SongRequest struct {
	ID        int64     `db:"id"`
	EventID   int64     `db:"event_id"`
	Title     string    `db:"title"`
	Artist    string    `db:"artist"`
	CreatedAt time.Time `db:"created_at"`
}
