package models

// QueueEntry is one position in the derived playback queue.
// Entries are never persisted; they are recomputed from bid data on every read.
type QueueEntry struct {
	SongRequestID int64
	Title         string
	Artist        string
	Rank          int
	TotalTokens   int64
}
