package api

import (
	"time"

	"songbid/models"
)

// ProvisionUserRequest is the payload for creating a platform user
type ProvisionUserRequest struct {
	ExternalRef string `json:"external_ref" binding:"required"`
}

// UserResponse describes a user and their token balance
type UserResponse struct {
	UserID       int64     `json:"user_id"`
	ExternalRef  string    `json:"external_ref"`
	TokenBalance int64     `json:"token_balance"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreditRequest is the payload for granting tokens to a user
type CreditRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// BalanceResponse carries a user's current token balance
type BalanceResponse struct {
	UserID       int64 `json:"user_id"`
	TokenBalance int64 `json:"token_balance"`
}

// CreateEventRequest is the payload for creating an event
type CreateEventRequest struct {
	Name string `json:"name" binding:"required"`
}

// TransitionEventRequest is the payload for a lifecycle transition
type TransitionEventRequest struct {
	State models.EventState `json:"state" binding:"required"`
}

// EventResponse describes an event
type EventResponse struct {
	EventID   int64             `json:"event_id"`
	Name      string            `json:"name"`
	State     models.EventState `json:"state"`
	CreatedAt time.Time         `json:"created_at"`
}

// PlaceBidRequest is the payload for one bid submission
type PlaceBidRequest struct {
	SongTitle   string `json:"song_title" binding:"required"`
	Artist      string `json:"artist" binding:"required"`
	TokenAmount int64  `json:"token_amount" binding:"required"`
}

// QueueEntryResponse is one position in the derived playback queue
type QueueEntryResponse struct {
	SongRequestID int64  `json:"song_request_id"`
	Rank          int    `json:"rank"`
	SongTitle     string `json:"song_title"`
	Artist        string `json:"artist"`
	TotalTokens   int64  `json:"total_tokens"`
}

// PlaceBidResponse is returned after a committed bid
type PlaceBidResponse struct {
	BidID      int64                 `json:"bid_id"`
	NewBalance int64                 `json:"new_balance"`
	Queue      []*QueueEntryResponse `json:"queue"`
}

// QueueResponse is the ranked playback queue for an event
type QueueResponse struct {
	EventID int64                 `json:"event_id"`
	Queue   []*QueueEntryResponse `json:"queue"`
}

// SongRequestResponse describes a song request
type SongRequestResponse struct {
	SongRequestID int64     `json:"song_request_id"`
	SongTitle     string    `json:"song_title"`
	Artist        string    `json:"artist"`
	CreatedAt     time.Time `json:"created_at"`
}

// ErrorResponse carries a failure back to the client
type ErrorResponse struct {
	Error string `json:"error"`
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		UserID:       user.ID,
		ExternalRef:  user.ExternalRef,
		TokenBalance: user.TokenBalance,
		CreatedAt:    user.CreatedAt,
	}
}

func toEventResponse(event *models.Event) *EventResponse {
	return &EventResponse{
		EventID:   event.ID,
		Name:      event.Name,
		State:     event.State,
		CreatedAt: event.CreatedAt,
	}
}

func toQueueResponse(entries []*models.QueueEntry) []*QueueEntryResponse {
	result := make([]*QueueEntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, &QueueEntryResponse{
			SongRequestID: entry.SongRequestID,
			Rank:          entry.Rank,
			SongTitle:     entry.Title,
			Artist:        entry.Artist,
			TotalTokens:   entry.TotalTokens,
		})
	}
	return result
}
