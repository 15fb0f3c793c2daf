package testutil

import (
	"time"

	"songbid/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(externalRef string) *models.User {
	now := time.Now()
	return &models.User{
		ExternalRef:  externalRef,
		TokenBalance: 100,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateTestEvent creates a test event in the given state
func CreateTestEvent(name string, state models.EventState) *models.Event {
	now := time.Now()
	return &models.Event{
		Name:      name,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestSongRequest creates a test song request
func CreateTestSongRequest(eventID int64, title, artist string) *models.SongRequest {
	return &models.SongRequest{
		EventID:   eventID,
		Title:     title,
		Artist:    artist,
		CreatedAt: time.Now(),
	}
}

// CreateTestBid creates a test bid
func CreateTestBid(songRequestID, userID, amount int64) *models.Bid {
	return &models.Bid{
		SongRequestID: songRequestID,
		UserID:        userID,
		TokenAmount:   amount,
		CreatedAt:     time.Now(),
	}
}

// CreateTestTokenTransaction creates a test token transaction entry
func CreateTestTokenTransaction(userID int64, transactionType models.TransactionType) *models.TokenTransaction {
	return &models.TokenTransaction{
		UserID:          userID,
		BalanceBefore:   100,
		BalanceAfter:    90,
		ChangeAmount:    -10,
		TransactionType: transactionType,
		Metadata: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}
