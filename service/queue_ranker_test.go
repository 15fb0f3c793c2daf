package service

import (
	"testing"
	"time"

	"songbid/models"

	"github.com/stretchr/testify/assert"
)

func TestRankQueue_OrdersByTotalDescending(t *testing.T) {
	base := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	requests := []*models.SongRequest{
		{ID: 1, EventID: 7, Title: "Song A", Artist: "Artist A", CreatedAt: base},
		{ID: 2, EventID: 7, Title: "Song B", Artist: "Artist B", CreatedAt: base.Add(time.Minute)},
		{ID: 3, EventID: 7, Title: "Song C", Artist: "Artist C", CreatedAt: base.Add(2 * time.Minute)},
	}
	totals := map[int64]int64{1: 10, 2: 50, 3: 30}

	queue := RankQueue(requests, totals)

	assert.Len(t, queue, 3)
	assert.Equal(t, int64(2), queue[0].SongRequestID)
	assert.Equal(t, int64(3), queue[1].SongRequestID)
	assert.Equal(t, int64(1), queue[2].SongRequestID)
	assert.Equal(t, 1, queue[0].Rank)
	assert.Equal(t, 2, queue[1].Rank)
	assert.Equal(t, 3, queue[2].Rank)
	assert.Equal(t, int64(50), queue[0].TotalTokens)
}

func TestRankQueue_TieBrokenByEarlierRequest(t *testing.T) {
	base := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	requests := []*models.SongRequest{
		{ID: 5, EventID: 7, Title: "Later", Artist: "X", CreatedAt: base.Add(time.Hour)},
		{ID: 4, EventID: 7, Title: "Earlier", Artist: "Y", CreatedAt: base},
	}
	totals := map[int64]int64{4: 40, 5: 40}

	queue := RankQueue(requests, totals)

	assert.Equal(t, int64(4), queue[0].SongRequestID)
	assert.Equal(t, int64(5), queue[1].SongRequestID)
}

func TestRankQueue_TimestampTieBrokenByID(t *testing.T) {
	created := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	requests := []*models.SongRequest{
		{ID: 9, EventID: 7, Title: "B", Artist: "B", CreatedAt: created},
		{ID: 8, EventID: 7, Title: "A", Artist: "A", CreatedAt: created},
	}
	totals := map[int64]int64{8: 40, 9: 40}

	queue := RankQueue(requests, totals)

	assert.Equal(t, int64(8), queue[0].SongRequestID)
	assert.Equal(t, int64(9), queue[1].SongRequestID)
}

func TestRankQueue_RequestWithoutBidsRanksLast(t *testing.T) {
	base := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	requests := []*models.SongRequest{
		{ID: 1, EventID: 7, Title: "No bids", Artist: "X", CreatedAt: base},
		{ID: 2, EventID: 7, Title: "Bid on", Artist: "Y", CreatedAt: base.Add(time.Minute)},
	}
	totals := map[int64]int64{2: 5}

	queue := RankQueue(requests, totals)

	assert.Equal(t, int64(2), queue[0].SongRequestID)
	assert.Equal(t, int64(1), queue[1].SongRequestID)
	assert.Equal(t, int64(0), queue[1].TotalTokens)
}

func TestRankQueue_Deterministic(t *testing.T) {
	base := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	requests := []*models.SongRequest{
		{ID: 1, EventID: 7, Title: "A", Artist: "A", CreatedAt: base},
		{ID: 2, EventID: 7, Title: "B", Artist: "B", CreatedAt: base},
		{ID: 3, EventID: 7, Title: "C", Artist: "C", CreatedAt: base},
	}
	totals := map[int64]int64{1: 10, 2: 10, 3: 10}

	first := RankQueue(requests, totals)
	second := RankQueue(requests, totals)

	assert.Equal(t, first, second)
}

func TestRankQueue_Empty(t *testing.T) {
	queue := RankQueue(nil, nil)
	assert.Empty(t, queue)
}
