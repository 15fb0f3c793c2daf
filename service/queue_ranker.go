package service

import (
	"sort"

	"songbid/models"
)

// RankQueue derives the ordered playback queue from the event's song requests
// and their net bid totals. Ordering: descending total tokens, then earlier
// request creation, then lower id so the order is total even on timestamp
// ties. The result is a projection; callers must not persist it.
func RankQueue(requests []*models.SongRequest, totals map[int64]int64) []*models.QueueEntry {
	entries := make([]*models.QueueEntry, 0, len(requests))
	byID := make(map[int64]*models.SongRequest, len(requests))

	for _, req := range requests {
		byID[req.ID] = req
		entries = append(entries, &models.QueueEntry{
			SongRequestID: req.ID,
			Title:         req.Title,
			Artist:        req.Artist,
			TotalTokens:   totals[req.ID],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalTokens != entries[j].TotalTokens {
			return entries[i].TotalTokens > entries[j].TotalTokens
		}
		ri, rj := byID[entries[i].SongRequestID], byID[entries[j].SongRequestID]
		if !ri.CreatedAt.Equal(rj.CreatedAt) {
			return ri.CreatedAt.Before(rj.CreatedAt)
		}
		return ri.ID < rj.ID
	})

	for i, entry := range entries {
		entry.Rank = i + 1
	}

	return entries
}
