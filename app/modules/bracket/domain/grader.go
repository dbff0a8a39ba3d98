package bracketdomain

import (
	"sort"
	"time"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// PredictionRecord is the slice of a stored prediction the grader needs.
type PredictionRecord struct {
	UserID    sharedtypes.UserID
	MatchID   sharedtypes.MatchID
	WinnerID  sharedtypes.TeamID
	CreatedAt time.Time
}

// CountCorrectByUser counts, per user, the predictions whose winner matches
// the official winner of the same match. Matches without an official result
// are skipped. Users with no correct predictions do not appear in the map.
func CountCorrectByUser(predictions []PredictionRecord, official map[sharedtypes.MatchID]sharedtypes.TeamID) map[sharedtypes.UserID]int {
	counts := make(map[sharedtypes.UserID]int)
	for _, p := range predictions {
		winner, ok := official[p.MatchID]
		if !ok {
			continue
		}
		if p.WinnerID == winner {
			counts[p.UserID]++
		}
	}
	return counts
}

// LeaderboardEntry is one ranked row of the prediction leaderboard.
type LeaderboardEntry struct {
	UserID  sharedtypes.UserID
	Correct int

	// latestCorrectAt is the creation time of the user's most recent correct
	// prediction; predictions are submitted as a full bracket, so this is
	// effectively the submission time.
	latestCorrectAt time.Time
}

// RankPredictions grades and orders the leaderboard: correct count
// descending, ties broken by earliest submission, then user ID so the order
// is stable regardless of storage iteration order.
func RankPredictions(predictions []PredictionRecord, official map[sharedtypes.MatchID]sharedtypes.TeamID) []LeaderboardEntry {
	byUser := make(map[sharedtypes.UserID]*LeaderboardEntry)
	for _, p := range predictions {
		winner, ok := official[p.MatchID]
		if !ok || p.WinnerID != winner {
			continue
		}
		entry, ok := byUser[p.UserID]
		if !ok {
			entry = &LeaderboardEntry{UserID: p.UserID}
			byUser[p.UserID] = entry
		}
		entry.Correct++
		if p.CreatedAt.After(entry.latestCorrectAt) {
			entry.latestCorrectAt = p.CreatedAt
		}
	}

	entries := make([]LeaderboardEntry, 0, len(byUser))
	for _, entry := range byUser {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Correct != entries[j].Correct {
			return entries[i].Correct > entries[j].Correct
		}
		if !entries[i].latestCorrectAt.Equal(entries[j].latestCorrectAt) {
			return entries[i].latestCorrectAt.Before(entries[j].latestCorrectAt)
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}
