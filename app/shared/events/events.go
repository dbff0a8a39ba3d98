// Package events declares the topics and payloads exchanged between modules.
// Payloads are versioned; a new shape means a new V-suffixed struct and topic.
package events

import (
	"time"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

const (
	// PredictionsSaved fires after a user's prediction batch is stored.
	PredictionsSaved = "bracket.predictions.saved.v1"

	// MatchWinnerRecorded fires when an official winner is written.
	MatchWinnerRecorded = "bracket.match.winner.recorded.v1"

	// SeriesIngested fires when new series games land; the fantasy module
	// subscribes to it to enqueue a roster score sync.
	SeriesIngested = "fantasy.series.ingested.v1"

	// RosterScoresSynced fires after a batch sync finishes.
	RosterScoresSynced = "fantasy.roster.scores.synced.v1"

	// RollAssigned fires after a title or banner roll is accepted.
	RollAssigned = "roll.assigned.v1"
)

type PredictionsSavedPayloadV1 struct {
	UserID  sharedtypes.UserID `json:"user_id"`
	Count   int                `json:"count"`
	SavedAt time.Time          `json:"saved_at"`
}

type MatchWinnerRecordedPayloadV1 struct {
	MatchID  sharedtypes.MatchID `json:"match_id"`
	WinnerID sharedtypes.TeamID  `json:"winner_id"`
}

type SeriesIngestedPayloadV1 struct {
	MatchID sharedtypes.MatchID  `json:"match_id"`
	GameIDs []sharedtypes.GameID `json:"game_ids"`
}

type RosterScoresSyncedPayloadV1 struct {
	Users    int       `json:"users"`
	SyncedAt time.Time `json:"synced_at"`
}

type RollAssignedPayloadV1 struct {
	UserID    sharedtypes.UserID `json:"user_id"`
	Role      sharedtypes.Role   `json:"role"`
	Family    string             `json:"family"`
	Remaining int                `json:"remaining"`
}
