package bracketdb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Repository defines the contract for bracket persistence.
// All methods are context-aware and take a bun.IDB so callers can run them
// inside or outside a transaction.
//
// Error semantics:
//   - ErrNotFound: record does not exist
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows
//   - Other errors: infrastructure failures (DB connection, query errors)
type Repository interface {
	// GetTeams returns all teams ordered by name.
	GetTeams(ctx context.Context, db bun.IDB) ([]Team, error)

	// GetTeam returns one team. Returns ErrNotFound if it does not exist.
	GetTeam(ctx context.Context, db bun.IDB, teamID sharedtypes.TeamID) (*Team, error)

	// GetMatches returns every playoff match ordered by bracket side, round,
	// then sequence.
	GetMatches(ctx context.Context, db bun.IDB) ([]PlayoffMatch, error)

	// GetMatch returns one match. Returns ErrNotFound if it does not exist.
	GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*PlayoffMatch, error)

	// SetMatchWinner records the official winner of a match.
	// Returns ErrNoRowsAffected if the match does not exist.
	SetMatchWinner(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, winnerID sharedtypes.TeamID) error

	// GetPredictionsByUser returns one user's predictions ordered by match.
	GetPredictionsByUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]Prediction, error)

	// GetAllPredictions returns every stored prediction.
	GetAllPredictions(ctx context.Context, db bun.IDB) ([]Prediction, error)

	// UpsertPredictions saves a batch of predictions for one user. A user
	// holds at most one prediction per match; resubmitting a match replaces
	// the pick and refreshes the slot snapshot.
	UpsertPredictions(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, predictions []Prediction) error
}
