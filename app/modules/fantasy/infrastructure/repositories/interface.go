package fantasydb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Repository defines the contract for fantasy persistence.
// All methods are context-aware and take a bun.IDB so callers can run them
// inside or outside a transaction.
//
// Error semantics:
//   - ErrNotFound: record does not exist
//   - Other errors: infrastructure failures (DB connection, query errors)
type Repository interface {
	// GetPlayers returns all players ordered by team then position.
	GetPlayers(ctx context.Context, db bun.IDB) ([]Player, error)

	// GetPlayer returns one player. Returns ErrNotFound if it does not exist.
	GetPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*Player, error)

	// GetSeriesGames returns every game bound to a playoff match.
	GetSeriesGames(ctx context.Context, db bun.IDB) ([]Game, error)

	// GetPerformancesByPlayer returns all of one player's stat lines.
	GetPerformancesByPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) ([]PerformanceRecord, error)

	// GetRoster returns one user's roster. Returns ErrNotFound if the user
	// has never saved a pick.
	GetRoster(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*Roster, error)

	// GetRosters returns every saved roster.
	GetRosters(ctx context.Context, db bun.IDB) ([]Roster, error)

	// GetRecentCompletedRosters returns fully filled rosters, most recently
	// updated first.
	GetRecentCompletedRosters(ctx context.Context, db bun.IDB, limit int) ([]Roster, error)

	// UpsertRoster creates or updates a user's roster.
	UpsertRoster(ctx context.Context, db bun.IDB, roster *Roster) error

	// UpsertRosterScore writes the cached score row for one user.
	UpsertRosterScore(ctx context.Context, db bun.IDB, score *RosterScore) error

	// GetRosterScores returns cached scores ordered by total descending.
	GetRosterScores(ctx context.Context, db bun.IDB) ([]RosterScore, error)

	// GetRosterScore returns one user's cached score.
	// Returns ErrNotFound if the batch sync has not written it yet.
	GetRosterScore(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*RosterScore, error)

	// UpsertGame inserts a game or rebinds a known external ID to a playoff
	// match. The stored game keeps its ID on conflict.
	UpsertGame(ctx context.Context, db bun.IDB, game *Game) error

	// UpsertPerformances writes stat lines in bulk, replacing any prior line
	// for the same (game, player).
	UpsertPerformances(ctx context.Context, db bun.IDB, records []PerformanceRecord) error
}
