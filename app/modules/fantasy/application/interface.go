package fantasyservice

import (
	"context"

	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Service defines the interface for the FantasyService.
type Service interface {
	// SyncRosterScores recomputes and caches every user's roster score.
	SyncRosterScores(ctx context.Context) (results.OperationResult[SyncReport, Failure], error)

	// GetRosterScoreLeaderboard returns cached scores ranked by total.
	GetRosterScoreLeaderboard(ctx context.Context) (results.OperationResult[[]RosterLeaderboardRow, Failure], error)

	// SaveRosterSlot sets one role slot, gated by the roster-open flag.
	SaveRosterSlot(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role, playerID sharedtypes.PlayerID) (results.OperationResult[RosterView, Failure], error)

	// GetRoster returns one user's roster.
	GetRoster(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[RosterView, Failure], error)

	// GetRecentCompletions returns the latest fully filled rosters.
	GetRecentCompletions(ctx context.Context, limit int) (results.OperationResult[[]RosterView, Failure], error)

	// GetPlayers returns the draftable player pool.
	GetPlayers(ctx context.Context) ([]fantasydb.Player, error)

	// IngestSeries stores one series' games and stat lines and announces
	// them for the score sweep.
	IngestSeries(ctx context.Context, matchID sharedtypes.MatchID, games []GameIngest) (results.OperationResult[IngestReceipt, Failure], error)
}

var _ Service = (*FantasyService)(nil)
