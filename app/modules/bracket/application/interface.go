package bracketservice

import (
	"context"

	bracketdb "github.com/aegis-league/aegis-fantasy/app/modules/bracket/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Service defines the interface for the BracketService.
type Service interface {
	// ResolveBracket resolves every match for one user, official winners
	// taking precedence over the user's predictions.
	ResolveBracket(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[ResolvedBracket, Failure], error)

	// SavePredictions stores a batch of picks, gated by the predictions-open
	// flag.
	SavePredictions(ctx context.Context, userID sharedtypes.UserID, picks []PredictionInput) (results.OperationResult[SaveReceipt, Failure], error)

	// GradePredictions returns the ranked prediction leaderboard.
	GradePredictions(ctx context.Context) (results.OperationResult[[]LeaderboardRow, Failure], error)

	// GetFinalsPrediction returns one user's grand final pick.
	GetFinalsPrediction(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[FinalsPrediction, Failure], error)

	// RecordMatchWinner stores an official winner.
	RecordMatchWinner(ctx context.Context, matchID sharedtypes.MatchID, winnerID sharedtypes.TeamID) (results.OperationResult[ResolvedMatch, Failure], error)

	// GetTeams returns the playoff entrants.
	GetTeams(ctx context.Context) ([]bracketdb.Team, error)
}

var _ Service = (*BracketService)(nil)
