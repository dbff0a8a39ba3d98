package bracketservice

import (
	"context"
	"errors"

	bracketdomain "github.com/aegis-league/aegis-fantasy/app/modules/bracket/domain"
	bracketdb "github.com/aegis-league/aegis-fantasy/app/modules/bracket/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/events"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// LeaderboardRow is one ranked user on the prediction leaderboard.
type LeaderboardRow struct {
	Rank    int                `json:"rank"`
	UserID  sharedtypes.UserID `json:"user_id"`
	Correct int                `json:"correct"`
}

// GradePredictions grades every stored prediction against official winners
// and returns the ranked leaderboard. Ties are broken by the earlier
// latest-correct-prediction time, then user ID.
func (s *BracketService) GradePredictions(ctx context.Context) (results.OperationResult[[]LeaderboardRow, Failure], error) {
	return serviceWrapper(ctx, s, "GradePredictions", func(ctx context.Context) (results.OperationResult[[]LeaderboardRow, Failure], error) {
		matches, err := s.repo.GetMatches(ctx, nil)
		if err != nil {
			return results.OperationResult[[]LeaderboardRow, Failure]{}, err
		}
		predictions, err := s.repo.GetAllPredictions(ctx, nil)
		if err != nil {
			return results.OperationResult[[]LeaderboardRow, Failure]{}, err
		}

		official := make(map[sharedtypes.MatchID]sharedtypes.TeamID)
		for _, m := range matches {
			if m.WinnerID != "" {
				official[m.ID] = m.WinnerID
			}
		}

		records := make([]bracketdomain.PredictionRecord, 0, len(predictions))
		for _, p := range predictions {
			records = append(records, bracketdomain.PredictionRecord{
				UserID:    p.UserID,
				MatchID:   p.MatchID,
				WinnerID:  p.WinnerID,
				CreatedAt: p.UpdatedAt,
			})
		}

		ranked := bracketdomain.RankPredictions(records, official)
		rows := make([]LeaderboardRow, 0, len(ranked))
		for i, entry := range ranked {
			rows = append(rows, LeaderboardRow{
				Rank:    i + 1,
				UserID:  entry.UserID,
				Correct: entry.Correct,
			})
		}
		return results.SuccessResult[[]LeaderboardRow, Failure](rows), nil
	})
}

// FinalsPrediction is a user's pick for the grand final.
type FinalsPrediction struct {
	UserID   sharedtypes.UserID  `json:"user_id"`
	MatchID  sharedtypes.MatchID `json:"match_id"`
	WinnerID sharedtypes.TeamID  `json:"winner_id,omitempty"`
}

// GetFinalsPrediction returns one user's grand final pick. The winner is
// empty when the user has not predicted the final.
func (s *BracketService) GetFinalsPrediction(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[FinalsPrediction, Failure], error) {
	return serviceWrapper(ctx, s, "GetFinalsPrediction", func(ctx context.Context) (results.OperationResult[FinalsPrediction, Failure], error) {
		matches, err := s.repo.GetMatches(ctx, nil)
		if err != nil {
			return results.OperationResult[FinalsPrediction, Failure]{}, err
		}

		var final *bracketdb.PlayoffMatch
		for i := range matches {
			if final == nil || matches[i].Round > final.Round {
				final = &matches[i]
			}
		}
		if final == nil {
			return results.FailureResult[FinalsPrediction](Failure{
				Reason:  ReasonUnknownMatch,
				Message: "no matches stored",
			}), nil
		}

		prediction := FinalsPrediction{UserID: userID, MatchID: final.ID}
		predictions, err := s.repo.GetPredictionsByUser(ctx, nil, userID)
		if err != nil {
			return results.OperationResult[FinalsPrediction, Failure]{}, err
		}
		for _, p := range predictions {
			if p.MatchID == final.ID {
				prediction.WinnerID = p.WinnerID
				break
			}
		}
		return results.SuccessResult[FinalsPrediction, Failure](prediction), nil
	})
}

// RecordMatchWinner stores an official winner and announces it. The winner
// must be one of the match's resolved teams.
func (s *BracketService) RecordMatchWinner(ctx context.Context, matchID sharedtypes.MatchID, winnerID sharedtypes.TeamID) (results.OperationResult[ResolvedMatch, Failure], error) {
	s.logger.InfoContext(ctx, "recording match winner",
		attr.ExtractCorrelationID(ctx),
		attr.MatchID("match_id", matchID),
		attr.String("winner_id", string(winnerID)),
	)

	return serviceWrapper(ctx, s, "RecordMatchWinner", func(ctx context.Context) (results.OperationResult[ResolvedMatch, Failure], error) {
		matches, err := s.repo.GetMatches(ctx, nil)
		if err != nil {
			return results.OperationResult[ResolvedMatch, Failure]{}, err
		}

		resolved, err := s.resolveAll(matches, nil)
		if err != nil {
			return results.OperationResult[ResolvedMatch, Failure]{}, err
		}

		var target *ResolvedMatch
		for i := range resolved {
			if resolved[i].MatchID == matchID {
				target = &resolved[i]
				break
			}
		}
		if target == nil {
			return results.FailureResult[ResolvedMatch](Failure{
				Reason:  ReasonUnknownMatch,
				Message: "match does not exist",
			}), nil
		}

		leftMatches := target.Left.Known && target.Left.TeamID == winnerID
		rightMatches := target.Right.Known && target.Right.TeamID == winnerID
		if !leftMatches && !rightMatches {
			return results.FailureResult[ResolvedMatch](Failure{
				Reason:  ReasonInvalidWinner,
				Message: "winner is not one of the match's resolved teams",
			}), nil
		}

		if err := s.repo.SetMatchWinner(ctx, nil, matchID, winnerID); err != nil {
			if errors.Is(err, bracketdb.ErrNoRowsAffected) {
				return results.FailureResult[ResolvedMatch](Failure{
					Reason:  ReasonUnknownMatch,
					Message: "match does not exist",
				}), nil
			}
			return results.OperationResult[ResolvedMatch, Failure]{}, err
		}

		if pubErr := s.eventBus.Publish(ctx, events.MatchWinnerRecorded, events.MatchWinnerRecordedPayloadV1{
			MatchID:  matchID,
			WinnerID: winnerID,
		}); pubErr != nil {
			s.logger.ErrorContext(ctx, "failed to publish match winner event",
				attr.ExtractCorrelationID(ctx),
				attr.MatchID("match_id", matchID),
				attr.Error(pubErr),
			)
		}

		target.WinnerID = winnerID
		return results.SuccessResult[ResolvedMatch, Failure](*target), nil
	})
}
