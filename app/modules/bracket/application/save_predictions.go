package bracketservice

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	bracketdb "github.com/aegis-league/aegis-fantasy/app/modules/bracket/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/events"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// PredictionInput is one pick submitted by a user.
type PredictionInput struct {
	MatchID  sharedtypes.MatchID `json:"match_id"`
	WinnerID sharedtypes.TeamID  `json:"winner_id"`
}

// SaveReceipt reports an accepted prediction batch.
type SaveReceipt struct {
	UserID  sharedtypes.UserID `json:"user_id"`
	Count   int                `json:"count"`
	SavedAt time.Time          `json:"saved_at"`
}

// SavePredictions stores a batch of picks for one user. The predictions-open
// gate is checked first; each pick's team slots are snapshotted from the
// bracket as the user currently sees it (official winners over their own
// picks) so rendering never re-resolves ancestors for stored predictions.
func (s *BracketService) SavePredictions(ctx context.Context, userID sharedtypes.UserID, picks []PredictionInput) (results.OperationResult[SaveReceipt, Failure], error) {
	s.logger.InfoContext(ctx, "saving predictions",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("user_id", userID),
		attr.Int("num_picks", len(picks)),
	)

	return serviceWrapper(ctx, s, "SavePredictions", func(ctx context.Context) (results.OperationResult[SaveReceipt, Failure], error) {
		open, err := s.flags.PredictionsOpen(ctx)
		if err != nil {
			return results.OperationResult[SaveReceipt, Failure]{}, fmt.Errorf("failed to read predictions gate: %w", err)
		}
		if !open {
			return results.FailureResult[SaveReceipt](Failure{
				Reason:  ReasonPredictionsLocked,
				Message: "predictions are no longer accepted",
			}), nil
		}

		result, err := runInTx(ctx, s, func(ctx context.Context, db bun.IDB) (results.OperationResult[SaveReceipt, Failure], error) {
			return s.savePredictionsTx(ctx, db, userID, picks)
		})
		if err != nil || result.IsFailure() {
			return result, err
		}

		if pubErr := s.eventBus.Publish(ctx, events.PredictionsSaved, events.PredictionsSavedPayloadV1{
			UserID:  userID,
			Count:   result.Success.Count,
			SavedAt: result.Success.SavedAt,
		}); pubErr != nil {
			s.logger.ErrorContext(ctx, "failed to publish predictions saved event",
				attr.ExtractCorrelationID(ctx),
				attr.UserID("user_id", userID),
				attr.Error(pubErr),
			)
		}

		s.metrics.RecordPredictionsSaved(ctx, result.Success.Count)
		return result, nil
	})
}

func (s *BracketService) savePredictionsTx(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, picks []PredictionInput) (results.OperationResult[SaveReceipt, Failure], error) {
	matches, err := s.repo.GetMatches(ctx, db)
	if err != nil {
		return results.OperationResult[SaveReceipt, Failure]{}, err
	}
	existing, err := s.repo.GetPredictionsByUser(ctx, db, userID)
	if err != nil {
		return results.OperationResult[SaveReceipt, Failure]{}, err
	}

	matchByID := make(map[sharedtypes.MatchID]bracketdb.PlayoffMatch, len(matches))
	for _, m := range matches {
		matchByID[m.ID] = m
	}
	for _, pick := range picks {
		if _, ok := matchByID[pick.MatchID]; !ok {
			return results.FailureResult[SaveReceipt](Failure{
				Reason:  ReasonUnknownMatch,
				Message: fmt.Sprintf("match %s does not exist", pick.MatchID),
			}), nil
		}
	}

	// Snapshot slots against the bracket including the incoming picks, so a
	// batch that predicts a parent and its child in one request resolves the
	// child's slots from the predicted parent winner.
	merged := make([]bracketdb.Prediction, 0, len(existing)+len(picks))
	merged = append(merged, existing...)
	for _, pick := range picks {
		merged = append(merged, bracketdb.Prediction{MatchID: pick.MatchID, WinnerID: pick.WinnerID})
	}
	resolved, err := s.resolveAll(matches, merged)
	if err != nil {
		return results.OperationResult[SaveReceipt, Failure]{}, err
	}
	slotsByMatch := make(map[sharedtypes.MatchID]ResolvedMatch, len(resolved))
	for _, rm := range resolved {
		slotsByMatch[rm.MatchID] = rm
	}

	rows := make([]bracketdb.Prediction, 0, len(picks))
	for _, pick := range picks {
		rm := slotsByMatch[pick.MatchID]
		if !winnerInSlots(pick.WinnerID, rm) {
			return results.FailureResult[SaveReceipt](Failure{
				Reason:  ReasonInvalidWinner,
				Message: fmt.Sprintf("team %s is not in match %s", pick.WinnerID, pick.MatchID),
			}), nil
		}
		rows = append(rows, bracketdb.Prediction{
			UserID:      userID,
			MatchID:     pick.MatchID,
			TeamIDLeft:  rm.Left.TeamID,
			TeamIDRight: rm.Right.TeamID,
			WinnerID:    pick.WinnerID,
		})
	}

	if err := s.repo.UpsertPredictions(ctx, db, userID, rows); err != nil {
		return results.OperationResult[SaveReceipt, Failure]{}, err
	}

	return results.SuccessResult[SaveReceipt, Failure](SaveReceipt{
		UserID:  userID,
		Count:   len(rows),
		SavedAt: time.Now().UTC(),
	}), nil
}

// winnerInSlots reports whether the picked winner is one of the match's
// resolved slots. Picks into fully unknown slots are allowed; a pick that
// contradicts a known slot pair is not.
func winnerInSlots(winnerID sharedtypes.TeamID, rm ResolvedMatch) bool {
	if !rm.Left.Known && !rm.Right.Known {
		return true
	}
	if rm.Left.Known && rm.Left.TeamID == winnerID {
		return true
	}
	if rm.Right.Known && rm.Right.TeamID == winnerID {
		return true
	}
	// One side still unknown: the pick may be the team that ends up there.
	return !rm.Left.Known || !rm.Right.Known
}
