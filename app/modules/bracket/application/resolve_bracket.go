package bracketservice

import (
	"context"

	bracketdomain "github.com/aegis-league/aegis-fantasy/app/modules/bracket/domain"
	bracketdb "github.com/aegis-league/aegis-fantasy/app/modules/bracket/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// ResolvedSlot is one rendered team slot. Unknown slots render as
// placeholders, never as errors.
type ResolvedSlot struct {
	TeamID sharedtypes.TeamID `json:"team_id,omitempty"`
	Known  bool               `json:"known"`
}

// ResolvedMatch is one bracket node with both slots resolved as far as the
// merged winner set allows.
type ResolvedMatch struct {
	MatchID         sharedtypes.MatchID     `json:"match_id"`
	Round           int                     `json:"round"`
	Sequence        int                     `json:"sequence"`
	BracketSide     sharedtypes.BracketSide `json:"bracket_side"`
	Left            ResolvedSlot            `json:"left"`
	Right           ResolvedSlot            `json:"right"`
	WinnerID        sharedtypes.TeamID      `json:"winner_id,omitempty"`
	PredictedWinner sharedtypes.TeamID      `json:"predicted_winner,omitempty"`
}

// ResolvedBracket is the full bracket as one user sees it: official results
// everywhere they exist, the user's predictions filling the rest.
type ResolvedBracket struct {
	UserID  sharedtypes.UserID `json:"user_id"`
	Matches []ResolvedMatch    `json:"matches"`
}

// ResolveBracket resolves every match for one user. An empty userID renders
// the official-results-only bracket.
func (s *BracketService) ResolveBracket(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[ResolvedBracket, Failure], error) {
	s.logger.InfoContext(ctx, "resolving bracket",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("user_id", userID),
	)

	return serviceWrapper(ctx, s, "ResolveBracket", func(ctx context.Context) (results.OperationResult[ResolvedBracket, Failure], error) {
		matches, err := s.repo.GetMatches(ctx, nil)
		if err != nil {
			return results.OperationResult[ResolvedBracket, Failure]{}, err
		}

		var predictions []bracketdb.Prediction
		if userID != "" {
			predictions, err = s.repo.GetPredictionsByUser(ctx, nil, userID)
			if err != nil {
				return results.OperationResult[ResolvedBracket, Failure]{}, err
			}
		}

		resolved, err := s.resolveAll(matches, predictions)
		if err != nil {
			return results.OperationResult[ResolvedBracket, Failure]{}, err
		}

		return results.SuccessResult[ResolvedBracket, Failure](ResolvedBracket{
			UserID:  userID,
			Matches: resolved,
		}), nil
	})
}

// resolveAll walks every stored match through the resolver using official
// winners merged over the supplied predictions.
func (s *BracketService) resolveAll(matches []bracketdb.PlayoffMatch, predictions []bracketdb.Prediction) ([]ResolvedMatch, error) {
	keyByID := make(map[sharedtypes.MatchID]bracketdomain.MatchKey, len(matches))
	seeds := make(map[bracketdomain.MatchKey]bracketdomain.SeedTeams)
	official := make(map[bracketdomain.MatchKey]sharedtypes.TeamID)

	for _, m := range matches {
		key := bracketdomain.MatchKey{Round: m.Round, Sequence: m.Sequence, Side: m.BracketSide}
		keyByID[m.ID] = key
		if m.TeamIDLeft != "" || m.TeamIDRight != "" {
			seeds[key] = bracketdomain.SeedTeams{Left: m.TeamIDLeft, Right: m.TeamIDRight}
		}
		if m.WinnerID != "" {
			official[key] = m.WinnerID
		}
	}

	predicted := make(map[bracketdomain.MatchKey]sharedtypes.TeamID, len(predictions))
	predictedByMatch := make(map[sharedtypes.MatchID]sharedtypes.TeamID, len(predictions))
	for _, p := range predictions {
		key, ok := keyByID[p.MatchID]
		if !ok {
			continue
		}
		predicted[key] = p.WinnerID
		predictedByMatch[p.MatchID] = p.WinnerID
	}

	resolver := bracketdomain.NewResolver(s.topology, seeds)
	winners := bracketdomain.MergeWinners(official, predicted)

	resolved := make([]ResolvedMatch, 0, len(matches))
	for _, m := range matches {
		key := keyByID[m.ID]
		left, right, err := resolver.Resolve(key, winners)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, ResolvedMatch{
			MatchID:         m.ID,
			Round:           m.Round,
			Sequence:        m.Sequence,
			BracketSide:     m.BracketSide,
			Left:            ResolvedSlot{TeamID: left.Team, Known: left.Known},
			Right:           ResolvedSlot{TeamID: right.Team, Known: right.Known},
			WinnerID:        m.WinnerID,
			PredictedWinner: predictedByMatch[m.ID],
		})
	}
	return resolved, nil
}

// GetTeams returns the playoff entrants.
func (s *BracketService) GetTeams(ctx context.Context) ([]bracketdb.Team, error) {
	return s.repo.GetTeams(ctx, nil)
}
