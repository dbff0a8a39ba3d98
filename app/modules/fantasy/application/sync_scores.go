package fantasyservice

import (
	"context"
	"time"

	fantasydomain "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/domain"
	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/events"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// SyncReport summarizes one batch roster score sync.
type SyncReport struct {
	Users    int       `json:"users"`
	SyncedAt time.Time `json:"synced_at"`
}

// SyncRosterScores recomputes and caches every user's roster score in one
// pass. Performance lines are scored under each user's active modifiers, so
// two users holding the same player can earn different role scores.
func (s *FantasyService) SyncRosterScores(ctx context.Context) (results.OperationResult[SyncReport, Failure], error) {
	s.logger.InfoContext(ctx, "starting roster score sync", attr.ExtractCorrelationID(ctx))

	return serviceWrapper(ctx, s, "SyncRosterScores", func(ctx context.Context) (results.OperationResult[SyncReport, Failure], error) {
		startTime := time.Now()

		rosters, err := s.repo.GetRosters(ctx, nil)
		if err != nil {
			return results.OperationResult[SyncReport, Failure]{}, err
		}
		games, err := s.repo.GetSeriesGames(ctx, nil)
		if err != nil {
			return results.OperationResult[SyncReport, Failure]{}, err
		}
		matchByGame := make(map[sharedtypes.GameID]sharedtypes.MatchID, len(games))
		for _, g := range games {
			matchByGame[g.ID] = g.MatchID
		}

		// Performance lines are per player, modifiers per user; cache the
		// former across users.
		perfCache := make(map[sharedtypes.PlayerID][]fantasydb.PerformanceRecord)

		for _, roster := range rosters {
			score, err := s.computeRosterScore(ctx, roster, matchByGame, perfCache)
			if err != nil {
				return results.OperationResult[SyncReport, Failure]{}, err
			}
			if err := s.repo.UpsertRosterScore(ctx, nil, score); err != nil {
				return results.OperationResult[SyncReport, Failure]{}, err
			}
		}

		syncedAt := time.Now().UTC()
		s.metrics.RecordRosterSync(ctx, len(rosters), time.Since(startTime))

		if pubErr := s.eventBus.Publish(ctx, events.RosterScoresSynced, events.RosterScoresSyncedPayloadV1{
			Users:    len(rosters),
			SyncedAt: syncedAt,
		}); pubErr != nil {
			s.logger.ErrorContext(ctx, "failed to publish roster scores synced event",
				attr.ExtractCorrelationID(ctx),
				attr.Error(pubErr),
			)
		}

		return results.SuccessResult[SyncReport, Failure](SyncReport{
			Users:    len(rosters),
			SyncedAt: syncedAt,
		}), nil
	})
}

func (s *FantasyService) computeRosterScore(
	ctx context.Context,
	roster fantasydb.Roster,
	matchByGame map[sharedtypes.GameID]sharedtypes.MatchID,
	perfCache map[sharedtypes.PlayerID][]fantasydb.PerformanceRecord,
) (*fantasydb.RosterScore, error) {
	roleScores := make(fantasydomain.RoleScores, len(sharedtypes.Roles))

	for _, role := range sharedtypes.Roles {
		playerID := roster.PlayerForRole(role)
		if playerID == "" {
			continue
		}

		records, ok := perfCache[playerID]
		if !ok {
			var err error
			records, err = s.repo.GetPerformancesByPlayer(ctx, nil, playerID)
			if err != nil {
				return nil, err
			}
			perfCache[playerID] = records
		}

		banners, titles, err := s.modifiers.ActiveModifiers(ctx, roster.UserID, role)
		if err != nil {
			return nil, err
		}

		gameScores := make([]fantasydomain.GameScore, 0, len(records))
		for _, record := range records {
			gameScores = append(gameScores, fantasydomain.GameScore{
				GameID:  record.GameID,
				MatchID: matchByGame[record.GameID],
				Score:   fantasydomain.Score(record.Line(), banners, titles),
			})
		}
		roleScores[role] = fantasydomain.BestSeriesScore(gameScores)
	}

	total := fantasydomain.RosterTotal(roster.UserID, roleScores)
	return &fantasydb.RosterScore{
		UserID:           total.UserID,
		CarryScore:       total.CarryScore,
		MidScore:         total.MidScore,
		OfflaneScore:     total.OfflaneScore,
		SoftSupportScore: total.SoftSupportScore,
		HardSupportScore: total.HardSupportScore,
		TotalScore:       total.TotalScore,
	}, nil
}

// RosterLeaderboardRow is one ranked user on the roster score leaderboard.
type RosterLeaderboardRow struct {
	Rank             int                `json:"rank"`
	UserID           sharedtypes.UserID `json:"user_id"`
	CarryScore       float64            `json:"carry_score"`
	MidScore         float64            `json:"mid_score"`
	OfflaneScore     float64            `json:"offlane_score"`
	SoftSupportScore float64            `json:"soft_support_score"`
	HardSupportScore float64            `json:"hard_support_score"`
	TotalScore       float64            `json:"total_score"`
}

// GetRosterScoreLeaderboard returns the cached roster scores ranked by total.
func (s *FantasyService) GetRosterScoreLeaderboard(ctx context.Context) (results.OperationResult[[]RosterLeaderboardRow, Failure], error) {
	return serviceWrapper(ctx, s, "GetRosterScoreLeaderboard", func(ctx context.Context) (results.OperationResult[[]RosterLeaderboardRow, Failure], error) {
		scores, err := s.repo.GetRosterScores(ctx, nil)
		if err != nil {
			return results.OperationResult[[]RosterLeaderboardRow, Failure]{}, err
		}
		rows := make([]RosterLeaderboardRow, 0, len(scores))
		for i, sc := range scores {
			rows = append(rows, RosterLeaderboardRow{
				Rank:             i + 1,
				UserID:           sc.UserID,
				CarryScore:       sc.CarryScore,
				MidScore:         sc.MidScore,
				OfflaneScore:     sc.OfflaneScore,
				SoftSupportScore: sc.SoftSupportScore,
				HardSupportScore: sc.HardSupportScore,
				TotalScore:       sc.TotalScore,
			})
		}
		return results.SuccessResult[[]RosterLeaderboardRow, Failure](rows), nil
	})
}
