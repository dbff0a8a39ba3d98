package fantasyservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/events"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// GameIngest is one map of a series: its upstream identifier plus the ten
// stat lines. Eligibility tags arrive precomputed on each line.
type GameIngest struct {
	ExternalID string                        `json:"external_id"`
	Lines      []sharedtypes.PerformanceLine `json:"lines"`
}

// IngestReceipt summarizes one accepted series ingest.
type IngestReceipt struct {
	MatchID sharedtypes.MatchID  `json:"match_id"`
	GameIDs []sharedtypes.GameID `json:"game_ids"`
	Lines   int                  `json:"lines"`
}

// IngestSeries stores the games and stat lines of one playoff series and
// announces them so a roster score sweep gets queued. Re-ingesting an
// external ID replaces its lines, so corrected stats can be replayed.
func (s *FantasyService) IngestSeries(ctx context.Context, matchID sharedtypes.MatchID, games []GameIngest) (results.OperationResult[IngestReceipt, Failure], error) {
	return serviceWrapper(ctx, s, "IngestSeries", func(ctx context.Context) (results.OperationResult[IngestReceipt, Failure], error) {
		result, err := runInTx(ctx, s, func(ctx context.Context, db bun.IDB) (results.OperationResult[IngestReceipt, Failure], error) {
			return s.ingestSeriesTx(ctx, db, matchID, games)
		})
		if err != nil || result.IsFailure() {
			return result, err
		}

		receipt := *result.Success
		if err := s.eventBus.Publish(ctx, events.SeriesIngested, events.SeriesIngestedPayloadV1{
			MatchID: receipt.MatchID,
			GameIDs: receipt.GameIDs,
		}); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish series ingested event",
				attr.ExtractCorrelationID(ctx),
				attr.MatchID("match_id", receipt.MatchID),
				attr.Error(err),
			)
		}
		return result, nil
	})
}

func (s *FantasyService) ingestSeriesTx(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, games []GameIngest) (results.OperationResult[IngestReceipt, Failure], error) {
	players, err := s.repo.GetPlayers(ctx, db)
	if err != nil {
		return results.OperationResult[IngestReceipt, Failure]{}, fmt.Errorf("loading players: %w", err)
	}
	known := make(map[sharedtypes.PlayerID]struct{}, len(players))
	for _, p := range players {
		known[p.ID] = struct{}{}
	}

	receipt := IngestReceipt{MatchID: matchID}
	for _, g := range games {
		for _, line := range g.Lines {
			if _, ok := known[line.PlayerID]; !ok {
				return results.FailureResult[IngestReceipt](Failure{
					Reason:  ReasonUnknownPlayer,
					Message: fmt.Sprintf("game %s references unknown player %s", g.ExternalID, line.PlayerID),
				}), nil
			}
		}

		game := &fantasydb.Game{
			ID:         sharedtypes.GameID(uuid.NewString()),
			ExternalID: g.ExternalID,
			MatchID:    matchID,
		}
		if err := s.repo.UpsertGame(ctx, db, game); err != nil {
			return results.OperationResult[IngestReceipt, Failure]{}, err
		}

		records := make([]fantasydb.PerformanceRecord, 0, len(g.Lines))
		for _, line := range g.Lines {
			records = append(records, recordFromLine(game.ID, line))
		}
		if err := s.repo.UpsertPerformances(ctx, db, records); err != nil {
			return results.OperationResult[IngestReceipt, Failure]{}, err
		}

		receipt.GameIDs = append(receipt.GameIDs, game.ID)
		receipt.Lines += len(records)
	}

	return results.SuccessResult[IngestReceipt, Failure](receipt), nil
}

func recordFromLine(gameID sharedtypes.GameID, line sharedtypes.PerformanceLine) fantasydb.PerformanceRecord {
	return fantasydb.PerformanceRecord{
		GameID:                 gameID,
		PlayerID:               line.PlayerID,
		Kills:                  line.Kills,
		Deaths:                 line.Deaths,
		LastHits:               line.LastHits,
		GPM:                    line.GPM,
		MadstoneCount:          line.MadstoneCount,
		TowerKills:             line.TowerKills,
		WardsPlaced:            line.WardsPlaced,
		CampsStacked:           line.CampsStacked,
		RunesGrabbed:           line.RunesGrabbed,
		WatchersTaken:          line.WatchersTaken,
		SmokesUsed:             line.SmokesUsed,
		RoshanKills:            line.RoshanKills,
		TeamfightParticipation: line.TeamfightParticipation,
		StunTime:               line.StunTime,
		TormentorKills:         line.TormentorKills,
		CourierKills:           line.CourierKills,
		FirstbloodClaimed:      line.FirstbloodClaimed,
		EligibilityTags:        line.Titles,
	}
}
