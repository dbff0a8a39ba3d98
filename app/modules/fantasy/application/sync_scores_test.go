package fantasyservice

import (
	"context"
	"log/slog"
	"testing"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	fantasydomain "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/domain"
	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/events"
	"github.com/aegis-league/aegis-fantasy/app/shared/flags"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
	"github.com/aegis-league/aegis-fantasy/internal/observability/metrics"
)

func newTestService(repo *FakeFantasyRepository, bus *FakeEventBus, fl flags.Source, mods ModifierSource, roller InitialRoller) *FantasyService {
	if mods == nil {
		mods = &FakeModifierSource{}
	}
	return NewFantasyService(
		repo,
		bus,
		fl,
		mods,
		roller,
		slog.New(slog.DiscardHandler),
		metrics.NoOp{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
}

func TestSyncRosterScoresAppliesPerUserModifiers(t *testing.T) {
	repo := NewFakeFantasyRepository()
	repo.GetRostersFunc = func(ctx context.Context, db bun.IDB) ([]fantasydb.Roster, error) {
		return []fantasydb.Roster{
			{UserID: "alice", CarryID: "p1"},
			{UserID: "bob", CarryID: "p1"},
		}, nil
	}
	repo.GetSeriesGamesFunc = func(ctx context.Context, db bun.IDB) ([]fantasydb.Game, error) {
		return []fantasydb.Game{{ID: "g1", ExternalID: "x1", MatchID: "m1"}}, nil
	}
	repo.GetPerformancesByPlayerFunc = func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) ([]fantasydb.PerformanceRecord, error) {
		// 10 kills, 10 deaths: base 1210 with the deaths channel floored.
		return []fantasydb.PerformanceRecord{
			{GameID: "g1", PlayerID: playerID, Kills: 10, Deaths: 10},
		}, nil
	}

	mods := &FakeModifierSource{
		ActiveModifiersFunc: func(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) ([]fantasydomain.BannerModifier, []fantasydomain.TitleModifier, error) {
			if userID == "alice" && role == sharedtypes.RoleCarry {
				return []fantasydomain.BannerModifier{
					{Channel: sharedtypes.StatKills, Multiplier: 2.0},
				}, nil, nil
			}
			return nil, nil, nil
		},
	}

	bus := &FakeEventBus{}
	s := newTestService(repo, bus, flags.Static{}, mods, nil)

	res, err := s.SyncRosterScores(context.Background())
	if err != nil {
		t.Fatalf("SyncRosterScores: %v", err)
	}
	if res.Success == nil || res.Success.Users != 2 {
		t.Fatalf("expected 2 users synced, got %+v", res)
	}

	if len(repo.UpsertedScores) != 2 {
		t.Fatalf("upserted %d scores, want 2", len(repo.UpsertedScores))
	}
	byUser := map[sharedtypes.UserID]fantasydb.RosterScore{}
	for _, sc := range repo.UpsertedScores {
		byUser[sc.UserID] = sc
	}

	// Same player, different banners: alice's kills are doubled.
	if got := byUser["alice"].CarryScore; got != 2420 {
		t.Errorf("alice carry score = %v, want 2420", got)
	}
	if got := byUser["bob"].CarryScore; got != 1210 {
		t.Errorf("bob carry score = %v, want 1210", got)
	}
	if byUser["alice"].TotalScore != byUser["alice"].CarryScore {
		t.Errorf("total should equal the single filled role, got %+v", byUser["alice"])
	}

	// The shared player's performances are loaded once, not per user.
	var perfLoads int
	for _, step := range repo.Trace() {
		if step == "GetPerformancesByPlayer" {
			perfLoads++
		}
	}
	if perfLoads != 1 {
		t.Errorf("GetPerformancesByPlayer called %d times, want 1", perfLoads)
	}

	if len(bus.Published) != 1 || bus.Published[0].Topic != events.RosterScoresSynced {
		t.Errorf("expected one RosterScoresSynced event, got %+v", bus.Published)
	}
}

func TestSyncRosterScoresExcludesNonSeriesGames(t *testing.T) {
	repo := NewFakeFantasyRepository()
	repo.GetRostersFunc = func(ctx context.Context, db bun.IDB) ([]fantasydb.Roster, error) {
		return []fantasydb.Roster{{UserID: "alice", MidID: "p2"}}, nil
	}
	repo.GetSeriesGamesFunc = func(ctx context.Context, db bun.IDB) ([]fantasydb.Game, error) {
		return []fantasydb.Game{{ID: "g1", ExternalID: "x1", MatchID: "m1"}}, nil
	}
	repo.GetPerformancesByPlayerFunc = func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) ([]fantasydb.PerformanceRecord, error) {
		return []fantasydb.PerformanceRecord{
			{GameID: "g1", PlayerID: playerID, Kills: 10, Deaths: 10},
			// A group stage game: huge line, but not part of any series.
			{GameID: "g2", PlayerID: playerID, Kills: 50, Deaths: 0},
		}, nil
	}

	s := newTestService(repo, &FakeEventBus{}, flags.Static{}, nil, nil)

	if _, err := s.SyncRosterScores(context.Background()); err != nil {
		t.Fatalf("SyncRosterScores: %v", err)
	}
	if len(repo.UpsertedScores) != 1 {
		t.Fatalf("upserted %d scores, want 1", len(repo.UpsertedScores))
	}
	if got := repo.UpsertedScores[0].MidScore; got != 1210 {
		t.Errorf("mid score = %v, want 1210 (series game only)", got)
	}
}

func TestGetRosterScoreLeaderboard(t *testing.T) {
	repo := NewFakeFantasyRepository()
	repo.GetRosterScoresFunc = func(ctx context.Context, db bun.IDB) ([]fantasydb.RosterScore, error) {
		return []fantasydb.RosterScore{
			{UserID: "alice", TotalScore: 9000},
			{UserID: "bob", TotalScore: 7000},
		}, nil
	}
	s := newTestService(repo, &FakeEventBus{}, flags.Static{}, nil, nil)

	res, err := s.GetRosterScoreLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("GetRosterScoreLeaderboard: %v", err)
	}
	rows := *res.Success
	if len(rows) != 2 || rows[0].Rank != 1 || rows[0].UserID != "alice" || rows[1].Rank != 2 {
		t.Errorf("unexpected leaderboard %+v", rows)
	}
}
