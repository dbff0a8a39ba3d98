package fantasyservice

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	fantasydomain "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/domain"
	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// FakeFantasyRepository provides a programmable stub for the
// fantasydb.Repository interface.
type FakeFantasyRepository struct {
	trace []string

	GetPlayersFunc                 func(ctx context.Context, db bun.IDB) ([]fantasydb.Player, error)
	GetPlayerFunc                  func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*fantasydb.Player, error)
	GetSeriesGamesFunc             func(ctx context.Context, db bun.IDB) ([]fantasydb.Game, error)
	GetPerformancesByPlayerFunc    func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) ([]fantasydb.PerformanceRecord, error)
	GetRosterFunc                  func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*fantasydb.Roster, error)
	GetRostersFunc                 func(ctx context.Context, db bun.IDB) ([]fantasydb.Roster, error)
	GetRecentCompletedRostersFunc  func(ctx context.Context, db bun.IDB, limit int) ([]fantasydb.Roster, error)
	UpsertRosterFunc               func(ctx context.Context, db bun.IDB, roster *fantasydb.Roster) error
	UpsertRosterScoreFunc          func(ctx context.Context, db bun.IDB, score *fantasydb.RosterScore) error
	GetRosterScoresFunc            func(ctx context.Context, db bun.IDB) ([]fantasydb.RosterScore, error)
	GetRosterScoreFunc             func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*fantasydb.RosterScore, error)
	UpsertGameFunc                 func(ctx context.Context, db bun.IDB, game *fantasydb.Game) error
	UpsertPerformancesFunc         func(ctx context.Context, db bun.IDB, records []fantasydb.PerformanceRecord) error

	LastUpsertedRoster   *fantasydb.Roster
	UpsertedScores       []fantasydb.RosterScore
	UpsertedGames        []fantasydb.Game
	UpsertedPerformances []fantasydb.PerformanceRecord
}

func NewFakeFantasyRepository() *FakeFantasyRepository {
	return &FakeFantasyRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeFantasyRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeFantasyRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeFantasyRepository) GetPlayers(ctx context.Context, db bun.IDB) ([]fantasydb.Player, error) {
	f.record("GetPlayers")
	if f.GetPlayersFunc != nil {
		return f.GetPlayersFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeFantasyRepository) GetPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*fantasydb.Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, db, playerID)
	}
	return nil, fantasydb.ErrNotFound
}

func (f *FakeFantasyRepository) GetSeriesGames(ctx context.Context, db bun.IDB) ([]fantasydb.Game, error) {
	f.record("GetSeriesGames")
	if f.GetSeriesGamesFunc != nil {
		return f.GetSeriesGamesFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeFantasyRepository) GetPerformancesByPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) ([]fantasydb.PerformanceRecord, error) {
	f.record("GetPerformancesByPlayer")
	if f.GetPerformancesByPlayerFunc != nil {
		return f.GetPerformancesByPlayerFunc(ctx, db, playerID)
	}
	return nil, nil
}

func (f *FakeFantasyRepository) GetRoster(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*fantasydb.Roster, error) {
	f.record("GetRoster")
	if f.GetRosterFunc != nil {
		return f.GetRosterFunc(ctx, db, userID)
	}
	return nil, fantasydb.ErrNotFound
}

func (f *FakeFantasyRepository) GetRosters(ctx context.Context, db bun.IDB) ([]fantasydb.Roster, error) {
	f.record("GetRosters")
	if f.GetRostersFunc != nil {
		return f.GetRostersFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeFantasyRepository) GetRecentCompletedRosters(ctx context.Context, db bun.IDB, limit int) ([]fantasydb.Roster, error) {
	f.record("GetRecentCompletedRosters")
	if f.GetRecentCompletedRostersFunc != nil {
		return f.GetRecentCompletedRostersFunc(ctx, db, limit)
	}
	return nil, nil
}

func (f *FakeFantasyRepository) UpsertRoster(ctx context.Context, db bun.IDB, roster *fantasydb.Roster) error {
	f.record("UpsertRoster")
	f.LastUpsertedRoster = roster
	if f.UpsertRosterFunc != nil {
		return f.UpsertRosterFunc(ctx, db, roster)
	}
	return nil
}

func (f *FakeFantasyRepository) UpsertRosterScore(ctx context.Context, db bun.IDB, score *fantasydb.RosterScore) error {
	f.record("UpsertRosterScore")
	f.UpsertedScores = append(f.UpsertedScores, *score)
	if f.UpsertRosterScoreFunc != nil {
		return f.UpsertRosterScoreFunc(ctx, db, score)
	}
	return nil
}

func (f *FakeFantasyRepository) GetRosterScores(ctx context.Context, db bun.IDB) ([]fantasydb.RosterScore, error) {
	f.record("GetRosterScores")
	if f.GetRosterScoresFunc != nil {
		return f.GetRosterScoresFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeFantasyRepository) GetRosterScore(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*fantasydb.RosterScore, error) {
	f.record("GetRosterScore")
	if f.GetRosterScoreFunc != nil {
		return f.GetRosterScoreFunc(ctx, db, userID)
	}
	return nil, fantasydb.ErrNotFound
}

func (f *FakeFantasyRepository) UpsertGame(ctx context.Context, db bun.IDB, game *fantasydb.Game) error {
	f.record("UpsertGame")
	f.UpsertedGames = append(f.UpsertedGames, *game)
	if f.UpsertGameFunc != nil {
		return f.UpsertGameFunc(ctx, db, game)
	}
	return nil
}

func (f *FakeFantasyRepository) UpsertPerformances(ctx context.Context, db bun.IDB, records []fantasydb.PerformanceRecord) error {
	f.record("UpsertPerformances")
	f.UpsertedPerformances = append(f.UpsertedPerformances, records...)
	if f.UpsertPerformancesFunc != nil {
		return f.UpsertPerformancesFunc(ctx, db, records)
	}
	return nil
}

var _ fantasydb.Repository = (*FakeFantasyRepository)(nil)

// FakeModifierSource returns programmable modifiers per (user, role).
type FakeModifierSource struct {
	ActiveModifiersFunc func(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) ([]fantasydomain.BannerModifier, []fantasydomain.TitleModifier, error)
}

func (f *FakeModifierSource) ActiveModifiers(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) ([]fantasydomain.BannerModifier, []fantasydomain.TitleModifier, error) {
	if f.ActiveModifiersFunc != nil {
		return f.ActiveModifiersFunc(ctx, userID, role)
	}
	return nil, nil, nil
}

// FakeInitialRoller records seed requests.
type FakeInitialRoller struct {
	Seeded []SeededRole

	SeedInitialAssignmentsFunc func(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) error
}

type SeededRole struct {
	UserID sharedtypes.UserID
	Role   sharedtypes.Role
}

func (f *FakeInitialRoller) SeedInitialAssignments(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) error {
	f.Seeded = append(f.Seeded, SeededRole{UserID: userID, Role: role})
	if f.SeedInitialAssignmentsFunc != nil {
		return f.SeedInitialAssignmentsFunc(ctx, userID, role)
	}
	return nil
}

// FakeEventBus records published events.
type FakeEventBus struct {
	Published []PublishedEvent

	PublishFunc func(ctx context.Context, topic string, payload any) error
}

type PublishedEvent struct {
	Topic   string
	Payload any
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, payload any) error {
	f.Published = append(f.Published, PublishedEvent{Topic: topic, Payload: payload})
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, topic, payload)
	}
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return nil, nil
}

func (f *FakeEventBus) Close() error { return nil }
