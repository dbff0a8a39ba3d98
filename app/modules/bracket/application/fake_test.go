package bracketservice

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	bracketdb "github.com/aegis-league/aegis-fantasy/app/modules/bracket/infrastructure/repositories"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// FakeBracketRepository provides a programmable stub for the
// bracketdb.Repository interface.
type FakeBracketRepository struct {
	trace []string

	GetTeamsFunc             func(ctx context.Context, db bun.IDB) ([]bracketdb.Team, error)
	GetTeamFunc              func(ctx context.Context, db bun.IDB, teamID sharedtypes.TeamID) (*bracketdb.Team, error)
	GetMatchesFunc           func(ctx context.Context, db bun.IDB) ([]bracketdb.PlayoffMatch, error)
	GetMatchFunc             func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*bracketdb.PlayoffMatch, error)
	SetMatchWinnerFunc       func(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, winnerID sharedtypes.TeamID) error
	GetPredictionsByUserFunc func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]bracketdb.Prediction, error)
	GetAllPredictionsFunc    func(ctx context.Context, db bun.IDB) ([]bracketdb.Prediction, error)
	UpsertPredictionsFunc    func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, predictions []bracketdb.Prediction) error

	LastUpsertedPredictions []bracketdb.Prediction
}

func NewFakeBracketRepository() *FakeBracketRepository {
	return &FakeBracketRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeBracketRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeBracketRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeBracketRepository) GetTeams(ctx context.Context, db bun.IDB) ([]bracketdb.Team, error) {
	f.record("GetTeams")
	if f.GetTeamsFunc != nil {
		return f.GetTeamsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeBracketRepository) GetTeam(ctx context.Context, db bun.IDB, teamID sharedtypes.TeamID) (*bracketdb.Team, error) {
	f.record("GetTeam")
	if f.GetTeamFunc != nil {
		return f.GetTeamFunc(ctx, db, teamID)
	}
	return nil, bracketdb.ErrNotFound
}

func (f *FakeBracketRepository) GetMatches(ctx context.Context, db bun.IDB) ([]bracketdb.PlayoffMatch, error) {
	f.record("GetMatches")
	if f.GetMatchesFunc != nil {
		return f.GetMatchesFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeBracketRepository) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*bracketdb.PlayoffMatch, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, matchID)
	}
	return nil, bracketdb.ErrNotFound
}

func (f *FakeBracketRepository) SetMatchWinner(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, winnerID sharedtypes.TeamID) error {
	f.record("SetMatchWinner")
	if f.SetMatchWinnerFunc != nil {
		return f.SetMatchWinnerFunc(ctx, db, matchID, winnerID)
	}
	return nil
}

func (f *FakeBracketRepository) GetPredictionsByUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]bracketdb.Prediction, error) {
	f.record("GetPredictionsByUser")
	if f.GetPredictionsByUserFunc != nil {
		return f.GetPredictionsByUserFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeBracketRepository) GetAllPredictions(ctx context.Context, db bun.IDB) ([]bracketdb.Prediction, error) {
	f.record("GetAllPredictions")
	if f.GetAllPredictionsFunc != nil {
		return f.GetAllPredictionsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeBracketRepository) UpsertPredictions(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, predictions []bracketdb.Prediction) error {
	f.record("UpsertPredictions")
	f.LastUpsertedPredictions = predictions
	if f.UpsertPredictionsFunc != nil {
		return f.UpsertPredictionsFunc(ctx, db, userID, predictions)
	}
	return nil
}

var _ bracketdb.Repository = (*FakeBracketRepository)(nil)

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
