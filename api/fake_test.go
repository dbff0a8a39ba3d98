package api

import (
	"context"

	bracketservice "github.com/aegis-league/aegis-fantasy/app/modules/bracket/application"
	bracketdb "github.com/aegis-league/aegis-fantasy/app/modules/bracket/infrastructure/repositories"
	fantasyservice "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/application"
	fantasydomain "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/domain"
	fantasyqueue "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/queue"
	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	rollservice "github.com/aegis-league/aegis-fantasy/app/modules/roll/application"
	rolldb "github.com/aegis-league/aegis-fantasy/app/modules/roll/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// FakeBracketService is a programmable bracketservice.Service.
type FakeBracketService struct {
	ResolveBracketFunc      func(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[bracketservice.ResolvedBracket, bracketservice.Failure], error)
	SavePredictionsFunc     func(ctx context.Context, userID sharedtypes.UserID, picks []bracketservice.PredictionInput) (results.OperationResult[bracketservice.SaveReceipt, bracketservice.Failure], error)
	GradePredictionsFunc    func(ctx context.Context) (results.OperationResult[[]bracketservice.LeaderboardRow, bracketservice.Failure], error)
	GetFinalsPredictionFunc func(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[bracketservice.FinalsPrediction, bracketservice.Failure], error)
	RecordMatchWinnerFunc   func(ctx context.Context, matchID sharedtypes.MatchID, winnerID sharedtypes.TeamID) (results.OperationResult[bracketservice.ResolvedMatch, bracketservice.Failure], error)
	GetTeamsFunc            func(ctx context.Context) ([]bracketdb.Team, error)
}

func (f *FakeBracketService) ResolveBracket(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[bracketservice.ResolvedBracket, bracketservice.Failure], error) {
	if f.ResolveBracketFunc != nil {
		return f.ResolveBracketFunc(ctx, userID)
	}
	return results.SuccessResult[bracketservice.ResolvedBracket, bracketservice.Failure](bracketservice.ResolvedBracket{UserID: userID}), nil
}

func (f *FakeBracketService) SavePredictions(ctx context.Context, userID sharedtypes.UserID, picks []bracketservice.PredictionInput) (results.OperationResult[bracketservice.SaveReceipt, bracketservice.Failure], error) {
	if f.SavePredictionsFunc != nil {
		return f.SavePredictionsFunc(ctx, userID, picks)
	}
	return results.SuccessResult[bracketservice.SaveReceipt, bracketservice.Failure](bracketservice.SaveReceipt{UserID: userID, Count: len(picks)}), nil
}

func (f *FakeBracketService) GradePredictions(ctx context.Context) (results.OperationResult[[]bracketservice.LeaderboardRow, bracketservice.Failure], error) {
	if f.GradePredictionsFunc != nil {
		return f.GradePredictionsFunc(ctx)
	}
	return results.SuccessResult[[]bracketservice.LeaderboardRow, bracketservice.Failure](nil), nil
}

func (f *FakeBracketService) GetFinalsPrediction(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[bracketservice.FinalsPrediction, bracketservice.Failure], error) {
	if f.GetFinalsPredictionFunc != nil {
		return f.GetFinalsPredictionFunc(ctx, userID)
	}
	return results.SuccessResult[bracketservice.FinalsPrediction, bracketservice.Failure](bracketservice.FinalsPrediction{UserID: userID}), nil
}

func (f *FakeBracketService) RecordMatchWinner(ctx context.Context, matchID sharedtypes.MatchID, winnerID sharedtypes.TeamID) (results.OperationResult[bracketservice.ResolvedMatch, bracketservice.Failure], error) {
	if f.RecordMatchWinnerFunc != nil {
		return f.RecordMatchWinnerFunc(ctx, matchID, winnerID)
	}
	return results.SuccessResult[bracketservice.ResolvedMatch, bracketservice.Failure](bracketservice.ResolvedMatch{MatchID: matchID, WinnerID: winnerID}), nil
}

func (f *FakeBracketService) GetTeams(ctx context.Context) ([]bracketdb.Team, error) {
	if f.GetTeamsFunc != nil {
		return f.GetTeamsFunc(ctx)
	}
	return nil, nil
}

var _ bracketservice.Service = (*FakeBracketService)(nil)

// FakeFantasyService is a programmable fantasyservice.Service.
type FakeFantasyService struct {
	SyncRosterScoresFunc          func(ctx context.Context) (results.OperationResult[fantasyservice.SyncReport, fantasyservice.Failure], error)
	GetRosterScoreLeaderboardFunc func(ctx context.Context) (results.OperationResult[[]fantasyservice.RosterLeaderboardRow, fantasyservice.Failure], error)
	SaveRosterSlotFunc            func(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role, playerID sharedtypes.PlayerID) (results.OperationResult[fantasyservice.RosterView, fantasyservice.Failure], error)
	GetRosterFunc                 func(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[fantasyservice.RosterView, fantasyservice.Failure], error)
	GetRecentCompletionsFunc      func(ctx context.Context, limit int) (results.OperationResult[[]fantasyservice.RosterView, fantasyservice.Failure], error)
	GetPlayersFunc                func(ctx context.Context) ([]fantasydb.Player, error)
	IngestSeriesFunc              func(ctx context.Context, matchID sharedtypes.MatchID, games []fantasyservice.GameIngest) (results.OperationResult[fantasyservice.IngestReceipt, fantasyservice.Failure], error)
}

func (f *FakeFantasyService) SyncRosterScores(ctx context.Context) (results.OperationResult[fantasyservice.SyncReport, fantasyservice.Failure], error) {
	if f.SyncRosterScoresFunc != nil {
		return f.SyncRosterScoresFunc(ctx)
	}
	return results.SuccessResult[fantasyservice.SyncReport, fantasyservice.Failure](fantasyservice.SyncReport{}), nil
}

func (f *FakeFantasyService) GetRosterScoreLeaderboard(ctx context.Context) (results.OperationResult[[]fantasyservice.RosterLeaderboardRow, fantasyservice.Failure], error) {
	if f.GetRosterScoreLeaderboardFunc != nil {
		return f.GetRosterScoreLeaderboardFunc(ctx)
	}
	return results.SuccessResult[[]fantasyservice.RosterLeaderboardRow, fantasyservice.Failure](nil), nil
}

func (f *FakeFantasyService) SaveRosterSlot(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role, playerID sharedtypes.PlayerID) (results.OperationResult[fantasyservice.RosterView, fantasyservice.Failure], error) {
	if f.SaveRosterSlotFunc != nil {
		return f.SaveRosterSlotFunc(ctx, userID, role, playerID)
	}
	return results.SuccessResult[fantasyservice.RosterView, fantasyservice.Failure](fantasyservice.RosterView{UserID: userID}), nil
}

func (f *FakeFantasyService) GetRoster(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[fantasyservice.RosterView, fantasyservice.Failure], error) {
	if f.GetRosterFunc != nil {
		return f.GetRosterFunc(ctx, userID)
	}
	return results.SuccessResult[fantasyservice.RosterView, fantasyservice.Failure](fantasyservice.RosterView{UserID: userID}), nil
}

func (f *FakeFantasyService) GetRecentCompletions(ctx context.Context, limit int) (results.OperationResult[[]fantasyservice.RosterView, fantasyservice.Failure], error) {
	if f.GetRecentCompletionsFunc != nil {
		return f.GetRecentCompletionsFunc(ctx, limit)
	}
	return results.SuccessResult[[]fantasyservice.RosterView, fantasyservice.Failure](nil), nil
}

func (f *FakeFantasyService) GetPlayers(ctx context.Context) ([]fantasydb.Player, error) {
	if f.GetPlayersFunc != nil {
		return f.GetPlayersFunc(ctx)
	}
	return nil, nil
}

func (f *FakeFantasyService) IngestSeries(ctx context.Context, matchID sharedtypes.MatchID, games []fantasyservice.GameIngest) (results.OperationResult[fantasyservice.IngestReceipt, fantasyservice.Failure], error) {
	if f.IngestSeriesFunc != nil {
		return f.IngestSeriesFunc(ctx, matchID, games)
	}
	return results.SuccessResult[fantasyservice.IngestReceipt, fantasyservice.Failure](fantasyservice.IngestReceipt{MatchID: matchID}), nil
}

var _ fantasyservice.Service = (*FakeFantasyService)(nil)

// FakeQueueService is a programmable fantasyqueue.QueueService.
type FakeQueueService struct {
	EnqueuedReasons []string

	EnqueueScoreSyncFunc func(ctx context.Context, reason string) error
	HealthCheckFunc      func(ctx context.Context) error
}

func (f *FakeQueueService) EnqueueScoreSync(ctx context.Context, reason string) error {
	f.EnqueuedReasons = append(f.EnqueuedReasons, reason)
	if f.EnqueueScoreSyncFunc != nil {
		return f.EnqueueScoreSyncFunc(ctx, reason)
	}
	return nil
}

func (f *FakeQueueService) GetPendingJobs(ctx context.Context) ([]fantasyqueue.JobInfo, error) {
	return nil, nil
}

func (f *FakeQueueService) HealthCheck(ctx context.Context) error {
	if f.HealthCheckFunc != nil {
		return f.HealthCheckFunc(ctx)
	}
	return nil
}

func (f *FakeQueueService) Start(ctx context.Context) error { return nil }
func (f *FakeQueueService) Stop(ctx context.Context) error  { return nil }

var _ fantasyqueue.QueueService = (*FakeQueueService)(nil)

// FakeRollService is a programmable rollservice.Service.
type FakeRollService struct {
	RollTitleFunc      func(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) (results.OperationResult[rollservice.TitleAssignmentView, rollservice.Failure], error)
	RollBannerFunc     func(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) (results.OperationResult[rollservice.BannerAssignmentView, rollservice.Failure], error)
	RemainingRollsFunc func(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[[]rollservice.RollAllowance, rollservice.Failure], error)
	GetAssignmentsFunc func(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[[]rollservice.RoleAssignmentsView, rollservice.Failure], error)
	GetTitlesFunc      func(ctx context.Context) (results.OperationResult[[]rolldb.Title, rollservice.Failure], error)
	GetBannersFunc     func(ctx context.Context) (results.OperationResult[[]rolldb.Banner, rollservice.Failure], error)
}

func (f *FakeRollService) RollTitle(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) (results.OperationResult[rollservice.TitleAssignmentView, rollservice.Failure], error) {
	if f.RollTitleFunc != nil {
		return f.RollTitleFunc(ctx, userID, role)
	}
	return results.SuccessResult[rollservice.TitleAssignmentView, rollservice.Failure](rollservice.TitleAssignmentView{UserID: userID, Role: role}), nil
}

func (f *FakeRollService) RollBanner(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) (results.OperationResult[rollservice.BannerAssignmentView, rollservice.Failure], error) {
	if f.RollBannerFunc != nil {
		return f.RollBannerFunc(ctx, userID, role)
	}
	return results.SuccessResult[rollservice.BannerAssignmentView, rollservice.Failure](rollservice.BannerAssignmentView{UserID: userID, Role: role}), nil
}

func (f *FakeRollService) RemainingRolls(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[[]rollservice.RollAllowance, rollservice.Failure], error) {
	if f.RemainingRollsFunc != nil {
		return f.RemainingRollsFunc(ctx, userID)
	}
	return results.SuccessResult[[]rollservice.RollAllowance, rollservice.Failure](nil), nil
}

func (f *FakeRollService) GetAssignments(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[[]rollservice.RoleAssignmentsView, rollservice.Failure], error) {
	if f.GetAssignmentsFunc != nil {
		return f.GetAssignmentsFunc(ctx, userID)
	}
	return results.SuccessResult[[]rollservice.RoleAssignmentsView, rollservice.Failure](nil), nil
}

func (f *FakeRollService) GetTitles(ctx context.Context) (results.OperationResult[[]rolldb.Title, rollservice.Failure], error) {
	if f.GetTitlesFunc != nil {
		return f.GetTitlesFunc(ctx)
	}
	return results.SuccessResult[[]rolldb.Title, rollservice.Failure](nil), nil
}

func (f *FakeRollService) GetBanners(ctx context.Context) (results.OperationResult[[]rolldb.Banner, rollservice.Failure], error) {
	if f.GetBannersFunc != nil {
		return f.GetBannersFunc(ctx)
	}
	return results.SuccessResult[[]rolldb.Banner, rollservice.Failure](nil), nil
}

func (f *FakeRollService) ActiveModifiers(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) ([]fantasydomain.BannerModifier, []fantasydomain.TitleModifier, error) {
	return nil, nil, nil
}

func (f *FakeRollService) SeedInitialAssignments(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) error {
	return nil
}

var _ rollservice.Service = (*FakeRollService)(nil)
