package rollservice

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	rolldb "github.com/aegis-league/aegis-fantasy/app/modules/roll/infrastructure/repositories"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// FakeRollRepository provides a programmable stub for the rolldb.Repository
// interface.
type FakeRollRepository struct {
	trace []string

	GetTitlesFunc                  func(ctx context.Context, db bun.IDB) ([]rolldb.Title, error)
	GetBannersFunc                 func(ctx context.Context, db bun.IDB) ([]rolldb.Banner, error)
	GetActiveTitleAssignmentFunc   func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (*rolldb.UserTitleAssignment, error)
	GetActiveTitleAssignmentsFunc  func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]rolldb.UserTitleAssignment, error)
	GetActiveBannerAssignmentFunc  func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (*rolldb.UserBannerAssignment, error)
	GetActiveBannerAssignmentsFunc func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]rolldb.UserBannerAssignment, error)
	CountTitleRollsFunc            func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (int, error)
	CountBannerRollsFunc           func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (int, error)
	ReplaceTitleAssignmentFunc     func(ctx context.Context, db bun.IDB, assignment *rolldb.UserTitleAssignment) error
	ReplaceBannerAssignmentFunc    func(ctx context.Context, db bun.IDB, assignment *rolldb.UserBannerAssignment) error

	ReplacedTitles  []rolldb.UserTitleAssignment
	ReplacedBanners []rolldb.UserBannerAssignment
}

func NewFakeRollRepository() *FakeRollRepository {
	return &FakeRollRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRollRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRollRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRollRepository) GetTitles(ctx context.Context, db bun.IDB) ([]rolldb.Title, error) {
	f.record("GetTitles")
	if f.GetTitlesFunc != nil {
		return f.GetTitlesFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRollRepository) GetBanners(ctx context.Context, db bun.IDB) ([]rolldb.Banner, error) {
	f.record("GetBanners")
	if f.GetBannersFunc != nil {
		return f.GetBannersFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRollRepository) GetActiveTitleAssignment(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (*rolldb.UserTitleAssignment, error) {
	f.record("GetActiveTitleAssignment")
	if f.GetActiveTitleAssignmentFunc != nil {
		return f.GetActiveTitleAssignmentFunc(ctx, db, userID, role)
	}
	return nil, rolldb.ErrNotFound
}

func (f *FakeRollRepository) GetActiveTitleAssignments(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]rolldb.UserTitleAssignment, error) {
	f.record("GetActiveTitleAssignments")
	if f.GetActiveTitleAssignmentsFunc != nil {
		return f.GetActiveTitleAssignmentsFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeRollRepository) GetActiveBannerAssignment(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (*rolldb.UserBannerAssignment, error) {
	f.record("GetActiveBannerAssignment")
	if f.GetActiveBannerAssignmentFunc != nil {
		return f.GetActiveBannerAssignmentFunc(ctx, db, userID, role)
	}
	return nil, rolldb.ErrNotFound
}

func (f *FakeRollRepository) GetActiveBannerAssignments(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]rolldb.UserBannerAssignment, error) {
	f.record("GetActiveBannerAssignments")
	if f.GetActiveBannerAssignmentsFunc != nil {
		return f.GetActiveBannerAssignmentsFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeRollRepository) CountTitleRolls(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (int, error) {
	f.record("CountTitleRolls")
	if f.CountTitleRollsFunc != nil {
		return f.CountTitleRollsFunc(ctx, db, userID, role)
	}
	return 0, nil
}

func (f *FakeRollRepository) CountBannerRolls(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (int, error) {
	f.record("CountBannerRolls")
	if f.CountBannerRollsFunc != nil {
		return f.CountBannerRollsFunc(ctx, db, userID, role)
	}
	return 0, nil
}

func (f *FakeRollRepository) ReplaceTitleAssignment(ctx context.Context, db bun.IDB, assignment *rolldb.UserTitleAssignment) error {
	f.record("ReplaceTitleAssignment")
	f.ReplacedTitles = append(f.ReplacedTitles, *assignment)
	if f.ReplaceTitleAssignmentFunc != nil {
		return f.ReplaceTitleAssignmentFunc(ctx, db, assignment)
	}
	return nil
}

func (f *FakeRollRepository) ReplaceBannerAssignment(ctx context.Context, db bun.IDB, assignment *rolldb.UserBannerAssignment) error {
	f.record("ReplaceBannerAssignment")
	f.ReplacedBanners = append(f.ReplacedBanners, *assignment)
	if f.ReplaceBannerAssignmentFunc != nil {
		return f.ReplaceBannerAssignmentFunc(ctx, db, assignment)
	}
	return nil
}

var _ rolldb.Repository = (*FakeRollRepository)(nil)

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
