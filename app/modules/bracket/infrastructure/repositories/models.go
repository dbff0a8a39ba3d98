package bracketdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Team is immutable reference data for one playoff entrant.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID       sharedtypes.TeamID `bun:"id,pk"`
	Name     string             `bun:"name,notnull"`
	ImageURL string             `bun:"image_url"`
}

// PlayoffMatch is one node of the bracket. (round, sequence, bracket_side) is
// unique; the team columns are set only for seeded leaves, and winner_id only
// once the series concludes.
type PlayoffMatch struct {
	bun.BaseModel `bun:"table:playoff_matches,alias:pm"`

	ID          sharedtypes.MatchID     `bun:"id,pk,type:uuid"`
	Round       int                     `bun:"round,notnull"`
	Sequence    int                     `bun:"sequence,notnull"`
	BracketSide sharedtypes.BracketSide `bun:"bracket_side,notnull"`
	TeamIDLeft  sharedtypes.TeamID      `bun:"team_id_left,nullzero"`
	TeamIDRight sharedtypes.TeamID      `bun:"team_id_right,nullzero"`
	WinnerID    sharedtypes.TeamID      `bun:"winner_id,nullzero"`
}

var _ bun.BeforeInsertHook = (*PlayoffMatch)(nil)

func (m *PlayoffMatch) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if m.ID == "" {
		m.ID = sharedtypes.MatchID(uuid.NewString())
	}
	return nil
}

// Prediction is one user's pick for one match. The team columns are
// snapshotted at submit time so rendering a predicted bracket does not need
// to re-resolve ancestors.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:p"`

	ID          int64               `bun:"id,pk,autoincrement"`
	UserID      sharedtypes.UserID  `bun:"user_id,notnull"`
	MatchID     sharedtypes.MatchID `bun:"match_id,type:uuid,notnull"`
	TeamIDLeft  sharedtypes.TeamID  `bun:"team_id_left,nullzero"`
	TeamIDRight sharedtypes.TeamID  `bun:"team_id_right,nullzero"`
	WinnerID    sharedtypes.TeamID  `bun:"winner_id,notnull"`
	CreatedAt   time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time           `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
