package rolldb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Repository defines the contract for roll persistence.
// All methods are context-aware and take a bun.IDB so the roll service can
// run the count-then-replace sequence inside one transaction.
//
// Error semantics:
//   - ErrNotFound: record does not exist
//   - Other errors: infrastructure failures (DB connection, query errors)
type Repository interface {
	// GetTitles returns the full title pool.
	GetTitles(ctx context.Context, db bun.IDB) ([]Title, error)

	// GetBanners returns the full banner pool.
	GetBanners(ctx context.Context, db bun.IDB) ([]Banner, error)

	// GetActiveTitleAssignment returns the latest non-deleted title row for
	// a (user, role). Returns ErrNotFound when the role has never been rolled.
	GetActiveTitleAssignment(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (*UserTitleAssignment, error)

	// GetActiveTitleAssignments returns the active title row per role for
	// one user.
	GetActiveTitleAssignments(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]UserTitleAssignment, error)

	// GetActiveBannerAssignment returns the latest non-deleted banner row for
	// a (user, role). Returns ErrNotFound when the role has never been rolled.
	GetActiveBannerAssignment(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (*UserBannerAssignment, error)

	// GetActiveBannerAssignments returns the active banner row per role for
	// one user.
	GetActiveBannerAssignments(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]UserBannerAssignment, error)

	// CountTitleRolls counts the soft-deleted title rows for a (user, role).
	// Each re-roll soft-deletes exactly one row, so the count is the used
	// roll tally; the seeded initial assignment never counts.
	CountTitleRolls(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (int, error)

	// CountBannerRolls counts the soft-deleted banner rows for a (user, role).
	CountBannerRolls(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (int, error)

	// ReplaceTitleAssignment soft-deletes the active title row for the
	// assignment's (user, role) and inserts the new one. Callers supply a
	// transaction to make the sequence atomic against concurrent rolls.
	ReplaceTitleAssignment(ctx context.Context, db bun.IDB, assignment *UserTitleAssignment) error

	// ReplaceBannerAssignment soft-deletes the active banner row for the
	// assignment's (user, role) and inserts the new one.
	ReplaceBannerAssignment(ctx context.Context, db bun.IDB, assignment *UserBannerAssignment) error
}
