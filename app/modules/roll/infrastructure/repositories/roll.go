package rolldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Impl is the bun-backed Repository.
type Impl struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

var _ Repository = (*Impl)(nil)

// GetTitles returns the full title pool.
func (r *Impl) GetTitles(ctx context.Context, db bun.IDB) ([]Title, error) {
	if db == nil {
		db = r.db
	}
	var titles []Title
	if err := db.NewSelect().Model(&titles).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("rolldb.GetTitles: %w", err)
	}
	return titles, nil
}

// GetBanners returns the full banner pool.
func (r *Impl) GetBanners(ctx context.Context, db bun.IDB) ([]Banner, error) {
	if db == nil {
		db = r.db
	}
	var banners []Banner
	if err := db.NewSelect().Model(&banners).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("rolldb.GetBanners: %w", err)
	}
	return banners, nil
}

// GetActiveTitleAssignment returns the latest non-deleted title row for a
// (user, role).
func (r *Impl) GetActiveTitleAssignment(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (*UserTitleAssignment, error) {
	if db == nil {
		db = r.db
	}
	assignment := new(UserTitleAssignment)
	err := db.NewSelect().
		Model(assignment).
		Where("user_id = ? AND role = ? AND deleted_at IS NULL", userID, role).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rolldb.GetActiveTitleAssignment: %w", err)
	}
	return assignment, nil
}

// GetActiveTitleAssignments returns the active title row per role for one user.
func (r *Impl) GetActiveTitleAssignments(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]UserTitleAssignment, error) {
	if db == nil {
		db = r.db
	}
	var assignments []UserTitleAssignment
	err := db.NewSelect().
		Model(&assignments).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("role ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rolldb.GetActiveTitleAssignments: %w", err)
	}
	return assignments, nil
}

// GetActiveBannerAssignment returns the latest non-deleted banner row for a
// (user, role).
func (r *Impl) GetActiveBannerAssignment(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (*UserBannerAssignment, error) {
	if db == nil {
		db = r.db
	}
	assignment := new(UserBannerAssignment)
	err := db.NewSelect().
		Model(assignment).
		Where("user_id = ? AND role = ? AND deleted_at IS NULL", userID, role).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rolldb.GetActiveBannerAssignment: %w", err)
	}
	return assignment, nil
}

// GetActiveBannerAssignments returns the active banner row per role for one user.
func (r *Impl) GetActiveBannerAssignments(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]UserBannerAssignment, error) {
	if db == nil {
		db = r.db
	}
	var assignments []UserBannerAssignment
	err := db.NewSelect().
		Model(&assignments).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("role ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rolldb.GetActiveBannerAssignments: %w", err)
	}
	return assignments, nil
}

// CountTitleRolls counts the soft-deleted title rows for a (user, role).
// The soft-delete log doubles as the used-roll tally.
func (r *Impl) CountTitleRolls(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (int, error) {
	if db == nil {
		db = r.db
	}
	count, err := db.NewSelect().
		Model((*UserTitleAssignment)(nil)).
		Where("user_id = ? AND role = ? AND deleted_at IS NOT NULL", userID, role).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("rolldb.CountTitleRolls: %w", err)
	}
	return count, nil
}

// CountBannerRolls counts the soft-deleted banner rows for a (user, role).
func (r *Impl) CountBannerRolls(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (int, error) {
	if db == nil {
		db = r.db
	}
	count, err := db.NewSelect().
		Model((*UserBannerAssignment)(nil)).
		Where("user_id = ? AND role = ? AND deleted_at IS NOT NULL", userID, role).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("rolldb.CountBannerRolls: %w", err)
	}
	return count, nil
}

// ReplaceTitleAssignment soft-deletes the active title row and inserts the
// new one.
func (r *Impl) ReplaceTitleAssignment(ctx context.Context, db bun.IDB, assignment *UserTitleAssignment) error {
	if db == nil {
		db = r.db
	}
	now := time.Now().UTC()

	_, err := db.NewUpdate().
		Model((*UserTitleAssignment)(nil)).
		Set("deleted_at = ?", now).
		Where("user_id = ? AND role = ? AND deleted_at IS NULL", assignment.UserID, assignment.Role).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rolldb.ReplaceTitleAssignment: soft delete: %w", err)
	}

	assignment.CreatedAt = now
	if _, err := db.NewInsert().Model(assignment).Exec(ctx); err != nil {
		return fmt.Errorf("rolldb.ReplaceTitleAssignment: insert: %w", err)
	}
	return nil
}

// ReplaceBannerAssignment soft-deletes the active banner row and inserts the
// new one.
func (r *Impl) ReplaceBannerAssignment(ctx context.Context, db bun.IDB, assignment *UserBannerAssignment) error {
	if db == nil {
		db = r.db
	}
	now := time.Now().UTC()

	_, err := db.NewUpdate().
		Model((*UserBannerAssignment)(nil)).
		Set("deleted_at = ?", now).
		Where("user_id = ? AND role = ? AND deleted_at IS NULL", assignment.UserID, assignment.Role).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rolldb.ReplaceBannerAssignment: soft delete: %w", err)
	}

	assignment.CreatedAt = now
	if _, err := db.NewInsert().Model(assignment).Exec(ctx); err != nil {
		return fmt.Errorf("rolldb.ReplaceBannerAssignment: insert: %w", err)
	}
	return nil
}
