package bracketdb

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

// GetTeams returns all teams ordered by name.
func (r *Impl) GetTeams(ctx context.Context, db bun.IDB) ([]Team, error) {
	if db == nil {
		db = r.db
	}
	var teams []Team
	if err := db.NewSelect().Model(&teams).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("bracketdb.GetTeams: %w", err)
	}
	return teams, nil
}

// GetTeam returns one team by ID.
func (r *Impl) GetTeam(ctx context.Context, db bun.IDB, teamID sharedtypes.TeamID) (*Team, error) {
	if db == nil {
		db = r.db
	}
	team := new(Team)
	err := db.NewSelect().Model(team).Where("id = ?", teamID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bracketdb.GetTeam: %w", err)
	}
	return team, nil
}

// GetMatches returns every playoff match in bracket order.
func (r *Impl) GetMatches(ctx context.Context, db bun.IDB) ([]PlayoffMatch, error) {
	if db == nil {
		db = r.db
	}
	var matches []PlayoffMatch
	err := db.NewSelect().
		Model(&matches).
		Order("bracket_side ASC", "round ASC", "sequence ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("bracketdb.GetMatches: %w", err)
	}
	return matches, nil
}

// GetMatch returns one match by ID.
func (r *Impl) GetMatch(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID) (*PlayoffMatch, error) {
	if db == nil {
		db = r.db
	}
	match := new(PlayoffMatch)
	err := db.NewSelect().Model(match).Where("id = ?", matchID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bracketdb.GetMatch: %w", err)
	}
	return match, nil
}

// SetMatchWinner records the official winner of a match.
func (r *Impl) SetMatchWinner(ctx context.Context, db bun.IDB, matchID sharedtypes.MatchID, winnerID sharedtypes.TeamID) error {
	if db == nil {
		db = r.db
	}
	result, err := db.NewUpdate().
		Model((*PlayoffMatch)(nil)).
		Set("winner_id = ?", winnerID).
		Where("id = ?", matchID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("bracketdb.SetMatchWinner: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("bracketdb.SetMatchWinner: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// GetPredictionsByUser returns one user's predictions.
func (r *Impl) GetPredictionsByUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]Prediction, error) {
	if db == nil {
		db = r.db
	}
	var predictions []Prediction
	err := db.NewSelect().
		Model(&predictions).
		Where("user_id = ?", userID).
		Order("match_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("bracketdb.GetPredictionsByUser: %w", err)
	}
	return predictions, nil
}

// GetAllPredictions returns every stored prediction.
func (r *Impl) GetAllPredictions(ctx context.Context, db bun.IDB) ([]Prediction, error) {
	if db == nil {
		db = r.db
	}
	var predictions []Prediction
	if err := db.NewSelect().Model(&predictions).Scan(ctx); err != nil {
		return nil, fmt.Errorf("bracketdb.GetAllPredictions: %w", err)
	}
	return predictions, nil
}

// UpsertPredictions saves a batch of predictions for one user, replacing any
// existing pick per match and refreshing the slot snapshot.
func (r *Impl) UpsertPredictions(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, predictions []Prediction) error {
	if len(predictions) == 0 {
		return nil
	}
	if db == nil {
		db = r.db
	}
	now := time.Now().UTC()
	for i := range predictions {
		predictions[i].UserID = userID
		predictions[i].UpdatedAt = now
	}
	_, err := db.NewInsert().
		Model(&predictions).
		On("CONFLICT (user_id, match_id) DO UPDATE").
		Set("team_id_left = EXCLUDED.team_id_left").
		Set("team_id_right = EXCLUDED.team_id_right").
		Set("winner_id = EXCLUDED.winner_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("bracketdb.UpsertPredictions: %w", err)
	}
	return nil
}
