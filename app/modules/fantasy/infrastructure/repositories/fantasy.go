package fantasydb

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

// GetPlayers returns all players ordered by team then position.
func (r *Impl) GetPlayers(ctx context.Context, db bun.IDB) ([]Player, error) {
	if db == nil {
		db = r.db
	}
	var players []Player
	err := db.NewSelect().
		Model(&players).
		Order("team_id ASC", "position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fantasydb.GetPlayers: %w", err)
	}
	return players, nil
}

// GetPlayer returns one player by ID.
func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*Player, error) {
	if db == nil {
		db = r.db
	}
	player := new(Player)
	err := db.NewSelect().Model(player).Where("id = ?", playerID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fantasydb.GetPlayer: %w", err)
	}
	return player, nil
}

// GetSeriesGames returns every game bound to a playoff match.
func (r *Impl) GetSeriesGames(ctx context.Context, db bun.IDB) ([]Game, error) {
	if db == nil {
		db = r.db
	}
	var games []Game
	err := db.NewSelect().
		Model(&games).
		Where("match_id IS NOT NULL").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fantasydb.GetSeriesGames: %w", err)
	}
	return games, nil
}

// GetPerformancesByPlayer returns all of one player's stat lines.
func (r *Impl) GetPerformancesByPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) ([]PerformanceRecord, error) {
	if db == nil {
		db = r.db
	}
	var records []PerformanceRecord
	err := db.NewSelect().
		Model(&records).
		Where("player_id = ?", playerID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fantasydb.GetPerformancesByPlayer: %w", err)
	}
	return records, nil
}

// GetRoster returns one user's roster.
func (r *Impl) GetRoster(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*Roster, error) {
	if db == nil {
		db = r.db
	}
	roster := new(Roster)
	err := db.NewSelect().Model(roster).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fantasydb.GetRoster: %w", err)
	}
	return roster, nil
}

// GetRosters returns every saved roster.
func (r *Impl) GetRosters(ctx context.Context, db bun.IDB) ([]Roster, error) {
	if db == nil {
		db = r.db
	}
	var rosters []Roster
	if err := db.NewSelect().Model(&rosters).Scan(ctx); err != nil {
		return nil, fmt.Errorf("fantasydb.GetRosters: %w", err)
	}
	return rosters, nil
}

// GetRecentCompletedRosters returns fully filled rosters, most recently
// updated first.
func (r *Impl) GetRecentCompletedRosters(ctx context.Context, db bun.IDB, limit int) ([]Roster, error) {
	if db == nil {
		db = r.db
	}
	var rosters []Roster
	err := db.NewSelect().
		Model(&rosters).
		Where("carry_id IS NOT NULL").
		Where("mid_id IS NOT NULL").
		Where("offlane_id IS NOT NULL").
		Where("soft_support_id IS NOT NULL").
		Where("hard_support_id IS NOT NULL").
		Order("updated_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fantasydb.GetRecentCompletedRosters: %w", err)
	}
	return rosters, nil
}

// UpsertRoster creates or updates a user's roster.
func (r *Impl) UpsertRoster(ctx context.Context, db bun.IDB, roster *Roster) error {
	if db == nil {
		db = r.db
	}
	roster.UpdatedAt = time.Now().UTC()
	_, err := db.NewInsert().
		Model(roster).
		On("CONFLICT (user_id) DO UPDATE").
		Set("carry_id = EXCLUDED.carry_id").
		Set("mid_id = EXCLUDED.mid_id").
		Set("offlane_id = EXCLUDED.offlane_id").
		Set("soft_support_id = EXCLUDED.soft_support_id").
		Set("hard_support_id = EXCLUDED.hard_support_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("fantasydb.UpsertRoster: %w", err)
	}
	return nil
}

// UpsertRosterScore writes the cached score row for one user.
func (r *Impl) UpsertRosterScore(ctx context.Context, db bun.IDB, score *RosterScore) error {
	if db == nil {
		db = r.db
	}
	score.UpdatedAt = time.Now().UTC()
	_, err := db.NewInsert().
		Model(score).
		On("CONFLICT (user_id) DO UPDATE").
		Set("carry_score = EXCLUDED.carry_score").
		Set("mid_score = EXCLUDED.mid_score").
		Set("offlane_score = EXCLUDED.offlane_score").
		Set("soft_support_score = EXCLUDED.soft_support_score").
		Set("hard_support_score = EXCLUDED.hard_support_score").
		Set("total_score = EXCLUDED.total_score").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("fantasydb.UpsertRosterScore: %w", err)
	}
	return nil
}

// GetRosterScores returns cached scores ordered by total descending.
func (r *Impl) GetRosterScores(ctx context.Context, db bun.IDB) ([]RosterScore, error) {
	if db == nil {
		db = r.db
	}
	var scores []RosterScore
	err := db.NewSelect().
		Model(&scores).
		Order("total_score DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fantasydb.GetRosterScores: %w", err)
	}
	return scores, nil
}

// GetRosterScore returns one user's cached score.
func (r *Impl) GetRosterScore(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*RosterScore, error) {
	if db == nil {
		db = r.db
	}
	score := new(RosterScore)
	err := db.NewSelect().Model(score).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fantasydb.GetRosterScore: %w", err)
	}
	return score, nil
}

// UpsertGame inserts a game or, when the external ID is already known,
// rebinds it to the given playoff match. The stored ID wins on conflict.
func (r *Impl) UpsertGame(ctx context.Context, db bun.IDB, game *Game) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().
		Model(game).
		On("CONFLICT (external_id) DO UPDATE").
		Set("match_id = EXCLUDED.match_id").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("fantasydb.UpsertGame: %w", err)
	}
	return nil
}

// UpsertPerformances writes stat lines in bulk, replacing any prior line for
// the same (game, player).
func (r *Impl) UpsertPerformances(ctx context.Context, db bun.IDB, records []PerformanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().
		Model(&records).
		On("CONFLICT (game_id, player_id) DO UPDATE").
		Set("kills = EXCLUDED.kills").
		Set("deaths = EXCLUDED.deaths").
		Set("last_hits = EXCLUDED.last_hits").
		Set("gpm = EXCLUDED.gpm").
		Set("madstone_count = EXCLUDED.madstone_count").
		Set("tower_kills = EXCLUDED.tower_kills").
		Set("wards_placed = EXCLUDED.wards_placed").
		Set("camps_stacked = EXCLUDED.camps_stacked").
		Set("runes_grabbed = EXCLUDED.runes_grabbed").
		Set("watchers_taken = EXCLUDED.watchers_taken").
		Set("smokes_used = EXCLUDED.smokes_used").
		Set("roshan_kills = EXCLUDED.roshan_kills").
		Set("teamfight_participation = EXCLUDED.teamfight_participation").
		Set("stun_time = EXCLUDED.stun_time").
		Set("tormentor_kills = EXCLUDED.tormentor_kills").
		Set("courier_kills = EXCLUDED.courier_kills").
		Set("firstblood_claimed = EXCLUDED.firstblood_claimed").
		Set("eligibility_tags = EXCLUDED.eligibility_tags").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("fantasydb.UpsertPerformances: %w", err)
	}
	return nil
}
