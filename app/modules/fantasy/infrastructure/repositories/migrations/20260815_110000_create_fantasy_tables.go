package fantasymigrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS players (
				id        text PRIMARY KEY,
				name      text NOT NULL,
				steam_id  text NOT NULL,
				team_id   text NOT NULL REFERENCES teams (id),
				position  int  NOT NULL CHECK (position BETWEEN 1 AND 5),
				image_url text NULL
			)
		`).Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS games (
				id          text PRIMARY KEY,
				external_id text NOT NULL UNIQUE,
				match_id    uuid NULL REFERENCES playoff_matches (id)
			)
		`).Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS performance_records (
				id                      bigserial PRIMARY KEY,
				game_id                 text NOT NULL REFERENCES games (id),
				player_id               text NOT NULL REFERENCES players (id),
				kills                   int NOT NULL DEFAULT 0,
				deaths                  int NOT NULL DEFAULT 0,
				last_hits               int NOT NULL DEFAULT 0,
				gpm                     int NOT NULL DEFAULT 0,
				madstone_count          int NOT NULL DEFAULT 0,
				tower_kills             int NOT NULL DEFAULT 0,
				wards_placed            int NOT NULL DEFAULT 0,
				camps_stacked           int NOT NULL DEFAULT 0,
				runes_grabbed           int NOT NULL DEFAULT 0,
				watchers_taken          int NOT NULL DEFAULT 0,
				smokes_used             int NOT NULL DEFAULT 0,
				roshan_kills            int NOT NULL DEFAULT 0,
				teamfight_participation double precision NOT NULL DEFAULT 0,
				stun_time               double precision NOT NULL DEFAULT 0,
				tormentor_kills         int NOT NULL DEFAULT 0,
				courier_kills           int NOT NULL DEFAULT 0,
				firstblood_claimed      boolean NOT NULL DEFAULT false,
				eligibility_tags        jsonb NULL,
				UNIQUE (game_id, player_id)
			)
		`).Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw(`
			CREATE INDEX IF NOT EXISTS idx_performance_records_player
			ON performance_records (player_id)
		`).Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS fantasy_rosters (
				user_id         text PRIMARY KEY,
				carry_id        text NULL REFERENCES players (id),
				mid_id          text NULL REFERENCES players (id),
				offlane_id      text NULL REFERENCES players (id),
				soft_support_id text NULL REFERENCES players (id),
				hard_support_id text NULL REFERENCES players (id),
				updated_at      timestamptz NOT NULL DEFAULT current_timestamp
			)
		`).Exec(ctx); err != nil {
			return err
		}

		_, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS roster_scores (
				user_id            text PRIMARY KEY,
				carry_score        double precision NOT NULL DEFAULT 0,
				mid_score          double precision NOT NULL DEFAULT 0,
				offlane_score      double precision NOT NULL DEFAULT 0,
				soft_support_score double precision NOT NULL DEFAULT 0,
				hard_support_score double precision NOT NULL DEFAULT 0,
				total_score        double precision NOT NULL DEFAULT 0,
				updated_at         timestamptz NOT NULL DEFAULT current_timestamp
			)
		`).Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		for _, stmt := range []string{
			"DROP TABLE IF EXISTS roster_scores",
			"DROP TABLE IF EXISTS fantasy_rosters",
			"DROP TABLE IF EXISTS performance_records",
			"DROP TABLE IF EXISTS games",
			"DROP TABLE IF EXISTS players",
		} {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
