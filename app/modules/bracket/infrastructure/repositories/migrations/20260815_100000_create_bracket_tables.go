package bracketmigrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS teams (
				id        text PRIMARY KEY,
				name      text NOT NULL,
				image_url text NULL
			)
		`).Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS playoff_matches (
				id            uuid PRIMARY KEY,
				round         int  NOT NULL,
				sequence      int  NOT NULL,
				bracket_side  text NOT NULL,
				team_id_left  text NULL REFERENCES teams (id),
				team_id_right text NULL REFERENCES teams (id),
				winner_id     text NULL REFERENCES teams (id),
				UNIQUE (round, sequence, bracket_side)
			)
		`).Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS predictions (
				id            bigserial PRIMARY KEY,
				user_id       text NOT NULL,
				match_id      uuid NOT NULL REFERENCES playoff_matches (id),
				team_id_left  text NULL,
				team_id_right text NULL,
				winner_id     text NOT NULL,
				created_at    timestamptz NOT NULL DEFAULT current_timestamp,
				updated_at    timestamptz NOT NULL DEFAULT current_timestamp,
				UNIQUE (user_id, match_id)
			)
		`).Exec(ctx); err != nil {
			return err
		}

		_, err := db.NewRaw(`
			CREATE INDEX IF NOT EXISTS idx_predictions_user ON predictions (user_id)
		`).Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		for _, stmt := range []string{
			"DROP TABLE IF EXISTS predictions",
			"DROP TABLE IF EXISTS playoff_matches",
			"DROP TABLE IF EXISTS teams",
		} {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
