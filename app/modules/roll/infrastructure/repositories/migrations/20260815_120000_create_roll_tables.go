package rollmigrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS titles (
				id           text PRIMARY KEY,
				type         text NOT NULL,
				modifier     double precision NOT NULL,
				is_secondary boolean NOT NULL DEFAULT false
			)
		`).Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS banners (
				id    text PRIMARY KEY,
				type  text NOT NULL,
				color text NOT NULL CHECK (color IN ('RED', 'BLUE', 'GREEN'))
			)
		`).Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS user_title_assignments (
				id                 bigserial PRIMARY KEY,
				user_id            text NOT NULL,
				role               int  NOT NULL CHECK (role BETWEEN 1 AND 5),
				primary_title_id   text NOT NULL REFERENCES titles (id),
				secondary_title_id text NOT NULL REFERENCES titles (id),
				created_at         timestamptz NOT NULL DEFAULT current_timestamp,
				deleted_at         timestamptz NULL
			)
		`).Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw(`
			CREATE INDEX IF NOT EXISTS idx_user_title_assignments_user_role
			ON user_title_assignments (user_id, role)
		`).Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS user_banner_assignments (
				id                bigserial PRIMARY KEY,
				user_id           text NOT NULL,
				role              int  NOT NULL CHECK (role BETWEEN 1 AND 5),
				top_banner_id     text NOT NULL REFERENCES banners (id),
				top_multiplier    double precision NOT NULL,
				middle_banner_id  text NOT NULL REFERENCES banners (id),
				middle_multiplier double precision NOT NULL,
				bottom_banner_id  text NOT NULL REFERENCES banners (id),
				bottom_multiplier double precision NOT NULL,
				created_at        timestamptz NOT NULL DEFAULT current_timestamp,
				deleted_at        timestamptz NULL
			)
		`).Exec(ctx); err != nil {
			return err
		}

		_, err := db.NewRaw(`
			CREATE INDEX IF NOT EXISTS idx_user_banner_assignments_user_role
			ON user_banner_assignments (user_id, role)
		`).Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		for _, stmt := range []string{
			"DROP TABLE IF EXISTS user_banner_assignments",
			"DROP TABLE IF EXISTS user_title_assignments",
			"DROP TABLE IF EXISTS banners",
			"DROP TABLE IF EXISTS titles",
		} {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
