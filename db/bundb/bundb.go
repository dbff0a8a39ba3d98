package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	bracketdb "github.com/aegis-league/aegis-fantasy/app/modules/bracket/infrastructure/repositories"
	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	rolldb "github.com/aegis-league/aegis-fantasy/app/modules/roll/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/config"
)

// DBService bundles the bun connection with the per-module repositories.
type DBService struct {
	BracketDB bracketdb.Repository
	FantasyDB fantasydb.Repository
	RollDB    rolldb.Repository

	db *bun.DB
}

// GetDB returns the underlying database connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// NewBunDBService initializes a DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	registerModels(db)

	return &DBService{
		BracketDB: bracketdb.NewRepository(db),
		FantasyDB: fantasydb.NewRepository(db),
		RollDB:    rolldb.NewRepository(db),
		db:        db,
	}, nil
}

func registerModels(db *bun.DB) {
	db.RegisterModel(
		(*bracketdb.Team)(nil),
		(*bracketdb.PlayoffMatch)(nil),
		(*bracketdb.Prediction)(nil),
		(*fantasydb.Player)(nil),
		(*fantasydb.Game)(nil),
		(*fantasydb.PerformanceRecord)(nil),
		(*fantasydb.Roster)(nil),
		(*fantasydb.RosterScore)(nil),
		(*rolldb.Title)(nil),
		(*rolldb.Banner)(nil),
		(*rolldb.UserTitleAssignment)(nil),
		(*rolldb.UserBannerAssignment)(nil),
	)
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqldb, nil
}
