// Package testutils provisions containers, schema, and connections for the
// integration suites.
package testutils

import (
	"context"
	"fmt"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	bracketmigrations "github.com/aegis-league/aegis-fantasy/app/modules/bracket/infrastructure/repositories/migrations"
	fantasymigrations "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories/migrations"
	rollmigrations "github.com/aegis-league/aegis-fantasy/app/modules/roll/infrastructure/repositories/migrations"
	"github.com/aegis-league/aegis-fantasy/config"
	"github.com/aegis-league/aegis-fantasy/db/bundb"
	"github.com/aegis-league/aegis-fantasy/integration_tests/containers"
)

// TestEnvironment holds the shared resources for one integration suite.
type TestEnvironment struct {
	Ctx         context.Context
	Cancel      context.CancelFunc
	PgContainer *postgres.PostgresContainer
	DSN         string
	DBService   *bundb.DBService
	DB          *bun.DB
}

// NewTestEnvironment starts Postgres, connects, and migrates every module's
// schema.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	dbService, err := bundb.NewBunDBService(ctx, config.PostgresConfig{DSN: dsn})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	env := &TestEnvironment{
		Ctx:         ctx,
		Cancel:      cancel,
		PgContainer: pgContainer,
		DSN:         dsn,
		DBService:   dbService,
		DB:          dbService.GetDB(),
	}

	if err := env.migrate(ctx); err != nil {
		env.Cleanup()
		return nil, err
	}

	return env, nil
}

func (env *TestEnvironment) migrate(ctx context.Context) error {
	for name, migrations := range map[string]*migrate.Migrations{
		"bracket": bracketmigrations.Migrations,
		"fantasy": fantasymigrations.Migrations,
		"roll":    rollmigrations.Migrations,
	} {
		migrator := migrate.NewMigrator(env.DB, migrations,
			migrate.WithTableName(fmt.Sprintf("bun_migrations_%s", name)),
			migrate.WithLocksTableName(fmt.Sprintf("bun_migration_locks_%s", name)),
		)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init %s migrations: %w", name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", name, err)
		}
	}
	return nil
}

// TruncateTables clears the given tables between tests.
func (env *TestEnvironment) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := env.DB.ExecContext(ctx, "TRUNCATE TABLE ? CASCADE", bun.Ident(table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// Cleanup tears down the connections and containers.
func (env *TestEnvironment) Cleanup() {
	if env.DB != nil {
		_ = env.DB.Close()
	}
	if env.PgContainer != nil {
		_ = env.PgContainer.Terminate(context.Background())
	}
	env.Cancel()
}
