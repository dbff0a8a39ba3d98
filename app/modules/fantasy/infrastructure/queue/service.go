package fantasyqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	fantasyservice "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/application"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
	"github.com/aegis-league/aegis-fantasy/internal/observability/metrics"
)

const (
	queueName  = "fantasy"
	moduleName = "fantasyqueue"
)

// QueueService schedules roster score sweeps on river. Sweeps coalesce: an
// identical pending job blocks duplicates via river's unique opts.
type QueueService interface {
	EnqueueScoreSync(ctx context.Context, reason string) error
	GetPendingJobs(ctx context.Context) ([]JobInfo, error)
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service is the river-backed QueueService.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	db      *bun.DB
	logger  *slog.Logger
	metrics metrics.Metrics
}

// NewService creates the river client on its own pgx pool (river does not run
// on database/sql) and registers the sync worker.
func NewService(
	ctx context.Context,
	bunDB *bun.DB,
	dsn string,
	fantasyService fantasyservice.Service,
	logger *slog.Logger,
	m metrics.Metrics,
) (*Service, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("fantasyqueue: parsing DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("fantasyqueue: creating pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("fantasyqueue: pinging database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRosterScoreSyncWorker(fantasyService, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			queueName:          {MaxWorkers: 1},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("fantasyqueue: creating river client: %w", err)
	}

	logger.InfoContext(ctx, "fantasy queue service initialized")
	return &Service{
		client:  client,
		pool:    pool,
		db:      bunDB,
		logger:  logger,
		metrics: m,
	}, nil
}

func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("fantasyqueue: starting river client: %w", err)
	}
	s.logger.InfoContext(ctx, "fantasy queue service started")
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("fantasyqueue: stopping river client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "fantasy queue service stopped")
	return nil
}

// EnqueueScoreSync queues one roster score sweep. A pending job with the same
// args absorbs the insert, so a burst of series ingests runs one sweep.
func (s *Service) EnqueueScoreSync(ctx context.Context, reason string) error {
	s.metrics.RecordOperationAttempt(ctx, moduleName, "EnqueueScoreSync")

	job := RosterScoreSyncArgs{
		Reason:      reason,
		RequestedAt: time.Now().UTC().Truncate(time.Minute),
	}
	res, err := s.client.Insert(ctx, job, &river.InsertOpts{
		Queue: queueName,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, moduleName, "EnqueueScoreSync")
		return fmt.Errorf("fantasyqueue: inserting sync job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, moduleName, "EnqueueScoreSync")
	s.logger.InfoContext(ctx, "roster score sync job queued",
		attr.ExtractCorrelationID(ctx),
		attr.String("reason", reason),
		attr.Int64("job_id", res.Job.ID),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
	)
	return nil
}

// GetPendingJobs lists queued sync jobs from the river_job table.
func (s *Service) GetPendingJobs(ctx context.Context) ([]JobInfo, error) {
	type riverJobRow struct {
		ID          int64      `bun:"id"`
		Kind        string     `bun:"kind"`
		State       string     `bun:"state"`
		ScheduledAt *time.Time `bun:"scheduled_at"`
		CreatedAt   time.Time  `bun:"created_at"`
		Attempt     int16      `bun:"attempt"`
		MaxAttempts int16      `bun:"max_attempts"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind = ?", RosterScoreSyncArgs{}.Kind()).
		Where("state IN ('available', 'scheduled', 'running', 'retryable')").
		Order("created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		return nil, fmt.Errorf("fantasyqueue: querying pending jobs: %w", err)
	}

	out := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		out[i] = JobInfo{
			ID:          job.ID,
			Kind:        job.Kind,
			State:       job.State,
			ScheduledAt: scheduledAt,
			CreatedAt:   job.CreatedAt.Format(time.RFC3339),
			Attempt:     int(job.Attempt),
			MaxAttempts: int(job.MaxAttempts),
		}
	}
	return out, nil
}

// HealthCheck verifies river's backing table is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		return fmt.Errorf("fantasyqueue: health check: %w", err)
	}
	return nil
}
