package fantasyqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	fantasyservice "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/application"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// RosterScoreSyncWorker runs one full roster score sweep per job. Sweeps are
// idempotent, so river's retries are safe.
type RosterScoreSyncWorker struct {
	river.WorkerDefaults[RosterScoreSyncArgs]

	service fantasyservice.Service
	logger  *slog.Logger
}

func NewRosterScoreSyncWorker(service fantasyservice.Service, logger *slog.Logger) *RosterScoreSyncWorker {
	return &RosterScoreSyncWorker{service: service, logger: logger}
}

func (w *RosterScoreSyncWorker) Work(ctx context.Context, job *river.Job[RosterScoreSyncArgs]) error {
	w.logger.InfoContext(ctx, "running roster score sync job",
		attr.Int64("job_id", job.ID),
		attr.String("reason", job.Args.Reason),
	)

	result, err := w.service.SyncRosterScores(ctx)
	if err != nil {
		return fmt.Errorf("roster score sync job %d: %w", job.ID, err)
	}
	if result.Failure != nil {
		return fmt.Errorf("roster score sync job %d rejected: %s", job.ID, result.Failure.Reason)
	}

	w.logger.InfoContext(ctx, "roster score sync job finished",
		attr.Int64("job_id", job.ID),
		attr.Int("users", result.Success.Users),
	)
	return nil
}
