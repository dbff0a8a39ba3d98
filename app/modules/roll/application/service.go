package rollservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	rolldomain "github.com/aegis-league/aegis-fantasy/app/modules/roll/domain"
	rolldb "github.com/aegis-league/aegis-fantasy/app/modules/roll/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/flags"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	"github.com/aegis-league/aegis-fantasy/internal/eventbus"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
	"github.com/aegis-league/aegis-fantasy/internal/observability/metrics"
)

const moduleName = "roll"

// Caps bounds the number of re-rolls per (user, role) and family.
type Caps struct {
	Title  int
	Banner int
}

// DefaultCaps is the season default.
var DefaultCaps = Caps{Title: 10, Banner: 10}

func (c Caps) orDefault() Caps {
	if c.Title <= 0 {
		c.Title = DefaultCaps.Title
	}
	if c.Banner <= 0 {
		c.Banner = DefaultCaps.Banner
	}
	return c
}

// RollService implements the Service interface.
type RollService struct {
	repo     rolldb.Repository
	eventBus eventbus.EventBus
	flags    flags.Source
	rng      rolldomain.Rand
	caps     Caps
	logger   *slog.Logger
	metrics  metrics.Metrics
	tracer   trace.Tracer
	db       *bun.DB
}

// NewRollService creates a new RollService. Zero cap fields fall back to
// DefaultCaps.
func NewRollService(
	repo rolldb.Repository,
	eventBus eventbus.EventBus,
	flagSource flags.Source,
	rng rolldomain.Rand,
	caps Caps,
	logger *slog.Logger,
	m metrics.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RollService {
	return &RollService{
		repo:     repo,
		eventBus: eventBus,
		flags:    flagSource,
		rng:      rng,
		caps:     caps.orDefault(),
		logger:   logger,
		metrics:  m,
		tracer:   tracer,
		db:       db,
	}
}

// serviceWrapper wraps a service operation with tracing, metrics, logging,
// and panic recovery.
func serviceWrapper[S any](
	ctx context.Context,
	s *RollService,
	operationName string,
	op func(ctx context.Context) (results.OperationResult[S, Failure], error),
) (result results.OperationResult[S, Failure], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, moduleName, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, moduleName, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("operation", operationName),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, moduleName, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, Failure]{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "operation failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, moduleName, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("reason", result.Failure.Reason),
		)
		s.metrics.RecordOperationFailure(ctx, moduleName, operationName)
		return result, nil
	}

	s.metrics.RecordOperationSuccess(ctx, moduleName, operationName)
	return result, nil
}

// runInTx ensures the operation runs within a transaction. The count-then
// -replace sequence inside a roll must be atomic against concurrent rolls
// from the same user.
func runInTx[S any](
	ctx context.Context,
	s *RollService,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, Failure], error),
) (results.OperationResult[S, Failure], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, Failure]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}
