package fantasyservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	fantasydomain "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/domain"
	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/flags"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
	"github.com/aegis-league/aegis-fantasy/internal/eventbus"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
	"github.com/aegis-league/aegis-fantasy/internal/observability/metrics"
)

const moduleName = "fantasy"

// ModifierSource supplies the active banner and title modifiers for one
// (user, role). The roll module implements it; scoring stays decoupled from
// assignment storage.
type ModifierSource interface {
	ActiveModifiers(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) ([]fantasydomain.BannerModifier, []fantasydomain.TitleModifier, error)
}

// InitialRoller seeds the first title and banner assignment when a roster
// role is filled for the first time. Those rolls do not count against the
// budget. Implemented by the roll module.
type InitialRoller interface {
	SeedInitialAssignments(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) error
}

// FantasyService implements the Service interface.
type FantasyService struct {
	repo      fantasydb.Repository
	eventBus  eventbus.EventBus
	flags     flags.Source
	modifiers ModifierSource
	roller    InitialRoller
	logger    *slog.Logger
	metrics   metrics.Metrics
	tracer    trace.Tracer
	db        *bun.DB
}

// NewFantasyService creates a new FantasyService.
func NewFantasyService(
	repo fantasydb.Repository,
	eventBus eventbus.EventBus,
	flagSource flags.Source,
	modifiers ModifierSource,
	roller InitialRoller,
	logger *slog.Logger,
	m metrics.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *FantasyService {
	return &FantasyService{
		repo:      repo,
		eventBus:  eventBus,
		flags:     flagSource,
		modifiers: modifiers,
		roller:    roller,
		logger:    logger,
		metrics:   m,
		tracer:    tracer,
		db:        db,
	}
}

// serviceWrapper wraps a service operation with tracing, metrics, logging,
// and panic recovery.
func serviceWrapper[S any](
	ctx context.Context,
	s *FantasyService,
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

// runInTx ensures the operation runs within a transaction.
func runInTx[S any](
	ctx context.Context,
	s *FantasyService,
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
