package bracket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	bracketservice "github.com/aegis-league/aegis-fantasy/app/modules/bracket/application"
	bracketdomain "github.com/aegis-league/aegis-fantasy/app/modules/bracket/domain"
	bracketdb "github.com/aegis-league/aegis-fantasy/app/modules/bracket/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/flags"
	"github.com/aegis-league/aegis-fantasy/internal/eventbus"
	"github.com/aegis-league/aegis-fantasy/internal/observability/metrics"
)

// Module bundles the bracket service with its collaborators.
type Module struct {
	BracketService bracketservice.Service

	eventBus   eventbus.EventBus
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewBracketModule wires the bracket service on the default 16-slot
// double-elimination topology.
func NewBracketModule(
	ctx context.Context,
	repo bracketdb.Repository,
	eventBus eventbus.EventBus,
	flagSource flags.Source,
	logger *slog.Logger,
	m metrics.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) (*Module, error) {
	service := bracketservice.NewBracketService(
		repo,
		eventBus,
		flagSource,
		bracketdomain.DoubleElim16(),
		logger,
		m,
		tracer,
		db,
	)

	return &Module{
		BracketService: service,
		eventBus:       eventBus,
		logger:         logger,
	}, nil
}

// Run keeps the module alive until the context is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.Info("bracket module stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
