package roll

import (
	"context"
	"log/slog"
	"sync"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	rollservice "github.com/aegis-league/aegis-fantasy/app/modules/roll/application"
	rolldomain "github.com/aegis-league/aegis-fantasy/app/modules/roll/domain"
	rolldb "github.com/aegis-league/aegis-fantasy/app/modules/roll/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/flags"
	"github.com/aegis-league/aegis-fantasy/config"
	"github.com/aegis-league/aegis-fantasy/internal/eventbus"
	"github.com/aegis-league/aegis-fantasy/internal/observability/metrics"
)

// Module bundles the roll service with its collaborators.
type Module struct {
	RollService rollservice.Service

	eventBus   eventbus.EventBus
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewRollModule wires the roll service on the system randomness source with
// caps from config.
func NewRollModule(
	ctx context.Context,
	cfg *config.Config,
	repo rolldb.Repository,
	eventBus eventbus.EventBus,
	flagSource flags.Source,
	logger *slog.Logger,
	m metrics.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) (*Module, error) {
	service := rollservice.NewRollService(
		repo,
		eventBus,
		flagSource,
		rolldomain.SystemRand{},
		rollservice.Caps{Title: cfg.Rolls.TitleCap, Banner: cfg.Rolls.BannerCap},
		logger,
		m,
		tracer,
		db,
	)

	return &Module{
		RollService: service,
		eventBus:    eventBus,
		logger:      logger,
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
	m.logger.Info("roll module stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
