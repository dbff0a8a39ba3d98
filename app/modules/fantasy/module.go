package fantasy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	fantasyservice "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/application"
	fantasyqueue "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/queue"
	fantasydb "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/repositories"
	fantasysubscribers "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/infrastructure/subscribers"
	"github.com/aegis-league/aegis-fantasy/app/shared/flags"
	"github.com/aegis-league/aegis-fantasy/config"
	"github.com/aegis-league/aegis-fantasy/internal/eventbus"
	"github.com/aegis-league/aegis-fantasy/internal/observability/metrics"
)

// Module bundles the fantasy service, its river queue, and the series
// subscriber.
type Module struct {
	FantasyService fantasyservice.Service
	QueueService   fantasyqueue.QueueService

	subscribers fantasysubscribers.Subscribers
	eventBus    eventbus.EventBus
	logger      *slog.Logger
	cancelFunc  context.CancelFunc
}

// NewFantasyModule wires the fantasy service. The roll module supplies the
// modifier source and the initial roller.
func NewFantasyModule(
	ctx context.Context,
	cfg *config.Config,
	repo fantasydb.Repository,
	eventBus eventbus.EventBus,
	flagSource flags.Source,
	modifiers fantasyservice.ModifierSource,
	roller fantasyservice.InitialRoller,
	logger *slog.Logger,
	m metrics.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) (*Module, error) {
	service := fantasyservice.NewFantasyService(
		repo,
		eventBus,
		flagSource,
		modifiers,
		roller,
		logger,
		m,
		tracer,
		db,
	)

	queueService, err := fantasyqueue.NewService(ctx, db, cfg.Postgres.DSN, service, logger, m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fantasy queue: %w", err)
	}

	subs := fantasysubscribers.NewSubscribers(eventBus, queueService, logger)

	return &Module{
		FantasyService: service,
		QueueService:   queueService,
		subscribers:    subs,
		eventBus:       eventBus,
		logger:         logger,
	}, nil
}

// Run starts the queue and the series subscription, then blocks until the
// context is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		return fmt.Errorf("failed to start fantasy queue: %w", err)
	}
	if err := m.subscribers.SubscribeToFantasyEvents(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to fantasy events: %w", err)
	}

	<-ctx.Done()
	m.logger.Info("fantasy module stopped")
	return nil
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return m.QueueService.Stop(context.Background())
}
