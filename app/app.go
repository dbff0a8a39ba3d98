// Package app wires configuration, storage, messaging, and the three domain
// modules into one runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/aegis-league/aegis-fantasy/api"
	"github.com/aegis-league/aegis-fantasy/app/modules/bracket"
	"github.com/aegis-league/aegis-fantasy/app/modules/fantasy"
	"github.com/aegis-league/aegis-fantasy/app/modules/roll"
	"github.com/aegis-league/aegis-fantasy/app/shared/flags"
	"github.com/aegis-league/aegis-fantasy/config"
	"github.com/aegis-league/aegis-fantasy/db/bundb"
	"github.com/aegis-league/aegis-fantasy/internal/eventbus"
	"github.com/aegis-league/aegis-fantasy/internal/observability/metrics"
)

// App holds the application's modules and shared infrastructure.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	EventBus eventbus.EventBus

	BracketModule *bracket.Module
	FantasyModule *fantasy.Module
	RollModule    *roll.Module

	db            *bundb.DBService
	httpServer    *http.Server
	metricsServer *http.Server
}

// Initialize builds every dependency and wires the modules together. The
// roll module comes up first because the fantasy module consumes it as its
// modifier source and initial roller.
func (app *App) Initialize(ctx context.Context, cfg *config.Config) error {
	app.Config = cfg
	app.Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("environment", cfg.Observability.Environment),
	)

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize database service: %w", err)
	}
	app.db = dbService

	bus, err := eventbus.NewJetStreamBus(eventbus.Config{
		URL:      cfg.NATS.URL,
		NKeySeed: cfg.NATS.NKeySeed,
	}, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event bus: %w", err)
	}
	app.EventBus = bus

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewProm(registry)
	tracer := otel.Tracer("aegis-fantasy")

	flagSource := flags.Static{
		Predictions: cfg.Gates.PredictionsOpen,
		Roster:      cfg.Gates.RosterOpen,
	}

	rollModule, err := roll.NewRollModule(ctx, cfg, dbService.RollDB, bus, flagSource,
		app.Logger.With(slog.String("module", "roll")), m, tracer, dbService.GetDB())
	if err != nil {
		return fmt.Errorf("failed to initialize roll module: %w", err)
	}
	app.RollModule = rollModule

	fantasyModule, err := fantasy.NewFantasyModule(ctx, cfg, dbService.FantasyDB, bus, flagSource,
		rollModule.RollService, rollModule.RollService,
		app.Logger.With(slog.String("module", "fantasy")), m, tracer, dbService.GetDB())
	if err != nil {
		return fmt.Errorf("failed to initialize fantasy module: %w", err)
	}
	app.FantasyModule = fantasyModule

	bracketModule, err := bracket.NewBracketModule(ctx, dbService.BracketDB, bus, flagSource,
		app.Logger.With(slog.String("module", "bracket")), m, tracer, dbService.GetDB())
	if err != nil {
		return fmt.Errorf("failed to initialize bracket module: %w", err)
	}
	app.BracketModule = bracketModule

	handlers := api.NewHandlers(
		bracketModule.BracketService,
		fantasyModule.FantasyService,
		fantasyModule.QueueService,
		rollModule.RollService,
		app.Logger.With(slog.String("component", "api")),
	)
	app.httpServer = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           api.NewRouter(handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Observability.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		app.metricsServer = &http.Server{
			Addr:              cfg.Observability.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return nil
}

// Run starts the modules and HTTP servers and blocks until the context is
// cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go app.RollModule.Run(ctx, &wg)

	wg.Add(1)
	go app.BracketModule.Run(ctx, &wg)

	wg.Add(1)
	go func() {
		if err := app.FantasyModule.Run(ctx, &wg); err != nil {
			app.Logger.Error("fantasy module exited", slog.Any("error", err))
			cancel()
		}
	}()

	go func() {
		app.Logger.Info("http server listening", slog.String("address", app.httpServer.Addr))
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Error("http server failed", slog.Any("error", err))
			cancel()
		}
	}()

	if app.metricsServer != nil {
		go func() {
			app.Logger.Info("metrics server listening", slog.String("address", app.metricsServer.Addr))
			if err := app.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				app.Logger.Error("metrics server failed", slog.Any("error", err))
			}
		}()
	}

	<-ctx.Done()
	wg.Wait()
	return nil
}

// Close shuts down the servers, modules, bus, and database in that order.
func (app *App) Close() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.httpServer != nil {
		if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error("failed to shut down http server", slog.Any("error", err))
		}
	}
	if app.metricsServer != nil {
		if err := app.metricsServer.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error("failed to shut down metrics server", slog.Any("error", err))
		}
	}

	if app.FantasyModule != nil {
		if err := app.FantasyModule.Close(); err != nil {
			app.Logger.Error("failed to close fantasy module", slog.Any("error", err))
		}
	}
	if app.BracketModule != nil {
		_ = app.BracketModule.Close()
	}
	if app.RollModule != nil {
		_ = app.RollModule.Close()
	}

	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			app.Logger.Error("failed to close event bus", slog.Any("error", err))
		}
	}
	if app.db != nil {
		if err := app.db.GetDB().Close(); err != nil {
			app.Logger.Error("failed to close database", slog.Any("error", err))
		}
	}
}
