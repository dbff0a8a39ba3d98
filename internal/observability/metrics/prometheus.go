package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prom records metrics into a prometheus registry.
type Prom struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec

	predictionsSaved   prometheus.Counter
	rosterSyncUsers    prometheus.Histogram
	rosterSyncDuration prometheus.Histogram
	rolls              *prometheus.CounterVec
	rollBudgetExceeded *prometheus.CounterVec
}

var _ Metrics = (*Prom)(nil)

// NewProm builds and registers the metric set on the given registerer.
func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_operation_attempts_total",
			Help: "Service operations started.",
		}, []string{"module", "operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_operation_successes_total",
			Help: "Service operations that returned a success payload.",
		}, []string{"module", "operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_operation_failures_total",
			Help: "Service operations that errored or returned a failure payload.",
		}, []string{"module", "operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aegis_operation_duration_seconds",
			Help:    "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"module", "operation"}),
		predictionsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aegis_predictions_saved_total",
			Help: "Predictions accepted.",
		}),
		rosterSyncUsers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aegis_roster_sync_users",
			Help:    "Users written per roster score sync.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		rosterSyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aegis_roster_sync_duration_seconds",
			Help:    "Roster score sync latency.",
			Buckets: prometheus.DefBuckets,
		}),
		rolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_rolls_total",
			Help: "Accepted rolls by family.",
		}, []string{"family"}),
		rollBudgetExceeded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_roll_budget_exceeded_total",
			Help: "Rolls rejected by the per-role cap.",
		}, []string{"family"}),
	}

	reg.MustRegister(
		p.operationAttempts,
		p.operationSuccesses,
		p.operationFailures,
		p.operationDuration,
		p.predictionsSaved,
		p.rosterSyncUsers,
		p.rosterSyncDuration,
		p.rolls,
		p.rollBudgetExceeded,
	)
	return p
}

func (p *Prom) RecordOperationAttempt(_ context.Context, module, operation string) {
	p.operationAttempts.WithLabelValues(module, operation).Inc()
}

func (p *Prom) RecordOperationSuccess(_ context.Context, module, operation string) {
	p.operationSuccesses.WithLabelValues(module, operation).Inc()
}

func (p *Prom) RecordOperationFailure(_ context.Context, module, operation string) {
	p.operationFailures.WithLabelValues(module, operation).Inc()
}

func (p *Prom) RecordOperationDuration(_ context.Context, module, operation string, d time.Duration) {
	p.operationDuration.WithLabelValues(module, operation).Observe(d.Seconds())
}

func (p *Prom) RecordPredictionsSaved(_ context.Context, count int) {
	p.predictionsSaved.Add(float64(count))
}

func (p *Prom) RecordRosterSync(_ context.Context, users int, d time.Duration) {
	p.rosterSyncUsers.Observe(float64(users))
	p.rosterSyncDuration.Observe(d.Seconds())
}

func (p *Prom) RecordRoll(_ context.Context, family string) {
	p.rolls.WithLabelValues(family).Inc()
}

func (p *Prom) RecordRollBudgetExceeded(_ context.Context, family string) {
	p.rollBudgetExceeded.WithLabelValues(family).Inc()
}
