// Package metrics defines the instrumentation surface services record
// against. Production wires the prometheus implementation; tests use NoOp.
package metrics

import (
	"context"
	"time"
)

// Metrics is the recording contract shared by all modules. Operation methods
// carry the owning module name as a label.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, module, operation string)
	RecordOperationSuccess(ctx context.Context, module, operation string)
	RecordOperationFailure(ctx context.Context, module, operation string)
	RecordOperationDuration(ctx context.Context, module, operation string, d time.Duration)

	// RecordPredictionsSaved counts predictions accepted in one save.
	RecordPredictionsSaved(ctx context.Context, count int)

	// RecordRosterSync records one batch roster score sync.
	RecordRosterSync(ctx context.Context, users int, d time.Duration)

	// RecordRoll counts one accepted roll for a family ("title"/"banner").
	RecordRoll(ctx context.Context, family string)

	// RecordRollBudgetExceeded counts rolls rejected by the cap.
	RecordRollBudgetExceeded(ctx context.Context, family string)
}
