package metrics

import (
	"context"
	"time"
)

// NoOp discards every recording. Used in tests and when metrics are disabled.
type NoOp struct{}

var _ Metrics = NoOp{}

func (NoOp) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOp) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOp) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOp) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOp) RecordPredictionsSaved(context.Context, int)                            {}
func (NoOp) RecordRosterSync(context.Context, int, time.Duration)                   {}
func (NoOp) RecordRoll(context.Context, string)                                     {}
func (NoOp) RecordRollBudgetExceeded(context.Context, string)                       {}
