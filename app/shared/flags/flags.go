// Package flags exposes the two global gates (predictions open, roster open)
// as an explicit collaborator so services never read ambient state and tests
// can exercise both locked and unlocked paths.
package flags

import "context"

// Source supplies the gate values at call time.
type Source interface {
	PredictionsOpen(ctx context.Context) (bool, error)
	RosterOpen(ctx context.Context) (bool, error)
}

// Static is a fixed-value Source, used for config-driven deployments and
// tests.
type Static struct {
	Predictions bool
	Roster      bool
}

var _ Source = Static{}

func (s Static) PredictionsOpen(context.Context) (bool, error) { return s.Predictions, nil }
func (s Static) RosterOpen(context.Context) (bool, error)      { return s.Roster, nil }
