package rollservice

import "errors"

// Domain errors for the roll service.
// Business failures travel as Failure payloads; these sentinels exist for
// callers that match on error identity instead.
var (
	// ErrRollsLocked indicates the roster-open gate is closed.
	ErrRollsLocked = errors.New("rolls are locked")

	// ErrRollBudgetExceeded indicates the per-role roll cap is spent.
	ErrRollBudgetExceeded = errors.New("roll budget exceeded")
)

// Failure reason codes carried in failure payloads.
const (
	ReasonRosterLocked       = "ROSTER_LOCKED"
	ReasonInvalidRole        = "INVALID_ROLE"
	ReasonRollBudgetExceeded = "ROLL_BUDGET_EXCEEDED"
)

// Failure is the business-failure payload for roll operations.
type Failure struct {
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}
