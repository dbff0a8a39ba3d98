package bracketservice

import "errors"

// Domain errors for the bracket service.
// Business failures travel as Failure payloads; these sentinels exist for
// callers that match on error identity instead.
var (
	// ErrPredictionsLocked indicates the predictions-open gate is closed.
	ErrPredictionsLocked = errors.New("predictions are locked")

	// ErrUnknownMatch indicates a prediction referenced a match that does
	// not exist.
	ErrUnknownMatch = errors.New("unknown match")

	// ErrInvalidWinner indicates a predicted winner is not one of the
	// match's resolvable teams.
	ErrInvalidWinner = errors.New("predicted winner is not in the match")
)

// Failure reason codes carried in failure payloads.
const (
	ReasonPredictionsLocked = "PREDICTIONS_LOCKED"
	ReasonUnknownMatch      = "UNKNOWN_MATCH"
	ReasonInvalidWinner     = "INVALID_WINNER"
)

// Failure is the business-failure payload for bracket operations.
type Failure struct {
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}
