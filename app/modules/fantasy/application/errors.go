package fantasyservice

import "errors"

// Domain errors for the fantasy service.
var (
	// ErrRosterLocked indicates the roster-open gate is closed.
	ErrRosterLocked = errors.New("roster is locked")

	// ErrUnknownPlayer indicates a roster pick referenced a player that does
	// not exist.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrWrongRole indicates a player was picked into a role that does not
	// match their position.
	ErrWrongRole = errors.New("player position does not match role")
)

// Failure reason codes carried in failure payloads.
const (
	ReasonRosterLocked  = "ROSTER_LOCKED"
	ReasonUnknownPlayer = "UNKNOWN_PLAYER"
	ReasonWrongRole     = "WRONG_ROLE"
	ReasonInvalidRole   = "INVALID_ROLE"
	ReasonNotFound      = "NOT_FOUND"
)

// Failure is the business-failure payload for fantasy operations.
type Failure struct {
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}
