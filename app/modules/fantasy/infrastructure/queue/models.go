package fantasyqueue

import "time"

// RosterScoreSyncArgs is the river job payload for one roster score sweep.
// Reason records what triggered the sweep ("series_ingested", "manual").
type RosterScoreSyncArgs struct {
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

// Kind returns the job type identifier for river.
func (RosterScoreSyncArgs) Kind() string { return "roster_score_sync" }

// JobInfo describes one queued sync job, for inspection endpoints.
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
