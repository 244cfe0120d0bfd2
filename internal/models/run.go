package models

import "time"

// RunSummary reports the outcome of one import run. It is never persisted;
// re-running an import is made safe by the external_id dedup key alone.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Username   string    `json:"username"`
	Refresh    bool      `json:"refresh"`
	Pages      int       `json:"pages"`
	Inserted   int       `json:"inserted"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Errored    int       `json:"errored"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Aborted    bool      `json:"aborted"`
	Error      string    `json:"error,omitempty"`
}

// Duration returns the wall-clock time the run took.
func (r *RunSummary) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
