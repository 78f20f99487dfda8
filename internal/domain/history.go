package domain

import "time"

// RunRecord captures one supervised run for the history store.
type RunRecord struct {
	ID              string          `json:"id"`
	StartedAt       time.Time       `json:"started_at"`
	DurationMS      int64           `json:"duration_ms"`
	Bind            string          `json:"bind"`
	HealthOutcome   HealthOutcome   `json:"health_outcome"`
	ShutdownOutcome ShutdownOutcome `json:"shutdown_outcome"`
	ExitCode        int             `json:"exit_code"`
	Success         bool            `json:"success"`
}
