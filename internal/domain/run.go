package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExitSupervisorFailure is the sentinel exit code used when the
// auxiliary process fails to launch or fails its health check. On all
// other paths the supervisor exits with the foreground task's code.
const ExitSupervisorFailure = 1

// RunReport is the outcome of one supervised run.
type RunReport struct {
	ID              string
	StartedAt       time.Time
	FinishedAt      time.Time
	HealthOutcome   HealthOutcome
	ShutdownOutcome ShutdownOutcome
	// ShutdownAttempted distinguishes "shutdown ran" from "launch
	// failed, nothing to shut down".
	ShutdownAttempted bool
	ExitCode          int
	TaskErr           error
}

// NewRunReport seeds a report with an ID and start timestamp.
func NewRunReport() RunReport {
	return RunReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// Record converts the report into a history record.
func (r RunReport) Record(bind string) RunRecord {
	return RunRecord{
		ID:              r.ID,
		StartedAt:       r.StartedAt,
		DurationMS:      r.FinishedAt.Sub(r.StartedAt).Milliseconds(),
		Bind:            bind,
		HealthOutcome:   r.HealthOutcome,
		ShutdownOutcome: r.ShutdownOutcome,
		ExitCode:        r.ExitCode,
		Success:         r.ExitCode == 0,
	}
}

// ExitError carries a process exit code through error returns so the
// entrypoint can propagate it verbatim.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
