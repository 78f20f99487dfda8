// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The supervisor core depends only on these contracts; the concrete
// process, probe, task, config, and history adapters live in the
// infrastructure layer.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/ivyrun/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.ivyrun/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ProcessHandle is the supervisor's view of the spawned auxiliary
// process. The handle is owned exclusively by the supervisor for the
// duration of a run; nothing else may signal or reap the process.
type ProcessHandle interface {
	PID() int
	StartedAt() time.Time
	State() domain.ProcessState
	// Alive reports whether the process has not yet been reaped.
	Alive() bool
	// MarkRunning records that a health probe confirmed the process.
	MarkRunning()
	// Shutdown sends SIGTERM, waits up to grace, then kills. Idempotent:
	// calling it on a dead or already-terminated handle is a no-op that
	// reports ShutdownAlreadyDead.
	Shutdown(grace time.Duration) domain.ShutdownOutcome
}

// Launcher spawns the auxiliary process detached from the foreground,
// with stdout/stderr redirected to the spec's log sink.
type Launcher interface {
	Launch(ctx context.Context, spec domain.LaunchSpec) (ProcessHandle, error)
}

// HealthProbe blocks until the auxiliary process is confirmed healthy,
// observed dead, or the timeout elapses.
type HealthProbe interface {
	Await(ctx context.Context, handle ProcessHandle, timeout, interval time.Duration) domain.HealthOutcome
}

// ProbeFactory selects a health probe for a given configuration.
type ProbeFactory interface {
	ForConfig(domain.Config) (HealthProbe, error)
}

// TaskRunner executes the foreground task to completion, inheriting
// the supervisor's standard streams. The task's exit code is returned
// verbatim; nonzero codes are not runner errors.
type TaskRunner interface {
	Run(ctx context.Context, spec domain.TaskSpec) (domain.TaskResult, error)
}

// RunRepository persists run history.
type RunRepository interface {
	Save(domain.RunRecord) error
	List(limit int) ([]domain.RunRecord, error)
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
