package domain

import "fmt"

// ProcessState represents the lifecycle state of the auxiliary process.
type ProcessState string

const (
	ProcessUnstarted  ProcessState = "unstarted"
	ProcessStarting   ProcessState = "starting"
	ProcessRunning    ProcessState = "running"
	ProcessFailed     ProcessState = "failed"
	ProcessTerminated ProcessState = "terminated"
)

// Terminal reports whether no further transitions are possible.
func (s ProcessState) Terminal() bool {
	return s == ProcessFailed || s == ProcessTerminated
}

// CanTransition validates a lifecycle transition. Terminal states
// accept no successors; Shutdown on a terminal handle is handled as a
// no-op by the caller rather than a transition.
func (s ProcessState) CanTransition(next ProcessState) bool {
	switch s {
	case ProcessUnstarted:
		return next == ProcessStarting
	case ProcessStarting:
		// Terminated from Starting covers shutdown after a failed
		// health check, before the process was ever confirmed.
		return next == ProcessRunning || next == ProcessFailed || next == ProcessTerminated
	case ProcessRunning:
		return next == ProcessTerminated || next == ProcessFailed
	default:
		return false
	}
}

// ShutdownOutcome records how the auxiliary process was reaped.
type ShutdownOutcome string

const (
	// ShutdownClean means the process exited within the grace period
	// after SIGTERM.
	ShutdownClean ShutdownOutcome = "clean"
	// ShutdownForced means the grace period elapsed and the process
	// was killed.
	ShutdownForced ShutdownOutcome = "forced"
	// ShutdownAlreadyDead means the process had already exited before
	// shutdown was requested.
	ShutdownAlreadyDead ShutdownOutcome = "already-dead"
)

// LaunchSpec describes the auxiliary process to spawn.
type LaunchSpec struct {
	Command string
	Args    []string
	Bind    string
	LogFile string
	WorkDir string
}

// Validate checks the spec before any OS resources are touched.
func (s LaunchSpec) Validate() error {
	if s.Command == "" {
		return fmt.Errorf("launch spec: command required")
	}
	if s.LogFile == "" {
		return fmt.Errorf("launch spec: log file required")
	}
	return nil
}

// TaskSpec describes the foreground task.
type TaskSpec struct {
	Command string
	Args    []string
	WorkDir string
}

// TaskResult captures the foreground task outcome. ExitCode is the
// task's code verbatim; a nonzero code is not a supervisor error.
type TaskResult struct {
	Ran        bool
	ExitCode   int
	DurationMS int64
	Err        error
}
