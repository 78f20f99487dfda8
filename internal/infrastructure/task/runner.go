// Package task runs the foreground sync task.
package task

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/ports"
)

// LocalRunner executes the task on the host, inheriting the
// supervisor's standard streams.
type LocalRunner struct{}

// NewLocalRunner builds a runner.
func NewLocalRunner() *LocalRunner {
	return &LocalRunner{}
}

// Run implements ports.TaskRunner. The task's exit code is returned
// verbatim; a nonzero code is reported in the result, not as an error.
// Context cancellation kills the task.
func (r *LocalRunner) Run(ctx context.Context, spec domain.TaskSpec) (domain.TaskResult, error) {
	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Dir = spec.WorkDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	start := time.Now()
	err := cmd.Run()
	result := domain.TaskResult{
		Ran:        true,
		DurationMS: time.Since(start).Milliseconds(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode < 0 {
			// Killed by signal (including context cancellation); there
			// is no task exit code to propagate.
			result.ExitCode = domain.ExitSupervisorFailure
		}
		return result, nil
	}
	if err != nil {
		result.Ran = false
		result.Err = err
		result.ExitCode = domain.ExitSupervisorFailure
		return result, err
	}
	return result, nil
}

var _ ports.TaskRunner = (*LocalRunner)(nil)
