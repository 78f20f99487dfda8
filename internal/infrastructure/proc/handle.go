package proc

import (
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/ports"
)

// Handle tracks one spawned auxiliary process. A single reaper
// goroutine waits on the process and closes done; all state mutation
// goes through mu.
type Handle struct {
	cmd       *exec.Cmd
	pid       int
	startedAt time.Time

	mu    sync.Mutex
	state domain.ProcessState

	done    chan struct{}
	logFile *os.File
	pidPath string
}

// PID returns the OS process id.
func (h *Handle) PID() int { return h.pid }

// StartedAt returns the spawn timestamp.
func (h *Handle) StartedAt() time.Time { return h.startedAt }

// State returns the current lifecycle state.
func (h *Handle) State() domain.ProcessState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Alive reports whether the process has not yet been reaped.
func (h *Handle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// reap waits for the process and records the terminal state. An exit
// that nobody requested is a failure; Shutdown flips the state to
// Terminated before the kill so the reaper leaves it alone.
func (h *Handle) reap() {
	_ = h.cmd.Wait()

	h.mu.Lock()
	if !h.state.Terminal() {
		h.state = domain.ProcessFailed
	}
	h.mu.Unlock()

	h.logFile.Close()
	_ = os.Remove(h.pidPath)
	close(h.done)
}

// MarkRunning transitions Starting -> Running once a probe confirms
// the process. Safe to call repeatedly.
func (h *Handle) MarkRunning() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == domain.ProcessStarting {
		h.state = domain.ProcessRunning
	}
}

// Shutdown implements ports.ProcessHandle. TERM first, KILL after the
// grace period. Calling it on a dead handle reports AlreadyDead.
func (h *Handle) Shutdown(grace time.Duration) domain.ShutdownOutcome {
	select {
	case <-h.done:
		return domain.ShutdownAlreadyDead
	default:
	}

	h.mu.Lock()
	if h.state.Terminal() {
		h.mu.Unlock()
		return domain.ShutdownAlreadyDead
	}
	h.state = domain.ProcessTerminated
	h.mu.Unlock()

	_ = h.cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-h.done:
		return domain.ShutdownClean
	case <-time.After(grace):
	}

	_ = h.cmd.Process.Kill()
	<-h.done
	return domain.ShutdownForced
}

var _ ports.ProcessHandle = (*Handle)(nil)
