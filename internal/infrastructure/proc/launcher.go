// Package proc spawns and reaps the auxiliary extractor process.
package proc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/ports"
)

// ExecLauncher starts the auxiliary process with os/exec, redirecting
// its output to the spec's log sink.
type ExecLauncher struct {
	Logger ports.Logger
}

// NewExecLauncher builds a launcher.
func NewExecLauncher(log ports.Logger) *ExecLauncher {
	return &ExecLauncher{Logger: log}
}

// Launch implements ports.Launcher. Before spawning it sweeps a stale
// process recorded in the pidfile from a previous interrupted run.
func (l *ExecLauncher) Launch(ctx context.Context, spec domain.LaunchSpec) (ports.ProcessHandle, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	pidPath := pidfilePath(spec.LogFile)
	l.sweepStale(pidPath)

	logFile, err := openLogSink(spec.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log sink: %w", err)
	}

	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Dir = spec.WorkDir
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("spawn %s: %w", spec.Command, err)
	}

	h := &Handle{
		cmd:       cmd,
		pid:       cmd.Process.Pid,
		startedAt: time.Now(),
		state:     domain.ProcessStarting,
		done:      make(chan struct{}),
		logFile:   logFile,
		pidPath:   pidPath,
	}
	writePidfile(pidPath, h.pid)

	go h.reap()

	if l.Logger != nil {
		l.Logger.Info("auxiliary process launched", map[string]interface{}{
			"pid": h.pid, "bind": spec.Bind, "log": spec.LogFile,
		})
	}
	return h, nil
}

// sweepStale kills a process left behind by a previous run. The
// original launcher did the same sweep before binding the port.
func (l *ExecLauncher) sweepStale(pidPath string) {
	pid, ok := readPidfile(pidPath)
	if !ok {
		return
	}
	if proc, err := os.FindProcess(pid); err == nil {
		if err := proc.Signal(syscall.Signal(0)); err == nil {
			if l.Logger != nil {
				l.Logger.Warn("killing stale extractor process", map[string]interface{}{"pid": pid})
			}
			_ = proc.Kill()
			_, _ = proc.Wait()
		}
	}
	_ = os.Remove(pidPath)
}

func openLogSink(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func pidfilePath(logFile string) string {
	ext := filepath.Ext(logFile)
	return strings.TrimSuffix(logFile, ext) + ".pid"
}

func writePidfile(path string, pid int) {
	_ = os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o644)
}

func readPidfile(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

var _ ports.Launcher = (*ExecLauncher)(nil)
