package doctor

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/ports"
)

// Service runs environment diagnostics for the supervised pipeline.
type Service struct {
	ConfigProvider ports.ConfigProvider
	History        ports.RunRepository
	// HistoryAvailable reports whether the history backend opened;
	// nil means unknown.
	HistoryAvailable func() bool
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := cfg.Validate(); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded, format %s", cfg.ConfigFormatVersion)))

	checks = append(checks, executableCheck("Interpreter", cfg.Extractor.Interpreter))
	checks = append(checks, executableCheck("Task command", cfg.Task.Command))
	checks = append(checks, logSinkCheck(cfg.Extractor.LogFile))
	checks = append(checks, bindCheck(cfg.Extractor.Bind))
	checks = append(checks, s.historyCheck(cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func executableCheck(name, path string) domain.HealthCheck {
	info, err := os.Stat(path)
	if err != nil {
		return fail(name, fmt.Sprintf("%s not found", path))
	}
	if info.IsDir() {
		return fail(name, fmt.Sprintf("%s is a directory", path))
	}
	if info.Mode()&0o111 == 0 {
		return warn(name, fmt.Sprintf("%s is not executable", path))
	}
	return ok(name, path)
}

func logSinkCheck(path string) domain.HealthCheck {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return warn("Log sink", fmt.Sprintf("directory %s missing (created on launch)", dir))
	}
	if info, err := os.Stat(path); err == nil {
		return ok("Log sink", fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size()))))
	}
	return ok("Log sink", fmt.Sprintf("%s (new)", path))
}

// bindCheck warns when something already listens on the extractor's
// address; the launcher's stale sweep only reaps processes it spawned.
func bindCheck(bind string) domain.HealthCheck {
	conn, err := net.DialTimeout("tcp", bind, 500*time.Millisecond)
	if err != nil {
		return ok("Bind address", fmt.Sprintf("%s free", bind))
	}
	conn.Close()
	return warn("Bind address", fmt.Sprintf("%s already in use", bind))
}

func (s *Service) historyCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.History.Enabled {
		return ok("Run history", "disabled in config")
	}
	if s.HistoryAvailable != nil && !s.HistoryAvailable() {
		return warn("Run history", "database unavailable, runs will not be recorded")
	}
	if s.History == nil {
		return warn("Run history", "store not initialized")
	}
	records, err := s.History.List(1)
	if err != nil {
		return warn("Run history", err.Error())
	}
	if len(records) == 0 {
		return ok("Run history", "no runs recorded yet")
	}
	return ok("Run history", fmt.Sprintf("last run %s", humanize.Time(records[0].StartedAt)))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
