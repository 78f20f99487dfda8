// Package supervisor brackets the foreground sync task with the
// lifetime of the auxiliary extractor process.
package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/ports"
)

// Service orchestrates one supervised run: launch the extractor, await
// health, run the sync task, and guarantee extractor shutdown on every
// exit path after a successful launch.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Launcher       ports.Launcher
	Probes         ports.ProbeFactory
	Runner         ports.TaskRunner
	History        ports.RunRepository
	Logger         ports.Logger

	// SkipHistory suppresses run recording for this invocation.
	SkipHistory bool
}

// Run executes the full sequence. The report's ExitCode is what the
// process should exit with: the task's code verbatim on normal paths,
// ExitSupervisorFailure when launch or the health check fails.
//
// Shutdown ordering: never before Launch has returned a handle, at
// most once per handle, and always exactly once when Launch succeeded.
func (s *Service) Run(ctx context.Context) (report domain.RunReport, err error) {
	report = domain.NewRunReport()
	report.ExitCode = domain.ExitSupervisorFailure

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return report, fmt.Errorf("config: %w", err)
	}

	probe, err := s.Probes.ForConfig(cfg)
	if err != nil {
		return report, err
	}

	handle, err := s.Launcher.Launch(ctx, cfg.LaunchSpec())
	if err != nil {
		// Nothing was spawned; there is nothing to shut down.
		report.FinishedAt = time.Now()
		return report, fmt.Errorf("launch extractor: %w", err)
	}

	defer func() {
		report.ShutdownOutcome = handle.Shutdown(cfg.Health.Grace())
		report.ShutdownAttempted = true
		report.FinishedAt = time.Now()
		s.log("extractor shut down", map[string]interface{}{
			"pid": handle.PID(), "outcome": string(report.ShutdownOutcome),
		})
		s.record(cfg, report)
	}()

	report.HealthOutcome = probe.Await(ctx, handle, cfg.Health.Timeout(), cfg.Health.Interval())
	if report.HealthOutcome != domain.HealthHealthy {
		return report, fmt.Errorf("extractor health check failed: %s", report.HealthOutcome)
	}
	s.log("extractor healthy", map[string]interface{}{"pid": handle.PID()})

	result, runErr := s.Runner.Run(ctx, cfg.TaskSpec())
	report.ExitCode = result.ExitCode
	report.TaskErr = result.Err
	if runErr != nil {
		return report, fmt.Errorf("run sync task: %w", runErr)
	}
	return report, nil
}

func (s *Service) record(cfg domain.Config, report domain.RunReport) {
	if s.SkipHistory || !cfg.History.Enabled || s.History == nil {
		return
	}
	if err := s.History.Save(report.Record(cfg.Extractor.Bind)); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *Service) log(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Info(msg, fields)
	}
}
