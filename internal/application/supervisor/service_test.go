package supervisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/infrastructure/config"
	"github.com/doeshing/ivyrun/internal/pkg/logger"
	"github.com/doeshing/ivyrun/internal/ports"
)

func testService(launcher *stubLauncher, probe *stubProbe, runner *stubRunner, repo *stubRepo) *Service {
	return &Service{
		ConfigProvider: stubConfigProvider{cfg: config.DefaultConfig()},
		Launcher:       launcher,
		Probes:         stubProbeFactory{probe: probe},
		Runner:         runner,
		History:        repo,
		Logger:         logger.NewStd(false),
	}
}

func TestRunShutsDownExactlyOnceOnSuccess(t *testing.T) {
	handle := &stubHandle{}
	launcher := &stubLauncher{handle: handle}
	runner := &stubRunner{result: domain.TaskResult{Ran: true, ExitCode: 0}}
	svc := testService(launcher, &stubProbe{outcome: domain.HealthHealthy}, runner, &stubRepo{})

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if handle.shutdownCalls != 1 {
		t.Fatalf("shutdown calls = %d, want 1", handle.shutdownCalls)
	}
	if !report.ShutdownAttempted {
		t.Fatal("report does not record shutdown attempt")
	}
	if report.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", report.ExitCode)
	}
}

func TestRunLaunchFailureSkipsShutdown(t *testing.T) {
	launcher := &stubLauncher{err: errors.New("no such file")}
	runner := &stubRunner{}
	svc := testService(launcher, &stubProbe{outcome: domain.HealthHealthy}, runner, &stubRepo{})

	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected launch error")
	}
	if report.ShutdownAttempted {
		t.Fatal("shutdown must not run when nothing was launched")
	}
	if report.ExitCode != domain.ExitSupervisorFailure {
		t.Fatalf("exit code = %d, want sentinel %d", report.ExitCode, domain.ExitSupervisorFailure)
	}
	if runner.called {
		t.Fatal("foreground task ran despite launch failure")
	}
}

func TestRunUnhealthySkipsForegroundButShutsDown(t *testing.T) {
	for _, outcome := range []domain.HealthOutcome{domain.HealthUnhealthy, domain.HealthTimedOut} {
		handle := &stubHandle{}
		launcher := &stubLauncher{handle: handle}
		runner := &stubRunner{}
		svc := testService(launcher, &stubProbe{outcome: outcome}, runner, &stubRepo{})

		report, err := svc.Run(context.Background())
		if err == nil {
			t.Fatalf("outcome %s: expected error", outcome)
		}
		if runner.called {
			t.Fatalf("outcome %s: foreground task must not run", outcome)
		}
		if handle.shutdownCalls != 1 {
			t.Fatalf("outcome %s: shutdown calls = %d, want 1", outcome, handle.shutdownCalls)
		}
		if report.ExitCode != domain.ExitSupervisorFailure {
			t.Fatalf("outcome %s: exit code = %d, want sentinel", outcome, report.ExitCode)
		}
	}
}

func TestRunPropagatesTaskExitCode(t *testing.T) {
	for _, code := range []int{0, 1, 7, 42, 255} {
		handle := &stubHandle{}
		launcher := &stubLauncher{handle: handle}
		runner := &stubRunner{result: domain.TaskResult{Ran: true, ExitCode: code}}
		svc := testService(launcher, &stubProbe{outcome: domain.HealthHealthy}, runner, &stubRepo{})

		report, err := svc.Run(context.Background())
		if err != nil {
			t.Fatalf("code %d: Run() error = %v", code, err)
		}
		if report.ExitCode != code {
			t.Fatalf("exit code = %d, want %d", report.ExitCode, code)
		}
		if handle.shutdownCalls != 1 {
			t.Fatalf("code %d: shutdown calls = %d, want 1", code, handle.shutdownCalls)
		}
	}
}

func TestRunShutsDownWhenTaskErrors(t *testing.T) {
	handle := &stubHandle{}
	launcher := &stubLauncher{handle: handle}
	runner := &stubRunner{
		result: domain.TaskResult{ExitCode: domain.ExitSupervisorFailure},
		err:    errors.New("exec format error"),
	}
	svc := testService(launcher, &stubProbe{outcome: domain.HealthHealthy}, runner, &stubRepo{})

	_, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected task error")
	}
	if handle.shutdownCalls != 1 {
		t.Fatalf("shutdown calls = %d, want 1", handle.shutdownCalls)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	handle := &stubHandle{}
	repo := &stubRepo{}
	runner := &stubRunner{result: domain.TaskResult{Ran: true, ExitCode: 7}}
	svc := testService(&stubLauncher{handle: handle}, &stubProbe{outcome: domain.HealthHealthy}, runner, repo)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved records = %d, want 1", len(repo.saved))
	}
	rec := repo.saved[0]
	if rec.ExitCode != 7 || rec.Success {
		t.Fatalf("record = %+v, want exit 7, success false", rec)
	}
	if rec.ID == "" {
		t.Fatal("record missing run ID")
	}
}

func TestRunSkipHistorySuppressesRecording(t *testing.T) {
	repo := &stubRepo{}
	runner := &stubRunner{result: domain.TaskResult{Ran: true}}
	svc := testService(&stubLauncher{handle: &stubHandle{}}, &stubProbe{outcome: domain.HealthHealthy}, runner, repo)
	svc.SkipHistory = true

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("saved records = %d, want 0", len(repo.saved))
	}
}

func TestRunInvalidConfigFailsBeforeLaunch(t *testing.T) {
	launcher := &stubLauncher{handle: &stubHandle{}}
	svc := testService(launcher, &stubProbe{outcome: domain.HealthHealthy}, &stubRunner{}, &stubRepo{})
	svc.ConfigProvider = stubConfigProvider{cfg: domain.Config{}}

	_, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected config validation error")
	}
	if launcher.called {
		t.Fatal("launch must not run with invalid config")
	}
}

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubLauncher struct {
	handle *stubHandle
	err    error
	called bool
}

func (s *stubLauncher) Launch(context.Context, domain.LaunchSpec) (ports.ProcessHandle, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.handle, nil
}

type stubHandle struct {
	shutdownCalls int
	running       bool
}

func (s *stubHandle) PID() int             { return 4242 }
func (s *stubHandle) StartedAt() time.Time { return time.Now() }
func (s *stubHandle) Alive() bool          { return s.shutdownCalls == 0 }
func (s *stubHandle) MarkRunning()         { s.running = true }

func (s *stubHandle) State() domain.ProcessState {
	if s.shutdownCalls > 0 {
		return domain.ProcessTerminated
	}
	if s.running {
		return domain.ProcessRunning
	}
	return domain.ProcessStarting
}

func (s *stubHandle) Shutdown(time.Duration) domain.ShutdownOutcome {
	s.shutdownCalls++
	if s.shutdownCalls > 1 {
		return domain.ShutdownAlreadyDead
	}
	return domain.ShutdownClean
}

type stubProbeFactory struct {
	probe *stubProbe
}

func (s stubProbeFactory) ForConfig(domain.Config) (ports.HealthProbe, error) {
	return s.probe, nil
}

type stubProbe struct {
	outcome domain.HealthOutcome
}

func (s *stubProbe) Await(_ context.Context, handle ports.ProcessHandle, _, _ time.Duration) domain.HealthOutcome {
	if s.outcome == domain.HealthHealthy {
		handle.MarkRunning()
	}
	return s.outcome
}

type stubRunner struct {
	result domain.TaskResult
	err    error
	called bool
}

func (s *stubRunner) Run(context.Context, domain.TaskSpec) (domain.TaskResult, error) {
	s.called = true
	return s.result, s.err
}

type stubRepo struct {
	saved []domain.RunRecord
}

func (s *stubRepo) Save(rec domain.RunRecord) error {
	s.saved = append(s.saved, rec)
	return nil
}

func (s *stubRepo) List(int) ([]domain.RunRecord, error) { return s.saved, nil }
func (s *stubRepo) Clear() error                         { s.saved = nil; return nil }
