package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/ivyrun/internal/app"
	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/infrastructure/cli/helpers"
	"github.com/doeshing/ivyrun/internal/ports"
)

// RunFlags collects the run command's config overrides.
type RunFlags struct {
	Bind        string
	Workers     int
	Probe       string
	Timeout     time.Duration
	LogFile     string
	SkipHistory bool
}

// NewRunCommand creates the run command.
func NewRunCommand(container *app.Container) *cobra.Command {
	var flags RunFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Launch the extractor, run the sync task, tear down",
		Long: "Starts the extractor backend, waits for it to become healthy,\n" +
			"runs the sync task against it, and always shuts the backend down.\n" +
			"Exits with the sync task's exit code.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteRun(cmd.Context(), container, flags)
		},
	}

	AddRunFlags(cmd, &flags)
	return cmd
}

// AddRunFlags registers the shared run flags; the root command reuses
// them so a bare invocation behaves like `run`.
func AddRunFlags(cmd *cobra.Command, flags *RunFlags) {
	cmd.Flags().StringVar(&flags.Bind, "bind", "", "Override extractor bind address (host:port)")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "Override extractor worker count")
	cmd.Flags().StringVar(&flags.Probe, "probe", "", "Health probe: http or process")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Override health check timeout")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "Override extractor log file")
	cmd.Flags().BoolVar(&flags.SkipHistory, "skip-history", false, "Do not record this run in history")
}

// ExecuteRun performs one supervised run and converts the outcome into
// process exit semantics: nil on exit code 0, ExitError otherwise.
func ExecuteRun(ctx context.Context, container *app.Container, flags RunFlags) error {
	svc := *container.Supervisor
	svc.ConfigProvider = &overrideProvider{inner: container.ConfigProvider, flags: flags}
	svc.SkipHistory = flags.SkipHistory

	report, err := svc.Run(ctx)
	helpers.RenderRunReport(&report, err)

	if report.ExitCode != 0 {
		return &domain.ExitError{Code: report.ExitCode}
	}
	return err
}

// overrideProvider layers CLI flag overrides onto the loaded config.
type overrideProvider struct {
	inner ports.ConfigProvider
	flags RunFlags
}

func (p *overrideProvider) Load(ctx context.Context) (domain.Config, error) {
	cfg, err := p.inner.Load(ctx)
	if err != nil {
		return cfg, err
	}
	if p.flags.Bind != "" {
		cfg.Extractor.Bind = p.flags.Bind
	}
	if p.flags.Workers > 0 {
		cfg.Extractor.Workers = p.flags.Workers
	}
	if p.flags.Probe != "" {
		cfg.Health.Probe = p.flags.Probe
	}
	if p.flags.Timeout > 0 {
		seconds := int(p.flags.Timeout / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		cfg.Health.TimeoutSeconds = seconds
	}
	if p.flags.LogFile != "" {
		cfg.Extractor.LogFile = p.flags.LogFile
	}
	return cfg, nil
}

// ExitCode extracts the code an entrypoint should exit with.
func ExitCode(err error) (int, bool) {
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
