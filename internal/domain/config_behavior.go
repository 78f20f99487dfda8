package domain

import (
	"fmt"
	"net"
)

// Probe strategy names accepted by Config.Health.Probe.
const (
	ProbeHTTP    = "http"
	ProbeProcess = "process"
)

// Validate checks the configuration for values that would make a run
// impossible. Normalization of zero values happens in Normalize.
func (c *Config) Validate() error {
	if c.Extractor.Interpreter == "" {
		return fmt.Errorf("extractor.interpreter required")
	}
	if c.Extractor.App == "" {
		return fmt.Errorf("extractor.app required")
	}
	if c.Extractor.Workers < 1 {
		return fmt.Errorf("extractor.workers must be >= 1, got %d", c.Extractor.Workers)
	}
	if _, _, err := net.SplitHostPort(c.Extractor.Bind); err != nil {
		return fmt.Errorf("extractor.bind must be host:port: %w", err)
	}
	switch c.Health.Probe {
	case ProbeHTTP, ProbeProcess:
	default:
		return fmt.Errorf("health.probe must be %q or %q, got %q", ProbeHTTP, ProbeProcess, c.Health.Probe)
	}
	if c.Task.Command == "" {
		return fmt.Errorf("task.command required")
	}
	return nil
}

// Normalize fills zero durations and counts with defaults so a
// hand-edited config with omitted keys still runs.
func (c *Config) Normalize() {
	if c.Extractor.Workers == 0 {
		c.Extractor.Workers = 2
	}
	if c.Health.Probe == "" {
		c.Health.Probe = ProbeHTTP
	}
	if c.Health.TimeoutSeconds == 0 {
		c.Health.TimeoutSeconds = 20
	}
	if c.Health.IntervalSeconds == 0 {
		c.Health.IntervalSeconds = 1
	}
	if c.Health.SettleSeconds == 0 {
		c.Health.SettleSeconds = 3
	}
	if c.Health.GraceSeconds == 0 {
		c.Health.GraceSeconds = 5
	}
}

// LaunchSpec builds the auxiliary process spec from the extractor
// settings. The command line follows the gunicorn convention:
// interpreter -m gunicorn -w <workers> -b <bind> <app>.
func (c *Config) LaunchSpec() LaunchSpec {
	return LaunchSpec{
		Command: c.Extractor.Interpreter,
		Args: []string{
			"-m", "gunicorn",
			"-w", fmt.Sprintf("%d", c.Extractor.Workers),
			"-b", c.Extractor.Bind,
			c.Extractor.App,
		},
		Bind:    c.Extractor.Bind,
		LogFile: c.Extractor.LogFile,
		WorkDir: c.Extractor.WorkDir,
	}
}

// TaskSpec builds the foreground task spec.
func (c *Config) TaskSpec() TaskSpec {
	return TaskSpec{
		Command: c.Task.Command,
		Args:    c.Task.Args,
		WorkDir: c.Task.WorkDir,
	}
}
