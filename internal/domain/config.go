package domain

import "time"

// Config mirrors ~/.ivyrun/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Extractor           ExtractorSettings `yaml:"extractor"`
	Health              HealthSettings    `yaml:"health"`
	Task                TaskSettings      `yaml:"task"`
	History             HistorySettings   `yaml:"history"`
}

// ExtractorSettings describes how to spawn the extractor backend.
type ExtractorSettings struct {
	Interpreter string `yaml:"interpreter"`
	App         string `yaml:"app"`
	Workers     int    `yaml:"workers"`
	Bind        string `yaml:"bind"`
	LogFile     string `yaml:"log_file"`
	WorkDir     string `yaml:"workdir"`
}

// HealthSettings controls the post-launch health check. Durations are
// whole seconds in the YAML file.
type HealthSettings struct {
	// Probe selects the strategy: "http" polls the bind address for a
	// 200, "process" only confirms the OS process is still alive.
	Probe           string `yaml:"probe"`
	TimeoutSeconds  int    `yaml:"timeout"`
	IntervalSeconds int    `yaml:"interval"`
	// SettleSeconds is the fixed wait before the process probe's
	// single liveness check.
	SettleSeconds int `yaml:"settle"`
	// GraceSeconds bounds how long shutdown waits after SIGTERM
	// before killing.
	GraceSeconds int `yaml:"grace"`
}

// Timeout returns the health check deadline.
func (h HealthSettings) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// Interval returns the readiness poll interval.
func (h HealthSettings) Interval() time.Duration {
	return time.Duration(h.IntervalSeconds) * time.Second
}

// Settle returns the process probe's fixed wait.
func (h HealthSettings) Settle() time.Duration {
	return time.Duration(h.SettleSeconds) * time.Second
}

// Grace returns the shutdown grace period.
func (h HealthSettings) Grace() time.Duration {
	return time.Duration(h.GraceSeconds) * time.Second
}

// TaskSettings describes the foreground sync task.
type TaskSettings struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	WorkDir string   `yaml:"workdir"`
}

// HistorySettings toggles run-history persistence.
type HistorySettings struct {
	Enabled bool `yaml:"enabled"`
}
