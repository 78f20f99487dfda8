package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/ivyrun/internal/domain"
)

func TestLoadSeedsDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestLoadParsesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `config_format_version: "1"
extractor:
  interpreter: /usr/bin/python3
  app: extractor:app
  workers: 4
  bind: 127.0.0.1:7001
  log_file: /tmp/extractor.log
health:
  probe: process
  timeout: 30
task:
  command: /usr/bin/python3
  args: [main.py, --fast]
history:
  enabled: false
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Extractor.Workers != 4 {
		t.Fatalf("workers = %d, want 4", cfg.Extractor.Workers)
	}
	if cfg.Extractor.Bind != "127.0.0.1:7001" {
		t.Fatalf("bind = %q", cfg.Extractor.Bind)
	}
	if cfg.Health.Probe != domain.ProbeProcess {
		t.Fatalf("probe = %q, want process", cfg.Health.Probe)
	}
	if cfg.Health.Timeout() != 30*time.Second {
		t.Fatalf("timeout = %s, want 30s", cfg.Health.Timeout())
	}
	// Omitted durations are normalized.
	if cfg.Health.Interval() != time.Second || cfg.Health.Grace() != 5*time.Second {
		t.Fatalf("normalized durations = %s/%s", cfg.Health.Interval(), cfg.Health.Grace())
	}
	if cfg.History.Enabled {
		t.Fatal("history should be disabled")
	}
	if len(cfg.Task.Args) != 2 || cfg.Task.Args[1] != "--fast" {
		t.Fatalf("task args = %v", cfg.Task.Args)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("extractor: ["), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverrideResolvesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alt.yaml")
	t.Setenv("IVYRUN_CONFIG", path)

	loader := NewFileLoader("")
	if got := loader.Path(); got != path {
		t.Fatalf("Path() = %q, want %q", got, path)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
