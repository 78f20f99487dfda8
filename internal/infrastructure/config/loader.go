package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/pkg/filesystem"
	"github.com/doeshing/ivyrun/internal/ports"
)

// FileLoader loads YAML configuration from ~/.ivyrun/config.yaml
// (overridable via IVYRUN_CONFIG or an explicit path).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is seeded with
// defaults mirroring the original launcher's constants.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	cfg.Normalize()
	return cfg, nil
}

// Path reports the config file the loader would read.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv("IVYRUN_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".ivyrun", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// DefaultConfig returns the seeded configuration. Values match the
// original launcher: gunicorn with 2 workers on 127.0.0.1:6000, the
// venv interpreter, and main.py as the sync task.
func DefaultConfig() domain.Config {
	cfg := domain.Config{
		ConfigFormatVersion: "1",
		Extractor: domain.ExtractorSettings{
			Interpreter: filepath.Join("markit_env", "bin", "python"),
			App:         "extractor:app",
			Workers:     2,
			Bind:        "127.0.0.1:6000",
			LogFile:     "extractor.log",
		},
		Task: domain.TaskSettings{
			Command: filepath.Join("markit_env", "bin", "python"),
			Args:    []string{"main.py"},
		},
		History: domain.HistorySettings{Enabled: true},
	}
	cfg.Normalize()
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
