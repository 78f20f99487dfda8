package probe

import (
	"fmt"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/ports"
)

// Factory builds the probe named by the configuration.
type Factory struct{}

// NewFactory creates a probe factory.
func NewFactory() *Factory {
	return &Factory{}
}

// ForConfig implements ports.ProbeFactory.
func (Factory) ForConfig(cfg domain.Config) (ports.HealthProbe, error) {
	switch cfg.Health.Probe {
	case domain.ProbeHTTP:
		return NewHTTPProbe(cfg.Extractor.Bind), nil
	case domain.ProbeProcess:
		return NewProcessProbe(cfg.Health.Settle()), nil
	default:
		return nil, fmt.Errorf("unknown health probe %q", cfg.Health.Probe)
	}
}

var _ ports.ProbeFactory = (*Factory)(nil)
