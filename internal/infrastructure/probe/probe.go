// Package probe implements the post-launch health checks.
package probe

import (
	"context"
	"time"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/ports"
)

// ProcessProbe preserves the launcher's historical behavior: one
// bounded settle wait followed by a single liveness check. It does not
// confirm the service is accepting connections.
type ProcessProbe struct {
	Settle time.Duration
}

// NewProcessProbe builds a probe with the given settle wait.
func NewProcessProbe(settle time.Duration) *ProcessProbe {
	return &ProcessProbe{Settle: settle}
}

// Await implements ports.HealthProbe. The timeout caps the settle
// wait; interval is unused by this strategy.
func (p *ProcessProbe) Await(ctx context.Context, handle ports.ProcessHandle, timeout, _ time.Duration) domain.HealthOutcome {
	settle := p.Settle
	if timeout > 0 && settle > timeout {
		settle = timeout
	}

	select {
	case <-ctx.Done():
		return domain.HealthTimedOut
	case <-time.After(settle):
	}

	if !handle.Alive() {
		return domain.HealthUnhealthy
	}
	handle.MarkRunning()
	return domain.HealthHealthy
}

var _ ports.HealthProbe = (*ProcessProbe)(nil)
