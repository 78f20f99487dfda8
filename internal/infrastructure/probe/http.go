package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/doeshing/ivyrun/internal/domain"
	"github.com/doeshing/ivyrun/internal/ports"
)

// HTTPProbe polls the extractor's bind address until it answers with
// HTTP 200. Unlike ProcessProbe this is a real readiness check.
type HTTPProbe struct {
	Bind   string
	Client *http.Client
}

// NewHTTPProbe builds a readiness probe for host:port bind.
func NewHTTPProbe(bind string) *HTTPProbe {
	return &HTTPProbe{
		Bind:   bind,
		Client: &http.Client{Timeout: 2 * time.Second},
	}
}

// Await implements ports.HealthProbe. Polls at interval until the
// service answers (Healthy), the process is observed dead (Unhealthy),
// or timeout elapses (TimedOut).
func (p *HTTPProbe) Await(ctx context.Context, handle ports.ProcessHandle, timeout, interval time.Duration) domain.HealthOutcome {
	url := fmt.Sprintf("http://%s/", p.Bind)
	deadline := time.Now().Add(timeout)

	for {
		if !handle.Alive() {
			return domain.HealthUnhealthy
		}
		if p.ready(ctx, url) {
			handle.MarkRunning()
			return domain.HealthHealthy
		}
		if time.Now().After(deadline) {
			return domain.HealthTimedOut
		}
		select {
		case <-ctx.Done():
			return domain.HealthTimedOut
		case <-time.After(interval):
		}
	}
}

func (p *HTTPProbe) ready(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

var _ ports.HealthProbe = (*HTTPProbe)(nil)
