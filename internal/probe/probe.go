// Package probe checks whether a registered service answers HTTP requests.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/wrtgvr/statusboard/internal/config"
	"github.com/wrtgvr/statusboard/internal/domain"
	"github.com/wrtgvr/statusboard/internal/logger"
	"github.com/wrtgvr/statusboard/internal/metrics"
)

// Prober issues one GET per check. A service is up only on 200 OK.
// At most `Concurrency` checks are in flight at once.
type Prober struct {
	client  *http.Client
	sem     semaphore
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func New(cfg *config.ProbeConfig, m *metrics.Metrics) *Prober {
	return &Prober{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		sem:     newSemaphore(cfg.Concurrency),
		metrics: m,
		log:     logger.WithComponent("probe"),
	}
}

// Check probes svc. The returned error is non-nil only when ctx ends while
// waiting for a probe slot; probe failures are reported as "down".
func (p *Prober) Check(ctx context.Context, svc *domain.Service) (*domain.ServiceStatus, error) {
	if err := p.sem.acquire(ctx); err != nil {
		return nil, fmt.Errorf("probe %s: %w", svc.ID, err)
	}
	defer p.sem.release()

	status := domain.StatusDown
	startedAt := time.Now()

	code, err := p.get(ctx, svc.URL())
	switch {
	case err != nil:
		p.log.Debug().Err(err).Str("service_id", svc.ID).Msg("probe failed")
	case code == http.StatusOK:
		status = domain.StatusUp
	default:
		p.log.Debug().Str("service_id", svc.ID).Int("code", code).Msg("probe got non-200 response")
	}

	p.log.Debug().
		Str("service_id", svc.ID).
		Str("status", status).
		Dur("response_time", time.Since(startedAt)).
		Msg("probe finished")
	p.metrics.ObserveProbe(status)

	return &domain.ServiceStatus{
		ServiceName: svc.Name,
		Status:      status,
	}, nil
}

func (p *Prober) get(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode, nil
}
