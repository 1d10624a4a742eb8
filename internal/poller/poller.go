// Package poller keeps the status board up to date.
//
// A cycle takes a generation from the board, fetches the service ids, resets
// the board unless a newer cycle already did, then fetches every service status on a bounded worker pool and appends each result as it
// arrives. Failed fetches are logged and the service is left off the board.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/rs/zerolog"

	"github.com/wrtgvr/statusboard/internal/board"
	"github.com/wrtgvr/statusboard/internal/config"
	"github.com/wrtgvr/statusboard/internal/domain"
	"github.com/wrtgvr/statusboard/internal/logger"
	"github.com/wrtgvr/statusboard/internal/metrics"
)

type Poller struct {
	client   Client
	board    *board.Board
	pool     pond.Pool
	interval time.Duration
	metrics  *metrics.Metrics
	log      zerolog.Logger
	cycles   sync.WaitGroup
}

func New(cfg *config.PollerConfig, client Client, b *board.Board, m *metrics.Metrics) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.Workers <= 0 {
		return nil, errors.New("poller: workers must be > 0")
	}
	return &Poller{
		client:   client,
		board:    b,
		pool:     pond.NewPool(cfg.Workers),
		interval: cfg.Interval,
		metrics:  m,
		log:      logger.WithComponent("poller"),
	}, nil
}

// Run polls once right away and then on every tick until ctx is done.
// Cycles are not serialized: a tick fires even if the previous cycle is
// still waiting on fetches. Run returns after in-flight cycles finish.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Trigger(ctx)

	for {
		select {
		case <-ctx.Done():
			p.cycles.Wait()
			return
		case <-ticker.C:
			p.Trigger(ctx)
		}
	}
}

// Trigger starts a cycle in the background.
func (p *Poller) Trigger(ctx context.Context) {
	p.cycles.Add(1)
	go func() {
		defer p.cycles.Done()
		_ = p.PollOnce(ctx)
	}()
}

// Wait blocks until every triggered cycle has settled.
func (p *Poller) Wait() {
	p.cycles.Wait()
}

// Stop waits for in-flight cycles and releases the worker pool.
func (p *Poller) Stop() {
	p.cycles.Wait()
	p.pool.StopAndWait()
}

// PollOnce runs exactly one cycle and returns once all of its fetches have
// settled. The only error returned is a failed id list fetch.
func (p *Poller) PollOnce(ctx context.Context) error {
	gen := p.board.Begin()
	ids, err := p.client.ServiceIDs(ctx)
	p.metrics.ObservePollCycle(err)

	if err != nil {
		p.log.Error().Err(err).Uint64("generation", gen).Msg("error fetching service ids")
	}

	if !p.board.Reset(gen) {
		p.log.Debug().Uint64("generation", gen).Msg("discarding id list from superseded cycle")
		return err
	}

	if err != nil {
		p.settle(gen)
		return err
	}

	p.log.Debug().Uint64("generation", gen).Int("services", len(ids)).Msg("poll cycle started")

	if len(ids) > 0 {
		group := p.pool.NewGroup()
		for _, id := range ids {
			group.Submit(func() {
				p.fetchStatus(ctx, gen, id)
			})
		}
		if err := group.Wait(); err != nil {
			p.log.Error().Err(err).Uint64("generation", gen).Msg("status fetch task failed")
		}
	}

	p.settle(gen)
	return nil
}

func (p *Poller) fetchStatus(ctx context.Context, gen uint64, id domain.ServiceID) {
	status, err := p.client.ServiceStatus(ctx, id)
	p.metrics.ObserveStatusFetch(err)
	if err != nil {
		p.log.Error().Err(err).Str("service_id", id.String()).Msg("error fetching service status")
		return
	}

	if !p.board.Append(gen, id, status) {
		p.metrics.ObserveStaleResult()
		p.log.Debug().
			Str("service_id", id.String()).
			Uint64("generation", gen).
			Msg("discarding status from superseded cycle")
	}
}

func (p *Poller) settle(gen uint64) {
	snap, ok := p.board.Settle(gen)
	if !ok {
		return
	}
	p.metrics.SetBoardRows(len(snap.Rows))
	p.log.Debug().Uint64("generation", gen).Int("rows", len(snap.Rows)).Msg("poll cycle settled")
}
