package handlers

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/wrtgvr/statusboard/internal/board"
	"github.com/wrtgvr/statusboard/internal/domain"
	"github.com/wrtgvr/statusboard/internal/logger"
	"github.com/wrtgvr/statusboard/internal/storage"
)

const (
	maxBodyBytes      = 1 << 20
	heartbeatInterval = 5 * time.Second
)

type Prober interface {
	Check(ctx context.Context, svc *domain.Service) (*domain.ServiceStatus, error)
}

type HTTPHandler struct {
	storage         storage.ServicesStorage
	prober          Prober
	board           *board.Board
	ready           *atomic.Bool
	version         string
	refresh         time.Duration
	responseTimeout time.Duration
	heartbeat       time.Duration
	log             zerolog.Logger
}

type Options struct {
	Storage         storage.ServicesStorage
	Prober          Prober
	Board           *board.Board
	Ready           *atomic.Bool
	Version         string
	RefreshInterval time.Duration
	ResponseTimeout time.Duration
}

func NewHTTPHandler(opts Options) *HTTPHandler {
	ready := opts.Ready
	if ready == nil {
		ready = &atomic.Bool{}
	}
	return &HTTPHandler{
		storage:         opts.Storage,
		prober:          opts.Prober,
		board:           opts.Board,
		ready:           ready,
		version:         opts.Version,
		refresh:         opts.RefreshInterval,
		responseTimeout: opts.ResponseTimeout,
		heartbeat:       heartbeatInterval,
		log:             logger.WithComponent("http"),
	}
}

// request context bounded by the response timeout
func (h *HTTPHandler) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, h.responseTimeout)
}
