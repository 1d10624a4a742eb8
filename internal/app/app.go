package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/wrtgvr/statusboard/api"
	"github.com/wrtgvr/statusboard/internal/board"
	"github.com/wrtgvr/statusboard/internal/config"
	"github.com/wrtgvr/statusboard/internal/domain"
	"github.com/wrtgvr/statusboard/internal/handlers"
	"github.com/wrtgvr/statusboard/internal/logger"
	"github.com/wrtgvr/statusboard/internal/metrics"
	"github.com/wrtgvr/statusboard/internal/poller"
	"github.com/wrtgvr/statusboard/internal/probe"
	"github.com/wrtgvr/statusboard/internal/storage"
	"github.com/wrtgvr/statusboard/internal/version"
)

const maxMemoryServices = 100

type App struct {
	server          *http.Server
	storage         storage.ServicesStorage
	board           *board.Board
	poller          *poller.Poller
	ready           *atomic.Bool
	addr            string
	shutdownTimeout time.Duration
	log             zerolog.Logger
}

// Settings is everything New needs. InitApp fills it from flags and env.
type Settings struct {
	Server   *config.ServerConfig
	Poller   *config.PollerConfig
	Probe    *config.ProbeConfig
	Services []domain.Service
	Storage  storage.ServicesStorage
}

// InitApp builds the app from flags, env variables and the services file.
// flag.Parse must be called first.
func InitApp(ctx context.Context) (*App, error) {
	serverCfg, err := config.GetServerConfig()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(serverCfg.Log); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log := logger.WithComponent("app")

	//* services file
	cfg := config.LoadOrDefault(config.ConfigPath(), log)

	//* storage
	var st storage.ServicesStorage
	switch serverCfg.Storage {
	case config.StorageRedis:
		redisCfg, err := config.GetRedisConfig(config.LocalRedis())
		if err != nil {
			return nil, err
		}
		redisStorage := storage.NewRedisStorage(redisCfg)
		if err := redisStorage.Ping(ctx); err != nil {
			redisStorage.Close()
			return nil, fmt.Errorf("connect to redis %s: %w", redisCfg.Addr, err)
		}
		st = redisStorage
	default:
		st = storage.NewMemoryStorage(maxMemoryServices)
	}

	return New(ctx, Settings{
		Server:   serverCfg,
		Poller:   config.GetPollerConfig(serverCfg.Addr),
		Probe:    config.GetProbeConfig(),
		Services: cfg.Servers,
		Storage:  st,
	})
}

func New(ctx context.Context, s Settings) (*App, error) {
	log := logger.WithComponent("app")

	//* seed registry
	if err := storage.Seed(ctx, s.Storage, s.Services); err != nil {
		return nil, fmt.Errorf("seed services: %w", err)
	}

	//* dashboard
	m := metrics.New()
	b := board.New()

	p, err := poller.New(s.Poller, poller.NewHTTPClient(s.Poller.BaseURL, s.Poller.RequestTimeout), b, m)
	if err != nil {
		return nil, err
	}

	//* transport
	ready := &atomic.Bool{}
	h := handlers.NewHTTPHandler(handlers.Options{
		Storage:         s.Storage,
		Prober:          probe.New(s.Probe, m),
		Board:           b,
		Ready:           ready,
		Version:         version.Version,
		RefreshInterval: s.Poller.Interval,
		ResponseTimeout: s.Server.ResponseTimeout,
	})

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, h, m.Handler())

	//* app
	return &App{
		server: &http.Server{
			Addr:              s.Server.Addr,
			Handler:           handlers.LogRequests(logger.WithComponent("http"), mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
		storage:         s.Storage,
		board:           b,
		poller:          p,
		ready:           ready,
		addr:            s.Server.Addr,
		shutdownTimeout: s.Server.ShutdownTimeout,
		log:             log,
	}, nil
}

// Board is the status table the poller keeps up to date.
func (a *App) Board() *board.Board {
	return a.board
}

// Run listens on the configured address and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve runs the HTTP server on ln and the poller until ctx is done, then
// shuts both down.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	serverErr := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", ln.Addr().String()).Str("version", version.Version).Msg("server starting")
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	a.ready.Store(true)

	pollCtx, stopPolling := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.poller.Run(pollCtx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutting down gracefully")
	case err := <-serverErr:
		runErr = fmt.Errorf("server: %w", err)
	}

	a.ready.Store(false)
	stopPolling()
	wg.Wait()
	a.poller.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("server forced to shutdown: %w", err))
	}

	a.log.Info().Msg("server stopped")
	return runErr
}

func (a *App) Close() error {
	return a.storage.Close()
}
