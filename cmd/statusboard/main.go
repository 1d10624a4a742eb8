package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/wrtgvr/statusboard/internal/app"
	"github.com/wrtgvr/statusboard/internal/logger"
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.InitApp(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init app")
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
	}
}
