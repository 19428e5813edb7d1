package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"serverless-gin-api/internal/app"
	"serverless-gin-api/internal/config"
	"serverless-gin-api/pkg/server"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, func(ctx context.Context) (server.App, error) {
		return app.New(ctx, cfg, logger)
	}, server.WithLogger(logger))

	if err := srv.Run(ctx); err != nil {
		logger.WithError(err).Fatal("Server stopped with an error")
	}
}
