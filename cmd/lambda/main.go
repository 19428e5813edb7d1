package main

import (
	"context"

	"serverless-gin-api/internal/app"
	"serverless-gin-api/internal/config"
	"serverless-gin-api/pkg/lambda"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadForLambda()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := config.NewLogger(cfg)
	logger.WithFields(logrus.Fields{
		"function_name": cfg.Serverless.FunctionName,
		"region":        cfg.Serverless.Region,
		"stage":         cfg.Serverless.Stage,
	}).Info("Starting Lambda handler")

	adapter := lambda.NewAdapter(func(ctx context.Context) (lambda.Application, error) {
		return app.New(ctx, cfg, logger)
	}, lambda.WithLogger(logger))

	adapter.Start()
}
