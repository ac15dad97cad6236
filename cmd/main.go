package main

import (
	"context"

	"globe/dodrio_credit_limit/configs"
	"globe/dodrio_credit_limit/internal/app/runtime"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/otel"
)

func main() {

	// Load Environment Variables
	if err := configs.LoadEnv(); err != nil {
		logger.Debug("Error loading .env file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	//setup otel collector
	if _, err := otel.Setup(ctx, configs.SERVICE_NAME, configs.OTEL_URL); err != nil {
		logger.Error(ctx, "Error setting up OTLP: %v", err)
	}

	app, err := runtime.New(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to initialize worker: %v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "Worker stopped with error: %v", err)
	}
}
