package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/uratMeds/LMS-API/internal/app"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
