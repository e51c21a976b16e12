package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"discord-notify/internal/adapter/logging"
	"discord-notify/internal/app"
	"discord-notify/internal/di"
)

func main() {
	os.Exit(run())
}

func run() int {
	application, err := di.InitializeApp()
	if err != nil {
		logger := logging.New(logging.NewSlog(os.Stdout, "info", os.Getenv("LOG_FORMAT")))
		logger.Error(context.Background(), "failed to initialize application", "error", err)
		return app.ExitCode(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.ExitCode(application.Run(ctx))
}
