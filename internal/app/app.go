package app

import (
	"context"

	"discord-notify/internal/domain/model"
	"discord-notify/internal/domain/ports"
	"discord-notify/internal/usecase"
)

// Exit codes reported by the process.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// App runs a single notification for the lifetime of the process.
type App struct {
	usecase *usecase.Notify
	logger  ports.Logger
	request model.NotificationRequest
}

// New constructs an App instance.
func New(notify *usecase.Notify, logger ports.Logger, request model.NotificationRequest) *App {
	return &App{
		usecase: notify,
		logger:  logger,
		request: request,
	}
}

// Run delivers the configured notification once. There is no retry.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info(ctx, "starting discord webhook notification")
	return a.usecase.Run(ctx, a.request)
}

// ExitCode maps the outcome of initialization or Run to a process exit status.
func ExitCode(err error) int {
	if err != nil {
		return ExitFailure
	}
	return ExitSuccess
}
