//go:build wireinject

package di

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/google/wire"

	"discord-notify/internal/adapter/discord"
	"discord-notify/internal/adapter/httpclient"
	"discord-notify/internal/adapter/logging"
	"discord-notify/internal/adapter/osenv"
	"discord-notify/internal/app"
	"discord-notify/internal/config"
	"discord-notify/internal/domain/model"
	"discord-notify/internal/domain/ports"
	"discord-notify/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, error) {
	wire.Build(
		provideEnvironment,
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideHTTPClient,
		provideWebhook,
		wire.Bind(new(ports.Notifier), new(*discord.Webhook)),
		wire.Bind(new(ports.PayloadPreviewer), new(*discord.Webhook)),
		usecase.NewNotify,
		provideRequest,
		app.New,
	)
	return nil, nil
}

func provideEnvironment() ports.Environment {
	return osenv.Process{}
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewSlog(os.Stdout, cfg.LogLevel, cfg.LogFormat)
}

func provideHTTPClient(cfg *config.Config) *http.Client {
	return httpclient.New(cfg.RequestTimeout, httpclient.ProxyConfig{
		HTTPProxy:  cfg.HTTPProxy,
		HTTPSProxy: cfg.HTTPSProxy,
		NoProxy:    cfg.NoProxy,
	})
}

func provideWebhook(cfg *config.Config, client *http.Client, logger ports.Logger) *discord.Webhook {
	return discord.NewWebhook(cfg.WebhookURL, client, logger)
}

func provideRequest(cfg *config.Config) model.NotificationRequest {
	return cfg.Request()
}
