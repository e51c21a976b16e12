package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"discord-notify/internal/domain/model"
	"discord-notify/internal/domain/ports"
)

// Configuration errors are reported before any network activity.
var (
	ErrConfiguration     = model.ErrConfiguration
	ErrMissingWebhookURL = fmt.Errorf("%w: no webhook URL provided, set INPUT_WEBHOOK_URL or DISCORD_WEBHOOK_URL", ErrConfiguration)
	ErrEmptyMessage      = fmt.Errorf("%w: no message provided, set INPUT_MESSAGE", ErrConfiguration)
	ErrInvalidFields     = fmt.Errorf("%w: INPUT_EMBED_FIELDS must be a JSON array of {name, value, inline}", ErrConfiguration)
)

// Config contains runtime configuration values.
type Config struct {
	WebhookURL  string
	Title       string
	Message     string
	Username    string
	AvatarURL   string
	Color       string
	RepoURL     string
	ShowPayload bool

	Content       string
	TTS           bool
	Timestamp     string
	AuthorName    string
	AuthorURL     string
	AuthorIconURL string
	FooterText    string
	FooterIconURL string
	Fields        []model.NotificationField

	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

const (
	defaultTimeout   = 30 * time.Second
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)

// Load builds a Config from environment variables with sane defaults.
func Load(env ports.Environment) (*Config, error) {
	cfg := &Config{
		WebhookURL:  firstNonEmpty(env, "INPUT_WEBHOOK_URL", "DISCORD_WEBHOOK_URL"),
		Title:       getenvDefault(env, "INPUT_TITLE", model.DefaultTitle),
		Message:     getenv(env, "INPUT_MESSAGE"),
		Username:    getenv(env, "INPUT_USERNAME"),
		AvatarURL:   getenv(env, "INPUT_AVATAR_URL"),
		Color:       getenv(env, "INPUT_COLOR"),
		RepoURL:     repoURL(env),
		ShowPayload: getenvBool(env, "INPUT_SHOW_PAYLOAD"),

		Content:       getenv(env, "INPUT_CONTENT"),
		TTS:           getenvBool(env, "INPUT_TTS"),
		Timestamp:     getenv(env, "INPUT_EMBED_TIMESTAMP"),
		AuthorName:    getenv(env, "INPUT_EMBED_AUTHOR_NAME"),
		AuthorURL:     getenv(env, "INPUT_EMBED_AUTHOR_URL"),
		AuthorIconURL: getenv(env, "INPUT_EMBED_AUTHOR_ICON_URL"),
		FooterText:    getenv(env, "INPUT_EMBED_FOOTER_TEXT"),
		FooterIconURL: getenv(env, "INPUT_EMBED_FOOTER_ICON_URL"),

		RequestTimeout: parseDurationDefault(env, "REQUEST_TIMEOUT", defaultTimeout),
		LogLevel:       getenvDefault(env, "LOG_LEVEL", defaultLogLevel),
		LogFormat:      getenvDefault(env, "LOG_FORMAT", defaultLogFormat),

		HTTPProxy:  firstNonEmpty(env, "HTTP_PROXY", "http_proxy"),
		HTTPSProxy: firstNonEmpty(env, "HTTPS_PROXY", "https_proxy"),
		NoProxy:    firstNonEmpty(env, "NO_PROXY", "no_proxy"),
	}

	if cfg.WebhookURL == "" {
		return nil, ErrMissingWebhookURL
	}

	if cfg.Message == "" {
		return nil, ErrEmptyMessage
	}

	fields, err := parseFields(getenv(env, "INPUT_EMBED_FIELDS"))
	if err != nil {
		return nil, err
	}
	cfg.Fields = fields

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	return cfg, nil
}

// Request extracts the notification inputs from the configuration.
func (c *Config) Request() model.NotificationRequest {
	return model.NotificationRequest{
		WebhookURL:  c.WebhookURL,
		Title:       c.Title,
		Message:     c.Message,
		Username:    c.Username,
		AvatarURL:   c.AvatarURL,
		Color:       c.Color,
		RepoURL:     c.RepoURL,
		ShowPayload: c.ShowPayload,

		Content:       c.Content,
		TTS:           c.TTS,
		Timestamp:     c.Timestamp,
		AuthorName:    c.AuthorName,
		AuthorURL:     c.AuthorURL,
		AuthorIconURL: c.AuthorIconURL,
		FooterText:    c.FooterText,
		FooterIconURL: c.FooterIconURL,
		Fields:        c.Fields,
	}
}

// repoURL joins the server, repository and ref verbatim, even when some are unset.
func repoURL(env ports.Environment) string {
	return getenv(env, "GITHUB_SERVER_URL") + "/" +
		getenv(env, "GITHUB_REPOSITORY") + "/src/branch/" +
		getenv(env, "GITHUB_REF_NAME")
}

// parseFields decodes embed fields given as a JSON array.
func parseFields(raw string) ([]model.NotificationField, error) {
	if raw == "" {
		return nil, nil
	}

	var decoded []struct {
		Name   string `json:"name"`
		Value  string `json:"value"`
		Inline bool   `json:"inline"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFields, err)
	}

	fields := make([]model.NotificationField, 0, len(decoded))
	for _, f := range decoded {
		fields = append(fields, model.NotificationField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return fields, nil
}

func getenv(env ports.Environment, key string) string {
	val, _ := env.LookupEnv(key)
	return strings.TrimSpace(val)
}

func getenvDefault(env ports.Environment, key, fallback string) string {
	if val := getenv(env, key); val != "" {
		return val
	}
	return fallback
}

func getenvBool(env ports.Environment, key string) bool {
	return strings.EqualFold(getenv(env, key), "true")
}

func firstNonEmpty(env ports.Environment, keys ...string) string {
	for _, key := range keys {
		if val := getenv(env, key); val != "" {
			return val
		}
	}
	return ""
}

func parseDurationDefault(env ports.Environment, key string, fallback time.Duration) time.Duration {
	if val := getenv(env, key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
