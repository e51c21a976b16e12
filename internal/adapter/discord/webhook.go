package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"discord-notify/internal/domain/model"
	"discord-notify/internal/domain/ports"
)

// Message limits enforced by Discord.
const (
	maxContentLength     = 2000
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	maxFields            = 25
	maxFieldNameLength   = 256
	maxFieldValueLength  = 1024
	maxFooterTextLength  = 2048
	maxAuthorNameLength  = 256

	maxErrorBody = 1024
)

// ErrEmbedLimit is returned before any request when the message breaks a Discord limit.
var ErrEmbedLimit = fmt.Errorf("%w: discord message limit exceeded", model.ErrConfiguration)

// Webhook is a Discord webhook notifier.
type Webhook struct {
	webhookURL string
	httpClient *http.Client
	logger     ports.Logger
}

var (
	_ ports.Notifier         = (*Webhook)(nil)
	_ ports.PayloadPreviewer = (*Webhook)(nil)
)

// NewWebhook creates a new Discord webhook notifier.
func NewWebhook(webhookURL string, httpClient *http.Client, logger ports.Logger) *Webhook {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Webhook{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// StatusError is returned when Discord answers with anything but 204 No Content.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("discord webhook returned HTTP %d: %s", e.StatusCode, e.Body)
}

// TransportError wraps failures that happen before any HTTP status is received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "request failed: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

type payload struct {
	Embeds    []embed `json:"embeds"`
	Content   string  `json:"content,omitempty"`
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	TTS       bool    `json:"tts,omitempty"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	URL         string       `json:"url"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Author      *embedAuthor `json:"author,omitempty"`
	Footer      *embedFooter `json:"footer,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
}

type embedAuthor struct {
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type embedFooter struct {
	Text    string `json:"text,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

func buildPayload(n model.Notification) payload {
	e := embed{
		Title:       n.Title,
		Description: n.Description,
		Color:       n.Color,
		URL:         n.URL,
		Timestamp:   n.Timestamp,
		Fields:      convertFields(n.Fields),
	}

	if n.AuthorName != "" || n.AuthorURL != "" || n.AuthorIconURL != "" {
		e.Author = &embedAuthor{Name: n.AuthorName, URL: n.AuthorURL, IconURL: n.AuthorIconURL}
	}
	if n.FooterText != "" || n.FooterIconURL != "" {
		e.Footer = &embedFooter{Text: n.FooterText, IconURL: n.FooterIconURL}
	}

	return payload{
		Embeds:    []embed{e},
		Content:   n.Content,
		Username:  n.Username,
		AvatarURL: n.AvatarURL,
		TTS:       n.TTS,
	}
}

func convertFields(fields []model.NotificationField) []embedField {
	if len(fields) == 0 {
		return nil
	}

	result := make([]embedField, 0, len(fields))
	for _, field := range fields {
		result = append(result, embedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	return result
}

// validate rejects payloads Discord would refuse. Text is never shortened.
func validate(p payload) error {
	if exceeds(p.Content, maxContentLength) {
		return limitError("content", maxContentLength)
	}

	for _, e := range p.Embeds {
		switch {
		case exceeds(e.Title, maxTitleLength):
			return limitError("title", maxTitleLength)
		case exceeds(e.Description, maxDescriptionLength):
			return limitError("description", maxDescriptionLength)
		case len(e.Fields) > maxFields:
			return fmt.Errorf("%w: embed has %d fields, at most %d allowed", ErrEmbedLimit, len(e.Fields), maxFields)
		case e.Author != nil && exceeds(e.Author.Name, maxAuthorNameLength):
			return limitError("author name", maxAuthorNameLength)
		case e.Footer != nil && exceeds(e.Footer.Text, maxFooterTextLength):
			return limitError("footer text", maxFooterTextLength)
		}

		for i, f := range e.Fields {
			if exceeds(f.Name, maxFieldNameLength) {
				return limitError(fmt.Sprintf("field %d name", i+1), maxFieldNameLength)
			}
			if exceeds(f.Value, maxFieldValueLength) {
				return limitError(fmt.Sprintf("field %d value", i+1), maxFieldValueLength)
			}
		}
	}

	return nil
}

func exceeds(value string, limit int) bool {
	return utf8.RuneCountInString(value) > limit
}

func limitError(what string, limit int) error {
	return fmt.Errorf("%w: %s exceeds %d characters", ErrEmbedLimit, what, limit)
}

// Preview renders the JSON body Send would post.
func (w *Webhook) Preview(notification model.Notification) ([]byte, error) {
	p := buildPayload(notification)
	if err := validate(p); err != nil {
		return nil, err
	}

	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return body, nil
}

// Send posts the notification to Discord. It makes a single attempt.
func (w *Webhook) Send(ctx context.Context, notification model.Notification) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	body, err := w.Preview(notification)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	// Discord answers 204 for a delivered webhook message; 200 only appears with ?wait=true.
	if resp.StatusCode != http.StatusNoContent {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	w.logger.Info(ctx, "notification sent to discord", "status", resp.StatusCode)
	return nil
}
