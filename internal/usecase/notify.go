package usecase

import (
	"context"
	"errors"
	"time"

	"discord-notify/internal/domain/model"
	"discord-notify/internal/domain/ports"
)

// Notify resolves a notification request and delivers it exactly once.
type Notify struct {
	notifier  ports.Notifier
	previewer ports.PayloadPreviewer
	env       ports.Environment
	logger    ports.Logger
}

// NewNotify constructs a Notify use case. previewer may be nil.
func NewNotify(
	notifier ports.Notifier,
	previewer ports.PayloadPreviewer,
	env ports.Environment,
	logger ports.Logger,
) *Notify {
	return &Notify{
		notifier:  notifier,
		previewer: previewer,
		env:       env,
		logger:    logger,
	}
}

// Run builds the notification from req and sends it.
func (n *Notify) Run(ctx context.Context, req model.NotificationRequest) error {
	start := time.Now()

	notification := n.buildNotification(ctx, req)

	if notification.Username != "" {
		n.logger.Info(ctx, "username", "username", notification.Username)
	}
	n.logger.Info(ctx, "title", "title", notification.Title)
	n.logger.Info(ctx, "message", "message", notification.Description)
	n.logger.Info(ctx, "embed color", "color", notification.Color)
	n.logger.Info(ctx, "repository url", "url", notification.URL)
	if len(notification.Fields) > 0 {
		n.logger.Info(ctx, "embed fields", "count", len(notification.Fields))
	}

	if req.ShowPayload && n.previewer != nil {
		body, err := n.previewer.Preview(notification)
		if err != nil {
			n.logger.Warn(ctx, "failed to render payload", "error", err)
		} else {
			n.logger.Info(ctx, "payload", "payload", string(body))
		}
	}

	n.logger.Info(ctx, "sending message to discord")
	if err := n.notifier.Send(ctx, notification); err != nil {
		n.logger.Error(ctx, "failed to send message", "error", err)
		return err
	}

	n.logger.Info(ctx, "message sent successfully", "duration", time.Since(start))
	return nil
}

func (n *Notify) buildNotification(ctx context.Context, req model.NotificationRequest) model.Notification {
	title := req.Title
	if title == "" {
		title = model.DefaultTitle
	}

	color, err := ResolveColor(title, req.Color)
	if errors.Is(err, ErrInvalidColor) {
		n.logger.Warn(ctx, "falling back to default color", "error", err, "color", color)
	}

	return model.Notification{
		Title:       title,
		Description: ExpandEnv(req.Message, n.env),
		Color:       color,
		URL:         req.RepoURL,
		Username:    req.Username,
		AvatarURL:   req.AvatarURL,

		Content:       ExpandEnv(req.Content, n.env),
		TTS:           req.TTS,
		Timestamp:     req.Timestamp,
		AuthorName:    req.AuthorName,
		AuthorURL:     req.AuthorURL,
		AuthorIconURL: req.AuthorIconURL,
		FooterText:    req.FooterText,
		FooterIconURL: req.FooterIconURL,
		Fields:        req.Fields,
	}
}
