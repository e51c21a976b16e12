package ports

import (
	"context"

	"discord-notify/internal/domain/model"
)

// Notifier delivers a notification to a downstream channel (e.g. Discord).
type Notifier interface {
	Send(ctx context.Context, notification model.Notification) error
}

// PayloadPreviewer renders the exact body a Notifier would send.
type PayloadPreviewer interface {
	Preview(notification model.Notification) ([]byte, error)
}
