package model

import "errors"

// DefaultTitle is used whenever no title is configured.
const DefaultTitle = "Info"

// ErrConfiguration marks invalid inputs detected before any delivery attempt.
var ErrConfiguration = errors.New("configuration error")

// NotificationField represents a titled section within a notification payload.
type NotificationField struct {
	Name   string
	Value  string
	Inline bool
}

// NotificationRequest carries the raw inputs resolved from the environment.
type NotificationRequest struct {
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
	Fields        []NotificationField
}

// Notification is a fully resolved message ready for a downstream notifier.
type Notification struct {
	Title       string
	Description string
	Color       int
	URL         string
	Username    string
	AvatarURL   string

	Content       string
	TTS           bool
	Timestamp     string
	AuthorName    string
	AuthorURL     string
	AuthorIconURL string
	FooterText    string
	FooterIconURL string
	Fields        []NotificationField
}
