package discord

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"discord-notify/internal/adapter/logging"
	"discord-notify/internal/domain/model"
)

func testNotification() model.Notification {
	return model.Notification{
		Title:       "Success",
		Description: "Build passed",
		Color:       0x2ECC71,
		URL:         "https://git.example.com/org/repo/src/branch/main",
	}
}

func newTestWebhook(url string) *Webhook {
	return NewWebhook(url, &http.Client{}, logging.New(nil))
}

func TestSendSuccess(t *testing.T) {
	type captured struct {
		method      string
		contentType string
		body        map[string]any
	}
	requests := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := captured{method: r.Method, contentType: r.Header.Get("Content-Type")}
		_ = json.NewDecoder(r.Body).Decode(&c.body)
		requests <- c
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := newTestWebhook(srv.URL).Send(context.Background(), testNotification()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := <-requests
	gotMethod, gotContentType, gotBody := c.method, c.contentType, c.body

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}

	embeds, ok := gotBody["embeds"].([]any)
	if !ok || len(embeds) != 1 {
		t.Fatalf("expected one embed, got %v", gotBody["embeds"])
	}
	e := embeds[0].(map[string]any)
	if e["title"] != "Success" || e["description"] != "Build passed" {
		t.Errorf("unexpected embed text: %v", e)
	}
	if e["color"] != float64(0x2ECC71) {
		t.Errorf("unexpected color: %v", e["color"])
	}
	if e["url"] != "https://git.example.com/org/repo/src/branch/main" {
		t.Errorf("unexpected url: %v", e["url"])
	}
	if _, ok := gotBody["username"]; ok {
		t.Error("username must be omitted when empty")
	}
}

func TestSendBadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "Bad Request")
	}))
	defer srv.Close()

	err := newTestWebhook(srv.URL).Send(context.Background(), testNotification())

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected status: %d", statusErr.StatusCode)
	}
	if statusErr.Body != "Bad Request" {
		t.Errorf("unexpected body: %q", statusErr.Body)
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "Bad Request") {
		t.Errorf("error should mention status and body: %v", err)
	}
}

func TestSendNonNoContentIsFailure(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusAccepted, http.StatusTooManyRequests, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(status)
			}))
			defer srv.Close()

			err := newTestWebhook(srv.URL).Send(context.Background(), testNotification())

			var statusErr *StatusError
			if !errors.As(err, &statusErr) || statusErr.StatusCode != status {
				t.Fatalf("expected StatusError with %d, got %v", status, err)
			}
			if n := calls.Load(); n != 1 {
				t.Errorf("expected a single attempt, got %d", n)
			}
		})
	}
}

func TestSendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	url := srv.URL
	srv.Close()

	err := newTestWebhook(url).Send(context.Background(), testNotification())

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.Unwrap() == nil {
		t.Error("expected wrapped cause")
	}
}

func TestSendEmptyWebhookURL(t *testing.T) {
	if err := newTestWebhook("").Send(context.Background(), testNotification()); err == nil {
		t.Fatal("expected error for empty webhook URL")
	}
}

func TestBuildPayloadUsername(t *testing.T) {
	n := testNotification()

	body, err := json.Marshal(buildPayload(n))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(body), "username") || strings.Contains(string(body), "avatar_url") {
		t.Errorf("expected sender overrides to be omitted: %s", body)
	}

	n.Username = "botty"
	n.AvatarURL = "https://cdn.test/a.png"
	body, err = json.Marshal(buildPayload(n))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["username"] != "botty" {
		t.Errorf("expected username botty, got %v", decoded["username"])
	}
	if decoded["avatar_url"] != "https://cdn.test/a.png" {
		t.Errorf("unexpected avatar_url: %v", decoded["avatar_url"])
	}
}

func TestBuildPayloadKeepsTextVerbatim(t *testing.T) {
	n := testNotification()
	n.Title = strings.Repeat("t", maxTitleLength)
	n.Description = strings.Repeat("é", maxDescriptionLength)

	e := buildPayload(n).Embeds[0]
	if e.Title != n.Title || e.Description != n.Description {
		t.Error("expected title and description to be passed through unchanged")
	}
	if err := validate(buildPayload(n)); err != nil {
		t.Errorf("text exactly at the limits must be accepted: %v", err)
	}
}

func TestBuildPayloadEmbedExtras(t *testing.T) {
	n := testNotification()
	n.Content = "@here deploy done"
	n.TTS = true
	n.Timestamp = "2026-10-14T12:00:00Z"
	n.AuthorName = "CI"
	n.AuthorIconURL = "https://ci.example.com/icon.png"
	n.FooterText = "run #42"
	n.Fields = []model.NotificationField{
		{Name: "Branch", Value: "main", Inline: true},
		{Name: "Commit", Value: "abc123"},
	}

	body, err := json.Marshal(buildPayload(n))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Content string `json:"content"`
		TTS     bool   `json:"tts"`
		Embeds  []struct {
			Timestamp string            `json:"timestamp"`
			Author    map[string]string `json:"author"`
			Footer    map[string]string `json:"footer"`
			Fields    []map[string]any  `json:"fields"`
		} `json:"embeds"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.Content != "@here deploy done" || !decoded.TTS {
		t.Errorf("unexpected content/tts: %s", body)
	}
	e := decoded.Embeds[0]
	if e.Timestamp != "2026-10-14T12:00:00Z" {
		t.Errorf("unexpected timestamp: %q", e.Timestamp)
	}
	if e.Author["name"] != "CI" || e.Author["icon_url"] != "https://ci.example.com/icon.png" {
		t.Errorf("unexpected author: %v", e.Author)
	}
	if _, ok := e.Author["url"]; ok {
		t.Error("empty author url must be omitted")
	}
	if e.Footer["text"] != "run #42" {
		t.Errorf("unexpected footer: %v", e.Footer)
	}
	if len(e.Fields) != 2 || e.Fields[0]["name"] != "Branch" || e.Fields[0]["inline"] != true {
		t.Errorf("unexpected fields: %v", e.Fields)
	}
	if _, ok := e.Fields[1]["inline"]; ok {
		t.Error("non-inline field should omit inline")
	}
}

func TestBuildPayloadOmitsEmptyExtras(t *testing.T) {
	body, err := json.Marshal(buildPayload(testNotification()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{"content", "tts", "timestamp", "author", "footer", "fields"} {
		if strings.Contains(string(body), `"`+key+`"`) {
			t.Errorf("expected %q to be omitted: %s", key, body)
		}
	}
}

func TestSendRejectsLimitsWithoutRequest(t *testing.T) {
	tooManyFields := make([]model.NotificationField, maxFields+1)
	for i := range tooManyFields {
		tooManyFields[i] = model.NotificationField{Name: "n", Value: "v"}
	}

	tests := []struct {
		name   string
		mutate func(*model.Notification)
	}{
		{"title", func(n *model.Notification) { n.Title = strings.Repeat("a", maxTitleLength+1) }},
		{"description", func(n *model.Notification) { n.Description = strings.Repeat("a", 5000) }},
		{"content", func(n *model.Notification) { n.Content = strings.Repeat("a", maxContentLength+1) }},
		{"field count", func(n *model.Notification) { n.Fields = tooManyFields }},
		{"field name", func(n *model.Notification) {
			n.Fields = []model.NotificationField{{Name: strings.Repeat("a", maxFieldNameLength+1), Value: "v"}}
		}},
		{"field value", func(n *model.Notification) {
			n.Fields = []model.NotificationField{{Name: "n", Value: strings.Repeat("a", maxFieldValueLength+1)}}
		}},
		{"footer text", func(n *model.Notification) { n.FooterText = strings.Repeat("a", maxFooterTextLength+1) }},
		{"author name", func(n *model.Notification) { n.AuthorName = strings.Repeat("a", maxAuthorNameLength+1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			n := testNotification()
			tt.mutate(&n)

			err := newTestWebhook(srv.URL).Send(context.Background(), n)
			if !errors.Is(err, ErrEmbedLimit) {
				t.Fatalf("expected ErrEmbedLimit, got %v", err)
			}
			if !errors.Is(err, model.ErrConfiguration) {
				t.Errorf("limit errors are configuration errors: %v", err)
			}
			if got := calls.Load(); got != 0 {
				t.Errorf("expected no request, got %d", got)
			}
		})
	}
}

func TestPreviewMatchesWireFormat(t *testing.T) {
	body, err := newTestWebhook("https://discord.test/hook").Preview(testNotification())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"embeds":[{"title":"Success","description":"Build passed","color":3066993,"url":"https://git.example.com/org/repo/src/branch/main"}]}`
	if string(body) != want {
		t.Errorf("unexpected payload:\n got %s\nwant %s", body, want)
	}
}
