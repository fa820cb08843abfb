package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rocketlog/pkg/domain"
	"github.com/m-mizutani/rocketlog/pkg/domain/interfaces"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
)

// maxErrorBodyLength limits the response body kept in a transport error
const maxErrorBodyLength = 1024

// Forwarder posts log records to a chat incoming webhook. One record
// results in exactly one synchronous POST request.
//
// Forwarder has no internal locking. Handle may be called concurrently, but
// SetMaxDumpLength must not race with Handle.
type Forwarder struct {
	config     model.ForwarderConfig
	httpClient interfaces.HTTPClient
}

var _ interfaces.RecordHandler = (*Forwarder)(nil)

// ForwarderOption customizes a Forwarder
type ForwarderOption func(f *Forwarder)

// WithChannel sets the destination chat channel, e.g. "#alerts"
func WithChannel(channel string) ForwarderOption {
	return func(f *Forwarder) {
		f.config.Channel = channel
	}
}

// WithUsername sets the display name of the posted messages
func WithUsername(username string) ForwarderOption {
	return func(f *Forwarder) {
		f.config.Username = username
	}
}

// WithLevel sets the minimum level of records to forward
func WithLevel(level model.Level) ForwarderOption {
	return func(f *Forwarder) {
		f.config.Level = level
	}
}

// WithBubble sets whether handled records continue to the next handler
func WithBubble(bubble bool) ForwarderOption {
	return func(f *Forwarder) {
		f.config.Bubble = bubble
	}
}

// WithMaxDumpLength sets the character limit of attachment texts
func WithMaxDumpLength(n int) ForwarderOption {
	return func(f *Forwarder) {
		f.config.MaxDumpLength = n
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client interfaces.HTTPClient) ForwarderOption {
	return func(f *Forwarder) {
		f.httpClient = client
	}
}

// NewForwarder creates a Forwarder for the webhook URL. It returns an error
// tagged with domain.ErrTagConfiguration if the URL is empty or malformed.
func NewForwarder(webhookURL string, opts ...ForwarderOption) (*Forwarder, error) {
	f := &Forwarder{
		config: model.NewForwarderConfig(webhookURL),
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.config.Validate(); err != nil {
		return nil, err
	}

	if f.httpClient == nil {
		f.httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	return f, nil
}

// Config returns a copy of the current settings
func (f *Forwarder) Config() model.ForwarderConfig {
	return f.config
}

// SetMaxDumpLength changes the character limit for subsequent records. The
// value is not validated: 0 yields empty attachment texts and a negative
// value strips that many characters from the end.
func (f *Forwarder) SetMaxDumpLength(n int) {
	f.config.MaxDumpLength = n
}

// MaxDumpLength returns the current character limit of attachment texts
func (f *Forwarder) MaxDumpLength() int {
	return f.config.MaxDumpLength
}

// IsHandling reports whether the level reaches the configured minimum
func (f *Forwarder) IsHandling(level model.Level) bool {
	return level >= f.config.Level
}

// Handle sends the record to the webhook. A record below the minimum level
// is ignored and (false, nil) is returned. Otherwise it returns true when
// bubbling is disabled, meaning the record must not reach other handlers.
// Any encoding or transport failure is returned as is; nothing is retried.
func (f *Forwarder) Handle(ctx context.Context, record model.LogRecord) (bool, error) {
	if !f.IsHandling(record.Level) {
		return false, nil
	}

	payload, err := f.BuildPayload(record)
	if err != nil {
		return false, err
	}

	if err := f.post(ctx, payload); err != nil {
		return false, err
	}

	return !f.config.Bubble, nil
}

// BuildPayload renders the record into a chat payload without sending it
func (f *Forwarder) BuildPayload(record model.LogRecord) (*model.ChatPayload, error) {
	maxDumpLength := f.config.MaxDumpLength

	payload := &model.ChatPayload{
		Username: f.config.Username,
		Channel:  f.config.Channel,
		Text:     formatText(record),
	}

	for _, attr := range record.Context {
		raw, err := encodeValue(attr.Value)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode context value",
				goerr.V("key", attr.Key),
				goerr.T(domain.ErrTagSerialization),
			)
		}

		payload.Attachments = append(payload.Attachments, model.Attachment{
			Title: attr.Key,
			Text:  truncate(string(raw), maxDumpLength),
		})
	}

	return payload, nil
}

func formatText(record model.LogRecord) string {
	return fmt.Sprintf("Log channel: *%s*\nLog level: *%s*\n```%s```",
		record.Channel, record.LevelName(), record.Message)
}

// post sends the payload to the webhook
func (f *Forwarder) post(ctx context.Context, payload *model.ChatPayload) error {
	logger := ctxlog.From(ctx)

	jsonData, err := marshalJSON(payload)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal chat payload", goerr.T(domain.ErrTagSerialization))
	}

	logger.Debug("Sending log record to webhook",
		slog.String("webhook_url", model.MaskWebhookURL(f.config.WebhookURL)),
		slog.String("payload", string(jsonData)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.T(domain.ErrTagTransport))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request",
			goerr.V("webhook_url", model.MaskWebhookURL(f.config.WebhookURL)),
			goerr.T(domain.ErrTagTransport),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength)) // Best effort to read response
		return goerr.New(fmt.Sprintf("webhook returned status %d", resp.StatusCode),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
			goerr.T(domain.ErrTagTransport),
		)
	}

	// Drain to let the client reuse the connection
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.Debug("Log record sent to webhook", slog.Int("status", resp.StatusCode))
	return nil
}
