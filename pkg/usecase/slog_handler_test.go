package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
	"github.com/m-mizutani/rocketlog/pkg/usecase"
)

type recordingHandler struct {
	level   model.Level
	stop    bool
	err     error
	records []model.LogRecord
}

func (h *recordingHandler) IsHandling(level model.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(ctx context.Context, record model.LogRecord) (bool, error) {
	h.records = append(h.records, record)
	return h.stop, h.err
}

func attrKeys(attrs []slog.Attr) []string {
	keys := make([]string, len(attrs))
	for i, a := range attrs {
		keys[i] = a.Key
	}
	return keys
}

func TestSlogHandler(t *testing.T) {
	t.Run("Forward record with channel, level and attrs", func(t *testing.T) {
		rec := &recordingHandler{level: model.LevelError}
		logger := slog.New(usecase.NewSlogHandler(rec, usecase.WithLogChannel("billing")))

		logger.Error("payment failed", "user", "alice", "amount", 42)

		gt.Equal(t, len(rec.records), 1)
		r := rec.records[0]
		gt.Equal(t, r.Channel, "billing")
		gt.Equal(t, r.Level, model.LevelError)
		gt.Equal(t, r.Message, "payment failed")
		gt.Equal(t, attrKeys(r.Context), []string{"user", "amount"})
		gt.Equal(t, r.Context[0].Value.String(), "alice")
		gt.Equal(t, r.Context[1].Value.Int64(), int64(42))
	})

	t.Run("Default channel", func(t *testing.T) {
		rec := &recordingHandler{level: model.LevelError}
		slog.New(usecase.NewSlogHandler(rec)).Error("x")

		gt.Equal(t, rec.records[0].Channel, usecase.DefaultLogChannel)
	})

	t.Run("Records below level are not forwarded", func(t *testing.T) {
		rec := &recordingHandler{level: model.LevelError}
		h := usecase.NewSlogHandler(rec)
		logger := slog.New(h)

		logger.Warn("not forwarded")
		gt.Equal(t, len(rec.records), 0)
		gt.False(t, h.Enabled(context.Background(), slog.LevelWarn))
		gt.True(t, h.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("WithAttrs and WithGroup nest context", func(t *testing.T) {
		rec := &recordingHandler{level: model.LevelDebug}
		logger := slog.New(usecase.NewSlogHandler(rec)).
			With("service", "api").
			WithGroup("req").
			With("id", "r-1")

		logger.Info("done", "status", 200, slog.Group("", slog.String("inlined", "yes")), slog.Group("empty"))

		gt.Equal(t, len(rec.records), 1)
		ctx := rec.records[0].Context
		gt.Equal(t, attrKeys(ctx), []string{"service", "req", "req"})

		raw, err := usecase.EncodeValue(ctx[1].Value)
		gt.NoError(t, err)
		gt.Equal(t, string(raw), `{"id":"r-1"}`)

		raw, err = usecase.EncodeValue(ctx[2].Value)
		gt.NoError(t, err)
		gt.Equal(t, string(raw), `{"status":200,"inlined":"yes"}`)
	})

	t.Run("Bubble to next handler", func(t *testing.T) {
		var buf bytes.Buffer
		next := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
		rec := &recordingHandler{level: model.LevelError}
		logger := slog.New(usecase.NewSlogHandler(rec, usecase.WithNext(next))).With("service", "api")

		logger.Info("info only to console")
		logger.Error("error to both")

		gt.Equal(t, len(rec.records), 1)
		gt.True(t, strings.Contains(buf.String(), "info only to console"))
		gt.True(t, strings.Contains(buf.String(), "error to both"))
		gt.True(t, strings.Contains(buf.String(), "service=api"))
	})

	t.Run("Stop propagation when record handler does not bubble", func(t *testing.T) {
		var buf bytes.Buffer
		next := slog.NewTextHandler(&buf, nil)
		rec := &recordingHandler{level: model.LevelError, stop: true}
		logger := slog.New(usecase.NewSlogHandler(rec, usecase.WithNext(next)))

		logger.Error("only to chat")

		gt.Equal(t, len(rec.records), 1)
		gt.Equal(t, buf.String(), "")
	})

	t.Run("Error of record handler is returned", func(t *testing.T) {
		var buf bytes.Buffer
		rec := &recordingHandler{level: model.LevelError, err: errors.New("unreachable")}
		h := usecase.NewSlogHandler(rec, usecase.WithNext(slog.NewTextHandler(&buf, nil)))

		r := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
		err := h.Handle(context.Background(), r)
		gt.Error(t, err)
		gt.Equal(t, buf.String(), "")
	})

	t.Run("End to end with forwarder", func(t *testing.T) {
		server := newWebhookServer(t, http.StatusOK)
		fwd, err := usecase.NewForwarder(server.URL, usecase.WithChannel("#ops"))
		gt.NoError(t, err)

		logger := slog.New(usecase.NewSlogHandler(fwd, usecase.WithLogChannel("app")))
		logger.Error("boom", "user", "alice")

		body := server.lastBody(t)
		gt.Equal(t, body["channel"], "#ops")
		gt.Equal(t, body["text"], "Log channel: *app*\nLog level: *ERROR*\n```boom```")
		attachments := body["attachments"].([]any)
		gt.Equal(t, attachments[0].(map[string]any)["text"], `"alice"`)
	})
}
