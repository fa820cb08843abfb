package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/rocketlog/pkg/domain/interfaces"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
)

// DefaultLogChannel is the log channel of adapters without explicit channel
const DefaultLogChannel = "app"

// SlogHandler is a slog.Handler that forwards records to a RecordHandler
// and then, unless the record handler stops propagation, to a next handler.
type SlogHandler struct {
	handler interfaces.RecordHandler
	channel string
	next    slog.Handler

	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*SlogHandler)(nil)

// SlogOption customizes a SlogHandler
type SlogOption func(h *SlogHandler)

// WithLogChannel sets the log channel name put in forwarded records
func WithLogChannel(channel string) SlogOption {
	return func(h *SlogHandler) {
		h.channel = channel
	}
}

// WithNext sets the handler that receives records bubbling up, e.g. the
// console handler of the application.
func WithNext(next slog.Handler) SlogOption {
	return func(h *SlogHandler) {
		h.next = next
	}
}

// NewSlogHandler creates a slog.Handler backed by handler
func NewSlogHandler(handler interfaces.RecordHandler, opts ...SlogOption) *SlogHandler {
	h := &SlogHandler{
		handler: handler,
		channel: DefaultLogChannel,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *SlogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.handler.IsHandling(model.FromSlogLevel(level)) {
		return true
	}
	return h.next != nil && h.next.Enabled(ctx, level)
}

// Handle forwards the record. An error of the record handler is returned
// and the next handler is not called.
func (h *SlogHandler) Handle(ctx context.Context, r slog.Record) error {
	level := model.FromSlogLevel(r.Level)

	if h.handler.IsHandling(level) {
		stop, err := h.handler.Handle(ctx, h.toLogRecord(level, r))
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}

	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	h2 := h.clone()
	h2.attrs = append(h2.attrs, nestInGroups(h.groups, flattenAttrs(attrs))...)
	if h.next != nil {
		h2.next = h.next.WithAttrs(attrs)
	}
	return h2
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	if h.next != nil {
		h2.next = h.next.WithGroup(name)
	}
	return h2
}

func (h *SlogHandler) clone() *SlogHandler {
	h2 := *h
	h2.attrs = append([]slog.Attr(nil), h.attrs...)
	h2.groups = append([]string(nil), h.groups...)
	return &h2
}

func (h *SlogHandler) toLogRecord(level model.Level, r slog.Record) model.LogRecord {
	recAttrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		recAttrs = append(recAttrs, a)
		return true
	})

	attrs := make([]slog.Attr, 0, len(h.attrs)+len(recAttrs))
	attrs = append(attrs, h.attrs...)
	attrs = append(attrs, nestInGroups(h.groups, flattenAttrs(recAttrs))...)

	return model.LogRecord{
		Channel: h.channel,
		Level:   level,
		Message: r.Message,
		Context: attrs,
	}
}

// flattenAttrs applies the slog rules: attrs with empty keys are dropped,
// groups with empty keys are inlined and empty groups are dropped.
func flattenAttrs(attrs []slog.Attr) []slog.Attr {
	var out []slog.Attr
	for _, a := range attrs {
		a.Value = a.Value.Resolve()

		if a.Value.Kind() == slog.KindGroup {
			members := flattenAttrs(a.Value.Group())
			if len(members) == 0 {
				continue
			}
			if a.Key == "" {
				out = append(out, members...)
				continue
			}
			out = append(out, slog.Attr{Key: a.Key, Value: slog.GroupValue(members...)})
			continue
		}

		if a.Key == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

func nestInGroups(groups []string, attrs []slog.Attr) []slog.Attr {
	if len(attrs) == 0 {
		return nil
	}
	for i := len(groups) - 1; i >= 0; i-- {
		attrs = []slog.Attr{{Key: groups[i], Value: slog.GroupValue(attrs...)}}
	}
	return attrs
}
