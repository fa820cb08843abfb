package usecase

import (
	"context"

	"github.com/m-mizutani/rocketlog/pkg/domain/interfaces"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
	"github.com/rs/zerolog"
)

// ZerologWriter is a zerolog.LevelWriter forwarding events to a
// RecordHandler. Use it with zerolog.MultiLevelWriter to keep console
// output; the stop result of the record handler is ignored there.
type ZerologWriter struct {
	handler interfaces.RecordHandler
	parser  *JSONRecordParser
}

var _ zerolog.LevelWriter = (*ZerologWriter)(nil)

// NewZerologWriter creates a writer. channel is put in every record.
func NewZerologWriter(handler interfaces.RecordHandler, channel string) *ZerologWriter {
	return &ZerologWriter{
		handler: handler,
		parser:  NewJSONRecordParser(channel),
	}
}

// Write takes the level from the "level" field of the event
func (w *ZerologWriter) Write(p []byte) (int, error) {
	record, err := w.parser.Parse(p, model.LevelDebug)
	if err != nil {
		return 0, err
	}
	return w.forward(p, record)
}

func (w *ZerologWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	lv, ok := FromZerologLevel(level)
	if ok && !w.handler.IsHandling(lv) {
		return len(p), nil
	}

	record, err := w.parser.Parse(p, model.LevelDebug)
	if err != nil {
		return 0, err
	}
	if ok {
		record.Level = lv
	}
	return w.forward(p, record)
}

func (w *ZerologWriter) forward(p []byte, record model.LogRecord) (int, error) {
	if !w.handler.IsHandling(record.Level) {
		return len(p), nil
	}
	if _, err := w.handler.Handle(context.Background(), record); err != nil {
		return 0, err
	}
	return len(p), nil
}

// FromZerologLevel maps zerolog levels. It returns false for NoLevel and
// Disabled.
func FromZerologLevel(level zerolog.Level) (model.Level, bool) {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return model.LevelDebug, true
	case zerolog.InfoLevel:
		return model.LevelInfo, true
	case zerolog.WarnLevel:
		return model.LevelWarning, true
	case zerolog.ErrorLevel:
		return model.LevelError, true
	case zerolog.PanicLevel:
		return model.LevelAlert, true
	case zerolog.FatalLevel:
		return model.LevelEmergency, true
	default:
		return 0, false
	}
}
