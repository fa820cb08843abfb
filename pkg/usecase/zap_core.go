package usecase

import (
	"context"

	"github.com/m-mizutani/rocketlog/pkg/domain/interfaces"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
	"go.uber.org/zap/zapcore"
)

// ZapCore is a zapcore.Core forwarding entries to a RecordHandler. Combine
// it with other cores by zapcore.NewTee; a tee always writes to every core,
// so the stop result of the record handler is ignored.
type ZapCore struct {
	handler interfaces.RecordHandler
	channel string
	fields  attrEncoder
}

var _ zapcore.Core = (*ZapCore)(nil)

// NewZapCore creates a core. channel is used for entries of unnamed loggers.
func NewZapCore(handler interfaces.RecordHandler, channel string) *ZapCore {
	if channel == "" {
		channel = DefaultLogChannel
	}
	return &ZapCore{
		handler: handler,
		channel: channel,
	}
}

func (c *ZapCore) Enabled(level zapcore.Level) bool {
	return c.handler.IsHandling(FromZapLevel(level))
}

func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	c2 := *c
	c2.fields = c.fields.clone()
	addZapFields(&c2.fields, fields)
	return &c2
}

func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	channel := ent.LoggerName
	if channel == "" {
		channel = c.channel
	}

	enc := c.fields.clone()
	addZapFields(&enc, fields)

	_, err := c.handler.Handle(context.Background(), model.LogRecord{
		Channel: channel,
		Level:   FromZapLevel(ent.Level),
		Message: ent.Message,
		Context: enc.attrs(),
	})
	return err
}

// Sync does nothing because records are sent synchronously
func (c *ZapCore) Sync() error {
	return nil
}

// FromZapLevel maps zap levels. DPanic, Panic and Fatal become CRITICAL,
// ALERT and EMERGENCY.
func FromZapLevel(level zapcore.Level) model.Level {
	switch level {
	case zapcore.DebugLevel:
		return model.LevelDebug
	case zapcore.InfoLevel:
		return model.LevelInfo
	case zapcore.WarnLevel:
		return model.LevelWarning
	case zapcore.ErrorLevel:
		return model.LevelError
	case zapcore.DPanicLevel:
		return model.LevelCritical
	case zapcore.PanicLevel:
		return model.LevelAlert
	case zapcore.FatalLevel:
		return model.LevelEmergency
	}

	if level < zapcore.DebugLevel {
		return model.LevelDebug
	}
	return model.LevelEmergency
}
