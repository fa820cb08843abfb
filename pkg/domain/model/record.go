package model

import "log/slog"

// LogRecord is one log entry handed over by a logging framework. It is
// created per log call and must not be modified while it is forwarded.
type LogRecord struct {
	// Channel is the logical source of the log, e.g. the logger name.
	Channel string
	Level   Level
	Message string
	// Context holds auxiliary data in insertion order. Group values are
	// nested mappings.
	Context []slog.Attr
}

// LevelName returns the severity label of the record.
func (r LogRecord) LevelName() string {
	return r.Level.String()
}
