package interfaces

import (
	"context"

	"github.com/m-mizutani/rocketlog/pkg/domain/model"
)

// RecordHandler receives log records from a logging framework adapter.
type RecordHandler interface {
	// IsHandling reports whether a record of the level would be handled.
	IsHandling(level model.Level) bool
	// Handle processes the record. It returns true when the record must not
	// be passed to further handlers.
	Handle(ctx context.Context, record model.LogRecord) (bool, error)
}
