package model

import (
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rocketlog/pkg/domain"
)

// Level is a log severity. Values and names follow the RFC 5424 based
// scale used by PHP Monolog, so records keep the same level names when
// they come from other services.
type Level int

const (
	LevelDebug     Level = 100
	LevelInfo      Level = 200
	LevelNotice    Level = 250
	LevelWarning   Level = 300
	LevelError     Level = 400
	LevelCritical  Level = 500
	LevelAlert     Level = 550
	LevelEmergency Level = 600
)

var levelNames = map[Level]string{
	LevelDebug:     "DEBUG",
	LevelInfo:      "INFO",
	LevelNotice:    "NOTICE",
	LevelWarning:   "WARNING",
	LevelError:     "ERROR",
	LevelCritical:  "CRITICAL",
	LevelAlert:     "ALERT",
	LevelEmergency: "EMERGENCY",
}

// String returns the level name, e.g. "ERROR".
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}

	// Levels between the known steps take the name of the step below
	name := "DEBUG"
	best := Level(0)
	for lv, n := range levelNames {
		if lv <= l && lv > best {
			best, name = lv, n
		}
	}
	return name
}

// ParseLevel converts a level name into Level. It is case insensitive and
// accepts "warn" as an alias of WARNING.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARN" {
		return LevelWarning, nil
	}
	for lv, n := range levelNames {
		if n == name {
			return lv, nil
		}
	}
	return 0, goerr.New("unknown log level",
		goerr.V("level", s),
		goerr.T(domain.ErrTagConfiguration),
	)
}

// FromSlogLevel maps a slog level to Level. Custom slog levels above
// slog.LevelError climb CRITICAL, ALERT and EMERGENCY every 4 steps.
func FromSlogLevel(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelInfo+2:
		return LevelInfo
	case l < slog.LevelWarn:
		return LevelNotice
	case l < slog.LevelError:
		return LevelWarning
	case l < slog.LevelError+4:
		return LevelError
	case l < slog.LevelError+8:
		return LevelCritical
	case l < slog.LevelError+12:
		return LevelAlert
	default:
		return LevelEmergency
	}
}

// SlogLevel is the inverse of FromSlogLevel for the named levels.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l < LevelInfo:
		return slog.LevelDebug
	case l < LevelNotice:
		return slog.LevelInfo
	case l < LevelWarning:
		return slog.LevelInfo + 2
	case l < LevelError:
		return slog.LevelWarn
	case l < LevelCritical:
		return slog.LevelError
	case l < LevelAlert:
		return slog.LevelError + 4
	case l < LevelEmergency:
		return slog.LevelError + 8
	default:
		return slog.LevelError + 12
	}
}
