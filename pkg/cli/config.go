package cli

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rocketlog/pkg/domain"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
	"github.com/m-mizutani/rocketlog/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Config holds the webhook settings shared by the commands
type Config struct {
	WebhookURL    string
	Channel       string
	Username      string
	LogChannel    string
	MaxDumpLength int
}

func NewConfig() *Config {
	return &Config{
		LogChannel:    usecase.DefaultLogChannel,
		MaxDumpLength: model.DefaultMaxDumpLength,
	}
}

// ConfigFromCommand reads the flags defined by DefineFlags
func ConfigFromCommand(cmd *cli.Command) *Config {
	return &Config{
		WebhookURL:    cmd.String("webhook-url"),
		Channel:       cmd.String("channel"),
		Username:      cmd.String("username"),
		LogChannel:    cmd.String("log-channel"),
		MaxDumpLength: cmd.Int("max-dump-length"),
	}
}

// NewForwarder creates a forwarder forwarding records at level or above
func (c *Config) NewForwarder(level model.Level) (*usecase.Forwarder, error) {
	return usecase.NewForwarder(c.WebhookURL,
		usecase.WithChannel(c.Channel),
		usecase.WithUsername(c.Username),
		usecase.WithLevel(level),
		usecase.WithMaxDumpLength(c.MaxDumpLength),
	)
}

func DefineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "webhook-url",
			Aliases:  []string{"u"},
			Usage:    "Incoming webhook URL",
			Sources:  cli.EnvVars("ROCKETLOG_WEBHOOK_URL"),
			Required: true,
		},
		&cli.StringFlag{
			Name:    "channel",
			Usage:   "Destination chat channel, e.g. #alerts",
			Sources: cli.EnvVars("ROCKETLOG_CHANNEL"),
		},
		&cli.StringFlag{
			Name:    "username",
			Usage:   "Display name of the posted messages",
			Sources: cli.EnvVars("ROCKETLOG_USERNAME"),
		},
		&cli.StringFlag{
			Name:    "log-channel",
			Usage:   "Log channel shown in messages",
			Value:   usecase.DefaultLogChannel,
			Sources: cli.EnvVars("ROCKETLOG_LOG_CHANNEL"),
		},
		&cli.IntFlag{
			Name:    "max-dump-length",
			Usage:   "Maximum characters of a context value in an attachment",
			Value:   model.DefaultMaxDumpLength,
			Sources: cli.EnvVars("ROCKETLOG_MAX_DUMP_LENGTH"),
		},
	}
}

// ParseContext converts "key=value" arguments into context attributes in
// argument order. A value that is valid JSON is kept as JSON, anything else
// is a string.
func ParseContext(args []string) ([]slog.Attr, error) {
	attrs := make([]slog.Attr, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, goerr.New("context must be key=value",
				goerr.V("context", arg),
				goerr.T(domain.ErrTagConfiguration),
			)
		}

		if json.Valid([]byte(value)) {
			attrs = append(attrs, slog.Any(key, json.RawMessage(value)))
		} else {
			attrs = append(attrs, slog.String(key, value))
		}
	}
	return attrs, nil
}
