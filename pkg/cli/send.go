package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// NewSendCommand creates a command posting one log record
func NewSendCommand() *cli.Command {
	flags := append(DefineFlags(),
		&cli.StringFlag{
			Name:    "level",
			Aliases: []string{"l"},
			Usage:   "Level of the record (debug, info, notice, warning, error, critical, alert, emergency)",
			Value:   "error",
		},
		&cli.StringFlag{
			Name:     "message",
			Aliases:  []string{"m"},
			Usage:    "Log message",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    "context",
			Aliases: []string{"c"},
			Usage:   "Context entry as key=value, repeatable. JSON values are kept as JSON",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the payload instead of posting it",
		},
	)

	return &cli.Command{
		Name:   "send",
		Usage:  "Post a single log record",
		Flags:  flags,
		Action: sendAction,

		DisableSliceFlagSeparator: true,
	}
}

func sendAction(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.From(ctx)
	w := cmd.Root().Writer

	level, err := model.ParseLevel(cmd.String("level"))
	if err != nil {
		return err
	}

	attrs, err := ParseContext(cmd.StringSlice("context"))
	if err != nil {
		return err
	}

	config := ConfigFromCommand(cmd)
	fwd, err := config.NewForwarder(level)
	if err != nil {
		return err
	}

	record := model.LogRecord{
		Channel: config.LogChannel,
		Level:   level,
		Message: cmd.String("message"),
		Context: attrs,
	}

	if cmd.Bool("dry-run") {
		payload, err := fwd.BuildPayload(record)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(payload); err != nil {
			return goerr.Wrap(err, "failed to format payload")
		}
		printInfo(w, "%s", bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
		return nil
	}

	logger.Debug("Sending record",
		slog.String("level", level.String()),
		slog.Int("context", len(attrs)),
	)

	if _, err := fwd.Handle(ctx, record); err != nil {
		printFailure(w, "failed to send %s record", level)
		return err
	}

	printSuccess(w, "sent %s record to %s", level, model.MaskWebhookURL(config.WebhookURL))
	return nil
}
