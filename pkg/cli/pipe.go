package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
	"github.com/m-mizutani/rocketlog/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// maxLineSize is the longest log line read from stdin
const maxLineSize = 1024 * 1024

// NewPipeCommand creates a command forwarding log lines from stdin
func NewPipeCommand() *cli.Command {
	flags := append(DefineFlags(),
		&cli.StringFlag{
			Name:    "level",
			Aliases: []string{"l"},
			Usage:   "Minimum level to forward",
			Value:   "error",
			Sources: cli.EnvVars("ROCKETLOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:  "default-level",
			Usage: "Level of lines without a level field or not in JSON",
			Value: "info",
		},
		&cli.BoolFlag{
			Name:  "keep-going",
			Usage: "Continue when a record cannot be sent",
		},
	)

	return &cli.Command{
		Name:  "pipe",
		Usage: "Forward JSON log lines (zerolog, slog) read from stdin",
		Description: `Each line is parsed as a JSON object. "level" sets the level, "message" or "msg"
the message, and all other fields become attachments. Lines that are not JSON
are forwarded as plain messages with --default-level.`,
		Flags:  flags,
		Action: pipeAction,
	}
}

func pipeAction(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.From(ctx)
	w := cmd.Root().Writer

	minLevel, err := model.ParseLevel(cmd.String("level"))
	if err != nil {
		return err
	}
	defaultLevel, err := model.ParseLevel(cmd.String("default-level"))
	if err != nil {
		return err
	}

	config := ConfigFromCommand(cmd)
	fwd, err := config.NewForwarder(minLevel)
	if err != nil {
		return err
	}

	result, err := forwardLines(ctx, cmd.Root().Reader, fwd, usecase.NewJSONRecordParser(config.LogChannel), defaultLevel, cmd.Bool("keep-going"))
	if err != nil {
		printFailure(w, "stopped after %d forwarded records", result.Forwarded)
		return err
	}

	logger.Info("Pipe finished",
		slog.Int("lines", result.Lines),
		slog.Int("forwarded", result.Forwarded),
		slog.Int("failed", result.Failed),
	)

	if result.Failed > 0 {
		printFailure(w, "forwarded %d records, %d failed", result.Forwarded, result.Failed)
		return nil
	}
	printSuccess(w, "forwarded %d of %d lines", result.Forwarded, result.Lines)
	return nil
}

type pipeResult struct {
	Lines     int
	Forwarded int
	Failed    int
}

func forwardLines(ctx context.Context, r io.Reader, fwd *usecase.Forwarder, parser *usecase.JSONRecordParser, defaultLevel model.Level, keepGoing bool) (pipeResult, error) {
	logger := ctxlog.From(ctx)
	var result pipeResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return result, goerr.Wrap(err, "pipe interrupted")
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		result.Lines++

		record, err := parser.Parse(line, defaultLevel)
		if err != nil {
			logger.Debug("Forwarding line as plain text", slog.String("error", err.Error()))
			record = model.LogRecord{
				Channel: parser.Channel(),
				Level:   defaultLevel,
				Message: string(line),
			}
		}

		if !fwd.IsHandling(record.Level) {
			continue
		}

		if _, err := fwd.Handle(ctx, record); err != nil {
			if !keepGoing {
				return result, err
			}
			result.Failed++
			logger.Warn("Failed to forward record",
				slog.Int("line", result.Lines),
				slog.String("error", err.Error()),
			)
			continue
		}
		result.Forwarded++
	}

	if err := scanner.Err(); err != nil {
		return result, goerr.Wrap(err, "failed to read input")
	}
	return result, nil
}
