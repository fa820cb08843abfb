package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rocketlog/pkg/domain"
	"github.com/urfave/cli/v3"
)

// setup loads the dotenv file and puts the logger into the context
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := loadEnvFile(cmd.String("env-file")); err != nil {
		return ctx, err
	}

	logLevel := slog.LevelWarn
	if cmd.Bool("debug") {
		logLevel = slog.LevelDebug
	} else if cmd.Bool("verbose") {
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	return ctxlog.With(ctx, logger), nil
}

// loadEnvFile loads path. Without path, .env is loaded if it exists.
// Variables already set in the environment are kept.
func loadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return goerr.Wrap(err, "failed to load .env", goerr.T(domain.ErrTagConfiguration))
		}
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return goerr.Wrap(err, "failed to load env file",
			goerr.V("path", path),
			goerr.T(domain.ErrTagConfiguration),
		)
	}
	return nil
}
