package cli

import (
	"github.com/urfave/cli/v3"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:    "rocketlog",
		Usage:   "Forward log records to a chat incoming webhook",
		Version: "0.1.0",
		Description: `rocketlog posts log records to a Rocket.Chat (or Slack compatible) incoming webhook.

Use "send" to post a single record, e.g. to check a webhook URL, and "pipe" to
forward JSON log lines read from stdin.`,
		// --context values are JSON and may contain commas
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from the file (default: .env if it exists)",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			NewSendCommand(),
			NewPipeCommand(),
		},
	}
}
