package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/rocketlog/pkg/cli"
	"github.com/m-mizutani/rocketlog/pkg/domain"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
)

func TestConfig(t *testing.T) {
	t.Run("NewConfig defaults", func(t *testing.T) {
		config := cli.NewConfig()
		gt.Equal(t, config.LogChannel, "app")
		gt.Equal(t, config.MaxDumpLength, 4000)
	})

	t.Run("NewForwarder", func(t *testing.T) {
		config := &cli.Config{
			WebhookURL:    "https://chat.example.com/hooks/abc/def",
			Channel:       "#alerts",
			Username:      "logbot",
			MaxDumpLength: 100,
		}

		fwd, err := config.NewForwarder(model.LevelWarning)
		gt.NoError(t, err)

		cfg := fwd.Config()
		gt.Equal(t, cfg.Channel, "#alerts")
		gt.Equal(t, cfg.Username, "logbot")
		gt.Equal(t, cfg.Level, model.LevelWarning)
		gt.Equal(t, cfg.MaxDumpLength, 100)
	})

	t.Run("NewForwarder without webhook URL", func(t *testing.T) {
		_, err := cli.NewConfig().NewForwarder(model.LevelError)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, domain.ErrTagConfiguration))
	})
}

func TestParseContext(t *testing.T) {
	t.Run("values keep order and JSON", func(t *testing.T) {
		attrs, err := cli.ParseContext([]string{"user=alice", "count=3", `req={"id":1}`, "empty=", "eq=a=b"})
		gt.NoError(t, err)
		gt.Equal(t, len(attrs), 5)

		gt.Equal(t, attrs[0].Key, "user")
		gt.Equal(t, attrs[0].Value.String(), "alice")

		gt.Equal(t, attrs[1].Key, "count")
		gt.Equal(t, attrs[1].Value.Any().(json.RawMessage), json.RawMessage("3"))

		gt.Equal(t, attrs[2].Value.Any().(json.RawMessage), json.RawMessage(`{"id":1}`))
		gt.Equal(t, attrs[3].Value.String(), "")
		gt.Equal(t, attrs[4].Value.String(), "a=b")
	})

	t.Run("invalid entries", func(t *testing.T) {
		for _, arg := range []string{"novalue", "=x"} {
			_, err := cli.ParseContext([]string{arg})
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, domain.ErrTagConfiguration))
		}
	})
}
