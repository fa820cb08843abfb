package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/rocketlog/pkg/domain"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
)

func TestForwarderConfig(t *testing.T) {
	t.Run("NewForwarderConfig defaults", func(t *testing.T) {
		cfg := model.NewForwarderConfig("https://chat.example.com/hooks/abc/def")
		gt.Equal(t, cfg.Level, model.LevelError)
		gt.True(t, cfg.Bubble)
		gt.Equal(t, cfg.MaxDumpLength, 4000)
		gt.Equal(t, cfg.Channel, "")
		gt.Equal(t, cfg.Username, "")
		gt.NoError(t, cfg.Validate())
	})

	t.Run("Validate rejects bad webhook URL", func(t *testing.T) {
		for _, url := range []string{"", "not a url", "/hooks/abc"} {
			t.Run(url, func(t *testing.T) {
				err := model.NewForwarderConfig(url).Validate()
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, domain.ErrTagConfiguration))
			})
		}
	})
}

func TestMaskWebhookURL(t *testing.T) {
	t.Run("Rocket.Chat hook", func(t *testing.T) {
		masked := model.MaskWebhookURL("https://chat.example.com/hooks/6512abcdef/Zx9tokenvalue")
		gt.Equal(t, masked, "https://chat.example.com/hooks/65***/Zx***")
	})

	t.Run("Slack hook", func(t *testing.T) {
		masked := model.MaskWebhookURL("https://hooks.slack.com/services/T0000/B0000/XXXXXXXX")
		gt.Equal(t, masked, "https://hooks.slack.com/services/T0***/B0***/XX***")
	})

	t.Run("other URL", func(t *testing.T) {
		gt.Equal(t, model.MaskWebhookURL("http://127.0.0.1:8080/webhook"), "http://127.0.0.1:808***")
		gt.Equal(t, model.MaskWebhookURL("short"), "***")
	})
}
