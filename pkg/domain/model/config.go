package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rocketlog/pkg/domain"
)

// DefaultMaxDumpLength is the default limit of characters for a context
// value rendered into an attachment.
const DefaultMaxDumpLength = 4000

// ForwarderConfig holds settings of a chat log forwarder. It is fixed at
// construction except MaxDumpLength.
type ForwarderConfig struct {
	WebhookURL    string `validate:"required,url"`
	Channel       string
	Username      string
	Level         Level `validate:"gte=0"`
	Bubble        bool
	MaxDumpLength int
}

// NewForwarderConfig returns a config with defaults: ERROR level, bubbling
// enabled and DefaultMaxDumpLength.
func NewForwarderConfig(webhookURL string) ForwarderConfig {
	return ForwarderConfig{
		WebhookURL:    webhookURL,
		Level:         LevelError,
		Bubble:        true,
		MaxDumpLength: DefaultMaxDumpLength,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config. Errors are tagged with domain.ErrTagConfiguration.
func (c ForwarderConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return goerr.Wrap(err, "invalid forwarder config",
			goerr.V("webhook_url", MaskWebhookURL(c.WebhookURL)),
			goerr.T(domain.ErrTagConfiguration),
		)
	}
	return nil
}
