package factory

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/sms-smoke/internal/config"
	smsprovider "github.com/example/sms-smoke/internal/providers/sms"
)

// SMS constructs the configured SMS provider. Supports Twilio and mock backends.
func SMS(cfg *config.Config, logger zerolog.Logger) (smsprovider.Provider, error) {
	backend := normalize(cfg.Provider.Backend, "twilio")
	switch backend {
	case "twilio":
		timeout := time.Duration(cfg.Provider.TimeoutSeconds) * time.Second
		provider := smsprovider.NewTwilioProvider(cfg.Twilio, logger, smsprovider.WithTwilioTimeout(timeout))
		logger.Info().
			Str("backend", "twilio").
			Str("endpoint", provider.Endpoint()).
			Dur("timeout", timeout).
			Msg("sms provider initialised")
		return provider, nil
	case "mock":
		scenario, err := smsprovider.ParseScenario(cfg.Provider.MockScenario)
		if err != nil {
			return nil, fmt.Errorf("factory: mock sms provider init: %w", err)
		}
		provider := smsprovider.NewMockProvider(logger, smsprovider.WithScenario(scenario))
		logger.Info().
			Str("backend", "mock").
			Str("scenario", string(scenario)).
			Msg("sms provider initialised")
		return provider, nil
	default:
		return nil, fmt.Errorf("factory: unsupported sms provider backend %q", cfg.Provider.Backend)
	}
}

func normalize(value, def string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return def
	}
	return value
}
