package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultTwilioBaseURL is the versioned root of Twilio's REST API.
const DefaultTwilioBaseURL = "https://api.twilio.com/2010-04-01"

// DefaultTestBody is the message text sent when SMS_TEST_BODY is not set.
const DefaultTestBody = "SMS delivery is working! This is a test message from sms-smoke."

// ErrIncomplete reports that one or more Twilio credentials are missing.
var ErrIncomplete = errors.New("twilio configuration incomplete")

// Config captures all runtime configuration for a single smoke-test run.
type Config struct {
	App      AppConfig
	Twilio   TwilioConfig
	Provider ProviderConfig
	Message  MessageConfig
}

// AppConfig contains generic application level settings.
type AppConfig struct {
	Env          string
	LogLevel     string
	StrictConfig bool
}

// TwilioConfig holds the account, credentials and addresses used for the send.
// Fields are passed through verbatim; nothing here is validated unless
// Validate is called.
type TwilioConfig struct {
	AccountSID string
	AuthSecret string
	APIKey     string
	FromNumber string
	ToNumber   string
	BaseURL    string
}

// ProviderConfig selects and tunes the outbound provider.
type ProviderConfig struct {
	Backend        string
	MockScenario   string
	TimeoutSeconds int
}

// MessageConfig holds the text of the test message.
type MessageConfig struct {
	Body string
}

// Load reads environment variables (and an optional .env file), applies
// defaults and returns a populated Config. Missing Twilio values are tolerated
// unless SMS_STRICT_CONFIG is enabled.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}
	cfg.App.Env = ldr.getString("APP_ENV", "development")
	cfg.App.LogLevel = ldr.getString("LOG_LEVEL", "info")
	cfg.App.StrictConfig = ldr.getBool("SMS_STRICT_CONFIG", false)

	cfg.Twilio.AccountSID = ldr.getString("TWILIO_ACCOUNT_SID", "")
	cfg.Twilio.AuthSecret = ldr.getString("TWILIO_API_SECRET", "")
	cfg.Twilio.APIKey = ldr.getString("TWILIO_API_KEY", "")
	cfg.Twilio.FromNumber = ldr.getString("TWILIO_FROM_NUMBER", "")
	cfg.Twilio.ToNumber = ldr.getString("TWILIO_TO_NUMBER", "")
	cfg.Twilio.BaseURL = strings.TrimRight(ldr.getString("TWILIO_BASE_URL", DefaultTwilioBaseURL), "/")

	cfg.Provider.Backend = strings.ToLower(ldr.getString("SMS_PROVIDER", "twilio"))
	cfg.Provider.MockScenario = strings.ToLower(ldr.getString("SMS_MOCK_SCENARIO", "success"))
	cfg.Provider.TimeoutSeconds = ldr.getInt("PROVIDER_TIMEOUT_SECONDS", 0)
	if cfg.Provider.TimeoutSeconds < 0 {
		ldr.addError("PROVIDER_TIMEOUT_SECONDS must not be negative")
	}

	cfg.Message.Body = ldr.getString("SMS_TEST_BODY", DefaultTestBody)

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	if cfg.App.StrictConfig {
		if err := cfg.Twilio.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Missing returns the environment keys whose values are empty.
func (t TwilioConfig) Missing() []string {
	fields := []struct {
		key, value string
	}{
		{"TWILIO_ACCOUNT_SID", t.AccountSID},
		{"TWILIO_API_SECRET", t.AuthSecret},
		{"TWILIO_API_KEY", t.APIKey},
		{"TWILIO_FROM_NUMBER", t.FromNumber},
		{"TWILIO_TO_NUMBER", t.ToNumber},
	}
	var missing []string
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}
	return missing
}

// Validate fails with ErrIncomplete when any credential or address is empty.
func (t TwilioConfig) Validate() error {
	missing := t.Missing()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			return def
		}
		return val
	}
	return def
}

func (l *envLoader) getInt(key string, def int) int {
	val := l.getString(key, "")
	if val == "" {
		return def
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		l.addError(fmt.Sprintf("%s must be a valid integer", key))
		return def
	}
	return i
}

func (l *envLoader) getBool(key string, def bool) bool {
	val := l.getString(key, "")
	if val == "" {
		return def
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		l.addError(fmt.Sprintf("%s must be a valid boolean", key))
		return def
	}
	return parsed
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}
