package config_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/example/sms-smoke/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "SMS_STRICT_CONFIG",
		"TWILIO_ACCOUNT_SID", "TWILIO_API_SECRET", "TWILIO_API_KEY",
		"TWILIO_FROM_NUMBER", "TWILIO_TO_NUMBER", "TWILIO_BASE_URL",
		"SMS_PROVIDER", "SMS_MOCK_SCENARIO", "PROVIDER_TIMEOUT_SECONDS", "SMS_TEST_BODY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadSuccess(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC0123456789abcdef")
	t.Setenv("TWILIO_API_SECRET", "secret")
	t.Setenv("TWILIO_API_KEY", "SK0123456789abcdef")
	t.Setenv("TWILIO_FROM_NUMBER", "+15005550006")
	t.Setenv("TWILIO_TO_NUMBER", "+15005550001")
	t.Setenv("TWILIO_BASE_URL", "http://127.0.0.1:9999/2010-04-01/")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "15")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := config.TwilioConfig{
		AccountSID: "AC0123456789abcdef",
		AuthSecret: "secret",
		APIKey:     "SK0123456789abcdef",
		FromNumber: "+15005550006",
		ToNumber:   "+15005550001",
		BaseURL:    "http://127.0.0.1:9999/2010-04-01",
	}
	if !reflect.DeepEqual(cfg.Twilio, want) {
		t.Fatalf("twilio config = %+v, want %+v", cfg.Twilio, want)
	}
	if cfg.App.Env != "production" || cfg.App.LogLevel != "warn" {
		t.Fatalf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Provider.Backend != "twilio" {
		t.Fatalf("expected twilio backend, got %s", cfg.Provider.Backend)
	}
	if cfg.Provider.TimeoutSeconds != 15 {
		t.Fatalf("expected timeout 15, got %d", cfg.Provider.TimeoutSeconds)
	}
	if cfg.Message.Body != config.DefaultTestBody {
		t.Fatalf("expected default body, got %q", cfg.Message.Body)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Env != "development" || cfg.App.LogLevel != "info" {
		t.Fatalf("unexpected app defaults: %+v", cfg.App)
	}
	if cfg.Twilio.BaseURL != config.DefaultTwilioBaseURL {
		t.Fatalf("expected default base url, got %s", cfg.Twilio.BaseURL)
	}
	if cfg.Provider.Backend != "twilio" || cfg.Provider.MockScenario != "success" {
		t.Fatalf("unexpected provider defaults: %+v", cfg.Provider)
	}
	if cfg.Provider.TimeoutSeconds != 0 {
		t.Fatalf("expected no timeout by default, got %d", cfg.Provider.TimeoutSeconds)
	}
}

func TestLoadToleratesMissingCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("permissive load should not fail: %v", err)
	}

	want := []string{"TWILIO_API_SECRET", "TWILIO_API_KEY", "TWILIO_FROM_NUMBER", "TWILIO_TO_NUMBER"}
	if got := cfg.Twilio.Missing(); !reflect.DeepEqual(got, want) {
		t.Fatalf("missing = %v, want %v", got, want)
	}
	if err := cfg.Twilio.Validate(); !errors.Is(err, config.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}

func TestLoadStrictFailsFast(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMS_STRICT_CONFIG", "true")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_API_SECRET", "secret")
	t.Setenv("TWILIO_API_KEY", "SK123")
	t.Setenv("TWILIO_FROM_NUMBER", "+15005550006")

	_, err := config.Load()
	if !errors.Is(err, config.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if !strings.Contains(err.Error(), "TWILIO_TO_NUMBER") {
		t.Fatalf("expected missing key in error, got %v", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "soon")
	t.Setenv("SMS_STRICT_CONFIG", "maybe")

	_, err := config.Load()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, key := range []string{"PROVIDER_TIMEOUT_SECONDS", "SMS_STRICT_CONFIG"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in error, got %v", key, err)
		}
	}
}
