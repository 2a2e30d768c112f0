package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, baseURL string) {
	t.Helper()
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("SMS_STRICT_CONFIG", "")
	t.Setenv("SMS_PROVIDER", "")
	t.Setenv("SMS_MOCK_SCENARIO", "")
	t.Setenv("SMS_TEST_BODY", "")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "5")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC0123456789abcdef")
	t.Setenv("TWILIO_API_SECRET", "SEC1")
	t.Setenv("TWILIO_API_KEY", "AK1")
	t.Setenv("TWILIO_FROM_NUMBER", "+15005550006")
	t.Setenv("TWILIO_TO_NUMBER", "+15005550001")
	t.Setenv("TWILIO_BASE_URL", baseURL)
}

func TestRunSent(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"sid":"SM123","status":"queued"}`)
	}))
	defer srv.Close()
	setEnv(t, srv.URL)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "Account SID: AC01234567...")
	assert.Contains(t, stdout.String(), "Message SID: SM123")
	assert.NotContains(t, stdout.String(), "SEC1")
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("AK1:SEC1")), auth)
}

func TestRunFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Authenticate"}`)
	}))
	defer srv.Close()
	setEnv(t, srv.URL)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Status: 401")
	assert.Contains(t, stderr.String(), `Response: {"message":"Authenticate"}`)
}

func TestRunMockTransport(t *testing.T) {
	setEnv(t, "")
	t.Setenv("SMS_PROVIDER", "mock")
	t.Setenv("SMS_MOCK_SCENARIO", "transport")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Problem with request:")
	assert.Contains(t, stderr.String(), "connection refused")
}

func TestRunStrictConfig(t *testing.T) {
	setEnv(t, "")
	t.Setenv("SMS_STRICT_CONFIG", "true")
	t.Setenv("TWILIO_API_KEY", "")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "TWILIO_API_KEY")
	assert.Empty(t, stdout.String())
}
