package sms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Scenario enumerates the mock behaviours supported by the SMS provider.
type Scenario string

const (
	ScenarioSuccess   Scenario = "success"
	ScenarioRejected  Scenario = "rejected"
	ScenarioTransport Scenario = "transport"
)

// ParseScenario maps a configured name onto a Scenario.
func ParseScenario(name string) (Scenario, error) {
	switch s := Scenario(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return ScenarioSuccess, nil
	case ScenarioSuccess, ScenarioRejected, ScenarioTransport:
		return s, nil
	default:
		return "", fmt.Errorf("sms mock: unknown scenario %q", name)
	}
}

// Option customises the mock provider.
type Option func(*MockProvider)

// WithScenario sets the scenario the provider plays out on every send.
func WithScenario(s Scenario) Option {
	return func(p *MockProvider) {
		p.scenario = s
	}
}

// WithLatency configures the artificial latency injected before responding.
func WithLatency(d time.Duration) Option {
	return func(p *MockProvider) {
		if d < 0 {
			d = 0
		}
		p.latency = d
	}
}

// WithClock overrides the clock used to timestamp responses (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(p *MockProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// MockProvider answers like Twilio without touching the network. It backs dry
// runs and tests.
type MockProvider struct {
	logger   zerolog.Logger
	scenario Scenario
	latency  time.Duration
	now      func() time.Time
}

// NewMockProvider constructs a mock SMS provider.
func NewMockProvider(logger zerolog.Logger, opts ...Option) *MockProvider {
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	p := &MockProvider{
		logger:   logger,
		scenario: ScenarioSuccess,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Send simulates sending an SMS payload according to the configured scenario.
func (p *MockProvider) Send(ctx context.Context, payload *Payload) (*RawResponse, error) {
	if payload == nil {
		return nil, errors.New("sms mock: payload is required")
	}

	select {
	case <-ctx.Done():
		return nil, WrapTransport(ctx.Err())
	default:
	}

	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, WrapTransport(ctx.Err())
		case <-timer.C:
		}
	}

	p.logger.Debug().
		Str("message_id", payload.MessageID).
		Str("scenario", string(p.scenario)).
		Msg("sms mock send")

	switch p.scenario {
	case ScenarioSuccess:
		sid := "SM" + strings.ReplaceAll(uuid.NewString(), "-", "")
		return &RawResponse{
			ID:        sid,
			Code:      http.StatusCreated,
			Status:    "queued",
			Body:      fmt.Sprintf(`{"sid":%q,"status":"queued","to":%q,"from":%q}`, sid, payload.To, payload.From),
			Timestamp: p.now(),
		}, nil
	case ScenarioRejected:
		return &RawResponse{
			Code:      http.StatusBadRequest,
			Status:    http.StatusText(http.StatusBadRequest),
			Body:      `{"code":21211,"message":"Invalid 'To' Phone Number","status":400}`,
			Timestamp: p.now(),
		}, WrapRejected(errors.New("sms mock: error 21211: Invalid 'To' Phone Number"))
	case ScenarioTransport:
		return nil, WrapTransport(errors.New("sms mock: connection refused"))
	default:
		return nil, fmt.Errorf("sms mock: unknown scenario %q", p.scenario)
	}
}
