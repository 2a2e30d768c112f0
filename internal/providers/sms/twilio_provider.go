package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/example/sms-smoke/internal/config"
)

const defaultMaxBodyBytes = 16 * 1024

// HTTPClient abstracts the http.Client Do method for easier testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TwilioOption customises the behaviour of the Twilio SMS provider.
type TwilioOption func(*TwilioProvider)

// WithTwilioHTTPClient overrides the HTTP client used to talk to Twilio.
func WithTwilioHTTPClient(client HTTPClient) TwilioOption {
	return func(p *TwilioProvider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithTwilioBaseURL sets the base Twilio API URL. Useful for tests.
func WithTwilioBaseURL(baseURL string) TwilioOption {
	return func(p *TwilioProvider) {
		if trimmed := strings.TrimRight(baseURL, "/"); trimmed != "" {
			p.baseURL = trimmed
		}
	}
}

// WithTwilioTimeout bounds the whole request. Zero leaves the transport default.
func WithTwilioTimeout(d time.Duration) TwilioOption {
	return func(p *TwilioProvider) {
		if d > 0 {
			p.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithTwilioClock overrides the clock used for timestamps.
func WithTwilioClock(now func() time.Time) TwilioOption {
	return func(p *TwilioProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// WithTwilioBodyLimit adjusts how many bytes are retained from the HTTP response body.
func WithTwilioBodyLimit(limit int64) TwilioOption {
	return func(p *TwilioProvider) {
		if limit > 0 {
			p.maxBodyBytes = limit
		}
	}
}

// TwilioProvider sends SMS through Twilio's Messages resource, authenticating
// with an API key and secret. Credentials are used exactly as configured; an
// empty value produces a request Twilio will reject.
type TwilioProvider struct {
	logger       zerolog.Logger
	accountSID   string
	apiKey       string
	authSecret   string
	httpClient   HTTPClient
	baseURL      string
	now          func() time.Time
	maxBodyBytes int64
}

// NewTwilioProvider constructs a Twilio-backed SMS provider.
func NewTwilioProvider(cfg config.TwilioConfig, logger zerolog.Logger, opts ...TwilioOption) *TwilioProvider {
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	provider := &TwilioProvider{
		logger:       logger,
		accountSID:   cfg.AccountSID,
		apiKey:       cfg.APIKey,
		authSecret:   cfg.AuthSecret,
		baseURL:      config.DefaultTwilioBaseURL,
		httpClient:   &http.Client{},
		now:          time.Now,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	if cfg.BaseURL != "" {
		provider.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	for _, opt := range opts {
		if opt != nil {
			opt(provider)
		}
	}
	return provider
}

// Endpoint returns the Messages resource URL for the configured account.
func (p *TwilioProvider) Endpoint() string {
	return fmt.Sprintf("%s/Accounts/%s/Messages.json", p.baseURL, url.PathEscape(p.accountSID))
}

// Send posts a single message. It makes exactly one attempt: a 201 yields the
// parsed sid and status, any other status returns the raw response together
// with an ErrRejected error, and a failure to get a response at all returns an
// ErrTransport error.
func (p *TwilioProvider) Send(ctx context.Context, payload *Payload) (*RawResponse, error) {
	if payload == nil {
		return nil, errors.New("twilio sms provider: payload is required")
	}

	form := EncodeForm(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint(), strings.NewReader(form))
	if err != nil {
		return nil, WrapTransport(fmt.Errorf("twilio sms provider: new request: %w", err))
	}
	req.SetBasicAuth(p.apiKey, p.authSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	p.logger.Debug().
		Str("message_id", payload.MessageID).
		Str("endpoint", p.Endpoint()).
		Int("content_length", len(form)).
		Msg("twilio sms request")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, WrapTransport(fmt.Errorf("twilio sms provider: http do: %w", err))
	}
	defer resp.Body.Close()

	body, err := p.readBody(resp.Body)
	if err != nil {
		return nil, WrapTransport(err)
	}

	raw := &RawResponse{
		Code:      resp.StatusCode,
		Body:      body,
		Timestamp: p.now(),
	}

	if resp.StatusCode != http.StatusCreated {
		parsed := parseTwilioBody(body)
		raw.Status = http.StatusText(resp.StatusCode)
		message := parsed.Message
		if message == "" {
			message = strings.TrimSpace(body)
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		if parsed.ErrorCode > 0 {
			return raw, WrapRejected(fmt.Errorf("twilio sms provider: error %d: %s", parsed.ErrorCode, message))
		}
		return raw, WrapRejected(fmt.Errorf("twilio sms provider: http %d: %s", resp.StatusCode, message))
	}

	if !gjson.Valid(body) {
		return raw, WrapRejected(fmt.Errorf("twilio sms provider: http %d: response is not valid json", resp.StatusCode))
	}
	parsed := parseTwilioBody(body)
	raw.ID = parsed.SID
	raw.Status = parsed.Status
	return raw, nil
}

// EncodeForm renders the url-encoded request body carrying exactly the To,
// From and Body fields.
func EncodeForm(payload *Payload) string {
	params := url.Values{}
	params.Set("To", payload.To)
	params.Set("From", payload.From)
	params.Set("Body", payload.Body)
	return params.Encode()
}

func (p *TwilioProvider) readBody(rc io.ReadCloser) (string, error) {
	if rc == nil {
		return "", nil
	}

	limit := p.maxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}

	data, err := io.ReadAll(io.LimitReader(rc, limit))
	if err != nil {
		return "", fmt.Errorf("twilio sms provider: read body: %w", err)
	}
	return string(data), nil
}

type twilioBody struct {
	SID       string
	Status    string
	ErrorCode int
	Message   string
}

// parseTwilioBody extracts the fields of interest from a Twilio JSON document.
// Numeric error codes are accepted either as numbers or numeric strings.
func parseTwilioBody(body string) twilioBody {
	if !gjson.Valid(body) {
		return twilioBody{}
	}
	doc := gjson.Parse(body)
	return twilioBody{
		SID:       doc.Get("sid").String(),
		Status:    doc.Get("status").String(),
		ErrorCode: int(doc.Get("code").Int()),
		Message:   doc.Get("message").String(),
	}
}
