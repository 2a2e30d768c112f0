package notifier

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	smsprovider "github.com/example/sms-smoke/internal/providers/sms"
)

// Message is the fixed content of the test SMS.
type Message struct {
	From string
	To   string
	Body string
}

// Option modifies notifier behaviour.
type Option func(*Notifier)

// WithMessageID pins the identifier attached to the payload and log events.
func WithMessageID(id string) Option {
	return func(n *Notifier) {
		if id != "" {
			n.messageID = id
		}
	}
}

// Notifier sends a single message through a provider and classifies the
// outcome.
type Notifier struct {
	logger    zerolog.Logger
	provider  smsprovider.Provider
	message   Message
	messageID string
}

// New constructs a Notifier for the supplied provider and message.
func New(provider smsprovider.Provider, msg Message, logger zerolog.Logger, opts ...Option) (*Notifier, error) {
	if provider == nil {
		return nil, errors.New("notifier: provider dependency is required")
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	n := &Notifier{
		logger:    logger,
		provider:  provider,
		message:   msg,
		messageID: uuid.NewString(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n, nil
}

// SendMessage makes exactly one send attempt and returns its outcome. It never
// returns nil and never panics on provider errors.
func (n *Notifier) SendMessage(ctx context.Context) Result {
	payload := &smsprovider.Payload{
		MessageID: n.messageID,
		From:      n.message.From,
		To:        n.message.To,
		Body:      n.message.Body,
	}

	raw, err := n.provider.Send(ctx, payload)
	result := classify(raw, err)

	event := n.logger.Info()
	if result.Kind() != OutcomeSent {
		event = n.logger.Warn().Err(err)
	}
	event.
		Str("message_id", n.messageID).
		Str("outcome", string(result.Kind())).
		Msg("sms send finished")

	return result
}

func classify(raw *smsprovider.RawResponse, err error) Result {
	if err == nil && raw != nil {
		return Sent{ID: raw.ID, Status: raw.Status}
	}
	if err == nil {
		err = errors.New("provider returned no response")
	}
	if errors.Is(err, smsprovider.ErrRejected) && raw != nil {
		return Failed{HTTPStatus: raw.Code, Body: raw.Body}
	}
	if raw != nil && raw.Code != 0 && !errors.Is(err, smsprovider.ErrTransport) {
		return Failed{HTTPStatus: raw.Code, Body: raw.Body}
	}
	return TransportError{Message: fmt.Sprint(err)}
}
