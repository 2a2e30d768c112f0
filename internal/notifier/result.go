package notifier

import "fmt"

// Outcome names the three disjoint ways a send can end.
type Outcome string

const (
	OutcomeSent           Outcome = "sent"
	OutcomeFailed         Outcome = "failed"
	OutcomeTransportError Outcome = "transport_error"
)

// Result is one of Sent, Failed or TransportError.
type Result interface {
	Kind() Outcome
	fmt.Stringer
}

// Sent reports that the provider accepted the message with HTTP 201.
type Sent struct {
	ID     string
	Status string
}

// Failed reports any non-201 response. Body is the provider payload verbatim.
type Failed struct {
	HTTPStatus int
	Body       string
}

// TransportError reports that no HTTP response was received.
type TransportError struct {
	Message string
}

func (Sent) Kind() Outcome           { return OutcomeSent }
func (Failed) Kind() Outcome         { return OutcomeFailed }
func (TransportError) Kind() Outcome { return OutcomeTransportError }

func (s Sent) String() string {
	return fmt.Sprintf("sent id=%s status=%s", s.ID, s.Status)
}

func (f Failed) String() string {
	return fmt.Sprintf("failed status=%d body=%s", f.HTTPStatus, f.Body)
}

func (e TransportError) String() string {
	return "transport error: " + e.Message
}
