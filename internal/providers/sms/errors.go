package sms

import (
	"errors"
	"fmt"
)

// ErrRejected and ErrTransport classify provider failures. A rejected send
// reached the provider and got a non-success status back; a transport failure
// never produced an HTTP response.
var (
	ErrRejected  = errors.New("provider rejected message")
	ErrTransport = errors.New("transport failure")
)

// WrapRejected annotates an error as a provider rejection.
func WrapRejected(err error) error {
	if err == nil {
		return ErrRejected
	}
	return fmt.Errorf("%w: %w", ErrRejected, err)
}

// WrapTransport annotates an error as a transport failure.
func WrapTransport(err error) error {
	if err == nil {
		return ErrTransport
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
