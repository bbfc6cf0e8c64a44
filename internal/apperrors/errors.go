package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrInvalidInput marks a bad amount or an unsupported currency code.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTransport marks a non-success HTTP status or a network failure.
	ErrTransport = errors.New("transport error")
	// ErrProvider marks an application-level error reported by the rate provider.
	ErrProvider = errors.New("provider error")
	// ErrMalformedResponse marks a payload that matches no known provider contract.
	ErrMalformedResponse = errors.New("malformed response")
)

const (
	KindInvalidInput      = "invalid_input"
	KindTransport         = "transport"
	KindProvider          = "provider"
	KindMalformedResponse = "malformed_response"
	KindUnknown           = "unknown"
)

type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// TransportError carries the HTTP status (0 for network-level failures) and the cause.
type TransportError struct {
	Status int
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("rate provider answered with status %d", e.Status)
	}

	return fmt.Sprintf("rate provider unreachable: %s", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// Timeout reports whether the failure was caused by a deadline, either the
// request context's or the client's own timeout.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(e.Cause, &netErr) && netErr.Timeout()
}

type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }

type MalformedResponseError struct {
	Provider string
	Reason   string
	Cause    error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: malformed response: %s: %s", e.Provider, e.Reason, e.Cause)
	}

	return fmt.Sprintf("%s: malformed response: %s", e.Provider, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// Kind maps err onto the name of its taxonomy class.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrProvider):
		return KindProvider
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	case errors.Is(err, ErrTransport):
		return KindTransport
	default:
		return KindUnknown
	}
}
