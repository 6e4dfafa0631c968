package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
)

// Sentinel errors for provider preconditions and malformed responses.
// Callers match these with errors.Is.
var (
	// ErrMissingCredential is returned before any network attempt when a
	// credentialed provider has no API key configured.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrNoModelSelected is returned when a turn is requested without a
	// model identifier. Model selection is explicit: there is no auto-pick.
	ErrNoModelSelected = errors.New("no model selected")

	// ErrEmptyResponse is returned when a provider completes a request but
	// produces neither text nor tool calls.
	ErrEmptyResponse = errors.New("provider returned an empty response")

	// ErrInvalidResponse is returned when a provider response cannot be
	// interpreted (e.g. no choices in a chat completion).
	ErrInvalidResponse = errors.New("provider returned an invalid response")
)

// UnreachableError normalizes connectivity failures (refused connections,
// DNS failures, timeouts) to a single kind carrying the attempted target.
// Generic transport errors pass through classifyTransportError unchanged.
type UnreachableError struct {
	Target string
	Err    error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("endpoint unreachable: %s: %v", e.Target, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// classifyTransportError wraps connectivity-class errors in UnreachableError
// and returns every other error as-is.
func classifyTransportError(err error, target string) error {
	if err == nil {
		return nil
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &UnreachableError{Target: target, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &UnreachableError{Target: target, Err: err}
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, context.DeadlineExceeded) {
		return &UnreachableError{Target: target, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &UnreachableError{Target: target, Err: err}
	}

	return err
}
