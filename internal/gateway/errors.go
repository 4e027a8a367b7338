// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies a content API failure.
type Kind string

const (
	KindRateLimited       Kind = "rate_limited"
	KindInvalidCredential Kind = "invalid_key"
	KindNotFound          Kind = "not_found"
	KindConnection        Kind = "connection_error"
	KindTimeout           Kind = "timeout"
	KindUpstream          Kind = "api_error"
	KindUnknown           Kind = "unknown_error"
)

// ErrNotFound matches any Error of kind KindNotFound via errors.Is.
var ErrNotFound = errors.New("content not found")

// ErrMissingAPIKey is returned by New when no credential is configured.
var ErrMissingAPIKey = errors.New("Please set your Guardian API key in the GUARDIAN_API_KEY environment variable. Get your key from https://open-platform.theguardian.com/access/")

// Error is a classified content API failure. Message is safe to show to an
// end user.
type Error struct {
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRateLimited:
		return "Rate limit exceeded. Guardian API allows 500 calls per day. Please try again later."
	case KindInvalidCredential:
		return "Invalid API key. Please check your GUARDIAN_API_KEY environment variable."
	case KindNotFound:
		return "Content not found."
	case KindUpstream:
		return fmt.Sprintf("Guardian API returned status code %d: %s", e.StatusCode, e.Body)
	case KindConnection:
		return "Connection error. Please check your internet connection."
	case KindTimeout:
		return "Request timed out. The Guardian API may be experiencing issues."
	default:
		if e.Err != nil {
			return "Unexpected error: " + e.Err.Error()
		}
		return "Unexpected error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) match not-found failures.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var gerr *Error
	return errors.As(err, &gerr) && gerr.Kind == kind
}

// classifyTransport maps a failed http.Client.Do into a typed Error.
func classifyTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindUnknown, Err: err}
	}
	return &Error{Kind: KindConnection, Err: err}
}
