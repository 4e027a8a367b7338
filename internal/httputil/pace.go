// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the components that call
// the content API.
package httputil

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPacingDelay is the spacing between consecutive upstream calls made
// by one multi-call operation.
const DefaultPacingDelay = 100 * time.Millisecond

// Pacer spaces out sequential upstream calls so a loop never bursts the
// content API rate limit. The first call is never delayed.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a Pacer that allows one call per delay. A delay of zero
// or less disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next call may be issued. If the context is cancelled
// while waiting, Wait returns ctx.Err().
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

// NewClient returns an http.Client with the connection-level timeout used
// for every content API request.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
