// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package retry runs operations with a bounded number of attempts.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrInvalidMaxAttempts indicates a non-positive attempt ceiling.
var ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")

// Backoff computes the delay after a failed attempt (1-based).
type Backoff func(attempt int, base time.Duration) time.Duration

// Linear waits base, 2*base, 3*base, ...
func Linear(attempt int, base time.Duration) time.Duration {
	return base * time.Duration(attempt)
}

// Exponential waits base, 2*base, 4*base, ...
func Exponential(attempt int, base time.Duration) time.Duration {
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

// Policy describes how an operation is retried.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Backoff     Backoff // defaults to Linear

	// Retryable reports whether a failure is worth another attempt.
	// Nil retries every error.
	Retryable func(error) bool

	// OnRetry is called before each wait with the failed attempt number,
	// its error and the delay that follows.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Do runs op until it succeeds, fails with a non-retryable error, exhausts
// MaxAttempts, or ctx is done. It returns the number of attempts made and
// the last error.
func (p Policy) Do(ctx context.Context, op func() error) (int, error) {
	if p.MaxAttempts <= 0 {
		return 0, ErrInvalidMaxAttempts
	}
	backoff := p.Backoff
	if backoff == nil {
		backoff = Linear
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return attempt - 1, ctx.Err()
		default:
		}

		lastErr = op()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return attempt, nil
		}

		if p.Retryable != nil && !p.Retryable(lastErr) {
			return attempt, lastErr
		}

		// Don't sleep after the last attempt
		if attempt == p.MaxAttempts {
			return attempt, lastErr
		}

		delay := backoff(attempt, p.BaseDelay)
		slog.Debug("operation failed, will retry", "attempt", attempt, "maxAttempts", p.MaxAttempts, "delay", delay, "error", lastErr)
		if p.OnRetry != nil {
			p.OnRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, ctx.Err()
		case <-timer.C:
		}
	}

	return p.MaxAttempts, lastErr
}

// Do retries op with the given ceiling, base delay and backoff.
func Do(ctx context.Context, maxAttempts int, baseDelay time.Duration, backoff Backoff, op func() error) (int, error) {
	return Policy{MaxAttempts: maxAttempts, BaseDelay: baseDelay, Backoff: backoff}.Do(ctx, op)
}
