// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package retry

import (
	"context"
	"errors"
	"time"
)

// Func is one attempt; it must honour ctx.
type Func func(ctx context.Context) error

// Backoff returns the pause before retry number attempt (0 based).
type Backoff func(attempt int) time.Duration

// Fixed waits interval between every attempt.
func Fixed(interval time.Duration) Backoff {
	return func(int) time.Duration { return interval }
}

// Exponential doubles base per attempt, capped at max when max > 0.
func Exponential(base, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		d := base << attempt
		if d <= 0 || (max > 0 && d > max) {
			return max
		}
		return d
	}
}

type config struct {
	attempts int
	backoff  Backoff
	retryIf  func(error) bool
	onRetry  func(attempt int, err error, wait time.Duration)
}

type Option func(*config)

func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.attempts = n
		}
	}
}

func WithBackoff(b Backoff) Option {
	return func(c *config) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithRetryIf stops retrying as soon as fn returns false.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// OnRetry is called before each pause, typically to log the failure.
func OnRetry(fn func(attempt int, err error, wait time.Duration)) Option {
	return func(c *config) {
		c.onRetry = fn
	}
}

// Do runs fn until it succeeds, the attempts are used up, retryIf rejects the
// error or ctx is done. The last error of fn is returned.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	cfg := &config{
		attempts: 3,
		backoff:  Fixed(time.Second),
		retryIf:  IsRetryable,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var err error
	for attempt := 0; attempt < cfg.attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if !cfg.retryIf(err) || attempt == cfg.attempts-1 {
			return err
		}

		wait := cfg.backoff(attempt)
		if cfg.onRetry != nil {
			cfg.onRetry(attempt+1, err, wait)
		}
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return err
}

// IsRetryable retries everything but context cancellation and deadlines.
func IsRetryable(err error) bool {
	return err != nil &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
