package llm

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// retryClass says how a failed call may be repeated.
type retryClass int

const (
	// neverRetry covers cancellation, truncation and refusals: the same
	// request would fail the same way.
	neverRetry retryClass = iota
	// retryOnce covers malformed replies; a second sample often parses.
	retryOnce
	// retryTransient covers rate limits, outages and network errors.
	retryTransient
)

func classify(err error) retryClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return neverRetry
	}
	var (
		maxTok  *ErrMaxTokensExceeded
		refused *ErrRefused
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.As(err, &maxTok), errors.As(err, &refused):
		return neverRetry
	case errors.As(err, &invalid):
		return retryOnce
	default:
		return retryTransient
	}
}

// RetryProvider repeats failed calls up to RetryConfig.MaxAttempts.
// adaptiq ships with MaxAttempts=1, so by default it is a pass-through.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *slog.Logger
}

// WithRetry wraps p. A nil logger uses slog.Default().
func WithRetry(p Provider, cfg RetryConfig, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryProvider{inner: p, config: cfg, logger: logger}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalidSeen := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		class := classify(err)
		if class == retryOnce {
			if invalidSeen {
				class = neverRetry
			}
			invalidSeen = true
		}
		if class == neverRetry || attempt >= attempts {
			return nil, err
		}

		wait := r.wait(attempt, err)
		r.logger.Warn("retrying llm request",
			"purpose", PurposeFrom(ctx),
			"attempt", attempt,
			"of", attempts,
			"wait", wait,
			"error", err,
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait is the pause after the given 1-based attempt: the vendor's
// Retry-After when it sent one, otherwise exponential backoff capped at
// MaxWait with ±20% jitter.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	d = math.Min(d, float64(r.config.MaxWait))
	d *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(d, 0))
}
