package httpx

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

func IsRetryableHTTPStatus(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return IsRetryableHTTPStatus(sc.HTTPStatusCode())
	}
	return false
}

// RetryAfter honours a numeric Retry-After header, capped at max.
func RetryAfter(resp *http.Response, fallback, max time.Duration) time.Duration {
	wait := fallback
	if resp != nil {
		if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				wait = time.Duration(secs) * time.Second
			}
		}
	}
	if max > 0 && wait > max {
		wait = max
	}
	return wait
}

// Jitter spreads d by +/-20%.
func Jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	delta := float64(d) * 0.2
	return time.Duration(float64(d) - delta + rand.Float64()*2*delta)
}

type Policy struct {
	MaxRetries int
	Backoff    time.Duration
	MaxWait    time.Duration
}

// Attempt is one try of a retried call. The response, when non-nil, is
// consulted for Retry-After.
type Attempt func(ctx context.Context) (*http.Response, error)

// OnRetry is notified before each sleep.
type OnRetry func(attempt int, wait time.Duration, err error)

// Retry runs fn until it succeeds, returns a non-retryable error, the
// context ends, or the policy is exhausted.
func Retry(ctx context.Context, p Policy, fn Attempt, onRetry OnRetry) error {
	backoff := p.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= p.MaxRetries || !IsRetryableError(err) {
			return err
		}
		wait := Jitter(RetryAfter(resp, backoff, p.MaxWait))
		if onRetry != nil {
			onRetry(attempt+1, wait, err)
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
}
