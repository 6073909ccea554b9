// Package fetch provides the shared HTTP client and the bounded retry
// policy applied at source-reader boundaries. Retry is local to the fetch
// call: the orchestrator sees it only as elapsed latency.
package fetch

import (
	"math/rand"
	"net/http"
	"time"
)

// RetryConfig bounds retry behavior for source fetches.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BackoffBase is the sleep before the first retry.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to the sleep after each retry.
	BackoffMultiplier float64

	// MaxBackoff caps a single sleep.
	MaxBackoff time.Duration
}

// DefaultRetryConfig matches the fetch policy used by both pipelines:
// three attempts, exponential backoff between one and ten seconds.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        10 * time.Second,
	}
}

// NewClient returns the HTTP client source readers share.
func NewClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// Do invokes fn up to cfg.MaxAttempts times, sleeping with jittered
// exponential backoff between attempts. The last error is returned when
// every attempt fails.
func Do(cfg RetryConfig, fn func() error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	backoff := cfg.BackoffBase
	var err error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(jitter(backoff))
			backoff = time.Duration(float64(backoff) * cfg.BackoffMultiplier)
			if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
				backoff = cfg.MaxBackoff
			}
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}

// jitter spreads sleeps by ±20% so schedulers retrying in lockstep don't
// hammer a recovering source.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	f := 0.8 + 0.4*rand.Float64()
	return time.Duration(float64(d) * f)
}
