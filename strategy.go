package stripekit

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"time"
)

// RequestStrategy governs idempotency headers and the retry loop for a
// single logical call. The zero value behaves like Once.
type RequestStrategy struct {
	kind        strategyKind
	key         string
	maxAttempts int
	maxElapsed  time.Duration
}

type strategyKind int

const (
	strategyOnce strategyKind = iota
	strategyIdempotent
	strategyRetry
	strategyBackoff
)

const (
	backoffBase = 500 * time.Millisecond
	backoffMax  = 10 * time.Second
)

// Once sends the request a single time with no idempotency key.
func Once() RequestStrategy {
	return RequestStrategy{kind: strategyOnce}
}

// Idempotent attaches the caller-chosen key but does not retry. The key
// must be at most 255 bytes.
func Idempotent(key string) RequestStrategy {
	return RequestStrategy{kind: strategyIdempotent, key: key}
}

// Retry makes up to n attempts on retryable errors, back to back. A fresh
// idempotency key is synthesized for mutating requests so every attempt is
// deduplicated server-side.
func Retry(n int) RequestStrategy {
	return RequestStrategy{kind: strategyRetry, maxAttempts: n}
}

// ExponentialBackoff is Retry with full-jitter exponential sleeps between
// attempts: each sleep is uniform in [0, min(10s, 500ms·2^attempt)).
func ExponentialBackoff(n int) RequestStrategy {
	return RequestStrategy{kind: strategyBackoff, maxAttempts: n}
}

// WithMaxElapsed bounds the total time spent across all attempts and
// sleeps. Zero means no deadline beyond the context's.
func (s RequestStrategy) WithMaxElapsed(d time.Duration) RequestStrategy {
	s.maxElapsed = d
	return s
}

// WithKey pins the idempotency key on a retrying strategy, overriding
// synthesis.
func (s RequestStrategy) WithKey(key string) RequestStrategy {
	s.key = key
	return s
}

func (s RequestStrategy) retries() bool {
	return s.kind == strategyRetry || s.kind == strategyBackoff
}

// shouldRetry reports whether another attempt is allowed after `attempts`
// completed tries.
func (s RequestStrategy) shouldRetry(attempts int) bool {
	return s.retries() && attempts < s.maxAttempts
}

// sleepFor returns the backoff before attempt number `attempt` (0-based for
// the first retry). Only the backoff strategy sleeps.
func (s RequestStrategy) sleepFor(attempt int) time.Duration {
	if s.kind != strategyBackoff {
		return 0
	}
	d := backoffBase << min(attempt, 20)
	if d > backoffMax || d <= 0 {
		d = backoffMax
	}
	return randDuration(d)
}

// randDuration returns a uniform duration in [0, d).
func randDuration(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(d)))
	if err != nil {
		return d / 2
	}
	return time.Duration(n.Int64())
}

// newIdempotencyKey synthesizes a random 128-bit key, base-16 encoded.
func newIdempotencyKey() string {
	var b [16]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
