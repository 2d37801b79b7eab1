// Package webhook verifies and decodes Stripe webhook callbacks.
//
// Stripe signs each delivery with an HMAC carried in the Stripe-Signature
// header. ConstructEvent checks the signature and the timestamp freshness
// window before any JSON is decoded, so unauthenticated bytes never reach
// the caller's handlers.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/stripekit/stripekit"
)

// DefaultTolerance is the maximum accepted distance between the signature
// timestamp and the current time.
const DefaultTolerance = 300 * time.Second

// signingScheme is the signature scheme this verifier understands. Other
// `v<N>=` entries in the header are ignored.
const signingScheme = "v1"

// Verification failure reasons, wrapped inside the returned
// *stripekit.Error and matchable with errors.Is.
var (
	ErrNotSigned        = stripekit.SignatureError("no signatures with expected scheme", nil)
	ErrInvalidHeader    = stripekit.SignatureError("cannot parse signature header", nil)
	ErrTooOld           = stripekit.SignatureError("timestamp outside tolerance window", nil)
	ErrSignatureMissing = stripekit.SignatureError("missing signature header", nil)
	ErrMismatch         = stripekit.SignatureError("no matching signature", nil)
)

// signedHeader is the parsed Stripe-Signature header.
type signedHeader struct {
	timestamp  time.Time
	signatures [][]byte
}

func parseSignatureHeader(header string) (*signedHeader, error) {
	if header == "" {
		return nil, ErrSignatureMissing
	}
	sh := &signedHeader{}
	for _, pair := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, ErrInvalidHeader
		}
		switch k {
		case "t":
			ts, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, ErrInvalidHeader
			}
			sh.timestamp = time.Unix(ts, 0)
		case signingScheme:
			sig, err := hex.DecodeString(v)
			if err != nil {
				// An undecodable candidate cannot match; skip it rather
				// than reject deliveries signed by multiple endpoints.
				continue
			}
			sh.signatures = append(sh.signatures, sig)
		}
	}
	if sh.timestamp.IsZero() {
		return nil, ErrInvalidHeader
	}
	if len(sh.signatures) == 0 {
		return nil, ErrNotSigned
	}
	return sh, nil
}

// ComputeSignature returns the expected MAC for a payload signed at t:
// HMAC-SHA256(secret, "<unix seconds>.<payload>").
func ComputeSignature(t time.Time, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(t.Unix(), 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

// ConstructEvent verifies the payload against the header and secret using
// DefaultTolerance, then decodes the event.
func ConstructEvent(payload []byte, header, secret string) (Event, error) {
	return ConstructEventWithTolerance(payload, header, secret, DefaultTolerance)
}

// ConstructEventWithTolerance is ConstructEvent with a caller-chosen
// freshness window. A tolerance of 0 disables the freshness check but
// still enforces the MAC.
func ConstructEventWithTolerance(payload []byte, header, secret string, tolerance time.Duration) (Event, error) {
	return constructEventAt(payload, header, secret, tolerance, time.Now())
}

func constructEventAt(payload []byte, header, secret string, tolerance time.Duration, now time.Time) (Event, error) {
	var event Event

	sh, err := parseSignatureHeader(header)
	if err != nil {
		return event, err
	}

	if tolerance > 0 {
		age := now.Sub(sh.timestamp)
		if age < 0 {
			age = -age
		}
		if age > tolerance {
			return event, ErrTooOld
		}
	}

	expected := ComputeSignature(sh.timestamp, payload, secret)
	matched := false
	for _, sig := range sh.signatures {
		// hmac.Equal is constant-time; every candidate is checked so the
		// comparison cost does not depend on which one matches.
		if hmac.Equal(expected, sig) {
			matched = true
		}
	}
	if !matched {
		return event, ErrMismatch
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return event, stripekit.SignatureError("verified payload is not a valid event", err)
	}
	return event, nil
}
