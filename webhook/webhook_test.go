package webhook

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stripekit/stripekit"
	"github.com/stripekit/stripekit/resources"
)

const (
	testSecret    = "whsec_xyz"
	testTimestamp = 1700000000
)

var testPayload = []byte(`{
	"id": "evt_1",
	"object": "event",
	"api_version": "2024-06-20",
	"created": 1700000000,
	"livemode": false,
	"pending_webhooks": 1,
	"type": "payment_intent.succeeded",
	"data": {
		"object": {
			"id": "pi_1",
			"object": "payment_intent",
			"amount": 2500,
			"currency": "usd",
			"created": 1700000000,
			"status": "succeeded"
		}
	}
}`)

// signHeader builds a Stripe-Signature header for payload signed at ts.
func signHeader(ts int64, payload []byte, secret string) string {
	sig := ComputeSignature(time.Unix(ts, 0), payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(sig))
}

func TestConstructEventAccepts(t *testing.T) {
	header := signHeader(testTimestamp, testPayload, testSecret)
	now := time.Unix(testTimestamp+60, 0)

	event, err := constructEventAt(testPayload, header, testSecret, DefaultTolerance, now)
	if err != nil {
		t.Fatal(err)
	}
	if event.ID != "evt_1" || event.Type != "payment_intent.succeeded" {
		t.Fatalf("event = %+v", event)
	}
	if event.Created != stripekit.Timestamp(testTimestamp) {
		t.Fatalf("created = %d", event.Created)
	}
}

func TestConstructEventTooOld(t *testing.T) {
	header := signHeader(testTimestamp, testPayload, testSecret)
	now := time.Unix(testTimestamp+int64(DefaultTolerance/time.Second)+1, 0)

	_, err := constructEventAt(testPayload, header, testSecret, DefaultTolerance, now)
	if !errors.Is(err, ErrTooOld) {
		t.Fatalf("err = %v, want ErrTooOld", err)
	}
}

func TestConstructEventFutureTimestampRejected(t *testing.T) {
	header := signHeader(testTimestamp, testPayload, testSecret)
	now := time.Unix(testTimestamp-400, 0)

	_, err := constructEventAt(testPayload, header, testSecret, DefaultTolerance, now)
	if !errors.Is(err, ErrTooOld) {
		t.Fatalf("err = %v, want ErrTooOld", err)
	}
}

func TestConstructEventMismatch(t *testing.T) {
	header := signHeader(testTimestamp, testPayload, "whsec_other")
	now := time.Unix(testTimestamp+60, 0)

	_, err := constructEventAt(testPayload, header, testSecret, DefaultTolerance, now)
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("err = %v, want ErrMismatch", err)
	}

	e, ok := stripekit.AsError(err)
	if !ok || e.Kind != stripekit.KindWebhookSignature {
		t.Fatalf("kind = %v", err)
	}
}

func TestConstructEventTamperedPayload(t *testing.T) {
	header := signHeader(testTimestamp, testPayload, testSecret)
	tampered := append([]byte(nil), testPayload...)
	tampered[len(tampered)-2] = ' '

	_, err := constructEventAt(tampered, header, testSecret, DefaultTolerance, time.Unix(testTimestamp+1, 0))
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("err = %v, want ErrMismatch", err)
	}
}

func TestZeroToleranceDisablesFreshness(t *testing.T) {
	header := signHeader(testTimestamp, testPayload, testSecret)
	now := time.Unix(testTimestamp+86400*365, 0)

	if _, err := constructEventAt(testPayload, header, testSecret, 0, now); err != nil {
		t.Fatalf("stale but verified payload rejected with tolerance 0: %v", err)
	}
}

func TestMultipleSignatureCandidates(t *testing.T) {
	valid := signHeader(testTimestamp, testPayload, testSecret)
	header := fmt.Sprintf("t=%d,v1=deadbeef,v1=zz-not-hex,%s", testTimestamp, valid[len(fmt.Sprintf("t=%d,", testTimestamp)):])

	if _, err := constructEventAt(testPayload, header, testSecret, 0, time.Unix(testTimestamp, 0)); err != nil {
		t.Fatalf("valid candidate among bad ones rejected: %v", err)
	}
}

func TestSignatureComparisonCoversFullMAC(t *testing.T) {
	expected := ComputeSignature(time.Unix(testTimestamp, 0), testPayload, testSecret)
	now := time.Unix(testTimestamp, 0)

	// A candidate differing only in its final byte must be rejected, so a
	// shared prefix is never enough to pass.
	nearMiss := append([]byte(nil), expected...)
	nearMiss[len(nearMiss)-1] ^= 0x01
	header := fmt.Sprintf("t=%d,v1=%s", testTimestamp, hex.EncodeToString(nearMiss))
	if _, err := constructEventAt(testPayload, header, testSecret, 0, now); !errors.Is(err, ErrMismatch) {
		t.Fatalf("near-miss candidate: err = %v, want ErrMismatch", err)
	}

	// A truncated prefix of the real MAC must be rejected too.
	header = fmt.Sprintf("t=%d,v1=%s", testTimestamp, hex.EncodeToString(expected[:16]))
	if _, err := constructEventAt(testPayload, header, testSecret, 0, now); !errors.Is(err, ErrMismatch) {
		t.Fatalf("truncated candidate: err = %v, want ErrMismatch", err)
	}

	// Every candidate is compared: a near-miss listed before the valid
	// signature must not short-circuit verification.
	header = fmt.Sprintf("t=%d,v1=%s,v1=%s",
		testTimestamp, hex.EncodeToString(nearMiss), hex.EncodeToString(expected))
	if _, err := constructEventAt(testPayload, header, testSecret, 0, now); err != nil {
		t.Fatalf("valid candidate after a near-miss rejected: %v", err)
	}
}

func TestHeaderParseFailures(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", ErrSignatureMissing},
		{"no timestamp", "v1=deadbeef", ErrInvalidHeader},
		{"bad timestamp", "t=soon,v1=deadbeef", ErrInvalidHeader},
		{"no pairs", "garbage", ErrInvalidHeader},
		{"wrong scheme only", fmt.Sprintf("t=%d,v0=deadbeef", testTimestamp), ErrNotSigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := constructEventAt(testPayload, tt.header, testSecret, 0, time.Unix(testTimestamp, 0))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestComputeSignature(t *testing.T) {
	a := ComputeSignature(time.Unix(testTimestamp, 0), testPayload, testSecret)
	b := ComputeSignature(time.Unix(testTimestamp, 0), testPayload, testSecret)
	if len(a) != 32 {
		t.Fatalf("signature length = %d, want SHA-256 size", len(a))
	}
	if hex.EncodeToString(a) != hex.EncodeToString(b) {
		t.Fatal("signature not deterministic")
	}
	if c := ComputeSignature(time.Unix(testTimestamp+1, 0), testPayload, testSecret); hex.EncodeToString(a) == hex.EncodeToString(c) {
		t.Fatal("timestamp not bound into the signature")
	}
}

func TestEventParseObject(t *testing.T) {
	header := signHeader(testTimestamp, testPayload, testSecret)
	event, err := constructEventAt(testPayload, header, testSecret, 0, time.Unix(testTimestamp, 0))
	if err != nil {
		t.Fatal(err)
	}

	obj, err := event.Data.ParseObject()
	if err != nil {
		t.Fatal(err)
	}
	pi, ok := obj.(*resources.PaymentIntent)
	if !ok {
		t.Fatalf("object type %T", obj)
	}
	if pi.Status != resources.PaymentIntentStatusSucceeded || pi.Amount != 2500 {
		t.Fatalf("payment intent = %+v", pi)
	}
}

func TestEventParseObjectUnknown(t *testing.T) {
	d := EventData{Object: []byte(`{"object":"treasury.transaction","id":"trxn_1"}`)}
	obj, err := d.ParseObject()
	if err != nil {
		t.Fatal(err)
	}
	unknown, ok := obj.(UnknownObject)
	if !ok {
		t.Fatalf("object type %T", obj)
	}
	if unknown.Object != "treasury.transaction" {
		t.Fatalf("discriminant = %q", unknown.Object)
	}
}
