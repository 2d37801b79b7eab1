package webhook

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func postEvent(h *Handler, payload []byte, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	if header != "" {
		req.Header.Set(SignatureHeader, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func freshHeader(payload []byte, secret string) string {
	now := time.Now()
	sig := ComputeSignature(now, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func TestHandlerDispatch(t *testing.T) {
	var got Event
	h := NewHandler(testSecret).Handle("payment_intent.succeeded", func(e Event) error {
		got = e
		return nil
	})

	rec := postEvent(h, testPayload, freshHeader(testPayload, testSecret))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if got.ID != "evt_1" {
		t.Fatalf("handler saw event %+v", got)
	}
}

func TestHandlerRejectsBadSignature(t *testing.T) {
	called := false
	h := NewHandler(testSecret).Handle("payment_intent.succeeded", func(Event) error {
		called = true
		return nil
	})

	rec := postEvent(h, testPayload, freshHeader(testPayload, "whsec_other"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if called {
		t.Fatal("handler ran on an unverified payload")
	}

	if rec := postEvent(h, testPayload, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("unsigned status = %d", rec.Code)
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	h := NewHandler(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandlerDeduplicates(t *testing.T) {
	calls := 0
	h := NewHandler(testSecret).
		WithStore(NewMemoryStore()).
		Handle("payment_intent.succeeded", func(Event) error {
			calls++
			return nil
		})
	header := freshHeader(testPayload, testSecret)

	for range 3 {
		if rec := postEvent(h, testPayload, header); rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times for one event id", calls)
	}
}

func TestHandlerErrorRequestsRedelivery(t *testing.T) {
	h := NewHandler(testSecret).Handle("payment_intent.succeeded", func(Event) error {
		return fmt.Errorf("downstream unavailable")
	})

	rec := postEvent(h, testPayload, freshHeader(testPayload, testSecret))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandlerFallback(t *testing.T) {
	h := NewHandler(testSecret)

	// Unregistered types are acknowledged so the provider stops retrying.
	rec := postEvent(h, testPayload, freshHeader(testPayload, testSecret))
	if rec.Code != http.StatusOK {
		t.Fatalf("status without fallback = %d", rec.Code)
	}

	var seen string
	h.HandleDefault(func(e Event) error {
		seen = e.Type
		return nil
	})
	postEvent(h, testPayload, freshHeader(testPayload, testSecret))
	if seen != "payment_intent.succeeded" {
		t.Fatalf("fallback saw %q", seen)
	}
}
