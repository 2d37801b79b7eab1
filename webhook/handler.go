package webhook

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// SignatureHeader is the header carrying the delivery signature.
const SignatureHeader = "Stripe-Signature"

// maxPayloadBytes bounds the request body read by Handler. Stripe events
// are small; anything larger is not a legitimate delivery.
const maxPayloadBytes = 1 << 20

// HandlerFunc consumes one verified event. Returning an error causes the
// handler to respond 500 so the provider redelivers.
type HandlerFunc func(Event) error

// Handler is an http.Handler that verifies deliveries, deduplicates them
// through an optional Store, and dispatches them by event type.
type Handler struct {
	secret    string
	tolerance time.Duration
	store     Store
	log       *slog.Logger
	handlers  map[string]HandlerFunc
	fallback  HandlerFunc
}

// NewHandler returns a Handler verifying against the given signing secret.
func NewHandler(secret string) *Handler {
	return &Handler{
		secret:    secret,
		tolerance: DefaultTolerance,
		log:       slog.Default(),
		handlers:  make(map[string]HandlerFunc),
	}
}

// WithTolerance sets the freshness window. Zero disables the check.
func (h *Handler) WithTolerance(d time.Duration) *Handler {
	h.tolerance = d
	return h
}

// WithStore enables replay suppression through s.
func (h *Handler) WithStore(s Store) *Handler {
	h.store = s
	return h
}

// WithLogger sets the logger used for verification and dispatch failures.
func (h *Handler) WithLogger(log *slog.Logger) *Handler {
	h.log = log
	return h
}

// Handle registers fn for an event type, e.g. "payment_intent.succeeded".
func (h *Handler) Handle(eventType string, fn HandlerFunc) *Handler {
	h.handlers[eventType] = fn
	return h
}

// HandleDefault registers fn for event types with no dedicated handler.
// Without it, unhandled types are acknowledged and dropped.
func (h *Handler) HandleDefault(fn HandlerFunc) *Handler {
	h.fallback = fn
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		http.Error(w, "cannot read payload", http.StatusBadRequest)
		return
	}

	event, err := ConstructEventWithTolerance(payload, r.Header.Get(SignatureHeader), h.secret, h.tolerance)
	if err != nil {
		h.log.Warn("webhook rejected", "err", err)
		http.Error(w, "signature verification failed", http.StatusBadRequest)
		return
	}

	if h.store != nil {
		switch err := h.store.LogEvent(string(event.ID)); {
		case errors.Is(err, ErrEventExists):
			// Already processed; acknowledge so the provider stops retrying.
			w.WriteHeader(http.StatusOK)
			return
		case err != nil:
			h.log.Error("webhook store failed", "event", event.ID, "err", err)
			http.Error(w, "event store unavailable", http.StatusInternalServerError)
			return
		}
	}

	fn, ok := h.handlers[event.Type]
	if !ok {
		fn = h.fallback
	}
	if fn == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err := fn(event); err != nil {
		h.log.Error("webhook handler failed", "event", event.ID, "type", event.Type, "err", err)
		http.Error(w, "handler failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
