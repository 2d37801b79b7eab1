package stripekit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies every failure the client can surface.
// The set is closed: callers can switch on it exhaustively.
type ErrorKind string

const (
	// KindTransport covers network, TLS and cancellation failures that
	// occurred before a well-formed HTTP response was read.
	KindTransport ErrorKind = "transport"

	// KindAPI means Stripe returned a non-2xx response with an error body.
	KindAPI ErrorKind = "api"

	// KindDeserialize means the response was 2xx but its body did not match
	// the expected shape. The raw body is retained for debugging.
	KindDeserialize ErrorKind = "deserialize"

	// KindClient is caller misuse detected before any bytes hit the wire:
	// bad id prefix, invalid pagination limit, strategy/method conflicts.
	KindClient ErrorKind = "client"

	// KindWebhookSignature is a webhook header parse, tolerance or MAC
	// mismatch failure.
	KindWebhookSignature ErrorKind = "webhook_signature"
)

// APIError is the decoded `error` object of a Stripe error response.
//
// Message is safe to log. Param identifies a request parameter and is safe
// to surface to developers, but not to end users without sanitization.
type APIError struct {
	Type        string `json:"type"`
	Code        string `json:"code,omitempty"`
	Message     string `json:"message,omitempty"`
	Param       string `json:"param,omitempty"`
	DeclineCode string `json:"decline_code,omitempty"`
	DocURL      string `json:"doc_url,omitempty"`

	// Identifiers of objects involved in the failure, when Stripe includes
	// them. Stripe may send either a bare id or the full object; only the
	// id is retained here.
	PaymentIntentID string `json:"-"`
	SetupIntentID   string `json:"-"`
	ChargeID        string `json:"-"`
}

// objectRef decodes a field that may be a bare id string or a full object
// carrying an "id" property.
type objectRef struct {
	ID string
}

func (r *objectRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	return nil
}

func (e *APIError) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type          string    `json:"type"`
		Code          string    `json:"code"`
		Message       string    `json:"message"`
		Param         string    `json:"param"`
		DeclineCode   string    `json:"decline_code"`
		DocURL        string    `json:"doc_url"`
		PaymentIntent objectRef `json:"payment_intent"`
		SetupIntent   objectRef `json:"setup_intent"`
		Charge        objectRef `json:"charge"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Type = raw.Type
	e.Code = raw.Code
	e.Message = raw.Message
	e.Param = raw.Param
	e.DeclineCode = raw.DeclineCode
	e.DocURL = raw.DocURL
	e.PaymentIntentID = raw.PaymentIntent.ID
	e.SetupIntentID = raw.SetupIntent.ID
	e.ChargeID = raw.Charge.ID
	return nil
}

// Error is the single error type returned by this module. The Kind field
// determines which of the remaining fields are populated.
//
// An Error never contains the client secret in any field.
type Error struct {
	Kind ErrorKind

	// Status is the HTTP status code. Set for KindAPI only.
	Status int

	// API is the decoded provider error body. Set for KindAPI when the
	// body parsed; nil when the error response itself was malformed.
	API *APIError

	// Detail is a short human-readable description of the failure.
	Detail string

	// RawBody is the unparsed response body. Set for KindDeserialize and
	// for malformed API error responses.
	RawBody []byte

	// RequestID is the value of the Request-Id response header, when one
	// was received. Useful when contacting Stripe support.
	RequestID string

	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		if e.API != nil && e.API.Message != "" {
			return fmt.Sprintf("stripe: %s (status %d, type %s)", e.API.Message, e.Status, e.API.Type)
		}
		return fmt.Sprintf("stripe: %s (status %d)", e.Detail, e.Status)
	default:
		if e.cause != nil {
			return fmt.Sprintf("stripe: %s: %s: %v", e.Kind, e.Detail, e.cause)
		}
		return fmt.Sprintf("stripe: %s: %s", e.Kind, e.Detail)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Retryable reports whether re-issuing the request could succeed.
// Transport failures, conflicts, rate limits and server errors are
// retryable; everything else would only repeat the same outcome.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTransport:
		return true
	case KindAPI:
		return retryableStatus(e.Status)
	default:
		return false
	}
}

func retryableStatus(status int) bool {
	switch {
	case status == http.StatusConflict:
		return true
	case status == http.StatusTooManyRequests:
		return true
	case status >= 500:
		return true
	default:
		return false
	}
}

// AsError unwraps err into a *Error if one is in the chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func newTransportError(detail string, cause error) *Error {
	return &Error{Kind: KindTransport, Detail: detail, cause: cause}
}

func newDeserializeError(detail string, raw []byte, cause error) *Error {
	return &Error{Kind: KindDeserialize, Detail: detail, RawBody: raw, cause: cause}
}

func clientErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindClient, Detail: fmt.Sprintf(format, args...)}
}

// SignatureError constructs a KindWebhookSignature error. The webhook
// package uses it; it is exported for callers implementing custom
// verification on top of the same taxonomy.
func SignatureError(detail string, cause error) *Error {
	return &Error{Kind: KindWebhookSignature, Detail: detail, cause: cause}
}
