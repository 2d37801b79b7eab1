package stripekit

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Request is the wire-level description of one API call, produced by a
// generated operation's Build method and consumed by the client engine.
type Request struct {
	Method string
	Path   string

	// Query is appended to the URL. Populated for GET and DELETE; POST
	// requests may carry query parameters too (provider convention).
	Query *Values

	// Form is the x-www-form-urlencoded body. POST only.
	Form *Values

	// Strategy overrides the client default when non-nil.
	Strategy *RequestStrategy

	// IdempotencyKey, when set, is sent verbatim. Otherwise the engine
	// synthesizes one for retried mutations.
	IdempotencyKey string
}

// Operation is implemented by every generated request value.
type Operation interface {
	Build() (*Request, error)
}

// NewRequest validates params and encodes them into a Request. GET and
// DELETE carry the encoding in the query string, POST in the body.
// Generated Build implementations funnel through here.
func NewRequest(method, path string, params any) (*Request, error) {
	req := &Request{Method: method, Path: path}
	if params == nil {
		return req, nil
	}
	if err := validate.Struct(params); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return nil, clientErrorf("invalid parameters for %s %s: %v", method, path, err)
		}
		return nil, err
	}
	encoded, err := EncodeForm(params)
	if err != nil {
		return nil, err
	}
	switch method {
	case http.MethodGet, http.MethodDelete:
		req.Query = encoded
	default:
		req.Form = encoded
	}
	return req, nil
}

// Do builds op, executes it on c and decodes the response body into a new
// T. It is the typed glue every generated Send method delegates to.
func Do[T any](ctx context.Context, c *Client, op Operation) (*T, error) {
	req, err := op.Build()
	if err != nil {
		return nil, err
	}
	body, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(body, out); err != nil {
		return nil, newDeserializeError("decoding response body", body, err)
	}
	return out, nil
}

// DoList is Do specialized to list envelopes, so generated list operations
// read as DoList[Customer] rather than Do[List[Customer]].
func DoList[T any](ctx context.Context, c *Client, op Operation) (*List[T], error) {
	return Do[List[T]](ctx, c, op)
}

// DoBlocking is Do driving its own context, bounded by the client's
// configured timeout. It exists so callers without a context plumbed
// through can still make one-shot calls.
func DoBlocking[T any](c *Client, op Operation) (*T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return Do[T](ctx, c, op)
}
