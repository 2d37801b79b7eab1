// Package stripetest provides a scripted stub of the Stripe API for tests.
// It captures every inbound request and replays a queue of canned
// responses; the last response in the queue repeats once the queue drains,
// which makes retry tests read naturally.
package stripetest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gorilla/schema"
)

// Request is one captured inbound request.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Query  url.Values
	Form   url.Values
	Body   string
}

// Response is one scripted reply.
type Response struct {
	Status int
	Header map[string]string
	Body   string
}

// Server is an httptest.Server with a response script and request capture.
type Server struct {
	*httptest.Server

	t        *testing.T
	mu       sync.Mutex
	script   []Response
	requests []Request
}

// NewServer starts a stub server that is shut down with the test. With an
// empty script it answers 200 with an empty JSON object.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{t: t}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Respond queues a reply with a JSON body.
func (s *Server) Respond(status int, body string) *Server {
	return s.RespondWith(Response{Status: status, Body: body})
}

// RespondWith queues a fully specified reply.
func (s *Server) RespondWith(resp Response) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, resp)
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	form, _ := url.ParseQuery(string(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Query:  r.URL.Query(),
		Form:   form,
		Body:   string(body),
	})
	resp := Response{Status: http.StatusOK, Body: "{}"}
	if len(s.script) > 0 {
		resp = s.script[0]
		if len(s.script) > 1 {
			s.script = s.script[1:]
		}
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Request-Id", "req_stub")
	for k, v := range resp.Header {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.Status)
	io.WriteString(w, resp.Body)
}

// Hits returns the number of requests received so far.
func (s *Server) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of every captured request, in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request, failing the test if none arrived.
func (s *Server) Last() Request {
	s.t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		s.t.Fatal("stripetest: no requests captured")
	}
	return s.requests[len(s.requests)-1]
}

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// DecodeQuery decodes the captured query string into dst using `schema`
// struct tags.
func DecodeQuery(t *testing.T, req Request, dst any) {
	t.Helper()
	if err := queryDecoder.Decode(dst, req.Query); err != nil {
		t.Fatalf("stripetest: decoding query: %v", err)
	}
}

// DecodeForm decodes the captured form body into dst using `schema`
// struct tags.
func DecodeForm(t *testing.T, req Request, dst any) {
	t.Helper()
	if err := queryDecoder.Decode(dst, req.Form); err != nil {
		t.Fatalf("stripetest: decoding form body: %v", err)
	}
}
