package stripekit

import (
	"context"
	"encoding/json"
	"iter"
	"net/http"
)

// Paginator walks a cursor-paginated list endpoint lazily. It keeps only
// the operation and the current pivot id, never the pages already seen, so
// a traversal over a large collection stays constant-size.
//
// Stripe returns items in reverse-chronological creation order and the
// paginator preserves it. Concurrent provider-side insertions can reorder
// the window; items may then be observed twice. That is inherent to cursor
// pagination and not deduplicated here.
type Paginator[T Object] struct {
	client *Client
	op     Operation
	cursor string
	done   bool
}

// NewPaginator wraps a list operation. The operation's own parameters
// (limit, filters, expansions) apply to every page.
func NewPaginator[T Object](c *Client, op Operation) *Paginator[T] {
	return &Paginator[T]{client: c, op: op}
}

// FromCursor restarts traversal just after the item with the given id.
// Use it to resume after a failed page.
func (p *Paginator[T]) FromCursor(id string) *Paginator[T] {
	p.cursor = id
	return p
}

// More reports whether another page may exist.
func (p *Paginator[T]) More() bool { return !p.done }

// NextPage fetches the next batch. After exhaustion it returns (nil, nil).
// A failed page leaves the pivot untouched, so the same paginator can be
// retried or a new one resumed via FromCursor.
func (p *Paginator[T]) NextPage(ctx context.Context) ([]T, error) {
	if p.done {
		return nil, nil
	}
	req, err := p.op.Build()
	if err != nil {
		return nil, err
	}
	if req.Method != http.MethodGet {
		return nil, clientErrorf("pagination requires a GET list operation, got %s %s", req.Method, req.Path)
	}
	if p.cursor != "" {
		if req.Query == nil {
			req.Query = &Values{}
		}
		req.Query.Set("starting_after", p.cursor)
	}

	body, err := p.client.execute(ctx, req)
	if err != nil {
		return nil, err
	}
	var page List[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, newDeserializeError("decoding list page", body, err)
	}
	if n := len(page.Data); n > 0 {
		p.cursor = page.Data[n-1].ObjectID()
	}
	if !page.HasMore || len(page.Data) == 0 {
		p.done = true
	}
	return page.Data, nil
}

// All returns a lazy stream over every remaining element, fetching pages
// on demand. A page failure yields the error once and ends the stream.
func (p *Paginator[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for p.More() {
			page, err := p.NextPage(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}
