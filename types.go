package stripekit

import (
	"bytes"
	"encoding/json"
	"time"
)

// Timestamp is seconds since the Unix epoch, as Stripe represents every
// instant on the wire.
type Timestamp int64

// Time converts the timestamp to a time.Time in UTC.
func (t Timestamp) Time() time.Time { return time.Unix(int64(t), 0).UTC() }

// TimestampOf truncates t to seconds.
func TimestampOf(t time.Time) Timestamp { return Timestamp(t.Unix()) }

// Metadata is the free-form key/value set attachable to most resources.
type Metadata map[string]string

// Address is the postal address shape shared by several resources.
type Address struct {
	City       string `json:"city,omitempty" form:"city"`
	Country    string `json:"country,omitempty" form:"country"`
	Line1      string `json:"line1,omitempty" form:"line1"`
	Line2      string `json:"line2,omitempty" form:"line2"`
	PostalCode string `json:"postal_code,omitempty" form:"postal_code"`
	State      string `json:"state,omitempty" form:"state"`
}

// RangeQuery filters a list operation by a timestamp field. Bounds are
// combined with AND; zero bounds are omitted from the request.
type RangeQuery struct {
	GT  Timestamp `form:"gt,omitzero"`
	GTE Timestamp `form:"gte,omitzero"`
	LT  Timestamp `form:"lt,omitzero"`
	LTE Timestamp `form:"lte,omitzero"`
}

// List is the envelope every list endpoint returns. Data never exceeds the
// requested limit; HasMore reports whether another page existed at the time
// of the call.
type List[T any] struct {
	Object     string `json:"object"`
	Data       []T    `json:"data"`
	HasMore    bool   `json:"has_more"`
	URL        string `json:"url"`
	TotalCount *int64 `json:"total_count,omitempty"`
}

// Tombstone is the minimal object returned for a deleted resource.
type Tombstone struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// MaybeDeleted is the deleted-or-live union some retrieve endpoints return.
// Deserialization dispatches on the `deleted` field: absent or false means
// the live variant.
type MaybeDeleted[T any] struct {
	Live    *T
	Deleted *Tombstone
}

// ObjectID returns the identifier from whichever variant is populated.
func (m MaybeDeleted[T]) ObjectID() string {
	if m.Deleted != nil {
		return m.Deleted.ID
	}
	if m.Live != nil {
		if live, ok := any(*m.Live).(Object); ok {
			return live.ObjectID()
		}
	}
	return ""
}

func (m *MaybeDeleted[T]) UnmarshalJSON(data []byte) error {
	var probe struct {
		Deleted bool `json:"deleted"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Deleted {
		m.Live = nil
		m.Deleted = new(Tombstone)
		return json.Unmarshal(data, m.Deleted)
	}
	m.Deleted = nil
	m.Live = new(T)
	return json.Unmarshal(data, m.Live)
}

func (m MaybeDeleted[T]) MarshalJSON() ([]byte, error) {
	if m.Deleted != nil {
		return json.Marshal(m.Deleted)
	}
	return json.Marshal(m.Live)
}

// Expandable is a reference that the API returns either as a bare id or,
// when the corresponding `expand` path is requested, as the inlined object.
// Dispatch is by JSON shape: string selects the id branch, object the full
// branch.
type Expandable[T Object] struct {
	id    string
	value *T
}

// ExpandableID constructs the id-only branch.
func ExpandableID[T Object](id string) Expandable[T] {
	return Expandable[T]{id: id}
}

// ExpandableObject constructs the inlined branch.
func ExpandableObject[T Object](v *T) Expandable[T] {
	return Expandable[T]{value: v}
}

// ID returns the identifier regardless of branch.
func (e Expandable[T]) ID() string {
	if e.value != nil {
		return (*e.value).ObjectID()
	}
	return e.id
}

// Object returns the inlined value and whether it is present.
func (e Expandable[T]) Object() (*T, bool) { return e.value, e.value != nil }

// Empty reports whether the reference is entirely absent.
func (e Expandable[T]) Empty() bool { return e.value == nil && e.id == "" }

func (e Expandable[T]) MarshalJSON() ([]byte, error) {
	if e.value != nil {
		return json.Marshal(e.value)
	}
	if e.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(e.id)
}

func (e *Expandable[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*e = Expandable[T]{}
		return nil
	}
	if trimmed[0] == '"' {
		e.value = nil
		return json.Unmarshal(trimmed, &e.id)
	}
	e.id = ""
	e.value = new(T)
	return json.Unmarshal(trimmed, e.value)
}
