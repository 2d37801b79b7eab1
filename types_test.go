package stripekit

import (
	"encoding/json"
	"testing"
	"time"
)

// fakeCharge is a minimal Object for exercising the generic containers.
type fakeCharge struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
}

func (f fakeCharge) ObjectID() string { return f.ID }

func TestTimestamp(t *testing.T) {
	ts := Timestamp(1700000000)
	if got := ts.Time(); !got.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("Time() = %v", got)
	}
	if got := TimestampOf(time.Unix(1700000000, 999999999)); got != ts {
		t.Fatalf("TimestampOf truncation: got %d", got)
	}
}

func TestExpandableUnmarshalString(t *testing.T) {
	var e Expandable[fakeCharge]
	if err := json.Unmarshal([]byte(`"ch_123"`), &e); err != nil {
		t.Fatal(err)
	}
	if e.ID() != "ch_123" {
		t.Fatalf("ID() = %q", e.ID())
	}
	if _, ok := e.Object(); ok {
		t.Fatal("string branch should not carry an object")
	}
}

func TestExpandableUnmarshalObject(t *testing.T) {
	var e Expandable[fakeCharge]
	if err := json.Unmarshal([]byte(`{"id":"ch_123","amount":500}`), &e); err != nil {
		t.Fatal(err)
	}
	obj, ok := e.Object()
	if !ok {
		t.Fatal("object branch missing")
	}
	if obj.Amount != 500 || e.ID() != "ch_123" {
		t.Fatalf("obj = %+v, ID() = %q", obj, e.ID())
	}
}

func TestExpandableNull(t *testing.T) {
	e := ExpandableID[fakeCharge]("ch_1")
	if err := json.Unmarshal([]byte(`null`), &e); err != nil {
		t.Fatal(err)
	}
	if !e.Empty() {
		t.Fatal("null should reset to the empty reference")
	}
}

func TestExpandableMarshal(t *testing.T) {
	id := ExpandableID[fakeCharge]("ch_1")
	b, err := json.Marshal(id)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"ch_1"` {
		t.Fatalf("id branch = %s", b)
	}

	full := ExpandableObject(&fakeCharge{ID: "ch_2", Amount: 7})
	b, err = json.Marshal(full)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"id":"ch_2","amount":7}` {
		t.Fatalf("object branch = %s", b)
	}
}

func TestMaybeDeletedDispatch(t *testing.T) {
	var m MaybeDeleted[fakeCharge]
	if err := json.Unmarshal([]byte(`{"id":"ch_1","amount":3}`), &m); err != nil {
		t.Fatal(err)
	}
	if m.Live == nil || m.Deleted != nil {
		t.Fatalf("expected live variant, got %+v", m)
	}
	if m.ObjectID() != "ch_1" {
		t.Fatalf("ObjectID() = %q", m.ObjectID())
	}

	if err := json.Unmarshal([]byte(`{"id":"ch_1","object":"charge","deleted":true}`), &m); err != nil {
		t.Fatal(err)
	}
	if m.Live != nil || m.Deleted == nil || !m.Deleted.Deleted {
		t.Fatalf("expected deleted variant, got %+v", m)
	}
	if m.ObjectID() != "ch_1" {
		t.Fatalf("ObjectID() = %q", m.ObjectID())
	}
}

func TestMaybeDeletedZeroValue(t *testing.T) {
	var m MaybeDeleted[fakeCharge]
	if got := m.ObjectID(); got != "" {
		t.Fatalf("zero value ObjectID() = %q", got)
	}
}
