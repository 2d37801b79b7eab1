package openapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
)

func TestLockfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.lock")
	lock := &Lockfile{
		Version:   "v1268",
		Source:    "https://example.com/spec3.json",
		SHA256:    "abc123",
		FetchedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := lock.Write(path); err != nil {
		t.Fatal(err)
	}

	got, err := ReadLockfile(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *lock {
		t.Fatalf("round trip: got %+v, want %+v", got, lock)
	}
}

func TestReadLockfileErrors(t *testing.T) {
	if _, err := ReadLockfile(filepath.Join(t.TempDir(), "absent.lock")); err == nil {
		t.Fatal("expected error for a missing lockfile")
	}
}

func TestFetch(t *testing.T) {
	const doc = `{"openapi":"3.0.0"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1268/openapi/spec3.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(doc))
	}))
	defer srv.Close()

	f := Fetcher{URLTemplate: srv.URL + "/%s/openapi/spec3.json"}
	data, lock, err := f.Fetch(context.Background(), "v1268")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != doc {
		t.Fatalf("data = %q", data)
	}
	if lock.Version != "v1268" || len(lock.SHA256) != 64 {
		t.Fatalf("lock = %+v", lock)
	}

	if err := lock.Verify(data); err != nil {
		t.Fatal(err)
	}
	if err := lock.Verify([]byte("tampered")); err == nil {
		t.Fatal("expected digest mismatch")
	}

	if _, _, err := f.Fetch(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for 404")
	}
}
