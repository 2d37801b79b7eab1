package webhook

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestMemoryStoreDedup(t *testing.T) {
	s := NewMemoryStore()
	if err := s.LogEvent("evt_1"); err != nil {
		t.Fatal(err)
	}
	if err := s.LogEvent("evt_1"); !errors.Is(err, ErrEventExists) {
		t.Fatalf("err = %v, want ErrEventExists", err)
	}
	if err := s.LogEvent("evt_2"); err != nil {
		t.Fatal(err)
	}
}

func TestBoltStoreDedup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	s, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.LogEvent("evt_1"); err != nil {
		t.Fatal(err)
	}
	if err := s.LogEvent("evt_1"); !errors.Is(err, ErrEventExists) {
		t.Fatalf("err = %v, want ErrEventExists", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Logged ids survive a reopen.
	s, err = NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.LogEvent("evt_1"); !errors.Is(err, ErrEventExists) {
		t.Fatalf("after reopen err = %v, want ErrEventExists", err)
	}
}
