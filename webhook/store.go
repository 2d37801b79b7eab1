package webhook

import (
	"errors"
	"sync"
	"time"

	"github.com/boltdb/bolt"
)

// ErrEventExists reports that an event ID has already been logged.
var ErrEventExists = errors.New("webhook: event already logged")

// Store records processed event IDs so redeliveries can be suppressed.
type Store interface {
	// LogEvent marks id as processed. It returns ErrEventExists when id
	// was logged before.
	LogEvent(id string) error
}

const eventBucket = "webhook_events"

// BoltStore persists processed event IDs in a bolt database.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if needed) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(eventBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) LogEvent(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(eventBucket))
		if b.Get([]byte(id)) != nil {
			return ErrEventExists
		}
		return b.Put([]byte(id), []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}

func (s *BoltStore) Close() error { return s.db.Close() }

// MemoryStore is an in-process Store for tests and single-instance
// receivers.
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]struct{})}
}

func (s *MemoryStore) LogEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[id]; ok {
		return ErrEventExists
	}
	s.seen[id] = struct{}{}
	return nil
}
