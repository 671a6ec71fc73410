package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

const cleanupInterval = 5 * time.Minute

// SummaryStore is an in-memory store for completed summary records with
// expiration. Records live long enough to be fetched and exported, then age
// out.
type SummaryStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[uuid.UUID]*storedRecord
	stop  chan struct{}
}

type storedRecord struct {
	record     *entities.SummaryRecord
	expireTime time.Time
}

// NewSummaryStore creates a store whose entries expire after ttl.
func NewSummaryStore(ttl time.Duration) *SummaryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	store := &SummaryStore{
		ttl:   ttl,
		items: make(map[uuid.UUID]*storedRecord),
		stop:  make(chan struct{}),
	}

	// Cleanup goroutine removes expired records
	go store.cleanupExpired()

	return store
}

// Put stores a record under its own ID
func (s *SummaryStore) Put(record *entities.SummaryRecord) {
	if record == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[record.ID] = &storedRecord{
		record:     record,
		expireTime: time.Now().Add(s.ttl),
	}
}

// Get retrieves a record by ID (returns false if not found or expired)
func (s *SummaryStore) Get(id uuid.UUID) (*entities.SummaryRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return nil, false
	}

	if time.Now().After(item.expireTime) {
		return nil, false
	}

	return item.record, true
}

// Delete removes a record
func (s *SummaryStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
}

// Len reports the number of stored records, expired ones included until
// the next cleanup pass.
func (s *SummaryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Close stops the cleanup goroutine
func (s *SummaryStore) Close() {
	close(s.stop)
}

// cleanupExpired periodically removes expired records
func (s *SummaryStore) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for id, item := range s.items {
				if now.After(item.expireTime) {
					delete(s.items, id)
				}
			}
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}
