package storage

import (
	"context"
	"strconv"
	"sync"
)

// InMemoryBackupStore keeps backups in memory. Used when object storage
// is not configured and in tests.
type InMemoryBackupStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	counter int
}

// NewInMemoryBackupStore creates an empty in-memory backup store
func NewInMemoryBackupStore() *InMemoryBackupStore {
	return &InMemoryBackupStore{objects: make(map[string][]byte)}
}

// Store keeps the backup document in memory
func (s *InMemoryBackupStore) Store(_ context.Context, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	key := "memory/smartauto-backup-" + strconv.Itoa(s.counter) + ".json"
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return key, nil
}

// Get returns a stored backup by key
func (s *InMemoryBackupStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

var _ BackupStore = (*InMemoryBackupStore)(nil)
