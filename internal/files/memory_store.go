package files

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrylevesque/hellonames/internal/models"
)

// MemoryStore keeps names in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []models.Entry
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(ctx context.Context, name string) (models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return models.Entry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Entry{}, ErrClosed
	}
	e := models.Entry{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *MemoryStore) Names(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
