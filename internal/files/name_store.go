package files

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrylevesque/hellonames/internal/models"
)

// NameStore persists entries as a JSON array in a single file. The whole
// file is rewritten on every append.
type NameStore struct {
	filePath string
	mu       sync.RWMutex
	entries  []models.Entry
	closed   bool
}

// NewNameStore opens the store at filePath, loading existing entries.
func NewNameStore(filePath string) (*NameStore, error) {
	s := &NameStore{filePath: filePath}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load name store: %w", err)
	}
	return s, nil
}

// Append adds a name and flushes the file.
func (s *NameStore) Append(ctx context.Context, name string) (models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return models.Entry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Entry{}, ErrClosed
	}

	e := models.Entry{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
	entries := append(s.entries[:len(s.entries):len(s.entries)], e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return models.Entry{}, err
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return models.Entry{}, err
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return models.Entry{}, err
	}

	s.entries = entries
	return e, nil
}

// Names returns all stored names in insertion order.
func (s *NameStore) Names(ctx context.Context) ([]string, error) {
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

func (s *NameStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *NameStore) load() error {
	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, that's fine
		}
		return err
	}
	defer file.Close()

	var entries []models.Entry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return err
	}
	s.entries = entries
	return nil
}
