package files

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrylevesque/hellonames/internal/models"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Store is an append-only list of names. Names are returned in insertion
// order.
type Store interface {
	Append(ctx context.Context, name string) (models.Entry, error)
	Names(ctx context.Context) ([]string, error)
	Close() error
}

const (
	jsonFileName = "names.json"
	boltFileName = "names.db"
)

// Open returns the store backend named by kind. File-backed stores live
// under dataDir, which is created if needed.
func Open(kind, dataDir string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "json", "bolt":
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		if kind == "json" {
			return NewNameStore(filepath.Join(dataDir, jsonFileName))
		}
		return NewBoltStore(filepath.Join(dataDir, boltFileName))
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}
