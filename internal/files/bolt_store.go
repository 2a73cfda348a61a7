package files

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/harrylevesque/hellonames/internal/models"
)

const bucketNames = "names"

// BoltStore keeps entries in a bbolt bucket keyed by sequence number, so a
// cursor walk yields insertion order.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketNames))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Append stores a name under the next sequence number.
func (s *BoltStore) Append(ctx context.Context, name string) (models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return models.Entry{}, err
	}
	e := models.Entry{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
	value, err := json.Marshal(e)
	if err != nil {
		return models.Entry{}, err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketNames))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), value)
	})
	if err == bolt.ErrDatabaseNotOpen {
		return models.Entry{}, ErrClosed
	}
	return e, err
}

// Names returns all stored names in insertion order.
func (s *BoltStore) Names(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketNames)).ForEach(func(_, v []byte) error {
			var e models.Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			names = append(names, e.Name)
			return nil
		})
	})
	if err == bolt.ErrDatabaseNotOpen {
		return nil, ErrClosed
	}
	return names, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
