package book

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketCatalog = []byte("catalog")
	keyBooks      = []byte("books")
)

// LocalStore keeps the whole collection as one JSON array under a single
// key. Every mutation rewrites the full array. mu serialises the
// read-modify-write cycle so id assignment cannot race.
type LocalStore struct {
	db *bolt.DB
	mu sync.Mutex

	// memory-only mode
	data []byte
}

// NewLocalStore opens (or creates) the bolt file at path. An empty path
// gives a memory-only store that lives as long as the process.
func NewLocalStore(path string) (*LocalStore, error) {
	if path == "" {
		return &LocalStore{}, nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCatalog)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db}, nil
}

func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// load must be called with mu held.
func (s *LocalStore) load() ([]Book, error) {
	var raw []byte
	if s.db == nil {
		raw = s.data
	} else {
		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketCatalog)
			if b == nil {
				return nil
			}
			if v := b.Get(keyBooks); v != nil {
				raw = make([]byte, len(v))
				copy(raw, v)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	books := []Book{}
	if len(raw) == 0 {
		return books, nil
	}
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("decode local books: %w", err)
	}
	return books, nil
}

// save must be called with mu held.
func (s *LocalStore) save(books []Book) error {
	raw, err := json.Marshal(books)
	if err != nil {
		return err
	}
	if s.db == nil {
		s.data = raw
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketCatalog)
		if err != nil {
			return err
		}
		return b.Put(keyBooks, raw)
	})
}

func (s *LocalStore) List(_ context.Context) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *LocalStore) Get(_ context.Context, id int64) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load()
	if err != nil {
		return Book{}, err
	}
	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

func (s *LocalStore) Create(_ context.Context, in Input) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load()
	if err != nil {
		return Book{}, err
	}

	var maxID int64
	for _, b := range books {
		if b.ID > maxID {
			maxID = b.ID
		}
	}

	created := in.withID(maxID + 1)
	books = append(books, created)
	if err := s.save(books); err != nil {
		return Book{}, err
	}
	return created, nil
}

func (s *LocalStore) Update(_ context.Context, id int64, in Input) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load()
	if err != nil {
		return Book{}, err
	}
	for i := range books {
		if books[i].ID == id {
			books[i] = in.withID(id)
			if err := s.save(books); err != nil {
				return Book{}, err
			}
			return books[i], nil
		}
	}
	return Book{}, ErrNotFound
}

func (s *LocalStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load()
	if err != nil {
		return err
	}
	kept := books[:0]
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(books) {
		return ErrNotFound
	}
	return s.save(kept)
}
