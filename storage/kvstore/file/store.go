package filekv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core"
)

// Store is a JSON-file-backed KeyValueStore: the student CLI's analog of
// browser local storage. The whole table is rewritten on every mutation,
// which is fine at this scale (a handful of keys per student).
type Store struct {
	path  string
	mutex sync.Mutex
	table map[string]string
}

var _ core.KeyValueStore = (*Store)(nil)

// Open loads the table from `path`, creating parent directories as needed.
// An unreadable table starts empty rather than failing; a client-local
// store is always recoverable by recreating its records.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "creating session dir")
	}

	s := &Store{path: path, table: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "reading session file")
	}
	if err := json.Unmarshal(raw, &s.table); err != nil {
		s.table = make(map[string]string)
	}
	return s, nil
}

func (s *Store) Get(key string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if val, ok := s.table[key]; ok {
		return val, nil
	}
	return "", core.ErrKeyNotFound
}

func (s *Store) Set(key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.table[key] = value
	return s.flush()
}

func (s *Store) Remove(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.table, key)
	return s.flush()
}

func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.table, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding session file")
	}
	return errors.Wrap(os.WriteFile(s.path, raw, 0o600), "writing session file")
}
