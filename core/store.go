package core

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/0xRadioAc7iv/go-quickdata/pkg/backend"
)

// Store is an open quickdata store. All methods are safe for concurrent use;
// a single mutex serializes every operation.
type Store struct {
	mu      sync.Mutex
	backend backend.Backend
	keyDir  *KeyDir
	size    int64 // end of file, where the next record is appended
	closed  bool

	logger  *slog.Logger
	metrics MetricsCollector
}

// Open opens or creates the store file at path.
func Open(path string, opts ...Option) (*Store, error) {
	o := applyOptions(opts)

	f, err := backend.OpenFile(path, o.sync)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return newStore(f, o)
}

// New opens a store kept in b. The store owns b from here on and closes it
// with Close, or right away if New fails.
//
// The file is defragmented before New returns. A corrupt file is logged and
// emptied, leaving a usable store; any other failure is returned.
func New(b backend.Backend, opts ...Option) (*Store, error) {
	return newStore(b, applyOptions(opts))
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func newStore(b backend.Backend, o *options) (*Store, error) {
	s := &Store{
		backend: b,
		keyDir:  NewKeyDir(),
		logger:  o.logger,
		metrics: o.metrics,
	}

	err := s.defragment()
	if errors.Is(err, ErrCorruptStore) {
		s.logger.Error("store file is corrupt, starting empty", "error", err)
		err = s.clear(ResetCorrupt)
	}
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	s.logger.Debug("store opened", "keys", s.keyDir.Len(), "size", s.size)
	return s, nil
}

// TypeOf returns the kind stored under key, or TagAbsent if there is none.
func (s *Store) TypeOf(key string) Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return TagAbsent
	}
	entry, ok := s.keyDir.Get(key)
	if !ok {
		return TagAbsent
	}
	return entry.Tag
}

// Clear removes every key and truncates the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return s.clear(ResetClear)
}

func (s *Store) clear(reason string) error {
	if err := s.backend.Truncate(0); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	s.keyDir.Clear()
	s.size = 0

	s.metrics.RecordReset(reason)
	s.metrics.SetFileSize(0)
	return nil
}

// Keys returns every stored key in lexical order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	keys := s.keyDir.Keys()
	slices.Sort(keys)
	return keys
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	return s.keyDir.Len()
}

// Size returns the length of the store file in bytes, including dead space
// left behind by relocated records.
func (s *Store) Size() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}
	return s.size, nil
}

// Close releases the backend. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.keyDir.Clear()

	if err := s.backend.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	s.logger.Debug("store closed")
	return nil
}
