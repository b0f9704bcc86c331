package core

import (
	"fmt"
	"time"

	"github.com/0xRadioAc7iv/go-quickdata/internal/record"
)

// Defragment rewrites the file so every key holds exactly one record with no
// slack, dropping the dead space left by relocations. A corrupt file is
// reported as ErrCorruptStore and left untouched.
func (s *Store) Defragment() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return s.defragment()
}

func (s *Store) defragment() (err error) {
	start := time.Now()
	before, err := s.backend.Size()
	if err != nil {
		return fmt.Errorf("defragment: %w", err)
	}
	defer func() {
		s.metrics.RecordDefragment(before, s.size, time.Since(start), err)
	}()

	data := make([]byte, before)
	if n, err := s.backend.ReadAt(data, 0); n < len(data) {
		return fmt.Errorf("defragment: read: %w", err)
	}

	latest := make(map[string]Value)
	sc := record.NewScanner(data)
	for sc.Scan() {
		latest[sc.Key()] = sc.Value()
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("defragment: %w", err)
	}

	buf := make([]byte, 0, before)
	keyDir := NewKeyDir()
	for key, v := range latest {
		if buf, err = record.AppendUTF(buf, key); err != nil {
			return fmt.Errorf("defragment: key %q: %w", key, err)
		}
		keyDir.Set(key, KeyDirEntry{Offset: int64(len(buf)), Tag: v.Tag})
		if buf, err = record.EncodeValue(buf, v, 0); err != nil {
			return fmt.Errorf("defragment: key %q: %w", key, err)
		}
	}

	if err := s.backend.Truncate(0); err != nil {
		return fmt.Errorf("defragment: %w", err)
	}
	// The old offsets are gone once the file is truncated.
	s.keyDir.Clear()
	s.size = 0
	if len(buf) > 0 {
		if _, err := s.backend.WriteAt(buf, 0); err != nil {
			return fmt.Errorf("defragment: write: %w", err)
		}
	}

	s.keyDir = keyDir
	s.size = int64(len(buf))
	s.metrics.SetFileSize(s.size)
	s.logger.Debug("store defragmented", "keys", keyDir.Len(), "before", before, "after", s.size)
	return nil
}
