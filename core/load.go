package core

import (
	"fmt"
	"time"

	"github.com/0xRadioAc7iv/go-quickdata/internal/record"
)

// Load returns the value stored under key, whatever its kind.
func (s *Store) Load(key string) (Value, error) {
	return s.load(key, TagAbsent)
}

func (s *Store) LoadByte(key string) (uint8, error) {
	v, err := s.load(key, TagByte)
	return v.Byte(), err
}

func (s *Store) LoadShort(key string) (int16, error) {
	v, err := s.load(key, TagShort)
	return v.Short(), err
}

func (s *Store) LoadInt(key string) (int32, error) {
	v, err := s.load(key, TagInt)
	return v.Int(), err
}

func (s *Store) LoadLong(key string) (int64, error) {
	v, err := s.load(key, TagLong)
	return v.Long(), err
}

func (s *Store) LoadFloat(key string) (float32, error) {
	v, err := s.load(key, TagFloat)
	return v.Float(), err
}

func (s *Store) LoadDouble(key string) (float64, error) {
	v, err := s.load(key, TagDouble)
	return v.Double(), err
}

func (s *Store) LoadBool(key string) (bool, error) {
	v, err := s.load(key, TagBool)
	return v.Bool(), err
}

func (s *Store) LoadString(key string) (string, error) {
	v, err := s.load(key, TagString)
	return v.Text(), err
}

// load reads the value under key. A want other than TagAbsent must match
// the stored kind.
func (s *Store) load(key string, want Tag) (v Value, err error) {
	start := time.Now()
	defer func() {
		kind := want
		if kind == TagAbsent {
			kind = v.Tag
		}
		s.metrics.RecordLoad(kind.String(), time.Since(start), err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Value{}, ErrClosed
	}
	entry, ok := s.keyDir.Get(key)
	if !ok {
		return Value{}, missingKey(key)
	}
	if want != TagAbsent && entry.Tag != want {
		return Value{}, &TypeMismatchError{Key: key, Want: want, Got: entry.Tag}
	}

	v, _, err = record.ReadValueAt(s.backend, entry.Offset)
	if err != nil {
		return Value{}, fmt.Errorf("load %q: %w", key, err)
	}
	return v, nil
}
