package core

import (
	"errors"
	"fmt"

	"github.com/0xRadioAc7iv/go-quickdata/internal/record"
)

var (
	// ErrCorruptStore is returned when the store file holds an unknown type
	// tag, malformed text or a length running past end of file.
	ErrCorruptStore = record.ErrCorrupt

	// ErrMissingKey is returned when loading a key that was never saved.
	ErrMissingKey = errors.New("missing key")

	// ErrTypeMismatch is matched by every *TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrTooLong is returned when a key or text value encodes to more than
	// 65535 bytes.
	ErrTooLong = record.ErrTooLong

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("store closed")
)

// TypeMismatchError reports a typed load of a key holding another kind.
type TypeMismatchError struct {
	Key  string
	Want Tag
	Got  Tag
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("key %q: want %s, stored %s", e.Key, e.Want, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

func missingKey(key string) error {
	return fmt.Errorf("key %q: %w", key, ErrMissingKey)
}
