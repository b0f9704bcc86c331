// Package backend provides the random-access byte stores a quickdata store
// file lives in.
//
// The engine only needs positioned reads and writes, the current length and
// truncation, so anything implementing Backend can hold a store: a durable
// file on disk (OpenFile) or a plain byte buffer (Memory) for tests.
package backend

import "io"

// Backend is a random-access byte store.
//
// Writes past the current end extend it. Implementations are not required
// to be safe for concurrent use; the store serializes all access.
type Backend interface {
	io.ReaderAt
	io.WriterAt
	io.Closer

	// Size returns the current length in bytes.
	Size() (int64, error)

	// Truncate changes the length to size.
	Truncate(size int64) error
}

// SyncMode selects how writes reach stable storage.
type SyncMode int

const (
	// SyncAlways flushes every write to stable storage before it returns.
	SyncAlways SyncMode = iota

	// SyncNever leaves flushing to the operating system.
	SyncNever
)

func (m SyncMode) String() string {
	switch m {
	case SyncAlways:
		return "always"
	case SyncNever:
		return "never"
	default:
		return "unknown"
	}
}
