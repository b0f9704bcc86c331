package core

import "github.com/0xRadioAc7iv/go-quickdata/internal/record"

// KeyDirEntry is the in-memory index entry for a single key.
//
// Offset points at the tag byte of the key's current record in the store
// file. Tag caches the kind stored there so type queries need no I/O.
type KeyDirEntry struct {
	Offset int64
	Tag    record.Tag
}

// KeyDir is the in-memory index mapping keys to their current records.
//
// It is rebuilt on every defragmentation and emptied by Clear. KeyDir is not
// safe for concurrent use; the owning store serializes access.
type KeyDir struct {
	entries map[string]KeyDirEntry
}

func NewKeyDir() *KeyDir {
	return &KeyDir{entries: make(map[string]KeyDirEntry)}
}

func (kd *KeyDir) Get(key string) (KeyDirEntry, bool) {
	entry, ok := kd.entries[key]
	return entry, ok
}

// Set inserts or overwrites the entry for key.
func (kd *KeyDir) Set(key string, entry KeyDirEntry) {
	kd.entries[key] = entry
}

func (kd *KeyDir) Has(key string) bool {
	_, ok := kd.entries[key]
	return ok
}

func (kd *KeyDir) Clear() {
	clear(kd.entries)
}

func (kd *KeyDir) Len() int {
	return len(kd.entries)
}

// Keys returns every indexed key in no particular order.
func (kd *KeyDir) Keys() []string {
	keys := make([]string, 0, len(kd.entries))
	for k := range kd.entries {
		keys = append(keys, k)
	}
	return keys
}
