package backend

import (
	"fmt"
	"os"
)

// File is a Backend over a single file on disk.
type File struct {
	f    *os.File
	mode SyncMode
}

// OpenFile opens or creates the file at path. With SyncAlways the file is
// opened with O_SYNC, so a write returns only once its data and metadata are
// on stable storage.
func OpenFile(path string, mode SyncMode) (*File, error) {
	flags := os.O_CREATE | os.O_RDWR
	if mode == SyncAlways {
		flags |= os.O_SYNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, err
	}
	return &File{f: f, mode: mode}, nil
}

func (b *File) ReadAt(p []byte, off int64) (int, error) {
	return b.f.ReadAt(p, off)
}

func (b *File) WriteAt(p []byte, off int64) (int, error) {
	return b.f.WriteAt(p, off)
}

func (b *File) Size() (int64, error) {
	info, err := b.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", b.f.Name(), err)
	}
	return info.Size(), nil
}

// Truncate changes the file size and syncs it, since O_SYNC does not cover
// ftruncate.
func (b *File) Truncate(size int64) error {
	if err := b.f.Truncate(size); err != nil {
		return err
	}
	if b.mode == SyncAlways {
		return b.f.Sync()
	}
	return nil
}

// Name returns the path the file was opened with.
func (b *File) Name() string {
	return b.f.Name()
}

func (b *File) Close() error {
	return b.f.Close()
}
