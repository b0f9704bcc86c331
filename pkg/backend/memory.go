package backend

import (
	"io"
	"os"
)

// Memory is an in-memory Backend for tests. It behaves like a file that is
// never flushed: writes past the end zero-fill the gap, reads past the end
// return io.EOF, and everything fails with os.ErrClosed after Close.
type Memory struct {
	data   []byte
	closed bool
}

// NewMemory returns a Memory holding a copy of initial.
func NewMemory(initial []byte) *Memory {
	return &Memory{data: append([]byte(nil), initial...)}
}

func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	if off < 0 {
		return 0, os.ErrInvalid
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	if off < 0 {
		return 0, os.ErrInvalid
	}
	if end := off + int64(len(p)); end > int64(len(m.data)) {
		m.grow(end)
	}
	return copy(m.data[off:], p), nil
}

func (m *Memory) Size() (int64, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	return int64(len(m.data)), nil
}

func (m *Memory) Truncate(size int64) error {
	if m.closed {
		return os.ErrClosed
	}
	if size < 0 {
		return os.ErrInvalid
	}
	if size > int64(len(m.data)) {
		m.grow(size)
		return nil
	}
	m.data = m.data[:size]
	return nil
}

func (m *Memory) Close() error {
	if m.closed {
		return os.ErrClosed
	}
	m.closed = true
	return nil
}

// Bytes returns a copy of the current contents.
func (m *Memory) Bytes() []byte {
	return append([]byte(nil), m.data...)
}

func (m *Memory) grow(size int64) {
	if int64(cap(m.data)) >= size {
		old := len(m.data)
		m.data = m.data[:size]
		clear(m.data[old:])
		return
	}
	grown := make([]byte, size, size*2)
	copy(grown, m.data)
	m.data = grown
}
