package record

import (
	"bytes"
	"fmt"
	"io"
)

// Scanner walks the records of a whole store file held in memory.
//
//	sc := record.NewScanner(data)
//	for sc.Scan() {
//	    use(sc.Key(), sc.Value())
//	}
//	if err := sc.Err(); err != nil { ... }
type Scanner struct {
	r      *bytes.Reader
	size   int64
	key    string
	value  Value
	offset int64
	err    error
}

func NewScanner(data []byte) *Scanner {
	return &Scanner{r: bytes.NewReader(data), size: int64(len(data))}
}

// Scan decodes the next record. It returns false at end of data or on the
// first error.
func (sc *Scanner) Scan() bool {
	if sc.err != nil || sc.r.Len() == 0 {
		return false
	}
	start := sc.pos()

	key, _, err := ReadUTF(sc.r)
	if err != nil {
		sc.fail(start, unexpected(err))
		return false
	}
	tagOffset := sc.pos()

	v, slack, err := DecodeValue(sc.r)
	if err != nil {
		sc.fail(tagOffset, err)
		return false
	}
	if int64(slack) > int64(sc.r.Len()) {
		sc.fail(tagOffset, fmt.Errorf("%w: slack of %d bytes runs past end of file", ErrCorrupt, slack))
		return false
	}
	sc.r.Seek(int64(slack), io.SeekCurrent)

	sc.key, sc.value, sc.offset = key, v, tagOffset
	return true
}

func (sc *Scanner) fail(off int64, err error) {
	sc.err = fmt.Errorf("record at offset %d: %w", off, err)
}

func (sc *Scanner) pos() int64 {
	return sc.size - int64(sc.r.Len())
}

func (sc *Scanner) Key() string { return sc.key }

func (sc *Scanner) Value() Value { return sc.value }

// Offset is the file position of the current record's tag byte.
func (sc *Scanner) Offset() int64 { return sc.offset }

// Err returns the error that stopped the scan, if any. Decoding from memory
// cannot fail for any reason other than corruption, so a non-nil Err always
// matches ErrCorrupt.
func (sc *Scanner) Err() error { return sc.err }
