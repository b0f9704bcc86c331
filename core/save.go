package core

import (
	"fmt"
	"time"

	"github.com/0xRadioAc7iv/go-quickdata/internal/record"
)

// Save stores v under key.
//
// If key already holds a record whose slot has the same footprint as v, or
// both are text and v is smaller, the record is overwritten in place and the
// leftover bytes of a text slot become slack. Otherwise a new record is
// appended and the old one is left as dead space until the next Defragment.
func (s *Store) Save(key string, v Value) (err error) {
	start := time.Now()
	var inPlace bool
	defer func() {
		s.metrics.RecordSave(v.Tag.String(), inPlace, time.Since(start), err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if inPlace, err = s.save(key, v); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

func (s *Store) SaveByte(key string, v uint8) error     { return s.Save(key, record.Byte(v)) }
func (s *Store) SaveShort(key string, v int16) error    { return s.Save(key, record.Short(v)) }
func (s *Store) SaveInt(key string, v int32) error      { return s.Save(key, record.Int(v)) }
func (s *Store) SaveLong(key string, v int64) error     { return s.Save(key, record.Long(v)) }
func (s *Store) SaveFloat(key string, v float32) error  { return s.Save(key, record.Float(v)) }
func (s *Store) SaveDouble(key string, v float64) error { return s.Save(key, record.Double(v)) }
func (s *Store) SaveBool(key string, v bool) error      { return s.Save(key, record.Bool(v)) }
func (s *Store) SaveString(key string, v string) error  { return s.Save(key, record.String(v)) }

func (s *Store) save(key string, v Value) (bool, error) {
	if !v.Tag.Valid() {
		return false, fmt.Errorf("cannot store %s value", v.Tag)
	}
	if record.UTFLen(key) > MaxKeyLen {
		return false, fmt.Errorf("key: %w", ErrTooLong)
	}
	if v.Tag == TagString && record.UTFLen(v.Text()) > MaxTextLen {
		return false, fmt.Errorf("text: %w", ErrTooLong)
	}
	size := v.Size()

	if entry, ok := s.keyDir.Get(key); ok {
		tag, slot, err := record.SlotAt(s.backend, entry.Offset)
		if err != nil {
			return false, err
		}
		if fits(tag, slot, v.Tag, size) {
			buf, err := record.EncodeValue(nil, v, slot-size)
			if err != nil {
				return false, err
			}
			if _, err := s.backend.WriteAt(buf, entry.Offset); err != nil {
				return false, err
			}
			s.keyDir.Set(key, KeyDirEntry{Offset: entry.Offset, Tag: v.Tag})
			return true, nil
		}
		s.logger.Debug("relocating record", "key", key, "slot", slot, "size", size)
	}

	rec, tagOffset, err := record.EncodeRecord(key, v)
	if err != nil {
		return false, err
	}
	off := s.size
	if _, err := s.backend.WriteAt(rec, off); err != nil {
		return false, err
	}
	s.size += int64(len(rec))
	s.keyDir.Set(key, KeyDirEntry{Offset: off + int64(tagOffset), Tag: v.Tag})
	s.metrics.SetFileSize(s.size)
	return false, nil
}

// fits reports whether a value of kind t and footprint size can overwrite a
// slot of kind old and footprint slot. Equal footprints always fit. A smaller
// text fits an old text slot as long as the leftover fits the slack count.
func fits(old Tag, slot int, t Tag, size int) bool {
	if size == slot {
		return true
	}
	return old == TagString && t == TagString && size < slot && slot-size <= record.MaxSlack
}
