package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

var (
	// ErrCorrupt is returned when bytes on disk do not form a valid record.
	ErrCorrupt = errors.New("corrupt store")

	// ErrTooLong is returned when a key, text or slack length does not fit
	// in its u16 count.
	ErrTooLong = errors.New("too long")
)

// MaxSlack is the largest slack count a text payload can carry.
const MaxSlack = 0xFFFF

// Value is one typed scalar. Values of the same kind compare equal with ==
// only when their bits match, so float comparisons are bit-exact.
type Value struct {
	Tag  Tag
	bits uint64 // raw payload of fixed kinds, 0/1 for bools
	text string
}

func Byte(v uint8) Value     { return Value{Tag: TagByte, bits: uint64(v)} }
func Short(v int16) Value    { return Value{Tag: TagShort, bits: uint64(uint16(v))} }
func Int(v int32) Value      { return Value{Tag: TagInt, bits: uint64(uint32(v))} }
func Long(v int64) Value     { return Value{Tag: TagLong, bits: uint64(v)} }
func Float(v float32) Value  { return Value{Tag: TagFloat, bits: uint64(math.Float32bits(v))} }
func Double(v float64) Value { return Value{Tag: TagDouble, bits: math.Float64bits(v)} }
func String(v string) Value  { return Value{Tag: TagString, text: v} }

func Bool(v bool) Value {
	if v {
		return Value{Tag: TagBool, bits: 1}
	}
	return Value{Tag: TagBool}
}

func (v Value) Byte() uint8     { return uint8(v.bits) }
func (v Value) Short() int16    { return int16(uint16(v.bits)) }
func (v Value) Int() int32      { return int32(uint32(v.bits)) }
func (v Value) Long() int64     { return int64(v.bits) }
func (v Value) Float() float32  { return math.Float32frombits(uint32(v.bits)) }
func (v Value) Double() float64 { return math.Float64frombits(v.bits) }
func (v Value) Bool() bool      { return v.bits != 0 }
func (v Value) Text() string    { return v.text }

// Size is the footprint of v after its tag when written with no slack.
func (v Value) Size() int {
	if v.Tag == TagString {
		return TextSize(v.text)
	}
	return v.Tag.Width()
}

// String formats the value for display.
func (v Value) String() string {
	switch v.Tag {
	case TagByte:
		return strconv.FormatUint(uint64(v.Byte()), 10)
	case TagShort:
		return strconv.FormatInt(int64(v.Short()), 10)
	case TagInt:
		return strconv.FormatInt(int64(v.Int()), 10)
	case TagLong:
		return strconv.FormatInt(v.Long(), 10)
	case TagFloat:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case TagDouble:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case TagBool:
		return strconv.FormatBool(v.Bool())
	case TagString:
		return v.text
	default:
		return "<" + v.Tag.String() + ">"
	}
}

// Parse builds a value of kind t from its textual form.
func Parse(t Tag, s string) (Value, error) {
	switch t {
	case TagByte:
		n, err := strconv.ParseUint(s, 10, 8)
		return Byte(uint8(n)), err
	case TagShort:
		n, err := strconv.ParseInt(s, 10, 16)
		return Short(int16(n)), err
	case TagInt:
		n, err := strconv.ParseInt(s, 10, 32)
		return Int(int32(n)), err
	case TagLong:
		n, err := strconv.ParseInt(s, 10, 64)
		return Long(n), err
	case TagFloat:
		f, err := strconv.ParseFloat(s, 32)
		return Float(float32(f)), err
	case TagDouble:
		f, err := strconv.ParseFloat(s, 64)
		return Double(f), err
	case TagBool:
		b, err := strconv.ParseBool(s)
		return Bool(b), err
	case TagString:
		return String(s), nil
	default:
		return Value{}, fmt.Errorf("cannot parse %s value", t)
	}
}

// EncodeValue appends the tag and payload of v. Text payloads end with a
// slack count; the slack bytes themselves are not written.
func EncodeValue(dst []byte, v Value, slack int) ([]byte, error) {
	tag := v.Tag
	if tag == TagBool && v.bits != 0 {
		tag = tagTrue
	}
	dst = append(dst, byte(tag))

	switch v.Tag.Width() {
	case 0:
	case 1:
		dst = append(dst, byte(v.bits))
	case 2:
		dst = binary.BigEndian.AppendUint16(dst, uint16(v.bits))
	case 4:
		dst = binary.BigEndian.AppendUint32(dst, uint32(v.bits))
	case 8:
		dst = binary.BigEndian.AppendUint64(dst, v.bits)
	default:
		if v.Tag != TagString {
			return dst, fmt.Errorf("cannot encode %s value", v.Tag)
		}
		if slack < 0 || slack > MaxSlack {
			return dst, fmt.Errorf("%w: slack of %d bytes", ErrTooLong, slack)
		}
		var err error
		if dst, err = AppendUTF(dst, v.text); err != nil {
			return dst, err
		}
		dst = binary.BigEndian.AppendUint16(dst, uint16(slack))
	}
	return dst, nil
}

// EncodeRecord encodes key and v with no slack. tagOffset is the position of
// the tag byte within the returned slice.
func EncodeRecord(key string, v Value) (buf []byte, tagOffset int, err error) {
	buf = make([]byte, 0, 2+UTFLen(key)+1+v.Size())
	if buf, err = AppendUTF(buf, key); err != nil {
		return nil, 0, fmt.Errorf("key: %w", err)
	}
	tagOffset = len(buf)
	if buf, err = EncodeValue(buf, v, 0); err != nil {
		return nil, 0, err
	}
	return buf, tagOffset, nil
}

// DecodeValue reads a tag and its payload from r. For text it also returns
// the slack count that follows the payload; the caller skips the slack.
func DecodeValue(r io.Reader) (Value, int, error) {
	var scratch [8]byte
	if _, err := io.ReadFull(r, scratch[:1]); err != nil {
		return Value{}, 0, unexpected(err)
	}
	raw := Tag(scratch[0])
	if !raw.Valid() {
		return Value{}, 0, fmt.Errorf("%w: unknown type tag 0x%02x", ErrCorrupt, byte(raw))
	}

	if raw == TagString {
		s, _, err := ReadUTF(r)
		if err != nil {
			return Value{}, 0, unexpected(err)
		}
		if _, err := io.ReadFull(r, scratch[:2]); err != nil {
			return Value{}, 0, unexpected(err)
		}
		return String(s), int(binary.BigEndian.Uint16(scratch[:2])), nil
	}

	v := Value{Tag: raw.normalize()}
	if raw == tagTrue {
		v.bits = 1
	}
	w := raw.Width()
	if _, err := io.ReadFull(r, scratch[:w]); err != nil {
		return Value{}, 0, unexpected(err)
	}
	switch w {
	case 1:
		v.bits = uint64(scratch[0])
	case 2:
		v.bits = uint64(binary.BigEndian.Uint16(scratch[:2]))
	case 4:
		v.bits = uint64(binary.BigEndian.Uint32(scratch[:4]))
	case 8:
		v.bits = binary.BigEndian.Uint64(scratch[:8])
	}
	return v, 0, nil
}

// ReadValueAt decodes the value whose tag byte sits at off.
func ReadValueAt(r io.ReaderAt, off int64) (Value, int, error) {
	v, slack, err := DecodeValue(io.NewSectionReader(r, off, math.MaxInt64-off))
	if err != nil {
		return Value{}, 0, fmt.Errorf("offset %d: %w", off, err)
	}
	return v, slack, nil
}

// SlotAt returns the tag at off and the footprint of the slot that follows
// it: the fixed width, or for text both counts, the payload and the slack.
// Text content is not decoded.
func SlotAt(r io.ReaderAt, off int64) (Tag, int, error) {
	var scratch [2]byte
	if err := readFullAt(r, scratch[:1], off); err != nil {
		return TagAbsent, 0, err
	}
	raw := Tag(scratch[0])
	if raw.Fixed() {
		return raw.normalize(), raw.Width(), nil
	}
	if raw != TagString {
		return TagAbsent, 0, fmt.Errorf("%w: unknown type tag 0x%02x at offset %d", ErrCorrupt, byte(raw), off)
	}

	if err := readFullAt(r, scratch[:], off+1); err != nil {
		return TagAbsent, 0, err
	}
	n := int(binary.BigEndian.Uint16(scratch[:]))
	if err := readFullAt(r, scratch[:], off+3+int64(n)); err != nil {
		return TagAbsent, 0, err
	}
	slack := int(binary.BigEndian.Uint16(scratch[:]))
	return TagString, 2 + n + 2 + slack, nil
}

func readFullAt(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("offset %d: %w", off, unexpected(err))
}

// unexpected turns a short read into a corruption error and leaves real I/O
// failures alone.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: record runs past end of file", ErrCorrupt)
	}
	return err
}
