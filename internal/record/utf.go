package record

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf16"
)

// MaxUTFLen is the largest encoded text that fits behind a u16 length.
const MaxUTFLen = 0xFFFF

// Text is stored as modified UTF-8: every UTF-16 code unit is encoded on its
// own, U+0000 takes two bytes, and runes above U+FFFF become a surrogate pair
// of three bytes each. This keeps files byte compatible with writeUTF.

// UTFLen returns the encoded length of s, without the length prefix.
// Invalid UTF-8 is counted as U+FFFD, which is what AppendUTF writes for it.
func UTFLen(s string) int {
	n := 0
	for _, r := range s {
		n += runeLen(r)
	}
	return n
}

// TextSize is the footprint of s after the tag: both u16 counts plus the
// encoded bytes, with no slack.
func TextSize(s string) int {
	return 2 + UTFLen(s) + 2
}

func runeLen(r rune) int {
	switch {
	case r == 0:
		return 2
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 6
	}
}

// AppendUTF appends the u16 length prefix and the encoded form of s.
func AppendUTF(dst []byte, s string) ([]byte, error) {
	n := UTFLen(s)
	if n > MaxUTFLen {
		return dst, fmt.Errorf("%w: %d encoded bytes", ErrTooLong, n)
	}
	dst = binary.BigEndian.AppendUint16(dst, uint16(n))
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			dst = appendUnit(dst, hi)
			dst = appendUnit(dst, lo)
			continue
		}
		dst = appendUnit(dst, r)
	}
	return dst, nil
}

func appendUnit(dst []byte, c rune) []byte {
	switch {
	case c != 0 && c < 0x80:
		return append(dst, byte(c))
	case c < 0x800:
		return append(dst, 0xC0|byte(c>>6), 0x80|byte(c&0x3F))
	default:
		return append(dst, 0xE0|byte(c>>12), 0x80|byte((c>>6)&0x3F), 0x80|byte(c&0x3F))
	}
}

// ReadUTF reads a length-prefixed modified UTF-8 string and returns it with
// the number of bytes consumed. It returns io.EOF only if nothing could be
// read at all.
func ReadUTF(r io.Reader) (string, int, error) {
	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return "", 0, err
	}
	n := int(binary.BigEndian.Uint16(prefix[:]))
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", 2, unexpected(err)
	}
	s, err := decodeUTF(buf)
	if err != nil {
		return "", 2 + n, err
	}
	return s, 2 + n, nil
}

func decodeUTF(b []byte) (string, error) {
	ascii := true
	for _, c := range b {
		if c == 0 || c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b), nil
	}

	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			units = append(units, uint16(c))
			i++
		case c>>5 == 0x06:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", fmt.Errorf("%w: malformed text at byte %d", ErrCorrupt, i)
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c>>4 == 0x0E:
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return "", fmt.Errorf("%w: malformed text at byte %d", ErrCorrupt, i)
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			return "", fmt.Errorf("%w: malformed text at byte %d", ErrCorrupt, i)
		}
	}

	return string(utf16.Decode(units)), nil
}
