package record

import "fmt"

// Tag is the single byte written before every payload. For numeric fixed
// kinds the low nibble holds the payload width and the high nibble separates
// integer-like (0x0_) from float-like (0x1_) kinds.
type Tag byte

const (
	TagAbsent Tag = 0x00 // query result only, never written

	TagByte   Tag = 0x01
	TagShort  Tag = 0x02
	TagInt    Tag = 0x04
	TagLong   Tag = 0x08
	TagFloat  Tag = 0x14
	TagDouble Tag = 0x18
	TagBool   Tag = 0x20 // false; true is written as tagTrue
	TagString Tag = 0x22

	tagTrue Tag = 0x21

	widthMask = 0x0F
)

// Width returns the fixed payload width of t. Bools carry their value in the
// tag and have width 0. Text and unknown tags return -1.
func (t Tag) Width() int {
	switch t {
	case TagByte, TagShort, TagInt, TagLong, TagFloat, TagDouble:
		return int(t & widthMask)
	case TagBool, tagTrue:
		return 0
	default:
		return -1
	}
}

// Valid reports whether t may appear in a store file.
func (t Tag) Valid() bool {
	return t == TagString || t.Width() >= 0
}

// Fixed reports whether t has a fixed payload width.
func (t Tag) Fixed() bool {
	return t.Width() >= 0
}

func (t Tag) String() string {
	switch t {
	case TagAbsent:
		return "absent"
	case TagByte:
		return "byte"
	case TagShort:
		return "short"
	case TagInt:
		return "int"
	case TagLong:
		return "long"
	case TagFloat:
		return "float"
	case TagDouble:
		return "double"
	case TagBool, tagTrue:
		return "bool"
	case TagString:
		return "string"
	default:
		return fmt.Sprintf("tag(0x%02x)", byte(t))
	}
}

// ParseTag maps a kind name as printed by String back to its tag.
func ParseTag(name string) (Tag, error) {
	for _, t := range []Tag{TagByte, TagShort, TagInt, TagLong, TagFloat, TagDouble, TagBool, TagString} {
		if t.String() == name {
			return t, nil
		}
	}
	return TagAbsent, fmt.Errorf("unknown type %q", name)
}

// normalize folds the two bool tags into TagBool.
func (t Tag) normalize() Tag {
	if t == tagTrue {
		return TagBool
	}
	return t
}
