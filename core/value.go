package core

import "github.com/0xRadioAc7iv/go-quickdata/internal/record"

// Tag identifies the kind of a stored value.
type Tag = record.Tag

// Value is one typed scalar as stored in and loaded from a Store.
type Value = record.Value

func ByteValue(v uint8) Value     { return record.Byte(v) }
func ShortValue(v int16) Value    { return record.Short(v) }
func IntValue(v int32) Value      { return record.Int(v) }
func LongValue(v int64) Value     { return record.Long(v) }
func FloatValue(v float32) Value  { return record.Float(v) }
func DoubleValue(v float64) Value { return record.Double(v) }
func BoolValue(v bool) Value      { return record.Bool(v) }
func StringValue(v string) Value  { return record.String(v) }

// ParseTag maps a kind name such as "int" or "string" to its tag.
func ParseTag(name string) (Tag, error) { return record.ParseTag(name) }

// ParseValue builds a value of kind t from its textual form.
func ParseValue(t Tag, s string) (Value, error) { return record.Parse(t, s) }
