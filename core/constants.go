package core

import "github.com/0xRadioAc7iv/go-quickdata/internal/record"

// Type tags as reported by TypeOf.
const (
	TagAbsent = record.TagAbsent
	TagByte   = record.TagByte
	TagShort  = record.TagShort
	TagInt    = record.TagInt
	TagLong   = record.TagLong
	TagFloat  = record.TagFloat
	TagDouble = record.TagDouble
	TagBool   = record.TagBool
	TagString = record.TagString
)

const (
	// MaxKeyLen is the largest key, in modified UTF-8 bytes.
	MaxKeyLen = record.MaxUTFLen

	// MaxTextLen is the largest text value, in modified UTF-8 bytes.
	MaxTextLen = record.MaxUTFLen

	DefaultFileExt = ".qdt"
)

// Reasons reported to MetricsCollector.RecordReset.
const (
	ResetClear   = "clear"
	ResetCorrupt = "corrupt"
)
