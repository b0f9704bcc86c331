package record

import (
	"bytes"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func roundTrips(v Value) bool {
	encoded, _, err := EncodeRecord("k", v)
	if err != nil {
		return false
	}
	sc := NewScanner(encoded)
	if !sc.Scan() || sc.Err() != nil {
		return false
	}
	return sc.Key() == "k" && sc.Value() == v && !sc.Scan()
}

// TestCodecProperties checks the codec against generated values.
func TestCodecProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("encoded text length matches UTFLen", prop.ForAll(
		func(s string) bool {
			buf, err := AppendUTF(nil, s)
			return err == nil && len(buf) == 2+UTFLen(s)
		},
		gen.AnyString(),
	))

	properties.Property("valid text round trips", prop.ForAll(
		func(s string) bool {
			buf, err := AppendUTF(nil, s)
			if err != nil {
				return false
			}
			got, n, err := ReadUTF(bytes.NewReader(buf))
			return err == nil && n == len(buf) && got == s
		},
		gen.AnyString(),
	))

	properties.Property("ints round trip", prop.ForAll(
		func(v int32) bool { return roundTrips(Int(v)) },
		gen.Int32(),
	))

	properties.Property("longs round trip", prop.ForAll(
		func(v int64) bool { return roundTrips(Long(v)) },
		gen.Int64(),
	))

	properties.Property("shorts and bytes round trip", prop.ForAll(
		func(s int16, b uint8) bool { return roundTrips(Short(s)) && roundTrips(Byte(b)) },
		gen.Int16(),
		gen.UInt8(),
	))

	properties.Property("doubles round trip bit for bit", prop.ForAll(
		func(bits uint64) bool { return roundTrips(Double(math.Float64frombits(bits))) },
		gen.UInt64(),
	))

	properties.Property("floats round trip bit for bit", prop.ForAll(
		func(bits uint32) bool { return roundTrips(Float(math.Float32frombits(bits))) },
		gen.UInt32(),
	))

	properties.Property("strings round trip", prop.ForAll(
		func(s string) bool { return roundTrips(String(s)) },
		gen.AnyString(),
	))

	properties.Property("encoded size is the footprint", prop.ForAll(
		func(s string, slack uint16) bool {
			buf, err := EncodeValue(nil, String(s), int(slack))
			return err == nil && len(buf) == 1+TextSize(s)
		},
		gen.AnyString(),
		gen.UInt16(),
	))

	properties.TestingRun(t)
}
