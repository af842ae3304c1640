// Package sampling turns a signal's raw decoded transitions into the
// per-pixel samples the renderer draws: parsing a single raw value per the
// active DataFormat (parser.go) and walking a transition list into a bounded
// number of pixel-column samples (pipeline.go).
package sampling

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ripopov/wavescout"
)

// ValueKind classifies a parsed value for rendering: a normal defined value,
// or one of the two special 4-state bits a bool/bus signal's raw value may
// carry.
type ValueKind int

const (
	ValueNormal ValueKind = iota
	ValueUndefined
	ValueHighZ
)

// ParsedValue is the result of decoding one raw transition value according
// to a DisplayFormat. Exactly the fields relevant to the signal's RenderType
// are meaningful to a caller; the others are still populated for
// convenience.
type ParsedValue struct {
	Kind ValueKind

	Str   string  // textual rendering, used by bus/event draw modes
	Float float64 // numeric rendering, used by analog draw mode; NaN if n/a
	Bool  bool    // boolean rendering, used by bool draw mode
}

// determineKind classifies a textual value as normal, undefined (contains
// 'x'/'X'), or high-impedance (contains 'z'/'Z'), matching
// determine_value_kind's case-insensitive substring check.
func determineKind(s string) ValueKind {
	upper := strings.ToUpper(s)
	if strings.Contains(upper, "X") {
		return ValueUndefined
	}
	if strings.Contains(upper, "Z") {
		return ValueHighZ
	}
	return ValueNormal
}

// ParseValue decodes a raw transition value (one of nil, string, float64,
// int64) into a ParsedValue using format and bitWidth to interpret integers.
// This is the Go equivalent of signal_sampling.py's parse_signal_value: the
// None/str/float/int branches and the five DataFormat decode rules
// (Unsigned/Signed/Hex/Bin/Float) are preserved exactly, including the
// unsigned fallback for Float when bitWidth != 32.
func ParseValue(raw any, format wavescout.DataFormat, bitWidth int) ParsedValue {
	switch v := raw.(type) {
	case nil:
		return ParsedValue{Kind: ValueUndefined, Str: "UNDEFINED", Float: math.NaN(), Bool: false}

	case string:
		return ParsedValue{Kind: determineKind(v), Str: v, Float: math.NaN(), Bool: v == "1"}

	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		return ParsedValue{Kind: determineKind(s), Str: s, Float: v, Bool: v != 0.0}

	case int64:
		return parseInt(v, format, bitWidth)
	case int:
		return parseInt(int64(v), format, bitWidth)
	case uint64:
		return parseInt(int64(v), format, bitWidth)

	default:
		s := fmt.Sprintf("%v", v)
		return ParsedValue{Kind: determineKind(s), Str: s, Float: math.NaN(), Bool: true}
	}
}

func parseInt(value int64, format wavescout.DataFormat, bitWidth int) ParsedValue {
	valueBool := value != 0

	var str string
	var fl float64

	switch format {
	case wavescout.FormatSigned:
		signed := value
		if bitWidth > 0 && bitWidth < 64 {
			maxVal := int64(1) << uint(bitWidth-1)
			if value >= maxVal {
				signed = value - (int64(1) << uint(bitWidth))
			}
		}
		str = strconv.FormatInt(signed, 10)
		fl = float64(signed)

	case wavescout.FormatHex:
		hexWidth := (bitWidth + 3) / 4
		str = fmt.Sprintf("0x%0*X", hexWidth, uint64(value))
		fl = float64(uint64(value))

	case wavescout.FormatBin:
		str = fmt.Sprintf("0b%0*b", bitWidth, uint64(value))
		fl = float64(uint64(value))

	case wavescout.FormatFloat:
		if bitWidth == 32 {
			bits := uint32(value & 0xFFFFFFFF)
			f32 := math.Float32frombits(bits)
			str = strconv.FormatFloat(float64(f32), 'g', -1, 32)
			fl = float64(f32)
		} else {
			str = strconv.FormatUint(uint64(value), 10)
			fl = float64(uint64(value))
		}

	default: // FormatUnsigned and any unrecognized value
		str = strconv.FormatUint(uint64(value), 10)
		fl = float64(uint64(value))
	}

	return ParsedValue{Kind: determineKind(str), Str: str, Float: fl, Bool: valueBool}
}
