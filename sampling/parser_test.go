package sampling

import (
	"math"
	"testing"

	"github.com/ripopov/wavescout"
)

func TestParseValueNil(t *testing.T) {
	pv := ParseValue(nil, wavescout.FormatUnsigned, 1)
	if pv.Kind != ValueUndefined || pv.Str != "UNDEFINED" || pv.Bool {
		t.Errorf("ParseValue(nil) = %+v", pv)
	}
	if !math.IsNaN(pv.Float) {
		t.Errorf("ParseValue(nil).Float = %v, want NaN", pv.Float)
	}
}

func TestParseValueString(t *testing.T) {
	pv := ParseValue("1", wavescout.FormatUnsigned, 1)
	if pv.Str != "1" || !pv.Bool {
		t.Errorf("ParseValue(\"1\") = %+v", pv)
	}
	pv = ParseValue("x", wavescout.FormatUnsigned, 1)
	if pv.Kind != ValueUndefined {
		t.Errorf("ParseValue(\"x\").Kind = %v, want ValueUndefined", pv.Kind)
	}
}

func TestParseValueFloat(t *testing.T) {
	pv := ParseValue(float64(3.5), wavescout.FormatUnsigned, 32)
	if pv.Float != 3.5 || !pv.Bool {
		t.Errorf("ParseValue(3.5) = %+v", pv)
	}
	pv = ParseValue(float64(0), wavescout.FormatUnsigned, 32)
	if pv.Bool {
		t.Error("ParseValue(0.0).Bool = true, want false")
	}
}

func TestParseValueUnsigned(t *testing.T) {
	pv := ParseValue(int64(42), wavescout.FormatUnsigned, 8)
	if pv.Str != "42" || pv.Float != 42 {
		t.Errorf("ParseValue(42, Unsigned) = %+v", pv)
	}
}

func TestParseValueSigned(t *testing.T) {
	// 8-bit two's complement: 0xFF -> -1
	pv := ParseValue(int64(255), wavescout.FormatSigned, 8)
	if pv.Str != "-1" || pv.Float != -1 {
		t.Errorf("ParseValue(255, Signed, 8) = %+v, want -1", pv)
	}
	pv = ParseValue(int64(127), wavescout.FormatSigned, 8)
	if pv.Str != "127" {
		t.Errorf("ParseValue(127, Signed, 8) = %+v, want 127", pv)
	}
}

func TestParseValueHex(t *testing.T) {
	pv := ParseValue(int64(0xAB), wavescout.FormatHex, 8)
	if pv.Str != "0xAB" {
		t.Errorf("ParseValue(0xAB, Hex, 8) = %q, want 0xAB", pv.Str)
	}
	pv = ParseValue(int64(0xA), wavescout.FormatHex, 12)
	if pv.Str != "0x00A" {
		t.Errorf("ParseValue(0xA, Hex, 12) = %q, want 0x00A", pv.Str)
	}
}

func TestParseValueBin(t *testing.T) {
	pv := ParseValue(int64(5), wavescout.FormatBin, 4)
	if pv.Str != "0b0101" {
		t.Errorf("ParseValue(5, Bin, 4) = %q, want 0b0101", pv.Str)
	}
}

func TestParseValueFloat32Reinterpret(t *testing.T) {
	bits := uint32(math.Float32bits(1.5))
	pv := ParseValue(int64(bits), wavescout.FormatFloat, 32)
	if pv.Float != 1.5 {
		t.Errorf("ParseValue(bits(1.5), Float, 32).Float = %v, want 1.5", pv.Float)
	}
}

func TestParseValueFloatNon32BitFallsBackToUnsigned(t *testing.T) {
	pv := ParseValue(int64(17), wavescout.FormatFloat, 16)
	if pv.Str != "17" || pv.Float != 17 {
		t.Errorf("ParseValue(17, Float, 16) = %+v, want unsigned fallback", pv)
	}
}
