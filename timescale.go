package wavescout

import (
	"fmt"
	"math"
)

// Time is a signed 64-bit integer expressed in timescale units. It is
// monotonically non-decreasing along any signal's transition list.
type Time int64

// TimeUnit is a decimal time unit, from zeptoseconds to seconds.
type TimeUnit int

const (
	UnitZs TimeUnit = iota
	UnitAs
	UnitFs
	UnitPs
	UnitNs
	UnitUs
	UnitMs
	UnitS
)

// exponents maps each TimeUnit to its base-10 exponent of seconds.
var exponents = map[TimeUnit]int{
	UnitZs: -21,
	UnitAs: -18,
	UnitFs: -15,
	UnitPs: -12,
	UnitNs: -9,
	UnitUs: -6,
	UnitMs: -3,
	UnitS:  0,
}

var unitNames = map[TimeUnit]string{
	UnitZs: "zs",
	UnitAs: "as",
	UnitFs: "fs",
	UnitPs: "ps",
	UnitNs: "ns",
	UnitUs: "us",
	UnitMs: "ms",
	UnitS:  "s",
}

// ToExponent returns the base-10 exponent of seconds for this unit.
func (u TimeUnit) ToExponent() int {
	return exponents[u]
}

func (u TimeUnit) String() string {
	if s, ok := unitNames[u]; ok {
		return s
	}
	return fmt.Sprintf("TimeUnit(%d)", int(u))
}

// UnitFromString parses a unit name ("ns", "us", "ms", "s", ...) into a
// TimeUnit. Returns an error for unrecognized strings.
func UnitFromString(s string) (TimeUnit, error) {
	for u, name := range unitNames {
		if name == s {
			return u, nil
		}
	}
	return 0, fmt.Errorf("wavescout: unknown time unit %q", s)
}

// Timescale is the pair (factor, unit) describing how raw Time values map to
// seconds: seconds = factor * 10^unit.ToExponent() * t.
type Timescale struct {
	Factor int
	Unit   TimeUnit
}

// DefaultTimescale is used for sessions that have not loaded a waveform yet.
var DefaultTimescale = Timescale{Factor: 1, Unit: UnitNs}

// ToSeconds converts a Time value in this timescale to seconds.
func (ts Timescale) ToSeconds(t Time) float64 {
	exp := ts.Unit.ToExponent()
	v := float64(ts.Factor) * float64(t)
	if exp < 0 {
		return v / math.Pow10(-exp)
	}
	return v * math.Pow10(exp)
}
