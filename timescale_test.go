package wavescout

import "testing"

func TestToExponent(t *testing.T) {
	cases := map[TimeUnit]int{
		UnitZs: -21,
		UnitNs: -9,
		UnitS:  0,
	}
	for unit, want := range cases {
		if got := unit.ToExponent(); got != want {
			t.Errorf("%v.ToExponent() = %d, want %d", unit, got, want)
		}
	}
}

func TestTimeUnitString(t *testing.T) {
	if UnitNs.String() != "ns" {
		t.Errorf("expected \"ns\", got %q", UnitNs.String())
	}
	if got := TimeUnit(999).String(); got != "TimeUnit(999)" {
		t.Errorf("expected fallback format for unknown unit, got %q", got)
	}
}

func TestUnitFromString(t *testing.T) {
	u, err := UnitFromString("ps")
	if err != nil || u != UnitPs {
		t.Fatalf("expected UnitPs, got %v err=%v", u, err)
	}
	if _, err := UnitFromString("bogus"); err == nil {
		t.Fatalf("expected error for unknown unit name")
	}
}

func TestToSeconds(t *testing.T) {
	ts := Timescale{Factor: 1, Unit: UnitNs}
	if got := ts.ToSeconds(1000); got != 1e-6 {
		t.Errorf("1000ns should be 1e-6s, got %v", got)
	}

	ts = Timescale{Factor: 10, Unit: UnitPs}
	if got := ts.ToSeconds(100); got != 1e-9 {
		t.Errorf("100 * 10ps should be 1e-9s, got %v", got)
	}
}
