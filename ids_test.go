package wavescout

import "testing"

func TestNextSignalNodeIDIsMonotonicAndUnique(t *testing.T) {
	resetIDCounterForTest()

	a := nextSignalNodeID()
	b := nextSignalNodeID()
	c := nextSignalNodeID()

	if a == b || b == c || a == c {
		t.Fatalf("expected distinct IDs, got %d, %d, %d", a, b, c)
	}
	if !(a < b && b < c) {
		t.Fatalf("expected monotonically increasing IDs, got %d, %d, %d", a, b, c)
	}
}
