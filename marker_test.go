package wavescout

import "testing"

func TestNewMarkerSetAllUnused(t *testing.T) {
	m := NewMarkerSet()
	for slot := MarkerA; slot < markerSlotCount; slot++ {
		if m.IsUsed(slot) {
			t.Fatalf("expected slot %v to be unused", slot)
		}
	}
}

func TestSetAndClear(t *testing.T) {
	m := NewMarkerSet()
	m.Set(MarkerC, 500, Color{R: 255})
	if !m.IsUsed(MarkerC) {
		t.Fatalf("expected MarkerC to be used after Set")
	}
	if m[MarkerC].Time != 500 {
		t.Errorf("expected time 500, got %d", m[MarkerC].Time)
	}

	m.Clear(MarkerC)
	if m.IsUsed(MarkerC) {
		t.Fatalf("expected MarkerC to be unused after Clear")
	}
}

func TestNextAfterReturnsNearestLaterMarker(t *testing.T) {
	m := NewMarkerSet()
	m.Set(MarkerA, 100, Color{})
	m.Set(MarkerB, 300, Color{})
	m.Set(MarkerC, 500, Color{})

	slot, ok := m.NextAfter(150)
	if !ok || slot != MarkerB {
		t.Fatalf("expected MarkerB as the nearest marker after 150, got %v ok=%v", slot, ok)
	}

	if _, ok := m.NextAfter(500); ok {
		t.Fatalf("expected no marker strictly after the last one")
	}
}

func TestPrevBeforeReturnsNearestEarlierMarker(t *testing.T) {
	m := NewMarkerSet()
	m.Set(MarkerA, 100, Color{})
	m.Set(MarkerB, 300, Color{})

	slot, ok := m.PrevBefore(250)
	if !ok || slot != MarkerA {
		t.Fatalf("expected MarkerA as the nearest marker before 250, got %v ok=%v", slot, ok)
	}

	if _, ok := m.PrevBefore(100); ok {
		t.Fatalf("expected no marker strictly before the first one")
	}
}

func TestMarkerSlotString(t *testing.T) {
	if MarkerA.String() != "A" {
		t.Errorf("expected MarkerA.String() == \"A\", got %q", MarkerA.String())
	}
	if MarkerI.String() != "I" {
		t.Errorf("expected MarkerI.String() == \"I\", got %q", MarkerI.String())
	}
	if got := MarkerSlot(999).String(); got != "?" {
		t.Errorf("expected out-of-range slot to render as \"?\", got %q", got)
	}
}
