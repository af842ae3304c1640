package wavescout

import "testing"

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession()
	if s.Root == nil || !s.Root.IsGroup() {
		t.Fatalf("expected a group root")
	}
	if s.Viewport.Left != 0 || s.Viewport.Right != 1 {
		t.Fatalf("expected full-span viewport, got [%v,%v]", s.Viewport.Left, s.Viewport.Right)
	}
	if s.CursorTime != 0 {
		t.Errorf("expected cursor at time 0, got %d", s.CursorTime)
	}
	for slot := MarkerA; slot < markerSlotCount; slot++ {
		if s.Markers.IsUsed(slot) {
			t.Fatalf("expected all markers unused on a new session")
		}
	}
}

func TestVisibleTimeRange(t *testing.T) {
	s := NewSession()
	s.TotalDuration = 1000
	s.Viewport.Left = 0.1
	s.Viewport.Right = 0.9

	start, end := s.VisibleTimeRange()
	if start != 100 || end != 900 {
		t.Errorf("expected [100,900], got [%d,%d]", start, end)
	}
}

func TestFindNode(t *testing.T) {
	s := NewSession()
	leaf := NewSignal("top.clk", 1, DefaultDisplayFormat())
	s.Root.AddChild(leaf)

	if s.FindNode(leaf.InstanceID) != leaf {
		t.Fatalf("expected FindNode to locate the added leaf")
	}
	if s.FindNode(SignalNodeID(999999)) != nil {
		t.Fatalf("expected nil for an unknown InstanceID")
	}
}
