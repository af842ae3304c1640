package wavescout

import "testing"

func TestNewGroupAndNewSignal(t *testing.T) {
	g := NewGroup("top")
	if !g.IsGroup() {
		t.Fatalf("expected group node")
	}
	if _, ok := g.Handle(); ok {
		t.Fatalf("group node should have no handle")
	}

	s := NewSignal("top.clk", 7, DefaultDisplayFormat())
	if s.IsGroup() {
		t.Fatalf("expected leaf node")
	}
	h, ok := s.Handle()
	if !ok || h != 7 {
		t.Fatalf("expected handle 7, got %v ok=%v", h, ok)
	}
}

func TestDisplayNamePrefersNickname(t *testing.T) {
	s := NewSignal("top.clk", 1, DefaultDisplayFormat())
	if s.DisplayName() != "top.clk" {
		t.Fatalf("expected Name as default display name")
	}
	s.Nickname = "clock"
	if s.DisplayName() != "clock" {
		t.Fatalf("expected Nickname to override Name")
	}
}

func TestAddChildReparentsAndTracksCount(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	b := NewSignal("b", 1, DefaultDisplayFormat())

	root.AddChild(a)
	root.AddChild(b)
	if root.NumChildren() != 2 {
		t.Fatalf("expected 2 children, got %d", root.NumChildren())
	}
	if b.Parent != root {
		t.Fatalf("expected b's parent to be root")
	}

	other := NewGroup("other")
	other.AddChild(b)
	if root.NumChildren() != 1 {
		t.Fatalf("expected b removed from root after reparenting, got %d children", root.NumChildren())
	}
	if b.Parent != other {
		t.Fatalf("expected b's parent to be other after reparenting")
	}
}

func TestAddChildAtCyclePanics(t *testing.T) {
	root := NewGroup("root")
	child := NewGroup("child")
	root.AddChild(child)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when adding an ancestor as a child")
		}
	}()
	child.AddChild(root)
}

func TestRemoveChildAndRemoveFromParent(t *testing.T) {
	root := NewGroup("root")
	a := NewSignal("a", 1, DefaultDisplayFormat())
	root.AddChild(a)

	a.RemoveFromParent()
	if root.NumChildren() != 0 {
		t.Fatalf("expected 0 children after RemoveFromParent, got %d", root.NumChildren())
	}
	if a.Parent != nil {
		t.Fatalf("expected a.Parent nil after removal")
	}

	// RemoveFromParent is a no-op when already detached.
	a.RemoveFromParent()
}

func TestWalkVisitsAllDescendants(t *testing.T) {
	root := NewGroup("root")
	g1 := NewGroup("g1")
	leaf := NewSignal("leaf", 1, DefaultDisplayFormat())
	g1.AddChild(leaf)
	root.AddChild(g1)

	var names []string
	root.Walk(func(n *SignalNode) { names = append(names, n.Name) })
	if len(names) != 3 {
		t.Fatalf("expected 3 visited nodes, got %d: %v", len(names), names)
	}
}

func TestFindByInstanceID(t *testing.T) {
	root := NewGroup("root")
	leaf := NewSignal("leaf", 1, DefaultDisplayFormat())
	root.AddChild(leaf)

	found := root.FindByInstanceID(leaf.InstanceID)
	if found != leaf {
		t.Fatalf("expected to find leaf by its InstanceID")
	}
	if root.FindByInstanceID(SignalNodeID(999999)) != nil {
		t.Fatalf("expected nil for unknown InstanceID")
	}
}

func TestDeepCopyIsIndependentWithFreshIDs(t *testing.T) {
	root := NewGroup("root")
	leaf := NewSignal("leaf", 1, DefaultDisplayFormat())
	root.AddChild(leaf)

	cp := root.DeepCopy()
	if cp == root {
		t.Fatalf("expected a distinct root copy")
	}
	if cp.InstanceID == root.InstanceID {
		t.Fatalf("expected copy to get a fresh InstanceID")
	}
	if cp.Parent != nil {
		t.Fatalf("expected copy's root to have no parent")
	}
	if cp.NumChildren() != 1 {
		t.Fatalf("expected copy to carry 1 child, got %d", cp.NumChildren())
	}
	copiedLeaf := cp.Children()[0]
	if copiedLeaf == leaf {
		t.Fatalf("expected a distinct leaf copy")
	}
	if copiedLeaf.InstanceID == leaf.InstanceID {
		t.Fatalf("expected copied leaf to get a fresh InstanceID")
	}
	h, ok := copiedLeaf.Handle()
	if !ok || h != 1 {
		t.Fatalf("expected copied leaf to keep its handle, got %v ok=%v", h, ok)
	}

	// Mutating the copy must not affect the original.
	copiedLeaf.Nickname = "renamed"
	if leaf.Nickname == "renamed" {
		t.Fatalf("expected deep copy to be independent of the original")
	}
}
