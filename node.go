package wavescout

import (
	"github.com/ripopov/wavescout/internal/assert"
)

// SignalNode is a node in the signal tree: either a group (handle == nil) or
// a leaf bound to exactly one SignalHandle. The tree shape follows a
// scene-graph Node in the classic mold: a flat struct for every node kind,
// explicit AddChild/RemoveChild with ancestor-cycle checks, and a monotonic
// ID assigned at construction. Unlike a render-tree node, a SignalNode
// carries no transform/alpha/render-layer state — only the fields a signal
// viewer's data model needs — and its "dirty" signal is a single
// FormatDirty flag. Nothing in this module reads that flag: the canvas
// orchestrator's frame cache hashes the node's fields directly.
type SignalNode struct {
	// Name is the full hierarchical path, "." separated.
	Name string
	// Nickname is a user label; when non-empty it overrides Name for display.
	Nickname string

	handle   *SignalHandle
	isGroup  bool
	Format   DisplayFormat
	IsMultiBit bool

	GroupRenderMode *GroupRenderMode
	IsExpanded      bool
	HeightScaling   int

	InstanceID SignalNodeID

	Parent   *SignalNode
	children []*SignalNode

	// FormatDirty is set whenever a field affecting rendering changes. It is
	// never cleared or read within this module; the canvas orchestrator
	// detects changes by hashing the node's fields instead.
	FormatDirty bool
}

// NewGroup creates a group node with no signal handle.
func NewGroup(name string) *SignalNode {
	return &SignalNode{
		Name:          name,
		isGroup:       true,
		IsExpanded:    true,
		HeightScaling: 1,
		InstanceID:    nextSignalNodeID(),
		FormatDirty:   true,
	}
}

// NewSignal creates a leaf node bound to handle.
func NewSignal(name string, handle SignalHandle, format DisplayFormat) *SignalNode {
	h := handle
	return &SignalNode{
		Name:          name,
		handle:        &h,
		Format:        format,
		IsExpanded:    true,
		HeightScaling: 1,
		InstanceID:    nextSignalNodeID(),
		FormatDirty:   true,
	}
}

// IsGroup reports whether this node is a group (handle == nil).
func (n *SignalNode) IsGroup() bool { return n.isGroup }

// Handle returns the node's signal handle and true, or (0, false) for a group.
func (n *SignalNode) Handle() (SignalHandle, bool) {
	if n.handle == nil {
		return 0, false
	}
	return *n.handle, true
}

// DisplayName returns Nickname if set, else Name.
func (n *SignalNode) DisplayName() string {
	if n.Nickname != "" {
		return n.Nickname
	}
	return n.Name
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (n *SignalNode) Children() []*SignalNode { return n.children }

// NumChildren returns the number of children.
func (n *SignalNode) NumChildren() int { return len(n.children) }

// AddChild appends child to n's children, reparenting it if necessary.
// Panics if child is nil or would create a cycle; logs-and-skips (debug
// mode panics) if the group/handle invariant is already violated.
func (n *SignalNode) AddChild(child *SignalNode) {
	n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at index among n's children.
func (n *SignalNode) AddChildAt(child *SignalNode, index int) {
	if child == nil {
		panic("wavescout: cannot add nil child")
	}
	if !n.isGroup {
		assert.Check(false, "AddChild on non-group node %q", n.Name)
		return
	}
	if isAncestorNode(child, n) {
		panic("wavescout: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("wavescout: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.FormatDirty = true
}

// RemoveChild detaches child from n. Panics if child.Parent != n.
func (n *SignalNode) RemoveChild(child *SignalNode) {
	if child.Parent != n {
		panic("wavescout: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.FormatDirty = true
}

// RemoveFromParent detaches n from its parent. No-op if n has no parent.
func (n *SignalNode) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

func (n *SignalNode) removeChildByPtr(child *SignalNode) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// isAncestorNode reports whether candidate is an ancestor of node, used to
// reject reparenting that would introduce a cycle.
func isAncestorNode(candidate, node *SignalNode) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// Walk calls fn for n and every descendant, depth-first, pre-order.
func (n *SignalNode) Walk(fn func(*SignalNode)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// FindByInstanceID searches n's subtree (including n) for a node with the
// given InstanceID.
func (n *SignalNode) FindByInstanceID(id SignalNodeID) *SignalNode {
	var found *SignalNode
	n.Walk(func(node *SignalNode) {
		if found == nil && node.InstanceID == id {
			found = node
		}
	})
	return found
}

// DeepCopy clones n and its subtree. Every copied node gets a fresh
// InstanceID and the root of the copy has Parent == nil, matching spec
// §3.1's deep-copy invariant.
func (n *SignalNode) DeepCopy() *SignalNode {
	cp := &SignalNode{
		Name:            n.Name,
		Nickname:        n.Nickname,
		isGroup:         n.isGroup,
		Format:          n.Format,
		IsMultiBit:      n.IsMultiBit,
		IsExpanded:      n.IsExpanded,
		HeightScaling:   n.HeightScaling,
		InstanceID:      nextSignalNodeID(),
		FormatDirty:     true,
	}
	if n.handle != nil {
		h := *n.handle
		cp.handle = &h
	}
	if n.GroupRenderMode != nil {
		m := *n.GroupRenderMode
		cp.GroupRenderMode = &m
	}
	for _, child := range n.children {
		childCopy := child.DeepCopy()
		childCopy.Parent = cp
		cp.children = append(cp.children, childCopy)
	}
	return cp
}
