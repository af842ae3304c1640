// Package controller is the sole mutator of a wavescout.WaveformSession: it
// validates every requested change, applies it, and publishes a typed event
// describing it. Anything else (a render pass, a persistence round-trip,
// marker navigation) reads the session but must route mutations through a
// Controller, matching the "one writer, many readers" rule the rest of the
// module assumes.
package controller

import "github.com/ripopov/wavescout"

// StructureChangeKind classifies a StructureChangedEvent.
type StructureChangeKind int

const (
	StructureInsert StructureChangeKind = iota
	StructureDelete
	StructureMove
	StructureGroup
	StructureUngroup
)

// Event is the interface implemented by every published event. It carries
// no methods of its own; subscribers type-switch on the concrete event.
type Event interface {
	isEvent()
}

type baseEvent struct{}

func (baseEvent) isEvent() {}

// StructureChangedEvent is published whenever the signal tree shape changes.
type StructureChangedEvent struct {
	baseEvent
	ChangeKind  StructureChangeKind
	AffectedIDs []wavescout.SignalNodeID
	ParentID    *wavescout.SignalNodeID
	InsertRow   *int
}

// FormatChangedEvent is published whenever a node's DisplayFormat, nickname,
// or height scaling changes.
type FormatChangedEvent struct {
	baseEvent
	NodeID wavescout.SignalNodeID
}

// ViewportChangedEvent is published whenever the viewport's bounds change.
type ViewportChangedEvent struct {
	baseEvent
	OldLeft, OldRight float64
	NewLeft, NewRight float64
}

// CursorMovedEvent is published whenever the cursor time changes.
type CursorMovedEvent struct {
	baseEvent
	OldTime, NewTime wavescout.Time
}

// SelectionChangedEvent is published whenever the set of selected node
// instance IDs changes.
type SelectionChangedEvent struct {
	baseEvent
	OldSelection, NewSelection []wavescout.SignalNodeID
}

// MarkerAddedEvent is published when a previously-unused marker slot is set.
type MarkerAddedEvent struct {
	baseEvent
	Slot wavescout.MarkerSlot
	Time wavescout.Time
}

// MarkerRemovedEvent is published when a used marker slot is cleared.
type MarkerRemovedEvent struct {
	baseEvent
	Slot wavescout.MarkerSlot
}

// MarkerMovedEvent is published when an already-used marker slot's time changes.
type MarkerMovedEvent struct {
	baseEvent
	Slot             wavescout.MarkerSlot
	OldTime, NewTime wavescout.Time
}

// SessionLoadedEvent is published when a new session replaces the current one.
type SessionLoadedEvent struct {
	baseEvent
	FilePath string
}

// SessionClosedEvent is published when the current session is cleared.
type SessionClosedEvent struct {
	baseEvent
}
