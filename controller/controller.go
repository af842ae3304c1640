package controller

import (
	"context"
	"sort"

	"github.com/ripopov/wavescout"
	"github.com/ripopov/wavescout/sampling"
	"github.com/ripopov/wavescout/wavedb"
)

// Controller owns a wavescout.WaveformSession and is the only code path
// allowed to mutate it: every exported method that changes the session
// validates its arguments, applies the change, and publishes one or more
// events through Bus. The clock, sampling-signal and benchmark-mode settings
// are kept on the Controller itself and publish no event. This
// mirrors waveform_controller.py's WaveformController almost method for
// method, with Python's ad-hoc string-keyed callback registry
// (on/off/_emit) replaced by the typed EventBus from eventbus.go per the
// full event taxonomy.
type Controller struct {
	Session *wavescout.WaveformSession
	DB      *wavedb.DB
	Bus     *EventBus

	selected      map[wavescout.SignalNodeID]bool
	benchmarkMode bool

	clockSignal *wavescout.SignalNodeID
	clockPeriod wavescout.Time
	clockPhase  wavescout.Time

	samplingSignal *wavescout.SignalNodeID
}

// New returns a Controller with no session loaded yet.
func New(bus *EventBus) *Controller {
	return &Controller{Bus: bus, selected: make(map[wavescout.SignalNodeID]bool)}
}

// SetSession installs session as the active document, clears selection, and
// publishes SessionLoaded followed by a ViewportChanged/CursorMoved refresh
// so subscribers can redraw immediately.
func (c *Controller) SetSession(session *wavescout.WaveformSession, db *wavedb.DB) {
	c.Session = session
	c.DB = db
	c.selected = make(map[wavescout.SignalNodeID]bool)
	c.clockSignal = nil
	c.samplingSignal = nil
	c.Bus.Publish(SessionLoadedEvent{FilePath: session.SourcePath})
	vp := session.Viewport
	c.Bus.Publish(ViewportChangedEvent{OldLeft: vp.Left, OldRight: vp.Right, NewLeft: vp.Left, NewRight: vp.Right})
	c.Bus.Publish(CursorMovedEvent{OldTime: session.CursorTime, NewTime: session.CursorTime})
}

// CloseSession clears the active document.
func (c *Controller) CloseSession() {
	c.Session = nil
	c.DB = nil
	c.selected = make(map[wavescout.SignalNodeID]bool)
	c.Bus.Publish(SessionClosedEvent{})
}

// ---- Selection ----

// SetSelection replaces the current selection with the given node IDs.
// No-op (no event) if the new set equals the old one.
func (c *Controller) SetSelection(ids []wavescout.SignalNodeID) {
	if c.Session == nil {
		return
	}
	newSet := make(map[wavescout.SignalNodeID]bool, len(ids))
	for _, id := range ids {
		newSet[id] = true
	}
	if mapsEqual(newSet, c.selected) {
		return
	}
	old := c.Selected()
	c.selected = newSet
	c.Bus.Publish(SelectionChangedEvent{OldSelection: old, NewSelection: c.Selected()})
}

// Selected returns the currently selected node IDs in ascending order.
func (c *Controller) Selected() []wavescout.SignalNodeID {
	ids := make([]wavescout.SignalNodeID, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func mapsEqual(a, b map[wavescout.SignalNodeID]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// ---- Cursor & benchmark ----

// SetCursorTime moves the cursor. No-op if unchanged.
func (c *Controller) SetCursorTime(t wavescout.Time) {
	if c.Session == nil || c.Session.CursorTime == t {
		return
	}
	old := c.Session.CursorTime
	c.Session.CursorTime = t
	c.Bus.Publish(CursorMovedEvent{OldTime: old, NewTime: t})
}

// NavigateToTime is an alias of SetCursorTime kept distinct because future
// navigation policies (snap-to-transition) may diverge from a raw cursor set.
func (c *Controller) NavigateToTime(t wavescout.Time) {
	c.SetCursorTime(t)
}

// NavigateToClockCycle moves the cursor to ClockPhase + n*ClockPeriod. No-op
// if no clock signal has been set via SetClockSignal.
func (c *Controller) NavigateToClockCycle(n int64) {
	if c.clockPeriod == 0 {
		return
	}
	c.SetCursorTime(c.clockPhase + wavescout.Time(n)*c.clockPeriod)
}

// ToggleBenchmarkMode flips the canvas benchmark render pattern flag.
func (c *Controller) ToggleBenchmarkMode() {
	c.benchmarkMode = !c.benchmarkMode
}

// BenchmarkMode reports whether the benchmark render pattern is active.
func (c *Controller) BenchmarkMode() bool {
	return c.benchmarkMode
}

// ---- Tree operations ----

// InsertNode adds child under parent (or Session.Root if parent is nil) at
// row, and publishes StructureChanged{kind: insert}.
func (c *Controller) InsertNode(parent *wavescout.SignalNode, row int, child *wavescout.SignalNode) {
	if c.Session == nil {
		return
	}
	if parent == nil {
		parent = c.Session.Root
	}
	parent.AddChildAt(child, row)
	parentID := parent.InstanceID
	c.Bus.Publish(StructureChangedEvent{
		ChangeKind:  StructureInsert,
		AffectedIDs: []wavescout.SignalNodeID{child.InstanceID},
		ParentID:    &parentID,
		InsertRow:   &row,
	})
}

// DeleteNodes removes every listed node from its parent.
func (c *Controller) DeleteNodes(nodes []*wavescout.SignalNode) {
	if c.Session == nil || len(nodes) == 0 {
		return
	}
	ids := make([]wavescout.SignalNodeID, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.InstanceID)
		n.RemoveFromParent()
		delete(c.selected, n.InstanceID)
	}
	c.Bus.Publish(StructureChangedEvent{ChangeKind: StructureDelete, AffectedIDs: ids})
}

// MoveNodes relocates every listed node under newParent (or Root if nil) at
// row, preserving order, and publishes one StructureChanged{kind: move}.
func (c *Controller) MoveNodes(nodes []*wavescout.SignalNode, newParent *wavescout.SignalNode, row int) {
	if c.Session == nil || len(nodes) == 0 {
		return
	}
	if newParent == nil {
		newParent = c.Session.Root
	}
	ids := make([]wavescout.SignalNodeID, 0, len(nodes))
	for i, n := range nodes {
		n.RemoveFromParent()
		newParent.AddChildAt(n, row+i)
		ids = append(ids, n.InstanceID)
	}
	parentID := newParent.InstanceID
	c.Bus.Publish(StructureChangedEvent{
		ChangeKind:  StructureMove,
		AffectedIDs: ids,
		ParentID:    &parentID,
		InsertRow:   &row,
	})
}

// GroupNodes creates a new group named name under the parent of the first
// top-level node in nodes (Root if it has none), moves those nodes into it
// in the order given, and returns it. A node whose ancestor is also in
// nodes stays inside that ancestor, so grouping a mix of signals and
// existing groups preserves each existing subtree unchanged.
func (c *Controller) GroupNodes(nodes []*wavescout.SignalNode, name string, mode wavescout.GroupRenderMode) *wavescout.SignalNode {
	if c.Session == nil || len(nodes) == 0 {
		return nil
	}
	selected := make(map[*wavescout.SignalNode]bool, len(nodes))
	for _, n := range nodes {
		selected[n] = true
	}
	var top []*wavescout.SignalNode
	for _, n := range nodes {
		nested := false
		for p := n.Parent; p != nil && !nested; p = p.Parent {
			nested = selected[p]
		}
		if !nested {
			top = append(top, n)
		}
	}
	parent := top[0].Parent
	if parent == nil {
		parent = c.Session.Root
	}
	group := wavescout.NewGroup(name)
	group.GroupRenderMode = &mode
	parent.AddChild(group)
	ids := make([]wavescout.SignalNodeID, 0, len(top)+1)
	for _, n := range top {
		n.RemoveFromParent()
		group.AddChild(n)
		ids = append(ids, n.InstanceID)
	}
	ids = append(ids, group.InstanceID)
	parentID := parent.InstanceID
	c.Bus.Publish(StructureChangedEvent{ChangeKind: StructureGroup, AffectedIDs: ids, ParentID: &parentID})
	return group
}

// Ungroup dissolves group, reattaching its children to group's former parent
// at group's former position, and removing group itself.
func (c *Controller) Ungroup(group *wavescout.SignalNode) {
	if c.Session == nil || group == nil || !group.IsGroup() {
		return
	}
	parent := group.Parent
	if parent == nil {
		parent = c.Session.Root
	}
	row := indexOf(parent, group)
	children := append([]*wavescout.SignalNode(nil), group.Children()...)
	group.RemoveFromParent()
	ids := make([]wavescout.SignalNodeID, 0, len(children))
	for i, ch := range children {
		ch.RemoveFromParent()
		parent.AddChildAt(ch, row+i)
		ids = append(ids, ch.InstanceID)
	}
	parentID := parent.InstanceID
	c.Bus.Publish(StructureChangedEvent{ChangeKind: StructureUngroup, AffectedIDs: ids, ParentID: &parentID})
}

func indexOf(parent, child *wavescout.SignalNode) int {
	for i, c := range parent.Children() {
		if c == child {
			return i
		}
	}
	return 0
}

// SetNodeExpanded toggles whether a group's children are shown.
func (c *Controller) SetNodeExpanded(node *wavescout.SignalNode, expanded bool) {
	if node == nil || node.IsExpanded == expanded {
		return
	}
	node.IsExpanded = expanded
	c.Bus.Publish(FormatChangedEvent{NodeID: node.InstanceID})
}

// RenameNode sets node's display nickname.
func (c *Controller) RenameNode(node *wavescout.SignalNode, nickname string) {
	if node == nil {
		return
	}
	node.Nickname = nickname
	c.Bus.Publish(FormatChangedEvent{NodeID: node.InstanceID})
}

// ---- Formatting ----

// SetNodeFormat replaces node's DisplayFormat and publishes FormatChanged.
// Height scaling is set by SetNodeHeightScaling, which publishes the same
// FormatChanged event so the canvas is invalidated the same way.
func (c *Controller) SetNodeFormat(node *wavescout.SignalNode, format wavescout.DisplayFormat) {
	if node == nil {
		return
	}
	node.Format = format
	node.FormatDirty = true
	c.Bus.Publish(FormatChangedEvent{NodeID: node.InstanceID})
}

// SetNodeHeightScaling sets node's row-height multiplier. Silently clamps to
// the nearest valid level if v isn't one of wavescout.HeightScalingLevels.
func (c *Controller) SetNodeHeightScaling(node *wavescout.SignalNode, v int) {
	if node == nil {
		return
	}
	if !wavescout.ValidHeightScaling(v) {
		v = nearestHeightScaling(v)
	}
	node.HeightScaling = v
	node.FormatDirty = true
	c.Bus.Publish(FormatChangedEvent{NodeID: node.InstanceID})
}

func nearestHeightScaling(v int) int {
	best := wavescout.HeightScalingLevels[0]
	bestDist := abs(v - best)
	for _, l := range wavescout.HeightScalingLevels {
		if d := abs(v - l); d < bestDist {
			best, bestDist = l, d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ---- Viewport operations ----

func (c *Controller) publishViewportChange(old wavescout.Viewport) {
	vp := c.Session.Viewport
	if old.Left == vp.Left && old.Right == vp.Right {
		return
	}
	c.Bus.Publish(ViewportChangedEvent{OldLeft: old.Left, OldRight: old.Right, NewLeft: vp.Left, NewRight: vp.Right})
}

// ZoomToFit resets the viewport to the full [0,1] recording span.
func (c *Controller) ZoomToFit() {
	if c.Session == nil {
		return
	}
	old := c.Session.Viewport
	c.Session.Viewport.Left, c.Session.Viewport.Right = 0, 1
	c.publishViewportChange(old)
}

// GoToStart moves the viewport to the recording's start, keeping its width.
func (c *Controller) GoToStart() {
	if c.Session == nil {
		return
	}
	old := c.Session.Viewport
	width := old.Width()
	c.Session.Viewport.Left, c.Session.Viewport.Right = 0, width
	c.publishViewportChange(old)
}

// GoToEnd moves the viewport to the recording's end, keeping its width.
func (c *Controller) GoToEnd() {
	if c.Session == nil {
		return
	}
	old := c.Session.Viewport
	width := old.Width()
	c.Session.Viewport.Left, c.Session.Viewport.Right = 1-width, 1
	c.publishViewportChange(old)
}

// PanViewport shifts the viewport by delta, normalized [0,1] document units.
func (c *Controller) PanViewport(delta float64) {
	if c.Session == nil {
		return
	}
	old := c.Session.Viewport
	c.Session.Viewport = c.Session.Viewport.Pan(delta)
	c.publishViewportChange(old)
}

// minimumZoomWidth matches waveform_controller.py's _get_minimum_zoom_width:
// the wider of the config's absolute minimum_width_time (normalized) and a
// timescale floor of 2 raw time units, so zooming in can never collapse the
// viewport below what the recording's own time resolution can represent.
func (c *Controller) minimumZoomWidth() float64 {
	vp := c.Session.Viewport
	total := c.Session.TotalDuration
	if total <= 0 {
		return vp.Config.MinWidth
	}
	configMin := vp.Config.MinWidth
	timescaleMin := 2.0 / float64(total)
	if timescaleMin > configMin {
		return timescaleMin
	}
	return configMin
}

// ZoomViewport zooms around anchorRelative (normalized [Left,Right]
// position); if anchorRelative is nil the viewport's own center is used.
// factor < 1 zooms in, factor > 1 zooms out. Applies the anchor-relative
// zoom formula directly (not via Viewport.ZoomAt, since the minimum width
// here is dynamic per minimumZoomWidth rather than ViewportConfig's static
// floor).
func (c *Controller) ZoomViewport(factor float64, anchorRelative *float64) {
	if c.Session == nil {
		return
	}
	old := c.Session.Viewport
	vp := &c.Session.Viewport
	center := (vp.Left + vp.Right) / 2
	if anchorRelative != nil {
		center = *anchorRelative
	}
	leftDist := center - vp.Left
	rightDist := vp.Right - center
	newLeft := center - leftDist*factor
	newRight := center + rightDist*factor

	if minWidth := c.minimumZoomWidth(); newRight-newLeft < minWidth {
		half := minWidth / 2
		newLeft = center - half
		newRight = center + half
	}
	maxWidth := 1 + 2*vp.Config.EdgeSpace
	if newRight-newLeft > maxWidth {
		newLeft = -vp.Config.EdgeSpace
		newRight = 1 + vp.Config.EdgeSpace
	}
	vp.Left, vp.Right = newLeft, newRight
	c.publishViewportChange(old)
}

// ZoomToROI sets the viewport to exactly [startTime, endTime], enforcing the
// dynamic minimum width and swapping reversed bounds.
func (c *Controller) ZoomToROI(startTime, endTime wavescout.Time) {
	if c.Session == nil || c.Session.TotalDuration <= 0 {
		return
	}
	old := c.Session.Viewport
	total := float64(c.Session.TotalDuration)
	left := float64(startTime) / total
	right := float64(endTime) / total
	if left > right {
		left, right = right, left
	}
	if minWidth := c.minimumZoomWidth(); right-left < minWidth {
		mid := (left + right) / 2
		left, right = mid-minWidth/2, mid+minWidth/2
	}
	c.Session.Viewport = c.Session.Viewport.ZoomToRange(left, right)
	c.publishViewportChange(old)
}

// ---- Markers ----

// AddMarker places a marker at t in slot with the given color, replacing
// any marker already in that slot. The color is always the caller's; there
// is no form that keeps an existing color or picks a default. It publishes MarkerMoved (with the
// replaced marker's time as OldTime) when the slot was in use, and
// MarkerAdded otherwise.
func (c *Controller) AddMarker(slot wavescout.MarkerSlot, t wavescout.Time, color wavescout.Color) {
	if c.Session == nil {
		return
	}
	wasUsed := c.Session.Markers.IsUsed(slot)
	oldTime := c.Session.Markers[slot].Time
	c.Session.Markers.Set(slot, t, color)
	if wasUsed {
		c.Bus.Publish(MarkerMovedEvent{Slot: slot, OldTime: oldTime, NewTime: t})
	} else {
		c.Bus.Publish(MarkerAddedEvent{Slot: slot, Time: t})
	}
}

// RemoveMarker clears slot, publishing MarkerRemoved if it was in use.
func (c *Controller) RemoveMarker(slot wavescout.MarkerSlot) {
	if c.Session == nil || !c.Session.Markers.IsUsed(slot) {
		return
	}
	c.Session.Markers.Clear(slot)
	c.Bus.Publish(MarkerRemovedEvent{Slot: slot})
}

// UpdateMarkerTime moves an already-placed marker.
func (c *Controller) UpdateMarkerTime(slot wavescout.MarkerSlot, t wavescout.Time) {
	if c.Session == nil || !c.Session.Markers.IsUsed(slot) {
		return
	}
	old := c.Session.Markers[slot].Time
	c.Session.Markers[slot].Time = t
	c.Bus.Publish(MarkerMovedEvent{Slot: slot, OldTime: old, NewTime: t})
}

// UpdateMarkerColor recolors an already-placed marker.
func (c *Controller) UpdateMarkerColor(slot wavescout.MarkerSlot, color wavescout.Color) {
	if c.Session == nil || !c.Session.Markers.IsUsed(slot) {
		return
	}
	c.Session.Markers[slot].Color = color
	c.Bus.Publish(MarkerMovedEvent{Slot: slot, OldTime: c.Session.Markers[slot].Time, NewTime: c.Session.Markers[slot].Time})
}

// GetMarker returns the marker in slot and true, or zero value and false if unused.
func (c *Controller) GetMarker(slot wavescout.MarkerSlot) (wavescout.Marker, bool) {
	if c.Session == nil || !c.Session.Markers.IsUsed(slot) {
		return wavescout.Marker{}, false
	}
	return c.Session.Markers[slot], true
}

// ToggleMarkerAtCursor removes the marker in slot if it already sits at the
// cursor, otherwise places/moves it there.
func (c *Controller) ToggleMarkerAtCursor(slot wavescout.MarkerSlot, color wavescout.Color) {
	if c.Session == nil {
		return
	}
	cursor := c.Session.CursorTime
	if m, ok := c.GetMarker(slot); ok && m.Time == cursor {
		c.RemoveMarker(slot)
		return
	}
	c.AddMarker(slot, cursor, color)
}

// NavigateToMarker shifts the viewport so slot's marker appears pixelOffset
// pixels from the viewport's left edge, given the canvas is canvasWidth
// pixels wide. No-op if slot is unused.
func (c *Controller) NavigateToMarker(slot wavescout.MarkerSlot, pixelOffset, canvasWidth int) {
	if c.Session == nil || c.Session.TotalDuration <= 0 || canvasWidth <= 0 {
		return
	}
	m, ok := c.GetMarker(slot)
	if !ok {
		return
	}
	old := c.Session.Viewport
	vp := &c.Session.Viewport
	width := vp.Width()
	offsetNormalized := (float64(pixelOffset) / float64(canvasWidth)) * width
	markerNormalized := float64(m.Time) / float64(c.Session.TotalDuration)

	newLeft := markerNormalized - offsetNormalized
	newRight := newLeft + width

	edgeSpace := vp.Config.EdgeSpace
	minLeft := -(width * edgeSpace)
	maxRight := 1 + width*edgeSpace
	if newLeft < minLeft {
		off := minLeft - newLeft
		newLeft = minLeft
		newRight += off
	} else if newRight > maxRight {
		off := newRight - maxRight
		newLeft -= off
		newRight = maxRight
	}
	vp.Left, vp.Right = newLeft, newRight
	c.publishViewportChange(old)
}

// ---- Clock & sampling signal ----

// SetClockSignal designates node as the clock reference and runs period
// detection against the transitions currently cached in DB: for a 1-bit
// wire, the minimum positive edge interval and the first positive edge's
// time; for an event signal, the minimum inter-event interval; for a bus
// treated as a counter, Δtime/Δvalue between two known samples.
func (c *Controller) SetClockSignal(node *wavescout.SignalNode) error {
	if c.Session == nil || c.DB == nil || node == nil || node.IsGroup() {
		return nil
	}
	handle, _ := node.Handle()
	sig, err := c.DB.GetSignal(context.Background(), handle)
	if err != nil {
		return err
	}
	v, err := c.DB.VarFromHandle(context.Background(), handle)
	if err != nil {
		return err
	}
	period, phase := detectClockPeriod(sig, node.Format.RenderType, node.Format.DataFormat, v.BitWidth)
	id := node.InstanceID
	c.clockSignal = &id
	c.clockPeriod = period
	c.clockPhase = phase
	return nil
}

// ClearClockSignal removes the current clock reference.
func (c *Controller) ClearClockSignal() {
	c.clockSignal = nil
	c.clockPeriod = 0
	c.clockPhase = 0
}

// IsClockSignal reports whether node is the current clock reference.
func (c *Controller) IsClockSignal(node *wavescout.SignalNode) bool {
	return c.clockSignal != nil && node != nil && *c.clockSignal == node.InstanceID
}

// ClockPeriodAndPhase returns the period/phase detected by SetClockSignal,
// or (0, 0) when no clock signal is set. The renderer uses a nonzero period
// to switch the ruler into clock mode.
func (c *Controller) ClockPeriodAndPhase() (period, phase wavescout.Time) {
	return c.clockPeriod, c.clockPhase
}

// SetSamplingSignal designates node as the reference signal analysis-mode
// edge sampling uses (wavescout/analysis.GenerateSamplingTimesSignal).
func (c *Controller) SetSamplingSignal(node *wavescout.SignalNode) {
	if node == nil {
		return
	}
	id := node.InstanceID
	c.samplingSignal = &id
}

// detectClockPeriod implements the period/phase detection rules: bool
// signals use the minimum positive-edge interval; bus signals whose first
// two values parse as numbers counting upward use Δtime/Δvalue between
// those two samples; event signals, and buses that do not count upward,
// use the minimum interval between any two consecutive transitions.
// Raw values are normalized through sampling.ParseValue before edge
// detection since a Backend may report a 1-bit wire's high state as the
// string "1", the int64 1, or the float64 1.0 rather than assuming the
// string encoding.
func detectClockPeriod(sig *wavedb.Signal, renderType wavescout.RenderType, format wavescout.DataFormat, bitWidth int) (period, phase wavescout.Time) {
	if sig == nil || len(sig.Times) < 2 {
		return 0, 0
	}

	if renderType == wavescout.RenderBool {
		var firstRise wavescout.Time
		haveFirst := false
		minInterval := wavescout.Time(-1)
		var lastRise wavescout.Time
		haveLast := false
		for i, v := range sig.Values {
			if !sampling.ParseValue(v, format, bitWidth).Bool {
				continue
			}
			if !haveFirst {
				firstRise = sig.Times[i]
				haveFirst = true
			}
			if haveLast {
				interval := sig.Times[i] - lastRise
				if minInterval == -1 || interval < minInterval {
					minInterval = interval
				}
			}
			lastRise = sig.Times[i]
			haveLast = true
		}
		if minInterval == -1 {
			return 0, 0
		}
		return minInterval, firstRise
	}

	if renderType == wavescout.RenderBus {
		v0 := sampling.ParseValue(sig.Values[0], format, bitWidth)
		v1 := sampling.ParseValue(sig.Values[1], format, bitWidth)
		dv := v1.Float - v0.Float
		if v0.Kind == sampling.ValueNormal && v1.Kind == sampling.ValueNormal && dv > 0 {
			return wavescout.Time(float64(sig.Times[1]-sig.Times[0]) / dv), sig.Times[0]
		}
	}

	// Event signals and non-counting buses: minimum interval between
	// consecutive transitions, phase at the first transition.
	minInterval := sig.Times[1] - sig.Times[0]
	for i := 1; i < len(sig.Times)-1; i++ {
		if d := sig.Times[i+1] - sig.Times[i]; d < minInterval {
			minInterval = d
		}
	}
	return minInterval, sig.Times[0]
}
