package wavescout

// WaveformSession is the root of the in-memory document: the signal tree,
// viewport, cursor, markers, and display configuration that together make up
// everything persisted by wavescout/persist. It is a root container in the
// same shape as a scene graph root, generalized from an ebiten-drawable node
// graph to a waveform viewer's document model.
//
// WaveformSession itself exposes no mutation methods beyond simple field
// access; every state change a user can trigger goes through
// wavescout/controller.Controller, which validates, applies, and publishes
// an event for each mutation. Controller is the sole mutator.
type WaveformSession struct {
	// SourcePath is the waveform file this session was loaded from, or ""
	// for a session with no backing file yet.
	SourcePath string

	Root      *SignalNode // always a group; holds the top-level signal tree
	Timescale Timescale

	Viewport   Viewport
	CursorTime Time
	Markers    MarkerSet

	Analysis    AnalysisConfig
	RulerConfig TimeRulerConfig

	// TotalDuration is the recording's length in Timescale units, used to
	// map Viewport's normalized coordinates to absolute Time.
	TotalDuration Time
}

// NewSession returns an empty session: no signals loaded, full-span
// viewport, cursor at time zero, and every marker slot unused.
func NewSession() *WaveformSession {
	return &WaveformSession{
		Root:        NewGroup(""),
		Timescale:   DefaultTimescale,
		Viewport:    NewViewport(DefaultViewportConfig),
		CursorTime:  0,
		Markers:     NewMarkerSet(),
		RulerConfig: DefaultTimeRulerConfig(),
	}
}

// VisibleTimeRange returns the [start, end] Time bounds implied by the
// current Viewport and TotalDuration.
func (s *WaveformSession) VisibleTimeRange() (Time, Time) {
	return s.Viewport.StartTime(s.TotalDuration), s.Viewport.EndTime(s.TotalDuration)
}

// FindNode searches the signal tree for the node with the given InstanceID.
func (s *WaveformSession) FindNode(id SignalNodeID) *SignalNode {
	return s.Root.FindByInstanceID(id)
}
