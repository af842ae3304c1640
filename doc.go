// Package wavescout models the document, signal tree, and viewport state for
// a digital/mixed-signal waveform viewer.
//
// A [WaveformSession] is the document root: a tree of [SignalNode] values
// (groups and leaf signals), a [Viewport] into the recording's time range, a
// cursor, and a fixed nine-slot [MarkerSet]. Reading a waveform file and
// sampling its signals for display live in the wavescout/wavedb and
// wavescout/sampling subpackages; mutating a session safely lives in
// wavescout/controller, which is the only code that should change a
// WaveformSession's fields once it has been handed to a Controller.
//
// # Quick start
//
//	sess := wavescout.NewSession()
//	sess.Root.AddChild(wavescout.NewSignal("top.clk", handle, wavescout.DefaultDisplayFormat()))
//
// # Time representation
//
// All times are stored as a [Time] (an int64 count of timescale units); use
// [Timescale.ToSeconds] to convert to wall-clock seconds. [Viewport] works in
// normalized [0,1] document coordinates, independent of the recording's
// absolute duration, so zoom/pan math doesn't need to know TotalDuration
// until it maps back to a [Time] range.
package wavescout
