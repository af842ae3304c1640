package wavescout

// SignalHandle is an opaque key into the waveform DB's signal cache.
// Two distinct hierarchical paths may resolve to the same handle; the DB
// guarantees such aliases share one cached decoded signal.
type SignalHandle int64

// InvalidHandle is never returned by a real DB lookup.
const InvalidHandle SignalHandle = -1

// SignalNodeID uniquely identifies a SignalNode within a process. Two nodes
// referencing the same SignalHandle still get distinct SignalNodeIDs, so
// their height/format settings are independent.
type SignalNodeID int64

// nodeIDCounter is a plain package-level counter, not atomic: the session
// model is mutated only from the controller's single thread (see
// wavescout/controller).
var nodeIDCounter SignalNodeID

// nextSignalNodeID returns a fresh, never-reused SignalNodeID.
func nextSignalNodeID() SignalNodeID {
	nodeIDCounter++
	return nodeIDCounter
}

// resetIDCounterForTest rewinds the package-level ID counter so tests can
// assert on exact ID sequences without interference from test order.
func resetIDCounterForTest() {
	nodeIDCounter = 0
}
