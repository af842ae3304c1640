// Package wavedb is the facade between the session model and a waveform
// file backend: it resolves hierarchical names to handles, caches decoded
// signal transitions, and coalesces concurrent loads of the same signal.
//
// wavedb depends only on the [Backend] interface, never on a concrete file
// format. Parsing VCD/FST files is out of scope for this module (the backend
// implementation is supplied by the embedder); wavedb's job is caching and
// fan-in on top of whatever Backend is wired in.
package wavedb

import (
	"context"

	"github.com/ripopov/wavescout"
)

// Var describes one hierarchy entry as reported by a Backend: a scope or a
// signal variable, with its bit width and handle if it is a signal.
type Var struct {
	Name      string
	IsScope   bool
	Handle    wavescout.SignalHandle
	BitWidth  int
	IsReal    bool // true for IEEE-754 float-encoded signals
}

// Signal is a single signal's full transition list as decoded from the
// backing file: parallel Times and raw Values, always the same length.
// Values elements are one of nil, string, float64, or int64 per the decode
// rules in wavescout/sampling.
type Signal struct {
	Handle wavescout.SignalHandle
	Times  []wavescout.Time
	Values []any
}

// Query returns the raw value active at t and the time of the next
// transition strictly after t. hasNext is false when t is at or past the
// last recorded transition.
func (s *Signal) Query(t wavescout.Time) (value any, nextTime wavescout.Time, hasNext bool) {
	if s == nil || len(s.Times) == 0 {
		return nil, 0, false
	}
	lo, hi := 0, len(s.Times)-1
	idx := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if s.Times[mid] <= t {
			idx = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	value = s.Values[idx]
	if idx+1 < len(s.Times) {
		return value, s.Times[idx+1], true
	}
	return value, 0, false
}

// Backend is the minimal contract a waveform file reader must satisfy for
// wavedb to serve sessions from it. A real implementation wraps a VCD or FST
// parser; tests use an in-memory fake.
type Backend interface {
	// Hierarchy returns the full scope/variable tree in file order.
	Hierarchy(ctx context.Context) ([]Var, error)

	// Signal decodes and returns the complete transition list for handle.
	// Backends may return the same *Signal for repeated calls with the same
	// handle; wavedb does not assume ownership of the returned value.
	Signal(ctx context.Context, handle wavescout.SignalHandle) (*Signal, error)

	// TimeRange returns the recording's [start, end] time bounds.
	TimeRange(ctx context.Context) (wavescout.Time, wavescout.Time, error)

	// TimeTable returns every distinct timestamp at which any signal in the
	// recording transitions, in ascending order. This is the backend's full
	// time axis, independent of any single signal's own transition list.
	TimeTable(ctx context.Context) ([]wavescout.Time, error)

	// Timescale returns the file's declared timescale.
	Timescale(ctx context.Context) (wavescout.Timescale, error)

	// Close releases any resources (open file handles, mmaps) held by the
	// backend.
	Close() error
}
