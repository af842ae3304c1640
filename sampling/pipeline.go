package sampling

import "github.com/ripopov/wavescout"

// MaxIterationsSafety bounds the sampling loop to canvas_width *
// MaxIterationsSafety steps, matching RENDERING.MAX_ITERATIONS_SAFETY.
const MaxIterationsSafety = 10

// Sample is one (pixelX, value) pair in a signal's drawing data. PixelX is
// measured from startTime and is never negative: sampling begins at the
// later of startTime and time 0, with the value active there.
type Sample struct {
	PixelX float64
	Value  ParsedValue
	// HasMultipleTransitions marks a sample whose pixel column absorbed more
	// than one transition (a pulse/glitch the renderer draws as an aliasing
	// marker instead of a clean edge).
	HasMultipleTransitions bool
}

// Transitions is the subset of wavedb.Signal that the sampling pipeline
// needs: parallel, time-ascending Times and Values slices. Declared locally
// (instead of importing wavedb) so sampling has no dependency on the
// storage layer, only on plain data.
type Transitions struct {
	Times  []wavescout.Time
	Values []any
}

// findAt returns the value active at t and the time of the next transition
// after t (or false if t is at or past the last transition), equivalent to
// pywellen's query_signal(time) used by signal_sampling.py.
func (tr Transitions) findAt(t wavescout.Time) (value any, nextTime wavescout.Time, hasNext bool) {
	if len(tr.Times) == 0 {
		return nil, 0, false
	}
	// Find the last index whose time is <= t via binary search.
	lo, hi := 0, len(tr.Times)-1
	idx := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if tr.Times[mid] <= t {
			idx = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	value = tr.Values[idx]
	if idx+1 < len(tr.Times) {
		return value, tr.Times[idx+1], true
	}
	return value, 0, false
}

// Sample walks tr's transitions across [startTime, endTime) mapped onto
// canvasWidth pixel columns and returns one sample per pixel column that
// either starts the signal or changes value, exactly as
// signal_sampling.py's generate_signal_draw_commands does: single pass,
// bounded by canvasWidth*MaxIterationsSafety iterations, emitting on
// value-change-or-new-pixel-column and fast-skipping to the middle of the
// next pixel column when multiple transitions land in the same column.
//
// waveformMaxTime, if non-nil, clips sampling to the recording's valid
// range; Sample returns nil if the visible range falls entirely outside it.
func Sample(tr Transitions, format wavescout.DataFormat, bitWidth int, startTime, endTime wavescout.Time, canvasWidth int, waveformMaxTime *wavescout.Time) []Sample {
	if canvasWidth <= 0 || len(tr.Times) == 0 {
		return nil
	}
	if waveformMaxTime != nil && (endTime < 0 || startTime > *waveformMaxTime+1) {
		return nil
	}

	timePerPixel := float64(endTime-startTime) / float64(canvasWidth)
	if timePerPixel == 0 {
		timePerPixel = 1
	}

	currentTime := startTime
	if currentTime < 0 {
		currentTime = 0
	}

	var samples []Sample
	prevValueStr := ""
	havePrev := false
	prevPixel := -1.0

	maxIterations := canvasWidth * MaxIterationsSafety
	for i := 0; i < maxIterations; i++ {
		raw, nextTime, hasNext := tr.findAt(currentTime)
		parsed := ParseValue(raw, format, bitWidth)

		currentPixel := float64(currentTime-startTime) / timePerPixel

		if !havePrev || parsed.Str != prevValueStr || (prevPixel >= 0 && int(currentPixel) > int(prevPixel)) {
			samples = append(samples, Sample{PixelX: currentPixel, Value: parsed})
			prevValueStr = parsed.Str
			havePrev = true
			prevPixel = currentPixel
		}

		if !hasNext {
			break
		}
		if waveformMaxTime != nil && nextTime > *waveformMaxTime {
			break
		}
		if nextTime > endTime {
			break
		}

		nextPixel := float64(nextTime-startTime) / timePerPixel
		if nextPixel > float64(canvasWidth) {
			break
		}

		if int(nextPixel) == int(currentPixel) && len(samples) > 0 {
			samples[len(samples)-1].HasMultipleTransitions = true
			nextPixelBoundary := float64(int(currentPixel)) + 1.5
			nextPixelTime := startTime + wavescout.Time(nextPixelBoundary*timePerPixel)
			currentTime = nextPixelTime
		} else {
			currentTime = nextTime
		}
	}

	return samples
}
