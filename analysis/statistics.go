// Package analysis computes statistical summaries over a signal's values
// and generates the sampling-time grids the summaries are measured at,
// supplementing the core rendering pipeline with the same measurements
// analysis_engine.py exposes to the original application's analysis panel.
package analysis

import (
	"context"
	"math"
	"sort"

	"github.com/ripopov/wavescout"
	"github.com/ripopov/wavescout/sampling"
	"github.com/ripopov/wavescout/wavedb"
)

// Statistics holds the min/max/sum/average/count of a signal's values
// sampled at a set of times, grounded on analysis_engine.py's
// SignalStatistics.
type Statistics struct {
	SignalName  string
	Min         float64
	Max         float64
	Sum         float64
	Average     float64
	SampleCount int
}

// ComputeStatistics samples node's signal at every time in samplingTimes
// that falls within [startTime, endTime], skips undefined/high-Z samples,
// and accumulates min/max/sum/average over what remains. Matches
// compute_signal_statistics.
func ComputeStatistics(ctx context.Context, db *wavedb.DB, node *wavescout.SignalNode, samplingTimes []wavescout.Time, startTime, endTime wavescout.Time) (Statistics, error) {
	name := node.DisplayName()
	handle, ok := node.Handle()
	if !ok {
		return Statistics{SignalName: name}, nil
	}

	var valid []wavescout.Time
	for _, t := range samplingTimes {
		if t >= startTime && t <= endTime {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		return Statistics{SignalName: name}, nil
	}

	sig, err := db.GetSignal(ctx, handle)
	if err != nil {
		return Statistics{}, err
	}
	v, err := db.VarFromHandle(ctx, handle)
	if err != nil {
		return Statistics{}, err
	}

	min, max, sum := math.Inf(1), math.Inf(-1), 0.0
	count := 0
	for _, t := range valid {
		raw := valueAt(sig, t)
		pv := sampling.ParseValue(raw, node.Format.DataFormat, v.BitWidth)
		if pv.Kind != sampling.ValueNormal || math.IsNaN(pv.Float) {
			continue
		}
		if pv.Float < min {
			min = pv.Float
		}
		if pv.Float > max {
			max = pv.Float
		}
		sum += pv.Float
		count++
	}

	if count == 0 {
		return Statistics{SignalName: name}, nil
	}
	return Statistics{
		SignalName:  name,
		Min:         min,
		Max:         max,
		Sum:         sum,
		Average:     sum / float64(count),
		SampleCount: count,
	}, nil
}

// GenerateSamplingTimesPeriod returns every multiple of period inside
// [startTime, endTime], matching generate_sampling_times_period.
func GenerateSamplingTimesPeriod(startTime, endTime, period wavescout.Time) []wavescout.Time {
	if period <= 0 {
		return nil
	}
	var times []wavescout.Time
	for t := startTime; t <= endTime; t += period {
		times = append(times, t)
	}
	return times
}

// GenerateSamplingTimesSignal returns the times to sample at, derived from
// samplingSignal's own transitions within [startTime, endTime]: for a
// single-bit signal only its positive edges (0→1) qualify; any wider
// signal samples on every transition. Matches
// generate_sampling_times_signal.
func GenerateSamplingTimesSignal(ctx context.Context, db *wavedb.DB, samplingSignal *wavescout.SignalNode, startTime, endTime wavescout.Time) ([]wavescout.Time, error) {
	handle, ok := samplingSignal.Handle()
	if !ok {
		return nil, nil
	}
	sig, err := db.GetSignal(ctx, handle)
	if err != nil {
		return nil, err
	}
	v, err := db.VarFromHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	idx := sort.Search(len(sig.Times), func(i int) bool { return sig.Times[i] >= startTime })
	var times []wavescout.Time
	if v.BitWidth == 1 {
		prev := ""
		for i := idx; i < len(sig.Times) && sig.Times[i] <= endTime; i++ {
			val := valueStr(sig.Values[i])
			if prev == "0" && val == "1" {
				times = append(times, sig.Times[i])
			}
			prev = val
		}
		return times, nil
	}
	for i := idx; i < len(sig.Times) && sig.Times[i] <= endTime; i++ {
		times = append(times, sig.Times[i])
	}
	return times, nil
}

// SampleValue parses node's value at time t, matching sample_signal_value.
func SampleValue(ctx context.Context, db *wavedb.DB, node *wavescout.SignalNode, t wavescout.Time) (sampling.ParsedValue, error) {
	handle, ok := node.Handle()
	if !ok {
		return sampling.ParsedValue{}, nil
	}
	sig, err := db.GetSignal(ctx, handle)
	if err != nil {
		return sampling.ParsedValue{}, err
	}
	v, err := db.VarFromHandle(ctx, handle)
	if err != nil {
		return sampling.ParsedValue{}, err
	}
	return sampling.ParseValue(valueAt(sig, t), node.Format.DataFormat, v.BitWidth), nil
}

// valueAt returns the raw value active at or immediately before t (the
// first value when t precedes every transition), via binary search over
// sig's ascending Times.
func valueAt(sig *wavedb.Signal, t wavescout.Time) any {
	if len(sig.Times) == 0 {
		return nil
	}
	idx := sort.Search(len(sig.Times), func(i int) bool { return sig.Times[i] > t }) - 1
	if idx < 0 {
		idx = 0
	}
	return sig.Values[idx]
}

func valueStr(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
