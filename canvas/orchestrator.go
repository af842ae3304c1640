// Package canvas renders a WaveformSession's visible rows into a cached
// *ebiten.Image, matching WaveformCanvas's offline-rendering-pipeline
// split: the expensive part (decoding transitions, sampling each signal,
// drawing every row) only happens when the rendered frame's inputs change,
// while the cursor and markers are redrawn on top of the cached image
// every frame.
package canvas

import (
	"context"
	"fmt"
	"hash/fnv"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ripopov/wavescout"
	"github.com/ripopov/wavescout/render"
	"github.com/ripopov/wavescout/sampling"
	"github.com/ripopov/wavescout/waveconfig"
	"github.com/ripopov/wavescout/wavedb"
)

// Row pairs a visible SignalNode with the pixel row it occupies.
type Row struct {
	Node   *wavescout.SignalNode
	Y      int
	Height int
}

// Params is everything the orchestrator needs to decide whether the cached
// frame is still valid and, if not, how to repaint it. CursorTime and
// Markers are deliberately excluded from the cache key: they're painted
// every frame on top of the cached image, mirroring
// WaveformCanvas._hash_render_params's "don't include cursor_time - cursor
// is drawn separately" comment.
type Params struct {
	Width, Height int
	HeaderHeight  int
	StartTime     wavescout.Time
	EndTime       wavescout.Time
	Rows          []Row

	// ClockPeriod and ClockPhase switch the ruler into clock mode when
	// ClockPeriod is nonzero: ticks land on integer multiples of the
	// period and the ruler draws a cycle-count band above the wall-time
	// band, matching Controller.SetClockSignal's detected period/phase.
	ClockPeriod wavescout.Time
	ClockPhase  wavescout.Time
}

// hash returns a deterministic fingerprint of p's cache-relevant fields,
// the Go equivalent of _hash_render_params's tuple-of-key-fields hashing
// (Python's built-in hash() isn't available here, so this folds the same
// fields through hash/fnv instead).
func (p Params) hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%d|%d|%d|%d|%d|%d|%d", p.Width, p.Height, p.HeaderHeight, p.StartTime, p.EndTime, len(p.Rows), p.ClockPeriod, p.ClockPhase)
	for _, r := range p.Rows {
		var col wavescout.Color
		if r.Node.Format.Color != nil {
			col = *r.Node.Format.Color
		}
		handle, _ := r.Node.Handle()
		fmt.Fprintf(h, "|%d:%d:%d:%d:%d:%d:%d:%d:%d",
			handle, r.Y, r.Height, r.Node.HeightScaling,
			r.Node.Format.RenderType, r.Node.Format.DataFormat,
			col.R, col.G, col.B)
	}
	return h.Sum64()
}

// Orchestrator owns the cached rendered frame and the per-signal analog
// range cache, and draws into it on demand.
type Orchestrator struct {
	db *wavedb.DB

	lastHash uint64
	frame    *ebiten.Image

	// analogRanges caches a ScaleAll signal's full-recording [min,max], keyed
	// by instance ID: recomputing it every repaint would mean rescanning the
	// entire signal on every cursor move. ScaleVisible signals recompute
	// their range from the params.StartTime/EndTime window every repaint
	// instead and are never stored here, matching get_signal_range's
	// per-mode caching split.
	analogRanges map[wavescout.SignalNodeID]render.AnalogRange

	Colors waveconfig.Colors

	// RulerConfig drives the ruler's display unit, grid visibility, style,
	// and opacity. It is not part of Params.hash; Paint xors rulerConfigHash
	// into the frame cache key instead, so changing it re-renders the cached
	// frame.
	RulerConfig wavescout.TimeRulerConfig

	whitePixel *ebiten.Image
}

// New builds an Orchestrator backed by db. Colors defaults to
// waveconfig.DefaultColors.
func New(db *wavedb.DB) *Orchestrator {
	return &Orchestrator{
		db:           db,
		analogRanges: make(map[wavescout.SignalNodeID]render.AnalogRange),
		Colors:       waveconfig.DefaultColors,
		RulerConfig:  wavescout.DefaultTimeRulerConfig(),
	}
}

// rulerConfigHash folds the appearance fields that affect the cached frame
// (but aren't part of Params) into a value Paint can xor into its cache key,
// so toggling grid style/opacity/unit invalidates the frame like any other
// render-affecting change.
func (o *Orchestrator) rulerConfigHash() uint64 {
	h := fnv.New64a()
	unit := -1
	if o.RulerConfig.DisplayUnit != nil {
		unit = int(*o.RulerConfig.DisplayUnit)
	}
	fmt.Fprintf(h, "%v|%d|%d|%d|%d|%d|%f", o.RulerConfig.ShowGrid, unit,
		o.RulerConfig.GridColor.R, o.RulerConfig.GridColor.G, o.RulerConfig.GridColor.B, o.RulerConfig.GridStyle, o.RulerConfig.GridOpacity)
	return h.Sum64()
}

// InvalidateAnalogRange drops a cached ScaleAll range, forcing it to be
// recomputed the next time the signal is painted. Call this after a format
// change or session reload affects the node.
func (o *Orchestrator) InvalidateAnalogRange(id wavescout.SignalNodeID) {
	delete(o.analogRanges, id)
}

// Paint draws the current frame (re-rendering it first if params changed
// since the last call) plus the cursor and markers on top, matching
// paintEvent's full-update-then-overlay sequencing.
func (o *Orchestrator) Paint(ctx context.Context, dst *ebiten.Image, params Params, cursorTime wavescout.Time, markers wavescout.MarkerSet) error {
	h := params.hash() ^ o.rulerConfigHash()
	if o.frame == nil || h != o.lastHash {
		frame, err := o.renderFrame(ctx, params)
		if err != nil {
			return err
		}
		o.frame = frame
		o.lastHash = h
	}

	dst.DrawImage(o.frame, &ebiten.DrawImageOptions{})

	o.paintCursor(dst, params, cursorTime)
	o.paintMarkers(dst, params, markers)
	return nil
}

// renderFrame rebuilds the full cached frame: background, grid, ruler, and
// one row per visible signal, matching _render_to_image /
// _paint_full_update.
func (o *Orchestrator) renderFrame(ctx context.Context, params Params) (*ebiten.Image, error) {
	w, h := params.Width, params.Height
	if w < waveconfig.DefaultRendering.MinCanvasWidth {
		w = waveconfig.DefaultRendering.MinCanvasWidth
	}
	if h < 1 {
		h = 1
	}
	frame := ebiten.NewImage(w, h)
	frame.Fill(o.Colors.BackgroundInvalid)

	waveMin, waveMax, err := o.db.TimeRange(ctx)
	if err == nil {
		o.fillValidRangeBackground(frame, params, waveMin, waveMax)
	}

	ts, _ := o.db.Timescale(ctx)
	unit := wavescout.UnitNs
	if o.RulerConfig.DisplayUnit != nil {
		unit = *o.RulerConfig.DisplayUnit
	}

	var ticks []render.Tick
	if params.ClockPeriod > 0 {
		ticks = render.CalculateClockTicks(ts, params.ClockPeriod, params.ClockPhase, params.StartTime, params.EndTime, w, unit, waveconfig.DefaultTimeRuler.TickDensity)
	} else {
		ticks = render.CalculateTicks(ts, params.StartTime, params.EndTime, w, unit, waveconfig.DefaultTimeRuler.TickDensity)
	}

	if o.RulerConfig.ShowGrid {
		gridColor := toRGBA(o.RulerConfig.GridColor)
		render.DrawGrid(frame, ticks, w, h, params.HeaderHeight, gridColor, o.RulerConfig.GridStyle, o.RulerConfig.GridOpacity)
	}

	for _, row := range params.Rows {
		if err := o.paintRow(ctx, frame, row, params, &waveMax); err != nil {
			return nil, err
		}
	}

	render.DrawRuler(frame, ticks, w, params.HeaderHeight, o.Colors)
	return frame, nil
}

// fillValidRangeBackground paints the portion of the row that falls
// within the recording's actual time range with the lighter "valid"
// background color, matching _render_to_image's x_min/x_max boundary fill.
func (o *Orchestrator) fillValidRangeBackground(frame *ebiten.Image, params Params, waveMin, waveMax wavescout.Time) {
	if params.EndTime <= params.StartTime {
		return
	}
	duration := float64(params.EndTime - params.StartTime)
	xMin := int(float64(waveMin-params.StartTime) * float64(params.Width) / duration)
	xMax := int(float64(waveMax+1-params.StartTime) * float64(params.Width) / duration)
	if xMin < 0 {
		xMin = 0
	}
	if xMax > params.Width {
		xMax = params.Width
	}
	if xMax <= xMin {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(xMax-xMin), float64(params.Height))
	op.GeoM.Translate(float64(xMin), 0)
	op.ColorScale.ScaleWithColor(o.Colors.Background)
	frame.DrawImage(o.ensureWhitePixel(), op)
}

func (o *Orchestrator) ensureWhitePixel() *ebiten.Image {
	if o.whitePixel == nil {
		o.whitePixel = ebiten.NewImage(1, 1)
		o.whitePixel.Fill(color.White)
	}
	return o.whitePixel
}

func (o *Orchestrator) paintRow(ctx context.Context, frame *ebiten.Image, row Row, params Params, waveMax *wavescout.Time) error {
	handle, ok := row.Node.Handle()
	if !ok {
		return nil
	}
	sig, err := o.db.GetSignal(ctx, handle)
	if err != nil {
		return err
	}
	v, err := o.db.VarFromHandle(ctx, handle)
	if err != nil {
		return err
	}

	format := row.Node.Format
	samples := sampling.Sample(
		sampling.Transitions{Times: sig.Times, Values: sig.Values},
		format.DataFormat, v.BitWidth,
		params.StartTime, params.EndTime, params.Width, waveMax,
	)

	col := color.Color(o.Colors.DefaultSignal)
	if format.Color != nil {
		col = toRGBA(*format.Color)
	}

	switch format.RenderType {
	case wavescout.RenderBool:
		render.DrawBool(frame, samples, row.Y, row.Height, params.Width, col, waveconfig.DefaultRendering.SignalMarginTop, waveconfig.DefaultRendering.SignalMarginBottom)
	case wavescout.RenderBus:
		render.DrawBus(frame, samples, row.Y, row.Height, params.Width, col, waveconfig.DefaultRendering.MinBusTextWidth, waveconfig.DefaultRendering.SignalMarginTop, waveconfig.DefaultRendering.SignalMarginBottom)
	case wavescout.RenderEvent:
		render.DrawEvent(frame, samples, row.Y, row.Height, col, waveconfig.DefaultRendering.SignalMarginTop, waveconfig.DefaultRendering.SignalMarginBottom)
	case wavescout.RenderAnalog:
		rng := o.analogRange(row.Node, sig, format, v.BitWidth, params)
		render.DrawAnalog(frame, samples, row.Y, row.Height, rng, col, row.Node.HeightScaling, waveconfig.DefaultRendering.SignalMarginTop, waveconfig.DefaultRendering.SignalMarginBottom)
	}
	return nil
}

// analogRange resolves the [min,max] band an analog row scales against,
// caching it across frames for ScaleAll and recomputing it from only the
// visible samples for ScaleVisible, matching get_signal_range's two modes.
func (o *Orchestrator) analogRange(node *wavescout.SignalNode, sig *wavedb.Signal, format wavescout.DisplayFormat, bitWidth int, params Params) render.AnalogRange {
	if format.AnalogScalingMode == wavescout.ScaleVisible {
		return computeRange(sig, format, bitWidth, params.StartTime, params.EndTime)
	}
	if rng, ok := o.analogRanges[node.InstanceID]; ok {
		return rng
	}
	if len(sig.Times) == 0 {
		return render.AnalogRange{Min: 0, Max: 1}
	}
	rng := computeRange(sig, format, bitWidth, sig.Times[0], sig.Times[len(sig.Times)-1]+1)
	o.analogRanges[node.InstanceID] = rng
	return rng
}

func computeRange(sig *wavedb.Signal, format wavescout.DisplayFormat, bitWidth int, start, end wavescout.Time) render.AnalogRange {
	minV, maxV := 0.0, 0.0
	first := true
	for i, t := range sig.Times {
		if t < start || t >= end {
			continue
		}
		pv := sampling.ParseValue(sig.Values[i], format.DataFormat, bitWidth)
		if pv.Kind != sampling.ValueNormal {
			continue
		}
		if first {
			minV, maxV, first = pv.Float, pv.Float, false
			continue
		}
		if pv.Float < minV {
			minV = pv.Float
		}
		if pv.Float > maxV {
			maxV = pv.Float
		}
	}
	if first {
		return render.AnalogRange{Min: 0, Max: 1}
	}
	return render.AnalogRange{Min: minV, Max: maxV}
}

func (o *Orchestrator) paintCursor(dst *ebiten.Image, params Params, cursorTime wavescout.Time) {
	if params.EndTime <= params.StartTime {
		return
	}
	x := float64(cursorTime-params.StartTime) * float64(params.Width) / float64(params.EndTime-params.StartTime)
	if x < 0 || x > float64(params.Width) {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(waveconfig.DefaultRendering.CursorWidth), float64(params.Height))
	op.GeoM.Translate(x-float64(waveconfig.DefaultRendering.CursorWidth)/2, 0)
	op.ColorScale.ScaleWithColor(o.Colors.Cursor)
	dst.DrawImage(o.ensureWhitePixel(), op)
}

func (o *Orchestrator) paintMarkers(dst *ebiten.Image, params Params, markers wavescout.MarkerSet) {
	if params.EndTime <= params.StartTime {
		return
	}
	slots := make([]int, 0, len(markers))
	for i := range markers {
		slots = append(slots, i)
	}
	sort.Ints(slots)
	for _, i := range slots {
		slot := wavescout.MarkerSlot(i)
		if !markers.IsUsed(slot) {
			continue
		}
		m := markers[i]
		x := float64(m.Time-params.StartTime) * float64(params.Width) / float64(params.EndTime-params.StartTime)
		if x < 0 || x > float64(params.Width) {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(waveconfig.DefaultRendering.MarkerWidth), float64(params.Height))
		op.GeoM.Translate(x, 0)
		op.ColorScale.ScaleWithColor(toRGBA(m.Color))
		dst.DrawImage(o.ensureWhitePixel(), op)
	}
}

// toRGBA converts a document-layer 8-bit Color (no alpha channel) into the
// render layer's image/color.RGBA, fully opaque.
func toRGBA(c wavescout.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
