package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/ripopov/wavescout/sampling"
)

// AnalogRange is the [min, max] value band a row of analog samples is
// scaled against, as computed by the caller (wavescout/analysis or the
// canvas orchestrator) per the session's AnalogScalingMode.
type AnalogRange struct {
	Min, Max float64
}

// widen adds 10% headroom on both ends, matching draw_analog_signal's
// "add margin to the range" step so a value sitting exactly at min/max
// isn't drawn flush against the row's edge.
func (r AnalogRange) widen() AnalogRange {
	span := r.Max - r.Min
	if span == 0 {
		span = 1
	}
	margin := span * 0.1
	return AnalogRange{Min: r.Min - margin, Max: r.Max + margin}
}

// DrawAnalog renders a sampled numeric signal as a polyline scaled into
// valueRange, breaking the line at undefined/high-impedance samples and
// drawing a faint vertical marker under any sample flagged
// HasMultipleTransitions, matching draw_analog_signal. When heightScaling
// exceeds 1 (the row has enough vertical room), the resolved min/max labels
// are drawn at the top/bottom of the row.
func DrawAnalog(dst *ebiten.Image, samples []sampling.Sample, y, rowHeight int, valueRange AnalogRange, col color.Color, heightScaling int, marginTop, marginBottom int) {
	if len(samples) == 0 {
		return
	}
	yTop, yBottom, _ := signalBounds(y, rowHeight, marginTop, marginBottom)
	signalHeight := yBottom - yTop

	r := valueRange.widen()
	span := r.Max - r.Min
	if span == 0 {
		span = 1
	}

	if heightScaling > 1 {
		text.Draw(dst, fmt.Sprintf("%.2f", r.Max), BusFace, 5, int(yTop)+10, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		text.Draw(dst, fmt.Sprintf("%.2f", r.Min), BusFace, 5, int(yBottom)-2, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	}

	type pt struct{ x, y float64 }
	var run []pt
	flush := func() {
		for i := 1; i < len(run); i++ {
			hLineSloped(dst, run[i-1].x, run[i-1].y, run[i].x, run[i].y, col)
		}
		if len(run) == 1 {
			fillRect(dst, run[0].x-2, run[0].y-2, 4, 4, col)
		}
		run = nil
	}

	for _, s := range samples {
		if s.Value.Kind != sampling.ValueNormal || math.IsNaN(s.Value.Float) {
			flush()
			continue
		}
		normalized := (s.Value.Float - r.Min) / span
		if normalized < 0 {
			normalized = 0
		}
		if normalized > 1 {
			normalized = 1
		}
		yPos := yBottom - normalized*signalHeight
		run = append(run, pt{x: s.PixelX, y: yPos})

		if s.HasMultipleTransitions {
			aliasCol := withAlpha(col, 40)
			vLine(dst, s.PixelX, yTop, yBottom, 1, aliasCol)
		}
	}
	flush()
}

// hLineSloped draws a 1px line between two arbitrary points by stretching
// the white pixel along the segment, the polyline-segment analogue of
// hLine/vLine for the analog waveform's diagonal runs.
func hLineSloped(dst *ebiten.Image, x0, y0, x1, y1 float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, 1)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x0, y0)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(ensureWhitePixel(), op)
}

// withAlpha returns c at alpha a, scaling its premultiplied R, G and B by
// the same a/255 factor.
func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	k := uint32(a)
	return color.RGBA{R: uint8((r >> 8) * k / 255), G: uint8((g >> 8) * k / 255), B: uint8((b >> 8) * k / 255), A: a}
}
