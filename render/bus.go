package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/ripopov/wavescout/sampling"
)

// BusFace is the font face bus value labels, ruler tick labels and analog
// min/max labels are measured and drawn with. basicfont.Face7x13 is the one bundled bitmap face in golang.org/x/image
// (no font file to embed), matching the pack's simplest-viable-text-rendering
// approach: the rest of the corpus has no embedded-font story either.
var BusFace font.Face = basicfont.Face7x13

// DrawBus renders a multi-bit bus value as a hexagon-ish box per region: a
// flat top/bottom edge spanning the region's pixel width, vertical edges at
// each end, and the region's decoded value string centered inside when the
// region is at least minTextWidth pixels wide; a label longer than its
// region is drawn in full, not truncated. A region narrower than two pixels
// collapses to a single vertical stroke, matching draw_bus_signal's
// high-density fallback; the exact diagonal transition-slope geometry
// QPainter draws is simplified to flat vertical edges here, since ebiten's
// rectangle-stretch primitive (see helpers.go) has no cheap equivalent to a
// per-pixel anti-aliased diagonal.
func DrawBus(dst *ebiten.Image, samples []sampling.Sample, y, rowHeight int, canvasWidth int, col color.Color, minTextWidth int, marginTop, marginBottom int) {
	if len(samples) == 0 {
		return
	}
	yTop, yBottom, _ := signalBounds(y, rowHeight, marginTop, marginBottom)

	for i, s := range samples {
		nextX := float64(canvasWidth)
		if i+1 < len(samples) {
			nextX = samples[i+1].PixelX
		}
		regionWidth := nextX - s.PixelX
		if regionWidth < 2 {
			vLine(dst, s.PixelX, yTop, yBottom, 1, col)
			continue
		}

		hLine(dst, s.PixelX, nextX, yTop, 1, col)
		hLine(dst, s.PixelX, nextX, yBottom, 1, col)
		vLine(dst, s.PixelX, yTop, yBottom, 1, col)
		vLine(dst, nextX, yTop, yBottom, 1, col)

		if int(regionWidth) >= minTextWidth {
			label := s.Value.Str
			textWidth := font.MeasureString(BusFace, label).Ceil()
			centerX := int(s.PixelX) + int(regionWidth)/2 - textWidth/2
			baseline := int(yTop+yBottom) / 2
			text.Draw(dst, label, BusFace, centerX, baseline, col)
		}
	}
}
