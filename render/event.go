package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ripopov/wavescout/sampling"
)

// DrawEvent renders timestamped events as thin upward arrows, one per
// sample: a 1px vertical shaft topped with a filled 3x3 pixel block as head,
// matching draw_event_signal. Event values themselves are not displayed,
// only their timing.
func DrawEvent(dst *ebiten.Image, samples []sampling.Sample, y, rowHeight int, col color.Color, marginTop, marginBottom int) {
	if len(samples) == 0 {
		return
	}
	yTop, yBottom, _ := signalBounds(y, rowHeight, marginTop, marginBottom)

	arrowHeight := (yBottom - yTop) * 0.8
	const arrowHeadHeight = 3.0

	for _, s := range samples {
		x := s.PixelX
		tipY := yBottom - arrowHeight

		vLine(dst, x, tipY+arrowHeadHeight, yBottom, 1, col)

		fillRect(dst, x-1, tipY, 3, arrowHeadHeight, col)
	}
}
