// Package render draws sampled signal data and the time ruler into an
// ebiten.Image. Each draw function takes a destination image, a pixel row
// (y, rowHeight), and pre-sampled data from wavescout/sampling; nothing here
// touches a wavescout.WaveformSession or a wavedb.DB directly, so the canvas
// orchestrator package controls what gets redrawn and when.
//
// Lines and filled regions are drawn by stretching a 1x1 white pixel image
// through ebiten.DrawImageOptions, rather than the vector-rasterizer
// package: at the pixel-aligned horizontal/vertical strokes signal
// waveforms are made of, a stretched 1x1 image is both simpler and cheaper
// than building a triangle mesh per line.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// fillRect draws a filled rectangle [x, x+w) x [y, y+h) in col.
func fillRect(dst *ebiten.Image, x, y, w, h float64, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(ensureWhitePixel(), op)
}

// hLine draws a horizontal line from x0 to x1 at row y, width px thick.
func hLine(dst *ebiten.Image, x0, x1 float64, y float64, px float64, col color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	fillRect(dst, x0, y-px/2, x1-x0, px, col)
}

// vLine draws a vertical line from y0 to y1 at column x, width px thick.
func vLine(dst *ebiten.Image, x float64, y0, y1 float64, px float64, col color.Color) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	fillRect(dst, x-px/2, y0, px, y1-y0, col)
}

// signalBounds returns the y pixel coordinates for a 1-bit signal's high,
// low, and undefined-middle levels within row [y, y+rowHeight), matching
// signal_renderer.py's calculate_signal_bounds.
func signalBounds(y, rowHeight, marginTop, marginBottom int) (yHigh, yLow, yMiddle float64) {
	top := float64(y + marginTop)
	bottom := float64(y + rowHeight - marginBottom)
	return top, bottom, (top + bottom) / 2
}
