package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DrawBenchmarkPattern fills dst with a diagonal HSV rainbow, one pixel per
// canvas cell, then overlays a centered title on a translucent backing
// rect. It exists purely to stress paint throughput when benchmark mode is
// toggled on; the rainbow is built with a plain per-pixel loop and pushed
// in one WritePixels call rather than one DrawImage per pixel, the usual
// bulk-upload pattern for generated pixel buffers.
func DrawBenchmarkPattern(dst *ebiten.Image, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	pix := make([]byte, width*height*4)
	for yy := 0; yy < height; yy++ {
		for xx := 0; xx < width; xx++ {
			hue := float64((xx+yy)%360) / 360.0
			r, g, b := hsvToRGB(hue)
			i := (yy*width + xx) * 4
			pix[i+0] = r
			pix[i+1] = g
			pix[i+2] = b
			pix[i+3] = 255
		}
	}
	dst.WritePixels(pix)

	label := "BENCHMARK MODE - Rainbow Pixel Pattern"
	textWidth := font.MeasureString(BusFace, label).Ceil()
	textHeight := 13
	x := (width - textWidth) / 2
	y := height / 2

	fillRect(dst, float64(x-5), float64(y-textHeight-5), float64(textWidth+10), float64(textHeight+10), color.RGBA{A: 200})
	text.Draw(dst, label, basicfont.Face7x13, x, y, color.White)
}

// hsvToRGB converts a hue in [0,1) at full saturation/value to RGB bytes,
// the sector-based decomposition draw_benchmark_pattern's vectorized NumPy
// pipeline computes per pixel.
func hsvToRGB(hue float64) (r, g, b byte) {
	h := hue * 6.0
	i := int(math.Floor(h))
	f := h - float64(i)

	switch i % 6 {
	case 0:
		return 255, byte(f * 255), 0
	case 1:
		return byte((1 - f) * 255), 255, 0
	case 2:
		return 0, 255, byte(f * 255)
	case 3:
		return 0, byte((1 - f) * 255), 255
	case 4:
		return byte(f * 255), 0, 255
	default:
		return 255, 0, byte((1 - f) * 255)
	}
}
