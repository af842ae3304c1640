package render

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ripopov/wavescout/sampling"
)

func TestDrawBoolHighLowTransition(t *testing.T) {
	dst := ebiten.NewImage(40, 20)
	samples := []sampling.Sample{
		{PixelX: 0, Value: sampling.ParsedValue{Str: "0", Bool: false}},
		{PixelX: 10, Value: sampling.ParsedValue{Str: "1", Bool: true}},
		{PixelX: 20, Value: sampling.ParsedValue{Str: "0", Bool: false}},
	}
	DrawBool(dst, samples, 0, 20, 40, color.White, 3, 3)

	yHigh, yLow, _ := signalBounds(0, 20, 3, 3)
	if c := dst.At(5, int(yLow)); colorIsBlack(c) {
		t.Errorf("expected low-level stroke drawn at x=5,y=%d", int(yLow))
	}
	if c := dst.At(15, int(yHigh)); colorIsBlack(c) {
		t.Errorf("expected high-level stroke drawn at x=15,y=%d", int(yHigh))
	}
}

func TestDrawBoolEmptySamplesNoop(t *testing.T) {
	dst := ebiten.NewImage(10, 10)
	DrawBool(dst, nil, 0, 10, 10, color.White, 1, 1)
	if c := dst.At(5, 5); colorIsOpaque(c) {
		t.Errorf("expected untouched transparent image, got %v", c)
	}
}

func colorIsBlack(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return r == 0 && g == 0 && b == 0 && a == 0
}

func colorIsOpaque(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a != 0
}
