package render

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDrawBenchmarkPatternFillsCanvas(t *testing.T) {
	dst := ebiten.NewImage(64, 64)
	DrawBenchmarkPattern(dst, 64, 64)

	if colorIsOpaque(dst.At(0, 0)) == false {
		t.Errorf("expected rainbow fill to leave pixels opaque")
	}
}

func TestHSVToRGBSectorBoundaries(t *testing.T) {
	if r, g, b := hsvToRGB(0); r != 255 || g != 0 || b != 0 {
		t.Errorf("hue 0 should be pure red, got (%d,%d,%d)", r, g, b)
	}
}
