package render

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ripopov/wavescout/sampling"
)

func TestDrawBusWideRegionDrawsLabel(t *testing.T) {
	dst := ebiten.NewImage(100, 20)
	samples := []sampling.Sample{
		{PixelX: 0, Value: sampling.ParsedValue{Str: "FF"}},
		{PixelX: 60, Value: sampling.ParsedValue{Str: "00"}},
	}
	DrawBus(dst, samples, 0, 20, 100, color.White, 30, 3, 3)

	yTop, _, _ := signalBounds(0, 20, 3, 3)
	if colorIsBlack(dst.At(0, int(yTop))) {
		t.Errorf("expected box top edge drawn at region start")
	}
}

func TestDrawBusNarrowRegionCollapsesToLine(t *testing.T) {
	dst := ebiten.NewImage(100, 20)
	samples := []sampling.Sample{
		{PixelX: 10, Value: sampling.ParsedValue{Str: "A"}},
		{PixelX: 11, Value: sampling.ParsedValue{Str: "B"}},
		{PixelX: 80, Value: sampling.ParsedValue{Str: "C"}},
	}
	DrawBus(dst, samples, 0, 20, 100, color.White, 30, 3, 3)

	yTop, yBottom, _ := signalBounds(0, 20, 3, 3)
	mid := int((yTop + yBottom) / 2)
	if colorIsBlack(dst.At(10, mid)) {
		t.Errorf("expected single vertical stroke for sub-2px region")
	}
}
