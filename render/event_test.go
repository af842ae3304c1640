package render

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ripopov/wavescout/sampling"
)

func TestDrawEventDrawsShaftAndHead(t *testing.T) {
	dst := ebiten.NewImage(40, 20)
	samples := []sampling.Sample{
		{PixelX: 20, Value: sampling.ParsedValue{Kind: sampling.ValueNormal}},
	}
	DrawEvent(dst, samples, 0, 20, color.White, 3, 3)

	yTop, yBottom, _ := signalBounds(0, 20, 3, 3)
	if colorIsBlack(dst.At(20, int(yBottom)-1)) {
		t.Errorf("expected arrow shaft drawn near bottom of row")
	}
	arrowHeight := (yBottom - yTop) * 0.8
	tipY := int(yBottom - arrowHeight)
	if colorIsBlack(dst.At(20, tipY)) {
		t.Errorf("expected arrow head drawn at tip")
	}
}

func TestDrawEventEmptySamplesNoop(t *testing.T) {
	dst := ebiten.NewImage(10, 10)
	DrawEvent(dst, nil, 0, 10, color.White, 1, 1)
	if colorIsOpaque(dst.At(5, 5)) {
		t.Errorf("expected untouched image for empty samples")
	}
}
