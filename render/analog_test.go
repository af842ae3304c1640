package render

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ripopov/wavescout/sampling"
)

func TestDrawAnalogPolylineWithinRange(t *testing.T) {
	dst := ebiten.NewImage(100, 20)
	samples := []sampling.Sample{
		{PixelX: 0, Value: sampling.ParsedValue{Kind: sampling.ValueNormal, Float: 0}},
		{PixelX: 50, Value: sampling.ParsedValue{Kind: sampling.ValueNormal, Float: 10}},
		{PixelX: 99, Value: sampling.ParsedValue{Kind: sampling.ValueNormal, Float: 0}},
	}
	DrawAnalog(dst, samples, 0, 20, AnalogRange{Min: 0, Max: 10}, color.White, 1, 3, 3)

	yTop, yBottom, _ := signalBounds(0, 20, 3, 3)
	mid := int((yTop + yBottom) / 2)
	if colorIsBlack(dst.At(50, mid)) && colorIsBlack(dst.At(50, int(yTop))) {
		t.Errorf("expected peak value near top of row at x=50")
	}
}

func TestDrawAnalogBreaksOnUndefined(t *testing.T) {
	dst := ebiten.NewImage(100, 20)
	samples := []sampling.Sample{
		{PixelX: 0, Value: sampling.ParsedValue{Kind: sampling.ValueNormal, Float: 5}},
		{PixelX: 40, Value: sampling.ParsedValue{Kind: sampling.ValueUndefined}},
		{PixelX: 80, Value: sampling.ParsedValue{Kind: sampling.ValueNormal, Float: 5}},
	}
	DrawAnalog(dst, samples, 0, 20, AnalogRange{Min: 0, Max: 10}, color.White, 1, 3, 3)

	yTop, yBottom, _ := signalBounds(0, 20, 3, 3)
	mid := int((yTop + yBottom) / 2)
	if colorIsOpaque(dst.At(40, mid)) {
		t.Errorf("expected no line drawn across the undefined sample at x=40")
	}
}

func TestDrawAnalogEmptySamplesNoop(t *testing.T) {
	dst := ebiten.NewImage(10, 10)
	DrawAnalog(dst, nil, 0, 10, AnalogRange{Min: 0, Max: 1}, color.White, 1, 1, 1)
	if colorIsOpaque(dst.At(5, 5)) {
		t.Errorf("expected untouched image for empty samples")
	}
}
