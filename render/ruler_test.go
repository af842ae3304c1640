package render

import (
	"testing"

	"github.com/ripopov/wavescout"
	"github.com/ripopov/wavescout/waveconfig"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCalculateTicksProducesMonotonicSpacing(t *testing.T) {
	ts := wavescout.Timescale{Factor: 1, Unit: wavescout.UnitNs}
	ticks := CalculateTicks(ts, 0, 1000, 400, wavescout.UnitNs, 0.8)
	if len(ticks) < 2 {
		t.Fatalf("expected at least 2 ticks, got %d", len(ticks))
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i].PixelX <= ticks[i-1].PixelX {
			t.Errorf("tick pixels not strictly increasing: %d <= %d", ticks[i].PixelX, ticks[i-1].PixelX)
		}
	}
}

func TestCalculateTicksEmptyRangeReturnsNil(t *testing.T) {
	ts := wavescout.Timescale{Factor: 1, Unit: wavescout.UnitNs}
	if ticks := CalculateTicks(ts, 100, 100, 400, wavescout.UnitNs, 0.8); ticks != nil {
		t.Errorf("expected nil ticks for zero-width range, got %v", ticks)
	}
}

func TestDrawRulerRendersHeaderDivider(t *testing.T) {
	dst := ebiten.NewImage(200, 35)
	ts := wavescout.Timescale{Factor: 1, Unit: wavescout.UnitNs}
	ticks := CalculateTicks(ts, 0, 1000, 200, wavescout.UnitNs, 0.8)
	DrawRuler(dst, ticks, 200, 35, waveconfig.DefaultColors)

	if colorIsOpaque(dst.At(100, 34)) == false {
		t.Errorf("expected divider line drawn at bottom of header")
	}
}

func TestCalculateClockTicksStepsInClockPeriods(t *testing.T) {
	ts := wavescout.Timescale{Factor: 1, Unit: wavescout.UnitNs}
	ticks := CalculateClockTicks(ts, 10, 0, 0, 1000, 400, wavescout.UnitNs, 0.8)
	if len(ticks) < 2 {
		t.Fatalf("expected at least 2 ticks, got %d", len(ticks))
	}
	for _, tk := range ticks {
		if tk.ClockLabel == "" {
			t.Errorf("tick at %d missing ClockLabel in clock mode", tk.Time)
		}
		if tk.Time%10 != 0 {
			t.Errorf("tick time %d not aligned to clock period 10", tk.Time)
		}
	}
}

func TestCalculateClockTicksZeroPeriodReturnsNil(t *testing.T) {
	ts := wavescout.Timescale{Factor: 1, Unit: wavescout.UnitNs}
	if ticks := CalculateClockTicks(ts, 0, 0, 0, 1000, 400, wavescout.UnitNs, 0.8); ticks != nil {
		t.Errorf("expected nil ticks for zero clock period, got %v", ticks)
	}
}

func TestDrawRulerClockModeSplitsIntoTwoBands(t *testing.T) {
	dst := ebiten.NewImage(200, 36)
	ts := wavescout.Timescale{Factor: 1, Unit: wavescout.UnitNs}
	ticks := CalculateClockTicks(ts, 10, 0, 0, 1000, 200, wavescout.UnitNs, 0.8)
	DrawRuler(dst, ticks, 200, 36, waveconfig.DefaultColors)

	if colorIsOpaque(dst.At(100, 18)) == false {
		t.Errorf("expected a divider between the cycle-count and wall-time bands")
	}
}

func TestDrawGridHonorsOpacity(t *testing.T) {
	dst := ebiten.NewImage(200, 100)
	ticks := []Tick{{Time: 0, PixelX: 100, Label: "0ns"}}
	DrawGrid(dst, ticks, 200, 100, 20, waveconfig.DefaultColors.Grid, wavescout.GridStyleSolid, 0)

	r, g, b, a := dst.At(100, 50).RGBA()
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("expected fully transparent pixel at opacity 0, got (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestDrawGridDottedLeavesGaps(t *testing.T) {
	dst := ebiten.NewImage(200, 100)
	ticks := []Tick{{Time: 0, PixelX: 100, Label: "0ns"}}
	DrawGrid(dst, ticks, 200, 100, 20, waveconfig.DefaultColors.Grid, wavescout.GridStyleDotted, 1)

	if !colorIsOpaque(dst.At(100, 20)) {
		t.Errorf("expected dotted line to draw at its first segment")
	}
	if colorIsOpaque(dst.At(100, 24)) {
		t.Errorf("expected a gap in the dotted line pattern")
	}
}
