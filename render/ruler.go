package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"github.com/ripopov/wavescout"
	"github.com/ripopov/wavescout/waveconfig"
)

// Tick is a single ruler label/position, as produced by CalculateTicks or
// CalculateClockTicks. ClockLabel is only set in clock mode, where it
// carries the cycle number and Label carries the wall-clock time for the
// same tick.
type Tick struct {
	Time       wavescout.Time
	PixelX     int
	Label      string
	ClockLabel string
}

var niceMultipliers = []float64{1, 2, 2.5, 5, 10, 20, 25, 50}

// CalculateTicks picks a "nice" step size for the visible [start, end) time
// range and returns one Tick per grid line, spaced so that roughly
// tickDensity of canvasWidth is covered by labels. Mirrors
// TimeGridRenderer.calculate_ticks's label-width-driven step search.
func CalculateTicks(ts wavescout.Timescale, start, end wavescout.Time, canvasWidth int, unit wavescout.TimeUnit, tickDensity float64) []Tick {
	if end <= start || canvasWidth <= 0 {
		return nil
	}
	duration := float64(end - start)

	estimatedStep := duration / 10
	sampleTime := math.Max(math.Abs(float64(start)), math.Abs(float64(end)))
	sampleLabel := formatTimeLabel(ts, wavescout.Time(sampleTime), unit, estimatedStep)
	labelWidth := font.MeasureString(BusFace, sampleLabel).Ceil() + 8

	availableSpace := float64(canvasWidth) * tickDensity
	maxLabels := int(availableSpace/float64(labelWidth)) + 2
	if maxLabels <= 0 {
		maxLabels = 1
	}

	rawStep := duration / float64(maxLabels)
	var scale float64
	if rawStep > 0 {
		scale = math.Pow(10, math.Floor(math.Log10(rawStep)))
	} else {
		scale = 1
	}

	stepSize := scale
	for _, m := range niceMultipliers {
		testStep := scale * m
		firstTick := math.Floor(float64(start)/testStep) * testStep
		numTicks := math.Ceil((float64(end)-firstTick)/testStep) + 1
		if int(numTicks) <= maxLabels {
			stepSize = testStep
			break
		}
	}
	if stepSize <= 0 {
		return nil
	}

	var ticks []Tick
	firstTick := math.Floor(float64(start)/stepSize) * stepSize
	for t := firstTick; t <= float64(end); t += stepSize {
		pixelX := timeToPixel(wavescout.Time(t), start, end, canvasWidth)
		ticks = append(ticks, Tick{
			Time:   wavescout.Time(t),
			PixelX: pixelX,
			Label:  formatTimeLabel(ts, wavescout.Time(t), unit, stepSize),
		})
	}
	return ticks
}

// CalculateClockTicks is CalculateTicks's clock-mode variant: the tick step
// is constrained to an integer multiple of clockPeriod (cyclesPerTick is
// chosen from the same nice-multiplier search so it still respects
// tickDensity), and each Tick's ClockLabel carries its cycle number while
// Label keeps the wall-clock time for the same instant.
func CalculateClockTicks(ts wavescout.Timescale, clockPeriod, clockPhase, start, end wavescout.Time, canvasWidth int, unit wavescout.TimeUnit, tickDensity float64) []Tick {
	if end <= start || canvasWidth <= 0 || clockPeriod <= 0 {
		return nil
	}
	duration := float64(end - start)

	sampleTime := math.Max(math.Abs(float64(start)), math.Abs(float64(end)))
	sampleLabel := formatTimeLabel(ts, wavescout.Time(sampleTime), unit, duration/10)
	labelWidth := font.MeasureString(BusFace, sampleLabel).Ceil() + 8

	availableSpace := float64(canvasWidth) * tickDensity
	maxLabels := int(availableSpace/float64(labelWidth)) + 2
	if maxLabels <= 0 {
		maxLabels = 1
	}

	rawCycleStep := duration / float64(clockPeriod) / float64(maxLabels)
	if rawCycleStep < 1 {
		rawCycleStep = 1
	}
	scale := math.Pow(10, math.Floor(math.Log10(rawCycleStep)))
	if scale < 1 {
		scale = 1
	}

	cyclesPerTick := scale
	for _, m := range niceMultipliers {
		testCycles := math.Round(scale * m)
		if testCycles < 1 {
			continue
		}
		testStep := wavescout.Time(testCycles) * clockPeriod
		firstTick := clockPhase + wavescout.Time(math.Floor(float64(start-clockPhase)/float64(testStep)))*testStep
		numTicks := (float64(end-firstTick))/float64(testStep) + 1
		if int(numTicks) <= maxLabels {
			cyclesPerTick = testCycles
			break
		}
	}
	if cyclesPerTick < 1 {
		cyclesPerTick = 1
	}
	stepTime := wavescout.Time(cyclesPerTick) * clockPeriod
	if stepTime <= 0 {
		return nil
	}

	var ticks []Tick
	firstTick := clockPhase + wavescout.Time(math.Floor(float64(start-clockPhase)/float64(stepTime)))*stepTime
	for t := firstTick; t <= end; t += stepTime {
		cycle := (t - clockPhase) / clockPeriod
		pixelX := timeToPixel(t, start, end, canvasWidth)
		ticks = append(ticks, Tick{
			Time:       t,
			PixelX:     pixelX,
			Label:      formatTimeLabel(ts, t, unit, float64(stepTime)),
			ClockLabel: fmt.Sprintf("%d", cycle),
		})
	}
	return ticks
}

func timeToPixel(t, start, end wavescout.Time, canvasWidth int) int {
	if end <= start {
		return 0
	}
	relative := float64(t-start) / float64(end-start)
	return int(relative * float64(canvasWidth))
}

var unitSuffixes = map[wavescout.TimeUnit]string{
	wavescout.UnitZs: "zs",
	wavescout.UnitAs: "as",
	wavescout.UnitFs: "fs",
	wavescout.UnitPs: "ps",
	wavescout.UnitNs: "ns",
	wavescout.UnitUs: "μs",
	wavescout.UnitMs: "ms",
	wavescout.UnitS:  "s",
}

// formatTimeLabel converts a Time in timescale units to a string in the
// requested display unit, choosing decimal places from stepSize so
// adjacent ticks don't render identical labels. Mirrors
// TimeGridRenderer._format_time_label.
func formatTimeLabel(ts wavescout.Timescale, t wavescout.Time, unit wavescout.TimeUnit, stepSize float64) string {
	seconds := ts.ToSeconds(t)
	value := seconds * math.Pow(10, -float64(unit.ToExponent()))

	decimals := 0
	if stepSize > 0 {
		stepSeconds := stepSize * math.Pow(10, float64(ts.Unit.ToExponent()))
		stepInUnit := stepSeconds * math.Pow(10, -float64(unit.ToExponent()))
		if stepInUnit > 0 && stepInUnit < 1 {
			decimals = int(math.Ceil(-math.Log10(stepInUnit)))
			if decimals > 6 {
				decimals = 6
			}
		}
	}
	return fmt.Sprintf("%.*f%s", decimals, value, unitSuffixes[unit])
}

// DrawRuler paints the ruler header background, its bottom divider, and
// one tick mark + centered label per Tick, matching
// TimeGridRenderer.render_ruler's single-row mode. When ticks carry a
// ClockLabel (produced by CalculateClockTicks), the header splits into two
// bands instead: the top band shows cycle counts, the bottom shows wall
// time, matching clock-mode's dual-band ruler.
func DrawRuler(dst *ebiten.Image, ticks []Tick, canvasWidth, headerHeight int, cfg waveconfig.Colors) {
	fillRect(dst, 0, 0, float64(canvasWidth), float64(headerHeight), cfg.AlternateRow)
	hLine(dst, 0, float64(canvasWidth), float64(headerHeight-1), 1, cfg.RulerLine)

	clockMode := false
	for _, tk := range ticks {
		if tk.ClockLabel != "" {
			clockMode = true
			break
		}
	}
	if !clockMode {
		for _, tk := range ticks {
			if tk.PixelX < 0 || tk.PixelX > canvasWidth {
				continue
			}
			vLine(dst, float64(tk.PixelX), float64(headerHeight-6), float64(headerHeight-1), 1, cfg.RulerLine)

			textWidth := font.MeasureString(BusFace, tk.Label).Ceil()
			textX := tk.PixelX - textWidth/2
			text.Draw(dst, tk.Label, BusFace, textX, 5+10, cfg.Text)
		}
		return
	}

	mid := headerHeight / 2
	hLine(dst, 0, float64(canvasWidth), float64(mid), 1, cfg.RulerLine)
	for _, tk := range ticks {
		if tk.PixelX < 0 || tk.PixelX > canvasWidth {
			continue
		}
		vLine(dst, float64(tk.PixelX), float64(headerHeight-6), float64(headerHeight-1), 1, cfg.RulerLine)

		cycleWidth := font.MeasureString(BusFace, tk.ClockLabel).Ceil()
		text.Draw(dst, tk.ClockLabel, BusFace, tk.PixelX-cycleWidth/2, mid-4, cfg.Text)

		timeWidth := font.MeasureString(BusFace, tk.Label).Ceil()
		text.Draw(dst, tk.Label, BusFace, tk.PixelX-timeWidth/2, headerHeight-4, cfg.Text)
	}
}

// DrawGrid draws a vertical grid line under the ruler for each tick,
// matching TimeGridRenderer.render_grid, styled per TimeRulerConfig's
// GridStyle (solid/dashed/dotted) and blended by GridOpacity.
func DrawGrid(dst *ebiten.Image, ticks []Tick, canvasWidth, canvasHeight, headerHeight int, gridColor color.Color, style wavescout.GridStyle, opacity float64) {
	col := scaleAlpha(gridColor, opacity)
	for _, tk := range ticks {
		if tk.PixelX < 0 || tk.PixelX > canvasWidth {
			continue
		}
		drawGridLine(dst, float64(tk.PixelX), float64(headerHeight), float64(canvasHeight), style, col)
	}
}

// drawGridLine draws one vertical grid line from y0 to y1, solid, dashed
// (6px on / 4px off), or dotted (2px on / 4px off).
func drawGridLine(dst *ebiten.Image, x, y0, y1 float64, style wavescout.GridStyle, col color.Color) {
	if style == wavescout.GridStyleSolid {
		vLine(dst, x, y0, y1, 1, col)
		return
	}
	on, off := 6.0, 4.0
	if style == wavescout.GridStyleDotted {
		on, off = 2.0, 4.0
	}
	for y := y0; y < y1; y += on + off {
		segEnd := math.Min(y+on, y1)
		vLine(dst, x, y, segEnd, 1, col)
	}
}

// scaleAlpha returns col with every premultiplied channel (R, G, B and A)
// multiplied by opacity, clamped to [0, 1].
func scaleAlpha(col color.Color, opacity float64) color.Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	r, g, b, a := col.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * opacity),
		G: uint16(float64(g) * opacity),
		B: uint16(float64(b) * opacity),
		A: uint16(float64(a) * opacity),
	}
}
