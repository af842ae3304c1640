package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ripopov/wavescout/sampling"
)

// levelOf classifies a parsed value into high/low/undefined for step-line
// rendering, matching draw_digital_signal's value_str/value_bool checks.
func levelOf(v sampling.ParsedValue) int {
	switch {
	case v.Str == "1" || v.Bool:
		return 1
	case v.Str == "0":
		return 0
	default:
		return -1 // undefined/high-Z, drawn at the middle level
	}
}

func yForLevel(level int, yHigh, yLow, yMiddle float64) float64 {
	switch level {
	case 1:
		return yHigh
	case 0:
		return yLow
	default:
		return yMiddle
	}
}

// DrawBool renders a boolean signal as a step-line waveform: a horizontal
// run at the high/low/undefined level for each sample's span, with a
// vertical stroke at every level change. A sample flagged
// HasMultipleTransitions gets an extra vertical marker to call out the
// aliased pixel column, per signal_renderer.py's draw_digital_signal.
func DrawBool(dst *ebiten.Image, samples []sampling.Sample, y, rowHeight int, canvasWidth int, col color.Color, marginTop, marginBottom int) {
	if len(samples) == 0 {
		return
	}
	yHigh, yLow, yMiddle := signalBounds(y, rowHeight, marginTop, marginBottom)

	prevLevel := -2 // sentinel: "no previous region drawn yet"
	for i, s := range samples {
		level := levelOf(s.Value)
		curY := yForLevel(level, yHigh, yLow, yMiddle)

		nextX := float64(canvasWidth)
		if i+1 < len(samples) {
			nextX = samples[i+1].PixelX
		}

		if s.PixelX < nextX {
			hLine(dst, s.PixelX, nextX, curY, 1, col)
		}

		if prevLevel != -2 && prevLevel != level {
			prevY := yForLevel(prevLevel, yHigh, yLow, yMiddle)
			vLine(dst, s.PixelX, prevY, curY, 1, col)
		}
		prevLevel = level

		if s.HasMultipleTransitions {
			vLine(dst, s.PixelX, yLow, yHigh, 1, col)
			if s.PixelX+1 < nextX {
				vLine(dst, s.PixelX+1, yLow, yHigh, 1, col)
			}
		}
	}
}
