// Package waveconfig centralizes the rendering, color, and cache constants
// used by wavescout/render and wavescout/canvas (wavedb keeps its own
// DefaultCacheSize and does not import this package), mirroring config.py's single "all magic numbers in one place" module.
//
// These are plain defaulted Go structs rather than a loaded-from-file
// configuration: every value here is an in-process layout/color constant a
// caller may override by copying and editing a Rendering value, not a
// runtime-tunable that benefits from an external config format. Nothing in
// the example pack offers a config-loading library worth pulling in for
// that.
package waveconfig

import "image/color"

// Rendering holds signal-drawing layout constants, grounded on config.py's
// RenderingConfig.
type Rendering struct {
	SignalMarginTop    int
	SignalMarginBottom int

	BusTransitionMaxWidth   int
	BusTransitionSlopeFactor float64
	MinBusTextWidth         int

	DefaultRowHeight    int
	DefaultHeaderHeight int

	FontSizeSmall  float64
	FontSizeNormal float64
	FontSizeLarge  float64

	MinCanvasWidth      int
	MaxIterationsSafety int

	TransitionCacheMaxEntries int

	CursorWidth   int
	CursorPadding int

	MarkerWidth int
	MaxMarkers  int
}

// DefaultRendering matches config.py's RenderingConfig() defaults.
var DefaultRendering = Rendering{
	SignalMarginTop:          3,
	SignalMarginBottom:       3,
	BusTransitionMaxWidth:    4,
	BusTransitionSlopeFactor: 0.125,
	MinBusTextWidth:          30,
	DefaultRowHeight:         20,
	DefaultHeaderHeight:      35,
	FontSizeSmall:            8,
	FontSizeNormal:           9,
	FontSizeLarge:            10,
	MinCanvasWidth:           400,
	MaxIterationsSafety:      10,
	TransitionCacheMaxEntries: 1000,
	CursorWidth:              2,
	CursorPadding:            2,
	MarkerWidth:              1,
	MaxMarkers:                9,
}

// Colors holds the application's color scheme, grounded on config.py's
// ColorScheme. Colors are stored as image/color.RGBA so wavescout/render can
// feed them directly into ebiten draw calls without a conversion step.
type Colors struct {
	Background        color.RGBA
	BackgroundInvalid color.RGBA
	AlternateRow      color.RGBA

	Border     color.RGBA
	Grid       color.RGBA
	RulerLine  color.RGBA

	Text      color.RGBA
	TextMuted color.RGBA

	Selection         color.RGBA
	Cursor            color.RGBA
	MarkerDefault     color.RGBA
	DefaultSignal     color.RGBA
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// DefaultColors matches config.py's ColorScheme() hex defaults.
var DefaultColors = Colors{
	Background:         rgb(0x1e, 0x1e, 0x1e),
	BackgroundInvalid:  rgb(0x1a, 0x1a, 0x1a),
	AlternateRow:       rgb(0x2d, 0x2d, 0x30),
	Border:             rgb(0x3e, 0x3e, 0x42),
	Grid:               rgb(0x3e, 0x3e, 0x42),
	RulerLine:          rgb(0x80, 0x80, 0x80),
	Text:               rgb(0xcc, 0xcc, 0xcc),
	TextMuted:          rgb(0x80, 0x80, 0x80),
	Selection:          rgb(0x09, 0x47, 0x71),
	Cursor:             rgb(0xff, 0x00, 0x00),
	MarkerDefault:      rgb(0x00, 0xff, 0x00),
	DefaultSignal:      rgb(0x33, 0xc3, 0xf0),
}

// TimeRuler holds the ruler's layout/tick-density defaults, grounded on
// config.py's TimeRulerDefaults.
type TimeRuler struct {
	TickDensity    float64
	TextSize       float64
	ShowGridLines  bool
	NiceNumbers    []float64
	RulerHeight    int
	TickHeight     int
	TickYStart     int
	TextYOffset    int
}

// DefaultTimeRuler matches config.py's TimeRulerDefaults() defaults.
var DefaultTimeRuler = TimeRuler{
	TickDensity:   0.8,
	TextSize:      10,
	ShowGridLines: true,
	NiceNumbers:   []float64{1, 2, 2.5, 5},
	RulerHeight:   35,
	TickHeight:    5,
	TickYStart:    29,
	TextYOffset:   5,
}

// MarkerLabels is the fixed nine-slot label vector, A through I.
var MarkerLabels = [9]string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
