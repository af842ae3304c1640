package wavescout

// GridStyle selects how DrawGrid strokes each vertical grid line.
type GridStyle int

const (
	GridStyleSolid GridStyle = iota
	GridStyleDashed
	GridStyleDotted
)

// TimeRulerConfig controls the appearance of the time axis drawn by
// wavescout/render's ruler.
type TimeRulerConfig struct {
	// DisplayUnit is the unit tick labels are rendered in; with nil the
	// canvas orchestrator labels ticks in nanoseconds. No unit is chosen
	// automatically from the timescale or the viewport width.
	DisplayUnit *TimeUnit
	ShowGrid    bool
	GridColor   Color
	GridStyle   GridStyle
	// GridOpacity blends GridColor toward the background, 0 (invisible) to
	// 1 (opaque).
	GridOpacity float64
}

// DefaultTimeRulerConfig returns the ruler appearance a freshly created
// session starts with: a solid, semi-transparent grid and no DisplayUnit
// set.
func DefaultTimeRulerConfig() TimeRulerConfig {
	return TimeRulerConfig{
		ShowGrid:    true,
		GridColor:   Color{R: 64, G: 64, B: 64},
		GridStyle:   GridStyleSolid,
		GridOpacity: 0.4,
	}
}
