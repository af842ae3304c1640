package wavescout

// ViewportConfig holds the tunables that shape how a Viewport clamps and
// zooms. EdgeSpace generalizes a bounds-padding margin from a world-space
// AABB to a normalized overscroll fraction.
type ViewportConfig struct {
	// EdgeSpace is the normalized distance an edge may overscroll past 0 or
	// 1, e.g. 0.2 lets Left reach -0.2 and Right reach 1.2.
	EdgeSpace float64
	// MinWidth is the narrowest normalized span a Viewport may be zoomed to.
	MinWidth float64
}

// DefaultViewportConfig is the default edge_space of 0.2 used by a fresh
// Viewport.
var DefaultViewportConfig = ViewportConfig{
	EdgeSpace: 0.2,
	MinWidth:  1e-6,
}

// Viewport is the visible window into a waveform, expressed in normalized
// [0,1] document coordinates where 0 is the recording's start time and 1 is
// its end time. Left may be negative and Right may exceed 1 by up to
// Config.EdgeSpace, allowing a small overscroll past either bound.
type Viewport struct {
	Left, Right float64
	Config      ViewportConfig
}

// NewViewport returns a Viewport spanning the full [0,1] document range.
func NewViewport(cfg ViewportConfig) Viewport {
	return Viewport{Left: 0, Right: 1, Config: cfg}
}

// Width returns Right - Left.
func (v Viewport) Width() float64 {
	return v.Right - v.Left
}

// StartTime and EndTime map the viewport's normalized bounds to absolute
// Time, given the recording's total span.
func (v Viewport) StartTime(total Time) Time {
	return Time(v.Left * float64(total))
}

func (v Viewport) EndTime(total Time) Time {
	return Time(v.Right * float64(total))
}

// clampEdge bounds a single edge to [-EdgeSpace, 1+EdgeSpace], applied
// per-axis.
func (cfg ViewportConfig) clampEdge(x float64) float64 {
	if x < -cfg.EdgeSpace {
		return -cfg.EdgeSpace
	}
	if x > 1+cfg.EdgeSpace {
		return 1 + cfg.EdgeSpace
	}
	return x
}

// clamped returns v with Width() floored at Config.MinWidth and the span
// shifted, width unchanged, back inside the overscroll bounds; a span wider
// than the bounds themselves is cut to them.
func (v Viewport) clamped() Viewport {
	if v.Left > v.Right {
		v.Left, v.Right = v.Right, v.Left
	}
	if v.Width() < v.Config.MinWidth {
		mid := (v.Left + v.Right) / 2
		v.Left = mid - v.Config.MinWidth/2
		v.Right = mid + v.Config.MinWidth/2
	}
	if lo := -v.Config.EdgeSpace; v.Left < lo {
		v.Right += lo - v.Left
		v.Left = lo
	}
	if hi := 1 + v.Config.EdgeSpace; v.Right > hi {
		v.Left -= v.Right - hi
		v.Right = hi
	}
	v.Left = v.Config.clampEdge(v.Left)
	return v
}

// Pan shifts the viewport by delta (a fraction of [0,1] space), clamped to
// the overscroll bounds. Positive delta moves the view later in time.
func (v Viewport) Pan(delta float64) Viewport {
	v.Left += delta
	v.Right += delta
	return v.clamped()
}

// ZoomAt scales the viewport around anchor (normalized document coordinate)
// by factor: factor < 1 zooms in, factor > 1 zooms out. L' = a - (a-L)*f,
// R' = a + (R-a)*f.
func (v Viewport) ZoomAt(anchor, factor float64) Viewport {
	v.Left = anchor - (anchor-v.Left)*factor
	v.Right = anchor + (v.Right-anchor)*factor
	return v.clamped()
}

// ZoomToRange sets the viewport to exactly [start, end] in normalized
// coordinates, used by region-of-interest zoom.
func (v Viewport) ZoomToRange(start, end float64) Viewport {
	if start > end {
		start, end = end, start
	}
	v.Left, v.Right = start, end
	return v.clamped()
}

// CenterOn recenters the viewport on anchor without changing its width.
func (v Viewport) CenterOn(anchor float64) Viewport {
	half := v.Width() / 2
	v.Left = anchor - half
	v.Right = anchor + half
	return v.clamped()
}

// Contains reports whether the normalized coordinate x falls within [Left, Right].
func (v Viewport) Contains(x float64) bool {
	return x >= v.Left && x <= v.Right
}
