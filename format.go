package wavescout

// RenderType selects which renderer draws a signal's samples.
type RenderType int

const (
	RenderBool RenderType = iota
	RenderBus
	RenderEvent
	RenderAnalog
)

// DataFormat selects how raw integer/float values are decoded and displayed.
type DataFormat int

const (
	FormatUnsigned DataFormat = iota
	FormatSigned
	FormatHex
	FormatBin
	FormatFloat
)

// GroupRenderMode controls how a group's children are laid out relative to
// each other when the group itself occupies rows.
type GroupRenderMode int

const (
	GroupSeparateRows GroupRenderMode = iota
	GroupOverlapped
	GroupStackedArea
	GroupPipeline
)

// AnalogScalingMode selects how an analog signal's value range is derived.
type AnalogScalingMode int

const (
	// ScaleAll computes the range once over the entire recording.
	ScaleAll AnalogScalingMode = iota
	// ScaleVisible recomputes the range from only the currently visible samples.
	ScaleVisible
)

// Color is an RGB color. Storage matches the "#RRGGBB or theme sentinel"
// convention from the session document: a nil *Color means "use the theme
// default" everywhere one is accepted.
type Color struct {
	R, G, B uint8
}

// HeightScalingLevels enumerates the only valid row-height multipliers.
var HeightScalingLevels = [...]int{1, 2, 3, 4, 8}

// ValidHeightScaling reports whether v is one of the allowed multipliers.
func ValidHeightScaling(v int) bool {
	for _, l := range HeightScalingLevels {
		if l == v {
			return true
		}
	}
	return false
}

// DisplayFormat is the complete rendering configuration for a non-group
// SignalNode.
type DisplayFormat struct {
	RenderType        RenderType
	DataFormat        DataFormat
	Color             *Color // nil means "use theme default"
	AnalogScalingMode AnalogScalingMode
}

// DefaultDisplayFormat returns the format assigned to newly created signal
// nodes: a bool render with unsigned decoding and the theme default color.
func DefaultDisplayFormat() DisplayFormat {
	return DisplayFormat{
		RenderType: RenderBool,
		DataFormat: FormatUnsigned,
	}
}
