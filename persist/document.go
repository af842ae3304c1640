// Package persist saves and restores a WaveformSession's document state
// (signal tree, viewport, markers, display configuration) as YAML, the
// same direct yaml.Marshal/Unmarshal-over-tagged-structs approach
// config_yaml.go uses for antbox's daemon configuration.
package persist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ripopov/wavescout"
)

// Document is the on-disk mirror of a WaveformSession. Field names follow
// antbox's config_yaml.go snake_case yaml tag convention.
type Document struct {
	SourcePath    string          `yaml:"source_path"`
	Timescale     timescaleDoc    `yaml:"timescale"`
	TotalDuration wavescout.Time  `yaml:"total_duration"`
	Viewport      viewportDoc     `yaml:"viewport"`
	CursorTime    wavescout.Time  `yaml:"cursor_time"`
	Markers       []markerDoc     `yaml:"markers,omitempty"`
	Analysis      analysisDoc     `yaml:"analysis"`
	RulerConfig   rulerConfigDoc  `yaml:"ruler_config"`
	Root          nodeDoc         `yaml:"root"`
}

type timescaleDoc struct {
	Factor int    `yaml:"factor"`
	Unit   string `yaml:"unit"`
}

type viewportDoc struct {
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
}

type markerDoc struct {
	Slot  string         `yaml:"slot"`
	Time  wavescout.Time `yaml:"time"`
	Color string         `yaml:"color"`
}

type analysisDoc struct {
	Mode           string         `yaml:"mode"`
	Period         wavescout.Time `yaml:"period,omitempty"`
	SamplingSignal int64          `yaml:"sampling_signal,omitempty"`
	StartTime      wavescout.Time `yaml:"start_time"`
	EndTime        wavescout.Time `yaml:"end_time"`
}

type rulerConfigDoc struct {
	DisplayUnit string  `yaml:"display_unit,omitempty"`
	ShowGrid    bool    `yaml:"show_grid"`
	GridColor   string  `yaml:"grid_color"`
	GridStyle   string  `yaml:"grid_style,omitempty"`
	GridOpacity float64 `yaml:"grid_opacity"`
}

type formatDoc struct {
	RenderType        string `yaml:"render_type"`
	DataFormat        string `yaml:"data_format"`
	Color             string `yaml:"color,omitempty"`
	AnalogScalingMode string `yaml:"analog_scaling_mode,omitempty"`
}

type nodeDoc struct {
	Name            string    `yaml:"name"`
	Nickname        string    `yaml:"nickname,omitempty"`
	IsGroup         bool      `yaml:"is_group"`
	Handle          int64     `yaml:"handle,omitempty"`
	Format          formatDoc `yaml:"format,omitempty"`
	IsMultiBit      bool      `yaml:"is_multi_bit,omitempty"`
	GroupRenderMode string    `yaml:"group_render_mode,omitempty"`
	IsExpanded      bool      `yaml:"is_expanded"`
	HeightScaling   int       `yaml:"height_scaling"`
	Children        []nodeDoc `yaml:"children,omitempty"`
}

// Save serializes session to path as YAML.
func Save(path string, session *wavescout.WaveformSession) error {
	doc := toDocument(session)
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("persist: marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	return nil
}

// Load reads a session document from path.
func Load(path string) (*wavescout.WaveformSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("persist: unmarshal %s: %w", path, err)
	}
	return fromDocument(doc), nil
}

func toDocument(s *wavescout.WaveformSession) Document {
	markers := s.Markers
	var markerDocs []markerDoc
	for i := 0; i < 9; i++ {
		slot := wavescout.MarkerSlot(i)
		if !markers.IsUsed(slot) {
			continue
		}
		m := markers[i]
		markerDocs = append(markerDocs, markerDoc{
			Slot:  slot.String(),
			Time:  m.Time,
			Color: colorToHex(m.Color),
		})
	}

	analysis := s.Analysis
	var samplingHandle int64 = -1
	if analysis.SamplingSignal != wavescout.InvalidHandle {
		samplingHandle = int64(analysis.SamplingSignal)
	}

	return Document{
		SourcePath:    s.SourcePath,
		Timescale:     timescaleDoc{Factor: s.Timescale.Factor, Unit: s.Timescale.Unit.String()},
		TotalDuration: s.TotalDuration,
		Viewport:      viewportDoc{Left: s.Viewport.Left, Right: s.Viewport.Right},
		CursorTime:    s.CursorTime,
		Markers:       markerDocs,
		Analysis: analysisDoc{
			Mode:           analysisModeString(analysis.Mode),
			Period:         analysis.Period,
			SamplingSignal: samplingHandle,
			StartTime:      analysis.StartTime,
			EndTime:        analysis.EndTime,
		},
		RulerConfig: toRulerConfigDoc(s.RulerConfig),
		Root:        toNodeDoc(s.Root),
	}
}

func fromDocument(doc Document) *wavescout.WaveformSession {
	s := wavescout.NewSession()
	s.SourcePath = doc.SourcePath

	unit, err := wavescout.UnitFromString(doc.Timescale.Unit)
	if err != nil {
		unit = wavescout.UnitNs
	}
	s.Timescale = wavescout.Timescale{Factor: doc.Timescale.Factor, Unit: unit}
	s.TotalDuration = doc.TotalDuration
	s.Viewport.Left = doc.Viewport.Left
	s.Viewport.Right = doc.Viewport.Right
	s.CursorTime = doc.CursorTime

	for _, md := range doc.Markers {
		slot := slotFromString(md.Slot)
		s.Markers.Set(slot, md.Time, colorFromHex(md.Color))
	}

	s.Analysis = wavescout.AnalysisConfig{
		Mode:           analysisModeFromString(doc.Analysis.Mode),
		Period:         doc.Analysis.Period,
		SamplingSignal: wavescout.SignalHandle(doc.Analysis.SamplingSignal),
		StartTime:      doc.Analysis.StartTime,
		EndTime:        doc.Analysis.EndTime,
	}
	s.RulerConfig = fromRulerConfigDoc(doc.RulerConfig)
	s.Root = fromNodeDoc(doc.Root)
	return s
}

func toNodeDoc(n *wavescout.SignalNode) nodeDoc {
	doc := nodeDoc{
		Name:          n.Name,
		Nickname:      n.Nickname,
		IsGroup:       n.IsGroup(),
		IsMultiBit:    n.IsMultiBit,
		IsExpanded:    n.IsExpanded,
		HeightScaling: n.HeightScaling,
	}
	if n.GroupRenderMode != nil {
		doc.GroupRenderMode = groupRenderModeString(*n.GroupRenderMode)
	}
	if handle, ok := n.Handle(); ok {
		doc.Handle = int64(handle)
		doc.Format = toFormatDoc(n.Format)
	}
	for _, c := range n.Children() {
		doc.Children = append(doc.Children, toNodeDoc(c))
	}
	return doc
}

func fromNodeDoc(doc nodeDoc) *wavescout.SignalNode {
	var n *wavescout.SignalNode
	if doc.IsGroup {
		n = wavescout.NewGroup(doc.Name)
		if doc.GroupRenderMode != "" {
			mode := groupRenderModeFromString(doc.GroupRenderMode)
			n.GroupRenderMode = &mode
		}
	} else {
		n = wavescout.NewSignal(doc.Name, wavescout.SignalHandle(doc.Handle), fromFormatDoc(doc.Format))
		n.IsMultiBit = doc.IsMultiBit
	}
	n.Nickname = doc.Nickname
	n.IsExpanded = doc.IsExpanded
	n.HeightScaling = doc.HeightScaling
	for _, cd := range doc.Children {
		n.AddChild(fromNodeDoc(cd))
	}
	return n
}

func toFormatDoc(f wavescout.DisplayFormat) formatDoc {
	doc := formatDoc{
		RenderType: renderTypeString(f.RenderType),
		DataFormat: dataFormatString(f.DataFormat),
	}
	if f.Color != nil {
		doc.Color = colorToHex(*f.Color)
	}
	if f.RenderType == wavescout.RenderAnalog {
		doc.AnalogScalingMode = analogScalingModeString(f.AnalogScalingMode)
	}
	return doc
}

func fromFormatDoc(doc formatDoc) wavescout.DisplayFormat {
	f := wavescout.DisplayFormat{
		RenderType: renderTypeFromString(doc.RenderType),
		DataFormat: dataFormatFromString(doc.DataFormat),
	}
	if doc.Color != "" {
		c := colorFromHex(doc.Color)
		f.Color = &c
	}
	if doc.AnalogScalingMode != "" {
		f.AnalogScalingMode = analogScalingModeFromString(doc.AnalogScalingMode)
	}
	return f
}

func toRulerConfigDoc(r wavescout.TimeRulerConfig) rulerConfigDoc {
	doc := rulerConfigDoc{
		ShowGrid:    r.ShowGrid,
		GridColor:   colorToHex(r.GridColor),
		GridStyle:   gridStyleString(r.GridStyle),
		GridOpacity: r.GridOpacity,
	}
	if r.DisplayUnit != nil {
		doc.DisplayUnit = r.DisplayUnit.String()
	}
	return doc
}

func fromRulerConfigDoc(doc rulerConfigDoc) wavescout.TimeRulerConfig {
	r := wavescout.TimeRulerConfig{
		ShowGrid:    doc.ShowGrid,
		GridColor:   colorFromHex(doc.GridColor),
		GridStyle:   gridStyleFromString(doc.GridStyle),
		GridOpacity: doc.GridOpacity,
	}
	if doc.DisplayUnit != "" {
		if u, err := wavescout.UnitFromString(doc.DisplayUnit); err == nil {
			r.DisplayUnit = &u
		}
	}
	return r
}

func gridStyleString(s wavescout.GridStyle) string {
	switch s {
	case wavescout.GridStyleDashed:
		return "dashed"
	case wavescout.GridStyleDotted:
		return "dotted"
	}
	return "solid"
}

func gridStyleFromString(s string) wavescout.GridStyle {
	switch s {
	case "dashed":
		return wavescout.GridStyleDashed
	case "dotted":
		return wavescout.GridStyleDotted
	}
	return wavescout.GridStyleSolid
}

func colorToHex(c wavescout.Color) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func colorFromHex(s string) wavescout.Color {
	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		fmt.Sscanf(s, "#%02X%02X%02X", &r, &g, &b)
	}
	return wavescout.Color{R: r, G: g, B: b}
}

func slotFromString(s string) wavescout.MarkerSlot {
	if len(s) != 1 {
		return wavescout.MarkerA
	}
	return wavescout.MarkerSlot(s[0] - 'A')
}

func renderTypeString(t wavescout.RenderType) string {
	switch t {
	case wavescout.RenderBool:
		return "bool"
	case wavescout.RenderBus:
		return "bus"
	case wavescout.RenderEvent:
		return "event"
	case wavescout.RenderAnalog:
		return "analog"
	}
	return "bool"
}

func renderTypeFromString(s string) wavescout.RenderType {
	switch s {
	case "bus":
		return wavescout.RenderBus
	case "event":
		return wavescout.RenderEvent
	case "analog":
		return wavescout.RenderAnalog
	}
	return wavescout.RenderBool
}

func dataFormatString(f wavescout.DataFormat) string {
	switch f {
	case wavescout.FormatSigned:
		return "signed"
	case wavescout.FormatHex:
		return "hex"
	case wavescout.FormatBin:
		return "bin"
	case wavescout.FormatFloat:
		return "float"
	}
	return "unsigned"
}

func dataFormatFromString(s string) wavescout.DataFormat {
	switch s {
	case "signed":
		return wavescout.FormatSigned
	case "hex":
		return wavescout.FormatHex
	case "bin":
		return wavescout.FormatBin
	case "float":
		return wavescout.FormatFloat
	}
	return wavescout.FormatUnsigned
}

func groupRenderModeString(m wavescout.GroupRenderMode) string {
	switch m {
	case wavescout.GroupOverlapped:
		return "overlapped"
	case wavescout.GroupStackedArea:
		return "stacked_area"
	case wavescout.GroupPipeline:
		return "pipeline"
	}
	return "separate_rows"
}

func groupRenderModeFromString(s string) wavescout.GroupRenderMode {
	switch s {
	case "overlapped":
		return wavescout.GroupOverlapped
	case "stacked_area":
		return wavescout.GroupStackedArea
	case "pipeline":
		return wavescout.GroupPipeline
	}
	return wavescout.GroupSeparateRows
}

func analogScalingModeString(m wavescout.AnalogScalingMode) string {
	if m == wavescout.ScaleVisible {
		return "visible"
	}
	return "all"
}

func analogScalingModeFromString(s string) wavescout.AnalogScalingMode {
	if s == "visible" {
		return wavescout.ScaleVisible
	}
	return wavescout.ScaleAll
}

func analysisModeString(m wavescout.AnalysisSamplingMode) string {
	if m == wavescout.AnalysisSignalEdges {
		return "signal_edges"
	}
	return "period"
}

func analysisModeFromString(s string) wavescout.AnalysisSamplingMode {
	if s == "signal_edges" {
		return wavescout.AnalysisSignalEdges
	}
	return wavescout.AnalysisPeriod
}
