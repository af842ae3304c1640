// Command wavescoutbench is a minimal ebiten.Game driver that exercises
// the canvas orchestrator against a synthetic waveform, with a benchmark
// mode that swaps in render.DrawBenchmarkPattern to stress paint
// throughput. It follows the usual Game/Update/Draw/Layout/RunGame split
// for a standalone ebiten example.
package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ripopov/wavescout"
	"github.com/ripopov/wavescout/canvas"
	"github.com/ripopov/wavescout/render"
	"github.com/ripopov/wavescout/wavedb"
)

const (
	screenW      = 960
	screenH      = 420
	headerHeight = 24
	rowHeight    = 28
	numCycles    = 4000
)

// syntheticBackend fabricates a clock, a counting bus, a sparse event
// signal, and a sine wave spanning numCycles clock periods, entirely in
// memory, so the driver needs no VCD/FST file on disk.
type syntheticBackend struct {
	vars      []wavedb.Var
	signals   map[wavescout.SignalHandle]*wavedb.Signal
	endTime   wavescout.Time
	timeTable []wavescout.Time
}

func newSyntheticBackend() *syntheticBackend {
	const period = wavescout.Time(10)
	end := wavescout.Time(numCycles) * period

	clkTimes := make([]wavescout.Time, 0, numCycles*2)
	clkValues := make([]any, 0, numCycles*2)
	busTimes := make([]wavescout.Time, 0, numCycles)
	busValues := make([]any, 0, numCycles)
	evtTimes := make([]wavescout.Time, 0, numCycles/8)
	evtValues := make([]any, 0, numCycles/8)
	sineTimes := make([]wavescout.Time, 0, numCycles)
	sineValues := make([]any, 0, numCycles)

	for i := 0; i < numCycles; i++ {
		t := wavescout.Time(i) * period
		clkTimes = append(clkTimes, t, t+period/2)
		clkValues = append(clkValues, "0", "1")

		busTimes = append(busTimes, t)
		busValues = append(busValues, int64(i%256))

		if i%8 == 0 {
			evtTimes = append(evtTimes, t)
			evtValues = append(evtValues, "1")
		}

		sineTimes = append(sineTimes, t)
		sineValues = append(sineValues, math.Sin(float64(i)/37.0))
	}

	return &syntheticBackend{
		vars: []wavedb.Var{
			{Name: "tb.clk", Handle: 1, BitWidth: 1},
			{Name: "tb.counter", Handle: 2, BitWidth: 8},
			{Name: "tb.strobe", Handle: 3, BitWidth: 1},
			{Name: "tb.sine", Handle: 4, BitWidth: 32, IsReal: true},
		},
		signals: map[wavescout.SignalHandle]*wavedb.Signal{
			1: {Handle: 1, Times: clkTimes, Values: clkValues},
			2: {Handle: 2, Times: busTimes, Values: busValues},
			3: {Handle: 3, Times: evtTimes, Values: evtValues},
			4: {Handle: 4, Times: sineTimes, Values: sineValues},
		},
		endTime:   end,
		timeTable: mergeTimes(clkTimes, busTimes, evtTimes, sineTimes),
	}
}

// mergeTimes returns the sorted, deduplicated union of every slice in sets.
func mergeTimes(sets ...[]wavescout.Time) []wavescout.Time {
	var all []wavescout.Time
	for _, s := range sets {
		all = append(all, s...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	out := all[:0]
	var last wavescout.Time
	haveLast := false
	for _, t := range all {
		if haveLast && t == last {
			continue
		}
		out = append(out, t)
		last = t
		haveLast = true
	}
	return out
}

func (b *syntheticBackend) Hierarchy(ctx context.Context) ([]wavedb.Var, error) { return b.vars, nil }

func (b *syntheticBackend) Signal(ctx context.Context, h wavescout.SignalHandle) (*wavedb.Signal, error) {
	return b.signals[h], nil
}

func (b *syntheticBackend) TimeRange(ctx context.Context) (wavescout.Time, wavescout.Time, error) {
	return 0, b.endTime, nil
}

func (b *syntheticBackend) Timescale(ctx context.Context) (wavescout.Timescale, error) {
	return wavescout.Timescale{Factor: 1, Unit: wavescout.UnitNs}, nil
}

func (b *syntheticBackend) TimeTable(ctx context.Context) ([]wavescout.Time, error) {
	return b.timeTable, nil
}

func (b *syntheticBackend) Close() error { return nil }

func buildSession(backend *syntheticBackend) *wavescout.WaveformSession {
	s := wavescout.NewSession()
	s.SourcePath = "synthetic://wavescoutbench"
	s.TotalDuration = backend.endTime
	s.Timescale = wavescout.Timescale{Factor: 1, Unit: wavescout.UnitNs}

	root := wavescout.NewGroup("tb")
	clk := wavescout.NewSignal("tb.clk", 1, wavescout.DefaultDisplayFormat())
	bus := wavescout.NewSignal("tb.counter", 2, wavescout.DisplayFormat{RenderType: wavescout.RenderBus, DataFormat: wavescout.FormatHex})
	strobe := wavescout.NewSignal("tb.strobe", 3, wavescout.DisplayFormat{RenderType: wavescout.RenderEvent})
	sine := wavescout.NewSignal("tb.sine", 4, wavescout.DisplayFormat{RenderType: wavescout.RenderAnalog, DataFormat: wavescout.FormatFloat})
	sine.HeightScaling = 3

	root.AddChild(clk)
	root.AddChild(bus)
	root.AddChild(strobe)
	root.AddChild(sine)
	s.Root = root
	return s
}

// Game implements ebiten.Game.
type Game struct {
	orch              *canvas.Orchestrator
	session           *wavescout.WaveformSession
	benchmark         bool
	screenshotPending bool
	time              float64
}

func (g *Game) Update() error {
	g.time += 1.0 / float64(ebiten.TPS())
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.benchmark = !g.benchmark
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.screenshotPending = true
	}

	span := g.session.TotalDuration
	cursor := wavescout.Time(g.time*float64(span)/8.0) % span
	g.session.CursorTime = cursor
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	label := "waveform"
	if g.benchmark {
		label = "benchmark"
		render.DrawBenchmarkPattern(screen, screenW, screenH)
		ebitenutil.DebugPrintAt(screen, "SPACE: back to waveform view  S: screenshot", 4, 4)
	} else {
		start, end := g.session.VisibleTimeRange()
		rows := rowsFor(g.session.Root, headerHeight)
		params := canvas.Params{
			Width:        screenW,
			Height:       screenH,
			HeaderHeight: headerHeight,
			StartTime:    start,
			EndTime:      end,
			Rows:         rows,
		}
		if err := g.orch.Paint(context.Background(), screen, params, g.session.CursorTime, g.session.Markers); err != nil {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("paint error: %v", err), 4, 4)
			return
		}
		ebitenutil.DebugPrintAt(screen, "SPACE: benchmark pattern  S: screenshot", 4, 4)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS()), 4, screenH-16)
	}

	if g.screenshotPending {
		g.screenshotPending = false
		if err := capturePNG(screen, label); err != nil {
			log.Printf("screenshot: %v", err)
		}
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

// rowsFor lays every leaf signal out as one row of rowHeight times its
// HeightScaling, stacked top to bottom starting at headerHeight; it does not
// walk nested groups since the synthetic session is flat.
func rowsFor(root *wavescout.SignalNode, top int) []canvas.Row {
	var rows []canvas.Row
	y := top
	for _, child := range root.Children() {
		if child.IsGroup() {
			continue
		}
		h := rowHeight * child.HeightScaling
		rows = append(rows, canvas.Row{Node: child, Y: y, Height: h})
		y += h
	}
	return rows
}

func main() {
	backend := newSyntheticBackend()
	session := buildSession(backend)
	db := wavedb.New(backend)
	orch := canvas.New(db)

	g := &Game{orch: orch, session: session}

	ebiten.SetWindowTitle("wavescoutbench")
	ebiten.SetWindowSize(screenW, screenH)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
