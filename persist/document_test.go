package persist

import (
	"path/filepath"
	"testing"

	"github.com/ripopov/wavescout"
)

func buildTestSession() *wavescout.WaveformSession {
	s := wavescout.NewSession()
	s.SourcePath = "/tmp/example.vcd"
	s.Timescale = wavescout.Timescale{Factor: 1, Unit: wavescout.UnitPs}
	s.TotalDuration = 1000
	s.Viewport.Left = 0.1
	s.Viewport.Right = 0.9
	s.CursorTime = 42

	clk := wavescout.NewSignal("top.clk", 1, wavescout.DefaultDisplayFormat())
	bus := wavescout.NewSignal("top.data", 2, wavescout.DisplayFormat{RenderType: wavescout.RenderBus, DataFormat: wavescout.FormatHex})
	group := wavescout.NewGroup("top")
	group.AddChild(clk)
	group.AddChild(bus)
	s.Root = group

	s.Markers.Set(wavescout.MarkerA, 100, wavescout.Color{R: 255, G: 0, B: 0})
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	original := buildTestSession()
	path := filepath.Join(t.TempDir(), "session.yaml")

	if err := Save(path, original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.SourcePath != original.SourcePath {
		t.Errorf("SourcePath mismatch: got %q want %q", loaded.SourcePath, original.SourcePath)
	}
	if loaded.TotalDuration != original.TotalDuration {
		t.Errorf("TotalDuration mismatch: got %d want %d", loaded.TotalDuration, original.TotalDuration)
	}
	if loaded.Viewport.Left != original.Viewport.Left || loaded.Viewport.Right != original.Viewport.Right {
		t.Errorf("Viewport mismatch: got %+v want %+v", loaded.Viewport, original.Viewport)
	}
	if !loaded.Markers.IsUsed(wavescout.MarkerA) {
		t.Fatalf("expected marker A to round-trip as used")
	}
	if loaded.Markers[wavescout.MarkerA].Time != 100 {
		t.Errorf("marker A time mismatch: got %d", loaded.Markers[wavescout.MarkerA].Time)
	}
	if loaded.Root.NumChildren() != 2 {
		t.Fatalf("expected 2 children under root, got %d", loaded.Root.NumChildren())
	}
	busNode := loaded.Root.Children()[1]
	if busNode.Format.RenderType != wavescout.RenderBus || busNode.Format.DataFormat != wavescout.FormatHex {
		t.Errorf("bus node format mismatch: %+v", busNode.Format)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error loading nonexistent file")
	}
}
