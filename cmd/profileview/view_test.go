package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestViewer(t *testing.T, content string) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "energies.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(80, 24)

	vw := NewViewer(s, path, "", nil)
	if err := vw.reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return vw, s
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%w == 0 {
			b.WriteByte('\n')
		}
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func press(vw *Viewer, r rune) bool {
	return vw.handleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func TestViewerDrawsDiagram(t *testing.T) {
	vw, s := newTestViewer(t, `{"Pathway A": [0.0, -2.0, 10.0, 1.5, -1.5, 2.0, -7.0]}`)
	vw.draw()
	s.Show()

	text := screenText(s)
	if got := strings.Count(text, "●"); got != 7 {
		t.Errorf("Expected 7 markers, got %d", got)
	}
	for _, want := range []string{"10.0", "−7.0", "curviness 0.42", "Q:Quit"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected screen to contain %q", want)
		}
	}
}

func TestViewerKeys(t *testing.T) {
	vw, _ := newTestViewer(t, `[[0, 5, 0], [0, 3, null, 1]]`)

	press(vw, '+')
	if got := vw.diagram.Options.Curviness; got != 0.47 {
		t.Errorf("Expected curviness 0.47, got %v", got)
	}
	for i := 0; i < 20; i++ {
		press(vw, '-')
	}
	if got := vw.diagram.Options.Curviness; got != 0 {
		t.Errorf("Expected curviness clamped at 0, got %v", got)
	}

	press(vw, 'l')
	if len(vw.diagram.Labels) != 0 {
		t.Errorf("Expected labels off, got %d", len(vw.diagram.Labels))
	}
	press(vw, 'l')
	if len(vw.diagram.Labels) == 0 {
		t.Error("Expected labels back on")
	}

	if press(vw, 'x') {
		t.Error("Unbound key should not quit")
	}
	if !press(vw, 'q') {
		t.Error("q should quit")
	}
	if !vw.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
}

func TestViewerReload(t *testing.T) {
	vw, _ := newTestViewer(t, `{"A": [0, 5, 0]}`)
	if err := os.WriteFile(vw.path, []byte(`{"A": [0, 5, 0], "B": [0, 4, 1]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	press(vw, 'r')
	if len(vw.diagram.Pathways) != 2 {
		t.Errorf("Expected 2 pathways after reload, got %d", len(vw.diagram.Pathways))
	}

	// a broken file keeps the last good diagram
	if err := os.WriteFile(vw.path, []byte(`{"A": [0, 5`), 0o644); err != nil {
		t.Fatal(err)
	}
	press(vw, 'r')
	if !vw.isError {
		t.Error("Expected an error message")
	}
	if len(vw.diagram.Pathways) != 2 {
		t.Errorf("Expected previous diagram kept, got %d pathways", len(vw.diagram.Pathways))
	}
}

func TestViewerRunQuits(t *testing.T) {
	vw, s := newTestViewer(t, `{"A": [0, 5, 0]}`)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	vw.run() // returns once q is read
}

func TestViewerMultiLineCaption(t *testing.T) {
	vw, s := newTestViewer(t, `{"A": [0, 10, 0, 5, 0]}`)
	vw.overrides["segment_annotations"] = map[string]any{"Part\n 3": []any{0, 4}}
	vw.relayout()
	if vw.isError {
		t.Fatalf("relayout: %s", vw.message)
	}
	vw.draw()
	s.Show()

	cells, _, _ := s.GetContents()
	for i, c := range cells {
		for _, r := range c.Runes {
			if r == '\n' {
				t.Fatalf("Cell %d holds a raw newline", i)
			}
		}
	}

	rows := strings.Split(screenText(s), "\n")
	found := false
	for i, row := range rows[:len(rows)-1] {
		if strings.Contains(row, "Part") {
			found = true
			if strings.Contains(row, "3") || strings.TrimSpace(rows[i+1]) != "3" {
				t.Errorf("Expected caption on two rows, got %q and %q", row, rows[i+1])
			}
		}
	}
	if !found {
		t.Error("Expected caption on screen")
	}
}

func TestViewportMapping(t *testing.T) {
	vw, _ := newTestViewer(t, `{"A": [0, 10, 0]}`)
	v := newViewport(vw.diagram, 0, 0, 41, 23)

	col, row := v.cell(1, 10)
	if col != 20 {
		t.Errorf("Expected middle column 20, got %d", col)
	}
	_, low := v.cell(0, 0)
	if row >= low {
		t.Errorf("Expected higher energy on an upper row, got %d vs %d", row, low)
	}
	if !v.contains(0, 0) || v.contains(41, 0) || v.contains(0, 23) {
		t.Error("contains does not match the viewport bounds")
	}
}
