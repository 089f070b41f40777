package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"viewport2d/internal/geom"
	"viewport2d/internal/scene"
	"viewport2d/internal/session"
)

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		nm, _ := m.Update(msg)
		m = nm.(Model)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	chdir(t, t.TempDir())
	return send(t, New(Options{}), tea.WindowSizeMsg{Width: 140, Height: 40})
}

func TestKeysDriveTheWindow(t *testing.T) {
	tests := []struct {
		keys []string
		want geom.Rect
	}{
		{[]string{"right"}, geom.R(1, 0, 11, 7.5)},
		{[]string{"up", "up"}, geom.R(0, 2, 10, 9.5)},
		{[]string{"left", "down"}, geom.R(0, 0, 10, 7.5)},
		{[]string{"+"}, geom.R(0.5, 0.375, 9.5, 7.125)},
		{[]string{"-"}, geom.R(-0.5, -0.375, 10.5, 7.875)},
		{[]string{"right", "+", "0"}, geom.DefaultWindow()},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.keys, ","), func(t *testing.T) {
			m := newTestModel(t)
			for _, k := range tt.keys {
				m = send(t, m, key(k))
			}
			got := m.Session().Scene().Window
			if !approx(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func approx(a, b geom.Rect) bool {
	d := func(x, y float64) bool { return x-y < 1e-9 && y-x < 1e-9 }
	return d(a.MinX, b.MinX) && d(a.MinY, b.MinY) && d(a.MaxX, b.MaxX) && d(a.MaxY, b.MaxY)
}

func TestRotateUsesAngleField(t *testing.T) {
	m := newTestModel(t)
	m.angleIn.SetValue("90")
	m = send(t, m, key("r"))
	if got := m.Session().Scene().Window; !approx(got, geom.R(8.75, -1.25, 1.25, 8.75)) {
		t.Fatalf("rotate right: %v", got)
	}
	m = send(t, m, key("l"))
	if got := m.Session().Scene().Window; !approx(got, geom.DefaultWindow()) {
		t.Fatalf("rotate back: %v", got)
	}

	m.angleIn.SetValue("ninety")
	m = send(t, m, key("r"))
	if !m.failed || !strings.Contains(m.status, "invalid number") {
		t.Fatalf("expected an error status, got %q", m.status)
	}
	if got := m.Session().Scene().Window; !approx(got, geom.DefaultWindow()) {
		t.Fatalf("rejected angle moved the window: %v", got)
	}
}

func TestStepField(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("s"))
	if m.focus != focusStep {
		t.Fatalf("step field not focused")
	}
	// global keys go to the field while it has focus
	m = send(t, m, key("q"))
	if m.stepIn.Value() != "1q" {
		t.Fatalf("field value: %q", m.stepIn.Value())
	}
	m = send(t, m, key("enter"))
	if !m.failed || m.Session().Step() != 1 || m.stepIn.Value() != "1" {
		t.Fatalf("bad step accepted: status %q step %v field %q", m.status, m.Session().Step(), m.stepIn.Value())
	}

	m = send(t, m, key("s"))
	m.stepIn.SetValue("2.5")
	m = send(t, m, key("enter"), key("right"))
	if m.Session().Step() != 2.5 {
		t.Fatalf("step: %v", m.Session().Step())
	}
	if got := m.Session().Scene().Window; got != geom.R(2.5, 0, 12.5, 7.5) {
		t.Fatalf("window: %v", got)
	}
}

func TestBackgroundLoad(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "scene.xml")
	doc := `<dados><window><wmin x="2" y="2"/><wmax x="6" y="5"/></window><ponto x="3" y="3"/></dados>`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	m = send(t, m, loadCmd(path)())
	if m.failed {
		t.Fatalf("load failed: %s", m.status)
	}
	if m.Session().Scene().Window != geom.R(2, 2, 6, 5) || len(m.Session().Scene().Primitives) != 1 {
		t.Fatalf("scene not replaced: %+v", m.Session().Scene())
	}

	before := m.Session().Scene()
	m = send(t, m, loadCmd(filepath.Join(t.TempDir(), "missing.xml"))())
	if !m.failed || !strings.HasPrefix(m.status, "load error") {
		t.Fatalf("expected load error, got %q", m.status)
	}
	if m.Session().Scene() != before {
		t.Fatal("failed load replaced the scene")
	}
}

func TestSaveField(t *testing.T) {
	m := newTestModel(t)
	m.Session().Scene().Add(scene.NewPoint(geom.V(1, 1), "red"))
	m = send(t, m, key("w"))
	if m.focus != focusSave || m.saveIn.Value() != "scene.xml" {
		t.Fatalf("save prompt: focus %v value %q", m.focus, m.saveIn.Value())
	}
	path := filepath.Join(t.TempDir(), "out.xml")
	m.saveIn.SetValue(path)
	m = send(t, m, key("enter"))
	if m.failed {
		t.Fatalf("save failed: %s", m.status)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if m.Session().Path != path {
		t.Errorf("session path: %q", m.Session().Path)
	}
}

func TestObjectTable(t *testing.T) {
	s := scene.New()
	s.Add(
		scene.NewPoint(geom.V(1, 2), ""),
		scene.NewPolygon([]geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, "#ff0000"),
	)
	cols, rows := buildObjects(s)
	if len(cols) != 6 || len(rows) != 2 {
		t.Fatalf("got %d columns and %d rows", len(cols), len(rows))
	}
	want := []string{"2", "polygon", "#ff0000", "3", "(0, 0)", "true"}
	for i, v := range want {
		if rows[1][i] != v {
			t.Errorf("cell %d: expected %q, got %q", i, v, rows[1][i])
		}
	}

	m := newTestModel(t)
	m = send(t, m, key("t"))
	if m.showTable {
		t.Fatal("empty scene should not open the table")
	}
	m.Session().Scene().Add(scene.NewPoint(geom.V(1, 1), ""))
	m = send(t, m, key("t"))
	if !m.showTable || len(m.tbl.Rows()) != 1 {
		t.Fatalf("table: shown %v rows %d", m.showTable, len(m.tbl.Rows()))
	}
	m = send(t, m, key("esc"))
	if m.showTable {
		t.Fatal("esc should close the table")
	}
}

func TestFitCells(t *testing.T) {
	vp := geom.DefaultViewport()
	tests := []struct {
		aw, ah int
		w, h   int
	}{
		{100, 30, 80, 30},
		{40, 30, 40, 15},
	}
	for _, tt := range tests {
		w, h := fitCells(tt.aw, tt.ah, vp)
		if w != tt.w || h != tt.h {
			t.Errorf("fitCells(%d, %d) = %d, %d; want %d, %d", tt.aw, tt.ah, w, h, tt.w, tt.h)
		}
	}
}

func TestMouseShowsWorldPosition(t *testing.T) {
	m := newTestModel(t)
	lay := m.lay
	// bottom-left cell of the main view is near the window minimum
	m = send(t, m, tea.MouseMsg{X: lay.mainX, Y: lay.mainY + lay.mainH - 1, Action: tea.MouseActionMotion})
	if !m.hovering {
		t.Fatal("cursor over the main view should hover")
	}
	if m.hoverAt.X < 0 || m.hoverAt.X > 0.5 || m.hoverAt.Y < 0 || m.hoverAt.Y > 0.5 {
		t.Fatalf("world position: %v", m.hoverAt)
	}
	m = send(t, m, tea.MouseMsg{X: lay.contentW - 1, Y: 0})
	if m.hovering {
		t.Fatal("cursor off the main view should not hover")
	}
}

func TestViewRendersPanels(t *testing.T) {
	m := newTestModel(t)
	v := m.View()
	for _, want := range []string{"viewport2d", "minimap", "mode   legacy", "step: 1"} {
		if !strings.Contains(v, want) {
			t.Errorf("view lacks %q", want)
		}
	}
	if New(Options{Session: session.Options{Mode: geom.ModeAffine}}).View() != "" {
		t.Error("view before the first resize should be empty")
	}
}

// chdir is equivalent to testing.T.Chdir (Go 1.24+) for the Go 1.21 toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
