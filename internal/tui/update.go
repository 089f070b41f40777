package tui

import (
	"fmt"
	"log/slog"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"viewport2d/internal/session"
)

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(prefix string, err error) {
	m.status = prefix + ": " + err.Error()
	m.failed = true
}

// relayout recomputes the frame geometry and resizes the main view when the
// terminal, the sidebar or the scene viewport changes.
func (m *Model) relayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	lay := computeLayout(m.width, m.height, m.showSidebar, m.sess.Scene().Viewport)
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}
	if w, h := m.main.Size(); w != lay.mainW || h != lay.mainH {
		m.main.Resize(lay.mainW, lay.mainH)
		m.sess.Redraw()
	}
	m.lay = lay
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
	case loadedMsg:
		m.loading = ""
		if msg.err != nil {
			slog.Warn("load failed", "path", msg.path, "error", msg.err)
			m.setError("load error", msg.err)
			return m, nil
		}
		m.sess.Apply(msg.path, msg.doc)
		m.relayout()
		if m.showTable {
			m.refreshObjects()
		}
		m.setStatus("loaded: " + countsLine(msg.path, m.sess.Scene()))
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.focus != focusNone {
			return m.updateField(msg)
		}
		if m.showTable {
			switch msg.String() {
			case "esc", "t":
				m.showTable = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up":
			m.sess.Move(session.Up)
			m.setStatus(m.windowLine())
		case "down":
			m.sess.Move(session.Down)
			m.setStatus(m.windowLine())
		case "left":
			m.sess.Move(session.Left)
			m.setStatus(m.windowLine())
		case "right":
			m.sess.Move(session.Right)
			m.setStatus(m.windowLine())
		case "+", "=":
			m.sess.ZoomIn()
			m.setStatus("zoom in  " + m.windowLine())
		case "-", "_":
			m.sess.ZoomOut()
			m.setStatus("zoom out  " + m.windowLine())
		case "l":
			m.rotate(-1)
		case "r":
			m.rotate(1)
		case "0":
			m.sess.Reset()
			m.setStatus("reset  " + m.windowLine())
		case "s":
			m.focusField(focusStep)
		case "a":
			m.focusField(focusAngle)
		case "w":
			m.saveIn.SetValue(defaultSavePath(m.sess.Path))
			m.saveIn.CursorEnd()
			m.focusField(focusSave)
		case "e":
			p := m.exportPath()
			if err := m.sess.ExportPNG(p); err != nil {
				m.setError("export error", err)
			} else {
				m.setStatus("exported: " + p)
			}
		case "c":
			if err := m.sess.CopyToClipboard(); err != nil {
				m.setError("clipboard error", err)
			} else {
				m.setStatus("scene copied to clipboard")
			}
		case "t":
			m.showTable = true
			m.refreshObjects()
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.relayout()
		case "h":
			m.helpVisible = !m.helpVisible
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loading = it.path
					m.setStatus("loading " + it.title + "…")
					return m, loadCmd(it.path)
				}
			}
		}
	case tea.MouseMsg:
		if cx, cy, ok := m.lay.cellAt(msg.X, msg.Y); ok {
			m.hovering = true
			m.hoverAt = m.sess.Window().Unmap(m.main.Logical(cx, cy), m.sess.Scene().Viewport)
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) rotate(sign float64) {
	if err := m.sess.RotateText(m.angleIn.Value(), sign); err != nil {
		m.setError("rotate", err)
		return
	}
	dir := "right"
	if sign < 0 {
		dir = "left"
	}
	m.setStatus(fmt.Sprintf("rotate %s %s°  %s", dir, strings.TrimSpace(m.angleIn.Value()), m.windowLine()))
}

func (m *Model) focusField(f focus) {
	m.blurFields()
	m.focus = f
	switch f {
	case focusStep:
		m.stepIn.Focus()
	case focusAngle:
		m.angleIn.Focus()
	case focusSave:
		m.saveIn.Focus()
	}
}

func (m *Model) blurFields() {
	m.stepIn.Blur()
	m.angleIn.Blur()
	m.saveIn.Blur()
	m.focus = focusNone
}

// updateField routes keys to the focused input. Enter commits, Esc cancels.
func (m Model) updateField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.focus == focusStep {
			m.stepIn.SetValue(formatNumber(m.sess.Step()))
		}
		m.blurFields()
		m.setStatus("cancelled")
		return m, nil
	case "enter":
		f := m.focus
		m.blurFields()
		switch f {
		case focusStep:
			if err := m.sess.SetStepText(m.stepIn.Value()); err != nil {
				m.stepIn.SetValue(formatNumber(m.sess.Step()))
				m.setError("step", err)
			} else {
				m.setStatus("step: " + formatNumber(m.sess.Step()))
			}
		case focusAngle:
			m.setStatus("angle: " + strings.TrimSpace(m.angleIn.Value()) + "°  l/r to rotate")
		case focusSave:
			p := strings.TrimSpace(m.saveIn.Value())
			if p == "" {
				m.setStatus("save: empty path")
				return m, nil
			}
			if err := m.sess.Save(p); err != nil {
				m.setError("save error", err)
			} else {
				m.setStatus("saved: " + countsLine(p, m.sess.Scene()))
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	switch m.focus {
	case focusStep:
		m.stepIn, cmd = m.stepIn.Update(msg)
	case focusAngle:
		m.angleIn, cmd = m.angleIn.Update(msg)
	case focusSave:
		m.saveIn, cmd = m.saveIn.Update(msg)
	}
	return m, cmd
}

func (m Model) windowLine() string {
	r := m.sess.Scene().Window
	return fmt.Sprintf("window (%s, %s) - (%s, %s)", formatNumber(r.MinX), formatNumber(r.MinY), formatNumber(r.MaxX), formatNumber(r.MaxY))
}
