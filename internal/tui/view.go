package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"viewport2d/internal/geom"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.lay

	// Header
	header := titleStyle.Render(" viewport2d ─ window / viewport viewer ")
	header = lipgloss.NewStyle().Width(lay.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(lay.sidebarW).Height(lay.contentH).Render(m.l.View())
	}

	mainW := max(lay.contentW-lay.mainX-lay.panelW-1, lay.mainW)
	var mainView string
	if m.showTable {
		// Render the object table centered in the main area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(mainW, max(32, colW))
		m.tbl.SetWidth(maxW - boxExtraW)
		m.tbl.SetHeight(min(lay.contentH-boxExtraH, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mainView = lipgloss.Place(mainW, lay.contentH, lipgloss.Center, lipgloss.Center, box)
	} else {
		mainView = lipgloss.NewStyle().Width(mainW).Height(lay.contentH).Render(m.main.View())
	}

	// Minimap and window panel
	mini := boxStyle.Render(m.mini.View())
	panel := lipgloss.JoinVertical(lipgloss.Left,
		dimStyle.Render(" minimap"),
		mini,
		m.renderInfo(lay.panelW),
	)
	panel = lipgloss.NewStyle().Width(lay.panelW).Render(panel)

	// Body row
	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mainView, " ", panel)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, mainView, " ", panel)
	}

	// Footer: input fields, then status and help
	fields := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderField(m.stepIn.View(), m.focus == focusStep),
		m.renderField(m.angleIn.View(), m.focus == focusAngle),
	)
	if m.focus == focusSave {
		fields = lipgloss.JoinHorizontal(lipgloss.Top, fields, m.renderField(m.saveIn.View(), true))
	}
	status := dimStyle.Render(" " + m.status + " ")
	if m.failed {
		status = errStyle.Render(" " + m.status + " ")
	}
	coords := ""
	if m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.3f y=%.3f  ", m.hoverAt.X, m.hoverAt.Y))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	spacerW := max(0, lay.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(lay.contentW).Render(fields),
		lipgloss.NewStyle().Width(lay.contentW).MaxHeight(1).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right)),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).Render(ui)
}

func (m Model) renderField(v string, focused bool) string {
	if focused {
		return focusStyle.Render(v)
	}
	return fieldStyle.Render(v)
}

// renderInfo summarises the window and scene under the minimap.
func (m Model) renderInfo(width int) string {
	s := m.sess.Scene()
	r := s.Window
	pts, segs, polys := s.Counts()
	lines := []string{
		fmt.Sprintf("mode   %s", m.sess.Mode()),
		fmt.Sprintf("min    %s", formatVec(r.Min())),
		fmt.Sprintf("max    %s", formatVec(r.Max())),
		fmt.Sprintf("size   %s x %s", formatNumber(r.Width()), formatNumber(r.Height())),
	}
	if aw, ok := m.sess.Window().(*geom.AffineWindow); ok {
		lines = append(lines, fmt.Sprintf("angle  %s°", formatNumber(aw.Angle())))
	}
	lines = append(lines,
		fmt.Sprintf("step   %s", formatNumber(s.Step)),
		fmt.Sprintf("objs   %d pts  %d seg  %d poly", pts, segs, polys),
	)
	if m.loading != "" {
		lines = append(lines, "loading…")
	}
	return dimStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"l/r rotate",
		"0 reset",
		"s step",
		"a angle",
		"Tab files",
		"w save",
		"e png",
		"c copy",
		"t objects",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
