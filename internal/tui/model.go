package tui

import (
	"image/color"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"viewport2d/internal/geom"
	"viewport2d/internal/render"
	"viewport2d/internal/session"
)

type focus int

const (
	focusNone focus = iota
	focusStep
	focusAngle
	focusSave
)

type Options struct {
	Session   session.Options
	ExportDir string
}

type Model struct {
	width  int
	height int
	lay    layout

	showSidebar bool
	helpVisible bool

	status  string
	failed  bool
	loading string

	sess *session.Session
	main *render.BrailleSurface
	mini *render.BrailleSurface

	exportDir string

	// File explorer
	cwd   string
	l     list.Model
	items []list.Item

	// numeric fields and the save prompt
	focus   focus
	stepIn  textinput.Model
	angleIn textinput.Model
	saveIn  textinput.Model

	// cursor position in world coordinates
	hovering bool
	hoverAt  geom.Vec2

	// object table
	showTable bool
	tbl       table.Model
}

var (
	canvasBackground  = color.White
	minimapBackground = color.RGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}
)

func New(opts Options) Model {
	m := Model{
		helpVisible: true,
		status:      "viewport2d ready",
		exportDir:   opts.ExportDir,
	}
	m.main = render.NewBrailleSurface(80, 30, geom.DefaultViewport())
	m.main.SetBackground(canvasBackground)
	m.mini = render.NewBrailleSurface(minimapCols, minimapRows, geom.MinimapViewport())
	m.mini.SetBackground(minimapBackground)
	m.sess = session.New(opts.Session, m.main, m.mini)

	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.stepIn = newField("step", 8)
	m.stepIn.SetValue(formatNumber(m.sess.Step()))
	m.angleIn = newField("angle", 8)
	m.angleIn.SetValue("15")
	m.saveIn = newField("save as", 40)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a scene at launch.
func NewWithPath(opts Options, path string) Model {
	m := New(opts)
	if err := m.sess.Load(path); err != nil {
		m.setError("load error", err)
	} else {
		m.setStatus("loaded: " + countsLine(path, m.sess.Scene()))
	}
	return m
}

func newField(prompt string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt + ": "
	ti.CharLimit = 256
	ti.Width = width
	return ti
}

func (m Model) Init() tea.Cmd { return nil }

// Session exposes the underlying session, mainly for tests.
func (m Model) Session() *session.Session { return m.sess }
