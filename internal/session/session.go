// Package session holds the state of one interactive run: the scene, the
// window strategy and the two display surfaces. Every navigation operation
// mutates the window and then redraws both surfaces before returning.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"viewport2d/internal/geom"
	"viewport2d/internal/render"
	"viewport2d/internal/scene"
	"viewport2d/internal/sceneio"
)

// ErrInvalidNumber is returned when a numeric field holds something that is
// not a number. The session is left unchanged.
var ErrInvalidNumber = errors.New("invalid number")

const (
	DefaultZoomIn  = 0.9
	DefaultZoomOut = 1.1
)

// Direction is one of the four arrow-key pans.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

type Options struct {
	Mode geom.Mode
	// Step is the initial pan distance. Nil means scene.DefaultStep; zero
	// is kept as given.
	Step    *float64
	ZoomIn  float64
	ZoomOut float64
	Logger  *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Step == nil {
		step := scene.DefaultStep
		o.Step = &step
	}
	if o.ZoomIn == 0 {
		o.ZoomIn = DefaultZoomIn
	}
	if o.ZoomOut == 0 {
		o.ZoomOut = DefaultZoomOut
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// logicalSurface is implemented by surfaces whose coordinate space can follow
// the scene viewport.
type logicalSurface interface {
	SetLogical(geom.Rect)
}

type Session struct {
	opts   Options
	scene  *scene.Scene
	window geom.Window
	render *render.Coordinator
	main   render.Surface
	mini   render.Surface
	log    *slog.Logger
	// Path is the file most recently loaded or saved.
	Path string
}

// New starts a session with an empty scene and draws it once.
func New(opts Options, main, mini render.Surface) *Session {
	opts = opts.withDefaults()
	sc := scene.New()
	sc.Step = *opts.Step
	s := &Session{
		opts:   opts,
		scene:  sc,
		window: geom.NewWindow(opts.Mode, sc.Window),
		render: render.NewCoordinator(),
		main:   main,
		mini:   mini,
		log:    opts.Logger,
	}
	s.syncViewport()
	s.Redraw()
	return s
}

func (s *Session) Scene() *scene.Scene { return s.scene }
func (s *Session) Window() geom.Window { return s.window }
func (s *Session) Mode() geom.Mode     { return s.opts.Mode }
func (s *Session) Step() float64       { return s.scene.Step }

func (s *Session) Coordinator() *render.Coordinator { return s.render }

// SetPolicy replaces the visibility policy used for the main view.
func (s *Session) SetPolicy(p scene.VisibilityPolicy) {
	s.render.Policy = p
	s.Redraw()
}

// Redraw repaints both surfaces from the current state.
func (s *Session) Redraw() {
	if s.main != nil {
		s.render.RenderMain(s.scene, s.window, s.main)
	}
	if s.mini != nil {
		s.render.RenderMinimap(s.scene, s.window, s.mini)
	}
}

func (s *Session) commit(op string, args ...any) {
	s.scene.Window = s.window.Corners()
	r := s.scene.Window
	s.log.Debug(op, append(args, "window", fmt.Sprintf("(%g, %g, %g, %g)", r.MinX, r.MinY, r.MaxX, r.MaxY))...)
	s.Redraw()
}

func (s *Session) syncViewport() {
	if ls, ok := s.main.(logicalSurface); ok {
		ls.SetLogical(s.scene.Viewport)
	}
}

func (s *Session) Pan(dx, dy float64) {
	s.window.Pan(dx, dy)
	s.commit("pan", "dx", dx, "dy", dy)
}

// Move pans one step in the given direction.
func (s *Session) Move(d Direction) {
	step := s.scene.Step
	switch d {
	case Left:
		s.Pan(-step, 0)
	case Right:
		s.Pan(step, 0)
	case Up:
		s.Pan(0, step)
	case Down:
		s.Pan(0, -step)
	}
}

func (s *Session) Zoom(factor float64) {
	s.window.Zoom(factor)
	s.commit("zoom", "factor", factor)
}

// ZoomIn shrinks the window so less of the world fills the viewport.
func (s *Session) ZoomIn() { s.Zoom(s.opts.ZoomIn) }

func (s *Session) ZoomOut() { s.Zoom(s.opts.ZoomOut) }

// Rotate turns the window counter-clockwise by degrees. A rotation that
// would leave the corner pair with zero width or height is refused.
func (s *Session) Rotate(degrees float64) {
	before := s.window.Corners()
	s.window.Rotate(degrees)
	if s.window.Corners().Degenerate() {
		s.window.SetCorners(before)
		s.log.Warn("rotation refused, window would collapse", "degrees", degrees)
		return
	}
	s.commit("rotate", "degrees", degrees)
}

func (s *Session) Reset() {
	s.window.Reset()
	s.commit("reset")
}

// SetStep changes the pan distance. Any value is accepted.
func (s *Session) SetStep(v float64) {
	s.scene.Step = v
	s.log.Debug("step", "value", v)
}

func parseNumber(field, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w in %s field: %q", ErrInvalidNumber, field, text)
	}
	return v, nil
}

// SetStepText parses the step field.
func (s *Session) SetStepText(text string) error {
	v, err := parseNumber("step", text)
	if err != nil {
		s.log.Warn("step rejected", "text", text)
		return err
	}
	s.SetStep(v)
	return nil
}

// RotateText parses the angle field and rotates by sign times its value.
// Rotating left passes -1 and rotating right passes +1.
func (s *Session) RotateText(text string, sign float64) error {
	v, err := parseNumber("angle", text)
	if err != nil {
		s.log.Warn("angle rejected", "text", text)
		return err
	}
	s.Rotate(sign * v)
	return nil
}

// Load reads path and replaces the scene. On failure nothing changes.
func (s *Session) Load(path string) error {
	doc, err := sceneio.Import(path)
	if err != nil {
		s.log.Warn("load failed", "path", path, "error", err)
		return err
	}
	s.Apply(path, doc)
	return nil
}

// Apply replaces the scene with a document already read from path and
// redraws. The document must come from sceneio, which refuses degenerate
// windows.
func (s *Session) Apply(path string, doc sceneio.Document) {
	sc := scene.New()
	sc.Window = doc.Window
	sc.Viewport = doc.Viewport
	sc.Step = s.scene.Step
	sc.Primitives = doc.Primitives
	s.scene = sc
	s.window = geom.NewWindow(s.opts.Mode, sc.Window)
	s.Path = path
	s.syncViewport()
	s.Redraw()
	s.log.Info("loaded", "path", path, "objects", len(doc.Primitives))
}

func (s *Session) Save(path string) error {
	if err := sceneio.Save(path, sceneio.FromScene(s.scene)); err != nil {
		s.log.Warn("save failed", "path", path, "error", err)
		return err
	}
	s.Path = path
	s.log.Info("saved", "path", path, "objects", len(s.scene.Primitives))
	return nil
}

// ExportPNG writes both displays to a PNG file.
func (s *Session) ExportPNG(path string) error {
	if err := s.render.ExportPNG(path, s.scene, s.window); err != nil {
		s.log.Warn("export failed", "path", path, "error", err)
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	s.log.Info("exported", "path", path)
	return nil
}

// Document returns the scene serialised in the native format.
func (s *Session) Document() (string, error) {
	var buf bytes.Buffer
	if err := sceneio.Encode(&buf, sceneio.FromScene(s.scene), "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Session) CopyToClipboard() error {
	text, err := s.Document()
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	s.log.Info("copied scene to clipboard", "bytes", len(text))
	return nil
}
