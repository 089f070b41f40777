package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"viewport2d/internal/scene"
	"viewport2d/internal/sceneio"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.setError("read dir error", err)
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !sceneio.Supported(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.setStatus("no supported files in current directory")
	}
}

// loadedMsg carries the result of a background read.
type loadedMsg struct {
	path string
	doc  sceneio.Document
	err  error
}

// loadCmd reads path off the UI goroutine. The scene is only replaced when
// the message comes back through Update.
func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := sceneio.Import(path)
		return loadedMsg{path: path, doc: doc, err: err}
	}
}

func (m *Model) exportPath() string {
	name := "viewport2d"
	if p := m.sess.Path; p != "" {
		name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	return filepath.Join(m.exportDir, fmt.Sprintf("%s-%s.png", name, time.Now().Format("20060102-150405")))
}

func defaultSavePath(current string) string {
	if current != "" && strings.EqualFold(filepath.Ext(current), ".xml") {
		return current
	}
	return "scene.xml"
}

func countsLine(path string, s *scene.Scene) string {
	pts, segs, polys := s.Counts()
	return filepath.Base(path) + fmt.Sprintf("  counts: pts=%d seg=%d poly=%d", pts, segs, polys)
}
