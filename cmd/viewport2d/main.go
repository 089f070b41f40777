package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"viewport2d/internal/config"
	"viewport2d/internal/session"
	"viewport2d/internal/tui"
)

func main() {
	pngOut := flag.String("png", "", "render the scene to this PNG file and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: viewport2d [-png out.png] [scene.xml|.wkt|.geojson|.csv|.kml]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	mode, _ := cfg.Mode()

	// the terminal belongs to the UI, so logs go to a file
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			defer f.Close()
			logOut = f
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})))

	opts := session.Options{
		Mode:    mode,
		Step:    &cfg.Step,
		ZoomIn:  cfg.ZoomIn,
		ZoomOut: cfg.ZoomOut,
	}
	path := flag.Arg(0)

	if *pngOut != "" {
		s := session.New(opts, nil, nil)
		if path != "" {
			if err := s.Load(path); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
		if err := s.ExportPNG(*pngOut); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	topts := tui.Options{Session: opts, ExportDir: cfg.ExportDir}
	var m tea.Model
	if path != "" {
		m = tui.NewWithPath(topts, path)
	} else {
		m = tui.New(topts)
	}
	slog.Info("starting", "mode", mode, "step", cfg.Step)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
