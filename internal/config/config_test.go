package config

import (
	"log/slog"
	"testing"

	"viewport2d/internal/geom"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Step != 1 || cfg.ZoomIn != 0.9 || cfg.ZoomOut != 1.1 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if m, _ := cfg.Mode(); m != geom.ModeLegacy {
		t.Errorf("mode: %v", m)
	}
	if l, _ := cfg.Level(); l != slog.LevelInfo {
		t.Errorf("level: %v", l)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VIEWPORT2D_STEP", "0.5")
	t.Setenv("VIEWPORT2D_WINDOW_MODE", "affine")
	t.Setenv("VIEWPORT2D_LOG_LEVEL", "debug")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Step != 0.5 {
		t.Errorf("step: %v", cfg.Step)
	}
	if m, _ := cfg.Mode(); m != geom.ModeAffine {
		t.Errorf("mode: %v", m)
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("level: %v", l)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"VIEWPORT2D_STEP":        "far",
		"VIEWPORT2D_WINDOW_MODE": "sideways",
		"VIEWPORT2D_ZOOM_IN":     "0",
		"VIEWPORT2D_LOG_LEVEL":   "loud",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%s: expected error", k, v)
			}
		})
	}
}

func TestLoadKeepsZeroStep(t *testing.T) {
	t.Setenv("VIEWPORT2D_STEP", "0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Step != 0 {
		t.Errorf("step: %v", cfg.Step)
	}
}
