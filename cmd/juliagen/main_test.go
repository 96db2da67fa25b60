package main

import (
	"errors"
	"flag"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/julia"
)

func TestRun_Render(t *testing.T) {
	out := filepath.Join(t.TempDir(), "one.png")
	err := run([]string{"-workers", "2", "render", "-o", out, "-width", "40", "-height", "30", "-iterations", "20"})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 40 || cfg.Height != 30 {
		t.Errorf("rendered %dx%d, want 40x30", cfg.Width, cfg.Height)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "params.json")
	if err := os.WriteFile(cfgPath, []byte(`{"width": 24, "height": 12, "maxIterations": 10}`), 0o600); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "cfg.png")
	if err := run([]string{"-config", cfgPath, "render", "-o", out}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 24 || cfg.Height != 12 {
		t.Errorf("rendered %dx%d, want 24x12 from the parameter file", cfg.Width, cfg.Height)
	}
}

func TestRun_AnimateFramesOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	err := run([]string{"animate", "-dir", dir, "-video", "", "-frames", "3",
		"-width", "16", "-height", "16", "-iterations", "10"})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	for _, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestRun_Boundary(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plot.png")
	if err := run([]string{"boundary", "-points", "50", "-plot", out}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("plot missing: %v", err)
	}
}

func TestRun_BoundaryNotConverged(t *testing.T) {
	err := run([]string{"boundary", "-epsilon", "1", "-points", "8", "-rounds", "3", "-plot", ""})
	if !errors.Is(err, julia.ErrNotConverged) {
		t.Errorf("run() error = %v, want ErrNotConverged", err)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no command", nil, flag.ErrHelp},
		{"invalid width", []string{"render", "-width", "0", "-o", os.DevNull}, julia.ErrInvalidConfig},
		{"missing config", []string{"-config", "/nonexistent/params.json", "render"}, os.ErrNotExist},
		{"bad convention", []string{"boundary", "-convention", "sideways"}, julia.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.args); !errors.Is(err, tt.want) {
				t.Errorf("run(%v) = %v, want %v", tt.args, err, tt.want)
			}
		})
	}

	if err := run([]string{"paint"}); err == nil {
		t.Error("run(paint) succeeded")
	}
}
