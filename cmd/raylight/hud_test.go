package main

import (
	"testing"
	"time"

	"github.com/taigrr/raylight/pkg/math3d"
	"github.com/taigrr/raylight/pkg/render"
	"github.com/taigrr/raylight/pkg/scene"
)

func TestHUDStatus(t *testing.T) {
	lamp := scene.NewLight(1, math3d.V3(-1, 1, -5))
	moved := scene.NewLight(1, math3d.V3(0.26, -2.04, -10))

	tests := []struct {
		name     string
		index    int
		light    *scene.Light
		expected string
	}{
		{"no light", 0, nil, "no lights"},
		{"default light", 0, &lamp, "light 0 (-1.0, 1.0, -5.0)  tab: next  p: snapshot"},
		{"rounded position", 2, &moved, "light 2 (0.3, -2.0, -10.0)  tab: next  p: snapshot"},
	}

	hud := NewHUD("test")
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := hud.Status(tc.index, tc.light); got != tc.expected {
				t.Errorf("Status() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestHUDUpdate(t *testing.T) {
	hud := NewHUD("test")
	stats := render.FrameStats{Elapsed: 5 * time.Millisecond, Pixels: 100, Hits: 40}

	// Inside the one second window the rate is not yet measured.
	hud.Update(stats)
	if hud.FPS() != 0 {
		t.Errorf("FPS() = %v before a full second", hud.FPS())
	}
	if hud.last != stats {
		t.Errorf("last stats = %v, want %v", hud.last, stats)
	}

	// 59 earlier frames plus this one over just over a second.
	hud.fpsFrames = 59
	hud.fpsTime = time.Now().Add(-time.Second)
	hud.Update(stats)
	if fps := hud.FPS(); fps <= 50 || fps > 60 {
		t.Errorf("FPS() = %v, want just under 60", fps)
	}
	if hud.fpsFrames != 0 {
		t.Errorf("frame counter = %d, want reset to 0", hud.fpsFrames)
	}
}
