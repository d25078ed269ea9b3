package main

import (
	"fmt"
	"time"

	"github.com/taigrr/raylight/pkg/render"
	"github.com/taigrr/raylight/pkg/scene"
)

// HUD renders an overlay with frame timing and the selected light.
type HUD struct {
	title     string
	Show      bool
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	last      render.FrameStats
}

// NewHUD creates a new HUD
func NewHUD(title string) *HUD {
	return &HUD{
		title:   title,
		fpsTime: time.Now(),
	}
}

// Update records a finished frame (call once per frame)
func (h *HUD) Update(stats render.FrameStats) {
	h.last = stats
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// FPS returns the frame rate measured over the last full second.
func (h *HUD) FPS() float64 { return h.fps }

// Status is the bottom line text for the selected light.
func (h *HUD) Status(index int, light *scene.Light) string {
	if light == nil {
		return "no lights"
	}
	p := light.Position()
	return fmt.Sprintf("light %d (%.1f, %.1f, %.1f)  tab: next  p: snapshot", index, p.X, p.Y, p.Z)
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height, index int, light *scene.Light) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !h.Show {
		return
	}

	// Top left: FPS and frame time
	fmt.Printf("%s%s%s %.0f FPS  %.1f ms %s", moveTo(1, 1), bgBlack, fgGreen,
		h.fps, float64(h.last.Elapsed.Microseconds())/1000, reset)

	// Top middle: title
	titleCol := max((width-len(h.title)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, h.title, reset))

	// Top right: hit pixels
	hits := fmt.Sprintf("%d hits", h.last.Hits)
	hitsCol := max(width-len(hits)-2, 1)
	fmt.Print(moveTo(1, hitsCol) + fmt.Sprintf("%s%s%s %s %s", bgBlack, fgCyan, bold, hits, reset))

	// Bottom: selected light
	fmt.Print(moveTo(height, 1) + fmt.Sprintf("%s%s %s %s", bgBlack, fgYellow, h.Status(index, light), reset))
}
