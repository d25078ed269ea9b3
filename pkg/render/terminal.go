package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	xdraw "golang.org/x/image/draw"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Display is a screen that can push its cells to the terminal.
// *uv.Terminal satisfies it.
type Display interface {
	uv.Screen
	Display() error
}

// TerminalRenderer presents fixed-size frames on a terminal. Frames are
// resampled, letterboxed, into a half-block framebuffer sized to the
// terminal.
type TerminalRenderer struct {
	display    Display
	width      int // terminal columns
	height     int // terminal rows
	fb         *Framebuffer
	scaler     xdraw.Scaler
	Background color.RGBA // letterbox color
}

// NewTerminalRenderer creates a renderer for a width×height cell terminal.
func NewTerminalRenderer(display Display, width, height int, scaler xdraw.Scaler) *TerminalRenderer {
	if scaler == nil {
		scaler = xdraw.ApproxBiLinear
	}
	r := &TerminalRenderer{
		display: display,
		width:   width,
		height:  height,
		scaler:  scaler,
	}
	fbWidth, fbHeight := r.FramebufferSize()
	r.fb = NewFramebuffer(fbWidth, fbHeight)
	return r
}

// FramebufferSize returns the pixel size of the half-block framebuffer.
func (r *TerminalRenderer) FramebufferSize() (int, int) {
	return r.width, r.height * 2
}

// Render scales frame onto the terminal framebuffer and draws its cells.
func (r *TerminalRenderer) Render(frame *Framebuffer) {
	r.fb.Clear(r.Background)
	dr := FitRect(frame.Width, frame.Height, r.fb.Width, r.fb.Height)
	if !dr.Empty() {
		frame.ScaleInto(r.fb, dr, r.scaler)
	}
	r.fb.Draw(r.display, r.display.Bounds())
}

// Flush pushes the drawn cells to the terminal.
func (r *TerminalRenderer) Flush() error {
	return r.display.Display()
}
