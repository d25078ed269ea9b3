package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Framebuffer is a fixed-size 2D grid of pixels, row-major.
// It implements draw.Image so it can be scaled and encoded directly.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA
}

var _ xdraw.Image = (*Framebuffer)(nil)

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// Row returns the pixels of row y. Rows never overlap, so goroutines may
// write distinct rows concurrently.
func (fb *Framebuffer) Row(y int) []color.RGBA {
	return fb.Pixels[y*fb.Width : (y+1)*fb.Width]
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.Width, fb.Height) }

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color { return fb.GetPixel(x, y) }

// Set implements draw.Image.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// Equal reports whether two framebuffers have the same size and pixels.
func (fb *Framebuffer) Equal(other *Framebuffer) bool {
	if fb.Width != other.Width || fb.Height != other.Height {
		return false
	}
	for i, p := range fb.Pixels {
		if other.Pixels[i] != p {
			return false
		}
	}
	return true
}

// ScaleInto resamples fb into the rectangle dr of dst with the given scaler.
func (fb *Framebuffer) ScaleInto(dst *Framebuffer, dr image.Rectangle, scaler xdraw.Scaler) {
	scaler.Scale(dst, dr, fb, fb.Bounds(), xdraw.Src, nil)
}

// FitRect returns the largest rectangle with the aspect ratio of a
// srcW×srcH image that fits centered inside a dstW×dstH area.
func FitRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}
	}
	w, h := dstW, dstW*srcH/srcW
	if h > dstH {
		w, h = dstH*srcW/srcH, dstH
	}
	x0 := (dstW - w) / 2
	y0 := (dstH - h) / 2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// ParseScaler maps a filter name to an x/image scaler.
func ParseScaler(name string) (xdraw.Scaler, error) {
	switch strings.ToLower(name) {
	case "nearest":
		return xdraw.NearestNeighbor, nil
	case "", "bilinear":
		return xdraw.ApproxBiLinear, nil
	case "catmullrom":
		return xdraw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("unknown filter %q (use nearest, bilinear or catmullrom)", name)
	}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, fb.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
