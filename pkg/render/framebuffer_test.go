package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	xdraw "golang.org/x/image/draw"
)

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	c := color.RGBA{10, 20, 30, 255}

	fb.SetPixel(2, 1, c)
	if got := fb.GetPixel(2, 1); got != c {
		t.Errorf("GetPixel = %v, want %v", got, c)
	}
	if got := fb.Row(1)[2]; got != c {
		t.Errorf("Row(1)[2] = %v, want %v", got, c)
	}

	// Out of bounds writes are dropped, reads are transparent.
	fb.SetPixel(-1, 0, c)
	fb.SetPixel(4, 0, c)
	if got := fb.GetPixel(10, 10); got != (color.RGBA{}) {
		t.Errorf("out of bounds GetPixel = %v", got)
	}

	fb.Set(0, 0, color.Gray{Y: 128})
	if got := fb.GetPixel(0, 0); got != (color.RGBA{128, 128, 128, 255}) {
		t.Errorf("Set(gray) stored %v", got)
	}
	if fb.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("Bounds = %v", fb.Bounds())
	}
}

func TestFramebufferEqual(t *testing.T) {
	a := NewFramebuffer(2, 2)
	b := NewFramebuffer(2, 2)
	if !a.Equal(b) {
		t.Error("fresh buffers should be equal")
	}

	b.SetPixel(1, 1, color.RGBA{R: 1})
	if a.Equal(b) {
		t.Error("differing pixel not detected")
	}
	if a.Equal(NewFramebuffer(4, 1)) {
		t.Error("differing size not detected")
	}
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, dstW, dstH int
		expected               image.Rectangle
	}{
		{"wide into wide", 1280, 720, 200, 100, image.Rect(11, 0, 188, 100)},
		{"wide into tall", 1280, 720, 80, 100, image.Rect(0, 27, 80, 72)},
		{"same aspect", 16, 9, 32, 18, image.Rect(0, 0, 32, 18)},
		{"empty destination", 16, 9, 0, 10, image.Rectangle{}},
		{"empty source", 0, 9, 10, 10, image.Rectangle{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FitRect(tc.srcW, tc.srcH, tc.dstW, tc.dstH)
			if got != tc.expected {
				t.Errorf("FitRect = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestParseScaler(t *testing.T) {
	tests := []struct {
		name     string
		expected xdraw.Scaler
	}{
		{"nearest", xdraw.NearestNeighbor},
		{"Bilinear", xdraw.ApproxBiLinear},
		{"", xdraw.ApproxBiLinear},
		{"catmullrom", xdraw.CatmullRom},
	}
	for _, tc := range tests {
		got, err := ParseScaler(tc.name)
		if err != nil {
			t.Fatalf("ParseScaler(%q): %v", tc.name, err)
		}
		if got != tc.expected {
			t.Errorf("ParseScaler(%q) = %v, want %v", tc.name, got, tc.expected)
		}
	}

	if _, err := ParseScaler("lanczos"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestScaleIntoNearest(t *testing.T) {
	src := NewFramebuffer(2, 2)
	quad := [4]color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255},
		{0, 0, 255, 255}, {255, 255, 255, 255},
	}
	copy(src.Pixels, quad[:])

	dst := NewFramebuffer(4, 4)
	src.ScaleInto(dst, dst.Bounds(), xdraw.NearestNeighbor)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := quad[(y/2)*2+x/2]
			if got := dst.GetPixel(x, y); got != want {
				t.Errorf("(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestScaleIntoLetterbox(t *testing.T) {
	src := NewFramebuffer(4, 2)
	src.Clear(color.RGBA{200, 0, 0, 255})

	dst := NewFramebuffer(4, 4)
	dr := FitRect(4, 2, 4, 4)
	src.ScaleInto(dst, dr, xdraw.NearestNeighbor)

	if got := dst.GetPixel(0, 0); got != (color.RGBA{}) {
		t.Errorf("letterbox row = %v, want untouched", got)
	}
	if got := dst.GetPixel(0, 1); got != (color.RGBA{200, 0, 0, 255}) {
		t.Errorf("image row = %v, want source color", got)
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(1, 1, color.RGBA{1, 2, 3, 255})

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != fb.Bounds() {
		t.Fatalf("decoded bounds = %v", img.Bounds())
	}
	if got := color.RGBAModel.Convert(img.At(1, 1)); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("decoded pixel = %v", got)
	}

	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}
