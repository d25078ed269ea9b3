package render

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/taigrr/raylight/pkg/math3d"
	"github.com/taigrr/raylight/pkg/scene"
)

// DefaultWorkers is the number of row bands a frame is split into.
const DefaultWorkers = 8

// Band is the half-open row range [Start, End) one worker renders.
type Band struct {
	Start, End int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int { return b.End - b.Start }

// Bands splits height rows into workers equal contiguous bands. The last
// band takes the remainder. workers below 1 is treated as 1.
func Bands(height, workers int) []Band {
	workers = max(workers, 1)
	height = max(height, 0)

	per := height / workers
	bands := make([]Band, workers)
	for i := range bands {
		bands[i] = Band{Start: i * per, End: (i + 1) * per}
	}
	bands[workers-1].End = height
	return bands
}

// FrameStats describes one rendered frame.
type FrameStats struct {
	Elapsed time.Duration
	Bands   int
	Pixels  int
	Hits    int // pixels that hit an object
}

func (s FrameStats) String() string {
	return fmt.Sprintf("%d/%d px hit in %v (%d bands)", s.Hits, s.Pixels, s.Elapsed, s.Bands)
}

// Tracer renders frames. Its fields are configuration only; a Tracer may be
// reused for every frame.
type Tracer struct {
	// Workers is the number of goroutines (row bands) per frame.
	Workers int

	// Background is written to pixels whose ray hits nothing.
	Background color.RGBA
}

// NewTracer creates a tracer that splits frames across workers goroutines.
func NewTracer(workers int) *Tracer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Tracer{Workers: workers}
}

// RenderFrame traces every pixel of rays into fb, which must have the same
// dimensions. Bands run on their own goroutines and all of them have
// finished when RenderFrame returns. sc and rays are only read.
func (t *Tracer) RenderFrame(sc *scene.Scene, rays *RayTable, fb *Framebuffer) FrameStats {
	if fb.Width != rays.Width || fb.Height != rays.Height {
		panic(fmt.Sprintf("render: framebuffer %dx%d does not match %v", fb.Width, fb.Height, rays))
	}

	start := time.Now()
	bands := Bands(rays.Height, t.Workers)
	hits := make([]int, len(bands))

	var wg sync.WaitGroup
	wg.Add(len(bands))
	for i, band := range bands {
		go func() {
			defer wg.Done()
			hits[i] = t.renderBand(sc, rays, fb, band)
		}()
	}
	wg.Wait()

	stats := FrameStats{
		Elapsed: time.Since(start),
		Bands:   len(bands),
		Pixels:  rays.Width * rays.Height,
	}
	for _, h := range hits {
		stats.Hits += h
	}
	Logger().Debug("frame rendered",
		"elapsed", stats.Elapsed,
		"hits", stats.Hits,
		"pixels", stats.Pixels,
		"bands", stats.Bands,
	)
	return stats
}

// renderBand traces the rows of band and returns how many pixels hit.
func (t *Tracer) renderBand(sc *scene.Scene, rays *RayTable, fb *Framebuffer, band Band) int {
	hits := 0
	for y := band.Start; y < band.End; y++ {
		out := fb.Row(y)
		for x, ray := range rays.Row(y) {
			c, ok := t.Trace(sc, ray)
			if ok {
				hits++
			}
			out[x] = c
		}
	}
	return hits
}

// Trace shades a single primary ray. It reports false, with the background
// color, when the ray hits nothing.
func (t *Tracer) Trace(sc *scene.Scene, ray math3d.Ray) (color.RGBA, bool) {
	hit, dist := FindClosest(sc, ray)
	if hit == nil {
		return t.Background, false
	}

	contact := ray.At(dist)
	normal := contact.Sub(hit.Position()).Normalize()
	contact = contact.Add(normal.Scale(ShadowBias))

	diffuse, specular := Accumulate(sc, ray, hit, contact, normal)
	return ToRGBA(ComposeColor(hit, diffuse, specular)), true
}
