package render

import (
	"fmt"
	"math"

	"github.com/taigrr/raylight/pkg/math3d"
)

// DefaultFOV is the vertical field of view, in degrees, of a new camera.
const DefaultFOV = 30.0

// CameraRay returns the primary ray through the center of pixel (x, y).
// The camera sits at the origin looking down -Z; fov is in degrees.
func CameraRay(x, y, width, height int, fov, aspect float64) math3d.Ray {
	angle := math.Tan(math.Pi * 0.5 * fov / 180)
	xx := (2*((float64(x)+0.5)/float64(width)) - 1) * angle * aspect
	yy := (1 - 2*((float64(y)+0.5)/float64(height))) * angle
	dir := math3d.V3(xx, yy, -1).Normalize()
	return math3d.NewRay(math3d.Vec3{}, dir)
}

// RayTable holds one primary ray per pixel, row-major.
type RayTable struct {
	Width  int
	Height int
	FOV    float64
	rays   []math3d.Ray
}

// NewRayTable precomputes the primary rays for a width×height image.
func NewRayTable(width, height int, fov float64) *RayTable {
	t := &RayTable{
		Width:  width,
		Height: height,
		FOV:    fov,
		rays:   make([]math3d.Ray, width*height),
	}
	aspect := float64(width) / float64(height)
	for y := range height {
		stride := y * width
		for x := range width {
			t.rays[stride+x] = CameraRay(x, y, width, height, fov, aspect)
		}
	}
	Logger().Info("ray table built", "width", width, "height", height, "fov", fov)
	return t
}

// At returns the ray for pixel (x, y).
func (t *RayTable) At(x, y int) math3d.Ray {
	return t.rays[y*t.Width+x]
}

// Row returns the rays for row y.
func (t *RayTable) Row(y int) []math3d.Ray {
	return t.rays[y*t.Width : (y+1)*t.Width]
}

func (t *RayTable) String() string {
	return fmt.Sprintf("RayTable(%dx%d, fov %g)", t.Width, t.Height, t.FOV)
}

// Camera is a fixed pinhole camera at the origin. It owns the ray table and
// rebuilds it lazily when the resolution or field of view changes.
type Camera struct {
	Width  int
	Height int
	FOV    float64 // Vertical field of view in degrees

	rays  *RayTable
	dirty bool
}

// NewCamera creates a camera for a width×height image with DefaultFOV.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Width:  width,
		Height: height,
		FOV:    DefaultFOV,
		dirty:  true,
	}
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(fov float64) {
	if fov != c.FOV {
		c.FOV = fov
		c.dirty = true
	}
}

// SetResolution changes the image size the camera generates rays for.
func (c *Camera) SetResolution(width, height int) {
	if width != c.Width || height != c.Height {
		c.Width, c.Height = width, height
		c.dirty = true
	}
}

// AspectRatio returns width / height.
func (c *Camera) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Rays returns the ray table, building it if needed.
func (c *Camera) Rays() *RayTable {
	if c.dirty || c.rays == nil {
		c.rays = NewRayTable(c.Width, c.Height, c.FOV)
		c.dirty = false
	}
	return c.rays
}
