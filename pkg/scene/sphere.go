// Package scene holds the spheres and point lights that the tracer renders.
package scene

import (
	"math"

	"github.com/taigrr/raylight/pkg/math3d"
)

// IntersectEpsilon is the smallest distance along a ray that counts as a hit.
// Anything closer is treated as the ray's own origin surface.
const IntersectEpsilon = 1e-4

// Sphere is a solid ball with a flat albedo and Phong-style coefficients.
type Sphere struct {
	radius   float64
	position math3d.Vec3
	color    math3d.Vec3 // 0-255 per channel
	diffuse  float64
	specular float64
}

// NewSphere creates a fully diffuse, non-specular sphere.
func NewSphere(radius float64, position, color math3d.Vec3) Sphere {
	return NewSphereWithMaterial(radius, position, color, 1, 0)
}

// NewSphereWithMaterial creates a sphere with explicit diffuse and specular coefficients.
func NewSphereWithMaterial(radius float64, position, color math3d.Vec3, diffuse, specular float64) Sphere {
	return Sphere{
		radius:   radius,
		position: position,
		color:    color,
		diffuse:  diffuse,
		specular: specular,
	}
}

// Intersect returns the distance along ray to the nearest surface point beyond
// IntersectEpsilon, or 0 if the ray misses. ray.Direction must be unit length.
func (s *Sphere) Intersect(ray math3d.Ray) float64 {
	op := s.position.Sub(ray.Origin)
	b := op.Dot(ray.Direction)
	det := b*b - op.Dot(op) + s.radius*s.radius
	if det < 0 {
		return 0
	}
	det = math.Sqrt(det)

	if t := b - det; t > IntersectEpsilon {
		return t
	}
	if t := b + det; t > IntersectEpsilon {
		return t
	}
	return 0
}

// Radius returns the sphere radius.
func (s *Sphere) Radius() float64 { return s.radius }

// Position returns the sphere center.
func (s *Sphere) Position() math3d.Vec3 { return s.position }

// Color returns the albedo in 0-255 per channel.
func (s *Sphere) Color() math3d.Vec3 { return s.color }

// Diffuse returns the diffuse coefficient.
func (s *Sphere) Diffuse() float64 { return s.diffuse }

// Specular returns the specular coefficient.
func (s *Sphere) Specular() float64 { return s.specular }

func (s *Sphere) translate(delta math3d.Vec3) {
	s.position = s.position.Add(delta)
}
