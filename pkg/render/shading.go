package render

import (
	"image/color"
	"math"

	"github.com/taigrr/raylight/pkg/math3d"
	"github.com/taigrr/raylight/pkg/scene"
)

// Shading constants.
const (
	Shininess     = 20.0 // Phong exponent
	DiffuseScale  = 1.0
	SpecularScale = 0.6

	// ShadowBias lifts the contact point off the surface along the normal
	// before shadow rays are cast at it.
	ShadowBias = 1e-4
)

var white = math3d.Splat(255)

// Accumulate sums the diffuse and specular contribution of every unshadowed
// light at contact. ray is the primary ray, normal the surface normal there.
//
// The diffuse term uses a normal recomputed from hit.Position() rather than
// the normal argument. The two agree for spheres; a non-spherical
// Renderable would need this revisited.
func Accumulate(sc *scene.Scene, ray math3d.Ray, hit scene.Renderable, contact, normal math3d.Vec3) (diffuse, specular float64) {
	spheres := sc.Spheres()
	lights := sc.Lights()
	for i := range lights {
		light := &lights[i]
		lightDir := contact.Sub(light.Position())
		dir := lightDir.Normalize()
		dist := lightDir.Len()

		if InShadow(spheres, math3d.NewRay(light.Position(), dir), dist) {
			continue
		}

		diffuse += math.Abs(dir.Dot(contact.Sub(hit.Position()).Normalize()) * light.Intensity())
		specular += math.Pow(ray.Direction.Dot(dir.Reflect(normal)), Shininess)
	}
	return diffuse, specular
}

// ComposeColor mixes the surface albedo with the accumulated lighting and
// returns an RGB triple in [0, 255].
func ComposeColor(hit scene.Renderable, diffuse, specular float64) math3d.Vec3 {
	diffuse = math3d.Clamp(diffuse, 0, 1)
	specular = math3d.Clamp(specular, 0, 1)

	c := hit.Color().Scale(hit.Diffuse() * diffuse * DiffuseScale).
		Add(white.Scale(specular * hit.Specular() * SpecularScale))
	return c.ClampScalar(0, 255)
}

// ToRGBA truncates an RGB triple in [0, 255] to an opaque color.
func ToRGBA(c math3d.Vec3) color.RGBA {
	return color.RGBA{uint8(c.X), uint8(c.Y), uint8(c.Z), 255}
}
