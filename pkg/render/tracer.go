// Package render turns a scene into pixels: primary ray generation,
// nearest-hit search, shadowed Phong shading and the parallel frame loop,
// plus the framebuffer and its terminal presentation.
package render

import (
	"math"

	"github.com/taigrr/raylight/pkg/math3d"
	"github.com/taigrr/raylight/pkg/scene"
)

// FindClosest returns the nearest object hit by ray and the distance to it.
// Objects are tested in scene order and an exact tie keeps the earlier one.
// It returns nil and math.MaxFloat64 when nothing is hit.
func FindClosest(sc *scene.Scene, ray math3d.Ray) (scene.Renderable, float64) {
	closest := math.MaxFloat64
	var hit scene.Renderable
	for _, h := range sc.Handles() {
		obj := sc.Resolve(h)
		if d := obj.Intersect(ray); d > 0 && d < closest {
			hit, closest = obj, d
		}
	}
	return hit, closest
}

// InShadow reports whether any sphere blocks shadowRay before maxDistance.
// Lights never occlude.
func InShadow(spheres []scene.Sphere, shadowRay math3d.Ray, maxDistance float64) bool {
	for i := range spheres {
		if d := spheres[i].Intersect(shadowRay); d > 0 && d < maxDistance {
			return true
		}
	}
	return false
}
