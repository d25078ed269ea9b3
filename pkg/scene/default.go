package scene

import "github.com/taigrr/raylight/pkg/math3d"

// Default builds the built-in scene: three small colored balls standing in a
// box whose floor and walls are huge spheres, lit by a single light.
func Default() *Scene {
	s := New()

	s.AddSphere(NewSphere(1.0, math3d.V3(0, 0, -10), math3d.V3(255, 0, 0)))
	s.AddSphere(NewSphere(0.5, math3d.V3(-1.5, -0.5, -8), math3d.V3(0, 255, 0)))
	s.AddSphere(NewSphere(0.5, math3d.V3(1, -0.5, -6), math3d.V3(0, 0, 255)))

	// Floor, left wall, back wall, right wall.
	wall := math3d.V3(200, 200, 200)
	s.AddSphere(NewSphereWithMaterial(500, math3d.V3(0, -501, -10), wall, 1.0, 0.3))
	s.AddSphere(NewSphereWithMaterial(500, math3d.V3(-503, 0, -10), wall, 1.0, 0.3))
	s.AddSphere(NewSphereWithMaterial(500, math3d.V3(0, 0, -515), wall, 1.0, 0.3))
	s.AddSphere(NewSphereWithMaterial(500, math3d.V3(503, 0, -10), wall, 1.0, 0.3))

	s.AddLight(NewLight(1.0, math3d.V3(-1, 1, -5)))

	return s
}
