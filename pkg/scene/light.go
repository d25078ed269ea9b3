package scene

import "github.com/taigrr/raylight/pkg/math3d"

const (
	// LightRadius is the size of the marker sphere drawn at every light.
	LightRadius = 0.05

	// LightStep is how far one movement command moves a light.
	LightStep = 0.1
)

// LightColor is the fixed near-white albedo of light markers.
var LightColor = math3d.V3(255, 255, 240)

// Light is a point light. It is also a small sphere, so it is visible and
// takes part in nearest-hit searches like any other object.
type Light struct {
	Sphere
	intensity float64
}

// NewLight creates a light of the given intensity at position.
func NewLight(intensity float64, position math3d.Vec3) Light {
	return Light{
		Sphere:    NewSphere(LightRadius, position, LightColor),
		intensity: intensity,
	}
}

// Intensity returns the scalar brightness of the light.
func (l *Light) Intensity() float64 { return l.intensity }
