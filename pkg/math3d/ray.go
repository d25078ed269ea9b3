package math3d

// Ray is a half-line with an origin and a direction.
// Intersection code assumes Direction is unit length; NewRay does not check.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray from an origin and a (unit) direction.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
