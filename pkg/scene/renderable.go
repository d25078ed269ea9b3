package scene

import (
	"fmt"

	"github.com/taigrr/raylight/pkg/math3d"
)

// Renderable is anything the tracer can hit and shade.
// *Sphere and *Light are the only implementations.
type Renderable interface {
	Intersect(ray math3d.Ray) float64
	Position() math3d.Vec3
	Color() math3d.Vec3
	Diffuse() float64
	Specular() float64
}

var (
	_ Renderable = (*Sphere)(nil)
	_ Renderable = (*Light)(nil)
)

// Kind tells which of the scene's stores a Handle points into.
type Kind uint8

const (
	KindSphere Kind = iota
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindLight:
		return "light"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Handle names one object in a Scene by store and index. Handles stay valid
// when the stores grow, unlike pointers into them.
type Handle struct {
	Kind  Kind
	Index int
}

func (h Handle) String() string {
	return fmt.Sprintf("%s#%d", h.Kind, h.Index)
}
