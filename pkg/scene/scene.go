package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/raylight/pkg/math3d"
)

var (
	// ErrNoSuchLight is returned when a light index is out of range.
	ErrNoSuchLight = errors.New("no such light")

	// ErrInvalidScene is returned by Validate for unrenderable scenes.
	ErrInvalidScene = errors.New("invalid scene")
)

// Scene owns every sphere and light. The renderable list is a list of
// handles into those stores: spheres first, then lights, each in the order
// they were added.
type Scene struct {
	spheres []Sphere
	lights  []Light
	handles []Handle
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddSphere appends a sphere and returns its handle.
func (s *Scene) AddSphere(sp Sphere) Handle {
	s.spheres = append(s.spheres, sp)
	s.reindex()
	return Handle{Kind: KindSphere, Index: len(s.spheres) - 1}
}

// AddLight appends a light and returns its handle.
func (s *Scene) AddLight(l Light) Handle {
	s.lights = append(s.lights, l)
	s.reindex()
	return Handle{Kind: KindLight, Index: len(s.lights) - 1}
}

func (s *Scene) reindex() {
	s.handles = s.handles[:0]
	for i := range s.spheres {
		s.handles = append(s.handles, Handle{Kind: KindSphere, Index: i})
	}
	for i := range s.lights {
		s.handles = append(s.handles, Handle{Kind: KindLight, Index: i})
	}
}

// Spheres returns the sphere store. Callers must not modify it.
func (s *Scene) Spheres() []Sphere { return s.spheres }

// Lights returns the light store. Callers must not modify it.
func (s *Scene) Lights() []Light { return s.lights }

// Handles returns every renderable in search order.
func (s *Scene) Handles() []Handle { return s.handles }

// Len returns the number of renderables.
func (s *Scene) Len() int { return len(s.handles) }

// Resolve returns the object a handle names. It panics if h is out of range.
func (s *Scene) Resolve(h Handle) Renderable {
	if h.Kind == KindLight {
		return &s.lights[h.Index]
	}
	return &s.spheres[h.Index]
}

// Light returns the light at index i.
func (s *Scene) Light(i int) (*Light, error) {
	if i < 0 || i >= len(s.lights) {
		return nil, fmt.Errorf("light %d of %d: %w", i, len(s.lights), ErrNoSuchLight)
	}
	return &s.lights[i], nil
}

// TranslateLight moves light i by delta. Only the light position changes.
// Must not be called while a frame is rendering.
func (s *Scene) TranslateLight(i int, delta math3d.Vec3) error {
	l, err := s.Light(i)
	if err != nil {
		return err
	}
	l.translate(delta)
	return nil
}

// Validate reports whether the scene can be rendered sensibly.
func (s *Scene) Validate() error {
	if len(s.handles) == 0 {
		return fmt.Errorf("%w: no spheres or lights", ErrInvalidScene)
	}
	for i := range s.spheres {
		if err := validateSphere(&s.spheres[i]); err != nil {
			return fmt.Errorf("%w: sphere %d: %v", ErrInvalidScene, i, err)
		}
	}
	for i := range s.lights {
		if s.lights[i].intensity < 0 {
			return fmt.Errorf("%w: light %d: negative intensity %g", ErrInvalidScene, i, s.lights[i].intensity)
		}
	}
	return nil
}

func validateSphere(sp *Sphere) error {
	switch {
	case sp.radius <= 0:
		return fmt.Errorf("radius %g must be positive", sp.radius)
	case sp.diffuse < 0 || sp.diffuse > 1:
		return fmt.Errorf("diffuse %g outside [0,1]", sp.diffuse)
	case sp.specular < 0 || sp.specular > 1:
		return fmt.Errorf("specular %g outside [0,1]", sp.specular)
	}
	return nil
}
