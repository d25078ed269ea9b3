package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/raylight/pkg/math3d"
)

func TestSceneHandleOrder(t *testing.T) {
	s := New()
	s.AddLight(NewLight(1, math3d.V3(0, 5, 0)))
	s.AddSphere(NewSphere(1, math3d.V3(0, 0, -5), math3d.V3(255, 0, 0)))
	s.AddSphere(NewSphere(2, math3d.V3(0, 0, -9), math3d.V3(0, 255, 0)))

	want := []Handle{
		{KindSphere, 0},
		{KindSphere, 1},
		{KindLight, 0},
	}
	got := s.Handles()
	if len(got) != len(want) {
		t.Fatalf("got %d handles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("handle %d = %v, want %v", i, got[i], want[i])
		}
	}

	if s.Len() != len(s.Spheres())+len(s.Lights()) {
		t.Errorf("Len = %d, want %d", s.Len(), len(s.Spheres())+len(s.Lights()))
	}
}

func TestSceneResolveBorrowsStorage(t *testing.T) {
	s := New()
	h := s.AddLight(NewLight(1, math3d.V3(0, 0, 0)))

	// Growing the stores must not invalidate handles.
	for i := range 32 {
		s.AddSphere(NewSphere(1, math3d.V3(float64(i), 0, -20), math3d.V3(1, 1, 1)))
	}

	if err := s.TranslateLight(0, math3d.V3(1, 2, 3)); err != nil {
		t.Fatalf("TranslateLight: %v", err)
	}
	if pos := s.Resolve(h).Position(); pos != math3d.V3(1, 2, 3) {
		t.Errorf("resolved light position = %v, want (1, 2, 3)", pos)
	}
	if _, ok := s.Resolve(h).(*Light); !ok {
		t.Errorf("Resolve(%v) = %T, want *Light", h, s.Resolve(h))
	}
}

func TestTranslateLightIsAdditive(t *testing.T) {
	twice := Default()
	once := Default()

	step := math3d.V3(0, 0, -LightStep)
	for range 2 {
		if err := twice.TranslateLight(0, step); err != nil {
			t.Fatal(err)
		}
	}
	if err := once.TranslateLight(0, step.Scale(2)); err != nil {
		t.Fatal(err)
	}

	a := twice.Lights()[0].Position()
	b := once.Lights()[0].Position()
	if !a.ApproxEqual(b, 1e-12) {
		t.Errorf("two steps = %v, one double step = %v", a, b)
	}
	if math.Abs(a.Z-(-5.2)) > 1e-12 {
		t.Errorf("light z = %v, want -5.2", a.Z)
	}
}

func TestTranslateLightLeavesOtherFields(t *testing.T) {
	s := Default()
	before := s.Lights()[0]
	spheres := append([]Sphere(nil), s.Spheres()...)

	if err := s.TranslateLight(0, math3d.V3(0.1, 0, 0)); err != nil {
		t.Fatal(err)
	}

	after := s.Lights()[0]
	if after.Radius() != before.Radius() || after.Color() != before.Color() || after.Intensity() != before.Intensity() {
		t.Error("TranslateLight changed more than position")
	}
	for i := range spheres {
		if s.Spheres()[i] != spheres[i] {
			t.Errorf("sphere %d changed", i)
		}
	}
}

func TestTranslateLightOutOfRange(t *testing.T) {
	s := Default()
	for _, idx := range []int{-1, 1, 99} {
		err := s.TranslateLight(idx, math3d.V3(1, 0, 0))
		if !errors.Is(err, ErrNoSuchLight) {
			t.Errorf("TranslateLight(%d) error = %v, want ErrNoSuchLight", idx, err)
		}
	}
}

func TestDefaultScene(t *testing.T) {
	s := Default()
	if len(s.Spheres()) != 7 {
		t.Errorf("spheres = %d, want 7", len(s.Spheres()))
	}
	if len(s.Lights()) != 1 {
		t.Errorf("lights = %d, want 1", len(s.Lights()))
	}
	if s.Len() != 8 {
		t.Errorf("renderables = %d, want 8", s.Len())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default scene invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Scene
		valid bool
	}{
		{"empty", New, false},
		{"light only", func() *Scene {
			s := New()
			s.AddLight(NewLight(1, math3d.V3(0, 0, 0)))
			return s
		}, true},
		{"zero radius", func() *Scene {
			s := New()
			s.AddSphere(NewSphere(0, math3d.V3(0, 0, 0), math3d.V3(1, 1, 1)))
			return s
		}, false},
		{"specular above one", func() *Scene {
			s := New()
			s.AddSphere(NewSphereWithMaterial(1, math3d.V3(0, 0, 0), math3d.V3(1, 1, 1), 1, 1.5))
			return s
		}, false},
		{"negative intensity", func() *Scene {
			s := New()
			s.AddLight(NewLight(-1, math3d.V3(0, 0, 0)))
			return s
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build().Validate()
			if tc.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidScene) {
				t.Errorf("error = %v, want ErrInvalidScene", err)
			}
		})
	}
}

func TestHandleString(t *testing.T) {
	if got := (Handle{KindLight, 2}).String(); got != "light#2" {
		t.Errorf("String = %q, want light#2", got)
	}
	if got := Kind(9).String(); got != "Kind(9)" {
		t.Errorf("String = %q, want Kind(9)", got)
	}
}
