package main

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/raylight/pkg/math3d"
	"github.com/taigrr/raylight/pkg/scene"
)

// settleEpsilon is the distance below which a spring snaps to its target.
const settleEpsilon = 1e-4

// LightMotion turns key presses into translations of the selected light.
// Presses accumulate a target offset; Step moves the light toward it,
// either at once or eased by a critically damped spring.
type LightMotion struct {
	spring harmonica.Spring
	smooth bool
	light  int

	offset   math3d.Vec3 // translation applied so far
	velocity math3d.Vec3 // spring velocity per axis
	target   math3d.Vec3 // translation requested so far
}

// NewLightMotion creates a motion controller stepping at fps frames per
// second. Without smooth every Step applies the full pending offset.
func NewLightMotion(fps int, smooth bool) *LightMotion {
	return &LightMotion{
		// Frequency 6.0 = brisk, damping 1.0 = no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		smooth: smooth,
	}
}

// Light returns the index of the light being moved.
func (m *LightMotion) Light() int { return m.light }

// Nudge requests a further translation of the selected light.
func (m *LightMotion) Nudge(delta math3d.Vec3) {
	m.target = m.target.Add(delta)
}

// Settled reports whether the light has reached every requested position.
func (m *LightMotion) Settled() bool {
	return m.offset == m.target
}

// Select finishes any pending motion of the current light and switches to
// light i.
func (m *LightMotion) Select(sc *scene.Scene, i int) error {
	if _, err := sc.Light(i); err != nil {
		return err
	}
	if rest := m.target.Sub(m.offset); rest != (math3d.Vec3{}) {
		if err := sc.TranslateLight(m.light, rest); err != nil {
			return err
		}
	}
	*m = LightMotion{spring: m.spring, smooth: m.smooth, light: i}
	return nil
}

// Step advances one frame and translates the light by the distance covered.
// It reports whether the light moved.
func (m *LightMotion) Step(sc *scene.Scene) (bool, error) {
	if m.Settled() {
		return false, nil
	}

	next := m.target
	if m.smooth {
		next.X, m.velocity.X = m.spring.Update(m.offset.X, m.velocity.X, m.target.X)
		next.Y, m.velocity.Y = m.spring.Update(m.offset.Y, m.velocity.Y, m.target.Y)
		next.Z, m.velocity.Z = m.spring.Update(m.offset.Z, m.velocity.Z, m.target.Z)
		if next.Sub(m.target).Len() < settleEpsilon && m.velocity.Len() < settleEpsilon {
			next = m.target
			m.velocity = math3d.Vec3{}
		}
	}

	if err := sc.TranslateLight(m.light, next.Sub(m.offset)); err != nil {
		return false, err
	}
	m.offset = next
	return true, nil
}
