package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

type Vec2 struct {
	X float64
	Y float64
}

// Vec3 keeps named fields so it maps directly onto script tables. The math
// is done by mgl64.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func FromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func (v Vec3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return FromMgl(v.Mgl().Add(o.Mgl()))
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return FromMgl(v.Mgl().Sub(o.Mgl()))
}

func (v Vec3) Scale(s float64) Vec3 {
	return FromMgl(v.Mgl().Mul(s))
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.Mgl().Dot(o.Mgl())
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return FromMgl(v.Mgl().Cross(o.Mgl()))
}

func (v Vec3) Length() float64 {
	return v.Mgl().Len()
}

// Normalize returns the unit vector in the direction of v.
// A zero-length vector normalizes to the zero vector; mgl64 would return NaN.
func (v Vec3) Normalize() Vec3 {
	if v.Length() < epsilon {
		return Vec3{}
	}
	return FromMgl(v.Mgl().Normalize())
}

func (v Vec3) IsZero() bool {
	return nearlyZero(v.X) && nearlyZero(v.Y) && nearlyZero(v.Z)
}

func nearlyZero(v float64) bool {
	return math.Abs(v) < epsilon
}
