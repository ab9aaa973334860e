package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a world-space point or direction. It serializes as a plain
// {"x":...,"y":...} pair (spec §6 persisted-state requirement) while all
// arithmetic is delegated to mgl64.Vec2, ToMgl/FromMgl are the "rehydrate
// into the live vector type" step deserialization needs to perform.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToMgl rehydrates v into the live math vector type used for computation.
func (v Vec2) ToMgl() mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

// FromMgl converts a computed math vector back to the serializable form.
func FromMgl(m mgl64.Vec2) Vec2 { return Vec2{X: m.X(), Y: m.Y()} }

func (v Vec2) Add(o Vec2) Vec2 { return FromMgl(v.ToMgl().Add(o.ToMgl())) }
func (v Vec2) Sub(o Vec2) Vec2 { return FromMgl(v.ToMgl().Sub(o.ToMgl())) }
func (v Vec2) Scale(s float64) Vec2 { return FromMgl(v.ToMgl().Mul(s)) }

func (v Vec2) Length() float64 { return v.ToMgl().Len() }

func (v Vec2) LengthSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector in v's direction, or the zero vector
// if v has zero length (mgl64.Normalize would otherwise produce NaNs).
func (v Vec2) Normalize() Vec2 {
	if v.X == 0 && v.Y == 0 {
		return Vec2{}
	}
	return FromMgl(v.ToMgl().Normalize())
}

func (v Vec2) Dot(o Vec2) float64 { return v.ToMgl().Dot(o.ToMgl()) }

func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Length() }

// AngleTo returns the angle (radians, atan2 convention) from v to other.
func (v Vec2) AngleTo(other Vec2) float64 {
	d := other.Sub(v)
	return math.Atan2(d.Y, d.X)
}

// Clamp returns v clamped componentwise to [min, max] on both axes.
func (v Vec2) Clamp(min, max Vec2) Vec2 {
	return Vec2{X: clampf(v.X, min.X, max.X), Y: clampf(v.Y, min.Y, max.Y)}
}

func clampf(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
