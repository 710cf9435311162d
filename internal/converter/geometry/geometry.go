package geometry

import (
	"math"

	"fml2scene/internal/converter/models"
)

// ============================================================
// Units
// ============================================================

const cmPerMeter = 100.0

func CmToMeters(v float64) float64 {
	return v / cmPerMeter
}

func MetersToCm(v float64) float64 {
	return v * cmPerMeter
}

func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

// Snap rounds v to the nearest multiple of step. A non-positive step
// leaves v untouched.
func Snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// ============================================================
// Points
// ============================================================

// Vec2 and Vec3 are points in meters.
type Vec2 struct {
	X float64
	Y float64
}

type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func ToMeters2(p models.Point) Vec2 {
	return Vec2{X: CmToMeters(p.X), Y: CmToMeters(p.Y)}
}

func ToMeters3(p models.Point3) Vec3 {
	return Vec3{X: CmToMeters(p.X), Y: CmToMeters(p.Y), Z: CmToMeters(p.Z)}
}

// Snapped snaps both coordinates to step (meters).
func (v Vec2) Snapped(step float64) Vec2 {
	return Vec2{X: Snap(v.X, step), Y: Snap(v.Y, step)}
}

func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// ============================================================
// Interpolation
// ============================================================

// Lerp returns a + (b - a) * t. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interpolate places a point at t along the segment a-b, per axis.
func Interpolate(a, b Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// HalfExtents halves each dimension; inputs are already meters.
func HalfExtents(width, height, depth float64) Vec3 {
	return Vec3{X: width / 2, Y: height / 2, Z: depth / 2}
}
