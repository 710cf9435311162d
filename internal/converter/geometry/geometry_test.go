package geometry

import (
	"math"
	"testing"

	"fml2scene/internal/converter/models"

	"github.com/stretchr/testify/assert"
)

func TestUnitRoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 0.01, 123.456, -987.654321, 1e6, 2.5}
	for _, v := range values {
		assert.InDelta(t, v, CmToMeters(MetersToCm(v)), 1e-12, "value %v", v)
	}
}

func TestCmToMeters(t *testing.T) {
	assert.Equal(t, 5.0, CmToMeters(500))
	assert.Equal(t, 0.1, CmToMeters(10))
	assert.Equal(t, 250.0, MetersToCm(2.5))
}

func TestDegreesToRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, DegreesToRadians(180), 1e-12)
	assert.InDelta(t, math.Pi/2, DegreesToRadians(90), 1e-12)
	assert.Equal(t, 0.0, DegreesToRadians(0))
}

func TestInterpolateEndpoints(t *testing.T) {
	a := ToMeters2(models.Point{X: 100, Y: -50})
	b := ToMeters2(models.Point{X: 600, Y: 250})

	assert.Equal(t, a, Interpolate(a, b, 0))
	assert.Equal(t, b, Interpolate(a, b, 1))

	mid := Interpolate(a, b, 0.5)
	assert.InDelta(t, 3.5, mid.X, 1e-12)
	assert.InDelta(t, 1.0, mid.Y, 1e-12)
}

func TestInterpolateDoesNotClamp(t *testing.T) {
	got := Interpolate(Vec2{}, Vec2{X: 1}, 1.5)
	assert.InDelta(t, 1.5, got.X, 1e-12)
}

func TestHalfExtents(t *testing.T) {
	assert.Equal(t, Vec3{X: 0.5, Y: 0.25, Z: 1}, HalfExtents(1, 0.5, 2))
}

func TestSnap(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		step float64
		want float64
	}{
		{"disabled", 1.234, 0, 1.234},
		{"negative step", 1.234, -1, 1.234},
		{"round down", 1.234, 0.05, 1.25},
		{"round up", 1.26, 0.1, 1.3},
		{"negative value", -0.74, 0.5, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Snap(tt.v, tt.step), 1e-9)
		})
	}
}

func TestQuadraticBezier(t *testing.T) {
	a, c, b := Vec2{}, Vec2{X: 1, Y: 1}, Vec2{X: 2}

	assert.Equal(t, a, QuadraticBezierPoint(a, c, b, 0))
	assert.Equal(t, b, QuadraticBezierPoint(a, c, b, 1))

	mid := QuadraticBezierPoint(a, c, b, 0.5)
	assert.InDelta(t, 1.0, mid.X, 1e-12)
	assert.InDelta(t, 0.5, mid.Y, 1e-12)
}

func TestBezierArcLength(t *testing.T) {
	// Collinear control point: the curve is the straight segment.
	straight := BezierArcLength(Vec2{}, Vec2{X: 1}, Vec2{X: 2})
	assert.InDelta(t, 2.0, straight, 1e-9)

	curved := BezierArcLength(Vec2{}, Vec2{X: 1, Y: 1}, Vec2{X: 2})
	assert.Greater(t, curved, 2.0)
	assert.Less(t, curved, 2*math.Sqrt2)

	assert.Len(t, BezierPolyline(Vec2{}, Vec2{}, Vec2{}, 0), 2)
}
