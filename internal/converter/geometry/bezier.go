package geometry

const arcSamples = 64

// QuadraticBezierPoint evaluates the curve a-c-b at parameter t.
func QuadraticBezierPoint(a, c, b Vec2, t float64) Vec2 {
	u := 1 - t
	return Vec2{
		X: u*u*a.X + 2*u*t*c.X + t*t*b.X,
		Y: u*u*a.Y + 2*u*t*c.Y + t*t*b.Y,
	}
}

// BezierPolyline samples the curve at n+1 evenly spaced parameters.
func BezierPolyline(a, c, b Vec2, n int) []Vec2 {
	if n < 1 {
		n = 1
	}
	points := make([]Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		points = append(points, QuadraticBezierPoint(a, c, b, float64(i)/float64(n)))
	}
	return points
}

// BezierArcLength approximates the curve length with a sampled polyline.
func BezierArcLength(a, c, b Vec2) float64 {
	points := BezierPolyline(a, c, b, arcSamples)
	var length float64
	for i := 1; i < len(points); i++ {
		length += points[i-1].Dist(points[i])
	}
	return length
}
