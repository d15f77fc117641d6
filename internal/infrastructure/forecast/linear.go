package forecast

import "math"

// Point is one (index, value) sample of the series being extrapolated.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LinearRegressionResult holds the forecast points and the goodness of fit.
type LinearRegressionResult struct {
	Forecast []Point `json:"forecast"`
	StdError float64 `json:"stdError"`
}

// LinearRegression fits an ordinary least squares line to the input points
// and extends it count steps past the end of the series, at x = n .. n+count-1.
// StdError is the population RMS of the residuals (divide by n, not n-1).
//
// Empty input yields an empty forecast. So does a series with no variance in
// x, where the slope denominator collapses to zero.
func LinearRegression(points []Point, count int) LinearRegressionResult {
	n := len(points)
	if n == 0 || count <= 0 {
		return LinearRegressionResult{Forecast: []Point{}}
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumXX += p.X * p.X
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return LinearRegressionResult{Forecast: []Point{}}
	}
	m := (float64(n)*sumXY - sumX*sumY) / denom
	b := (sumY - m*sumX) / float64(n)

	var residuals float64
	for _, p := range points {
		fitted := m*p.X + b
		residuals += (fitted - p.Y) * (fitted - p.Y)
	}
	stdError := math.Sqrt(residuals / float64(n))

	fc := make([]Point, 0, count)
	for i := 1; i <= count; i++ {
		x := float64(n-1) + float64(i)
		fc = append(fc, Point{X: x, Y: m*x + b})
	}
	return LinearRegressionResult{Forecast: fc, StdError: stdError}
}
