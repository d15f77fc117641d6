package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearSeries(n int, m, b float64) []Point {
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		points = append(points, Point{X: x, Y: m*x + b})
	}
	return points
}

func TestLinearRegression_PerfectLine(t *testing.T) {
	points := linearSeries(10, 2, 1) // y = 2x + 1

	res := LinearRegression(points, 3)
	require.Len(t, res.Forecast, 3)

	assert.InDelta(t, 0, res.StdError, 1e-9)
	for i, p := range res.Forecast {
		assert.Equal(t, float64(10+i), p.X)
		assert.InDelta(t, 2*p.X+1, p.Y, 1e-9)
	}
}

func TestLinearRegression_NoisySeriesStdError(t *testing.T) {
	points := []Point{
		{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 2}, {X: 3, Y: 5}, {X: 4, Y: 4},
	}

	res := LinearRegression(points, 2)
	require.Len(t, res.Forecast, 2)
	assert.Greater(t, res.StdError, 0.0)
	// Forecast continues past the last input index.
	assert.Equal(t, 5.0, res.Forecast[0].X)
	assert.Equal(t, 6.0, res.Forecast[1].X)
}

func TestLinearRegression_SinglePointHasNoSlope(t *testing.T) {
	res := LinearRegression([]Point{{X: 0, Y: 5}}, 3)
	assert.Empty(t, res.Forecast)
	assert.Zero(t, res.StdError)
}

func TestLinearRegression_ZeroVarianceX(t *testing.T) {
	points := []Point{{X: 2, Y: 1}, {X: 2, Y: 3}, {X: 2, Y: 5}}

	res := LinearRegression(points, 3)
	assert.Empty(t, res.Forecast)
}

func TestLinearRegression_EmptyAndZeroCount(t *testing.T) {
	assert.Empty(t, LinearRegression(nil, 5).Forecast)
	assert.Empty(t, LinearRegression(linearSeries(5, 1, 0), 0).Forecast)
}

func TestMovingAverage_FlatForecast(t *testing.T) {
	points := []Point{
		{X: 0, Y: 10}, {X: 1, Y: 20}, {X: 2, Y: 30}, {X: 3, Y: 40}, {X: 4, Y: 50},
	}

	fc := MovingAverage(points, 3, 5)
	require.Len(t, fc, 5)

	// Mean of the last 3 values.
	for i, p := range fc {
		assert.Equal(t, float64(5+i), p.X)
		assert.InDelta(t, 40.0, p.Y, 1e-9)
	}
}

func TestMovingAverage_WindowEqualsLength(t *testing.T) {
	points := []Point{{X: 0, Y: 2}, {X: 1, Y: 4}}

	fc := MovingAverage(points, 2, 1)
	require.Len(t, fc, 1)
	assert.InDelta(t, 3.0, fc[0].Y, 1e-9)
}

func TestMovingAverage_ShortSeries(t *testing.T) {
	points := []Point{{X: 0, Y: 1}, {X: 1, Y: 2}}
	assert.Empty(t, MovingAverage(points, 3, 5))
	assert.Empty(t, MovingAverage(nil, 1, 5))
	assert.Empty(t, MovingAverage(points, 0, 5))
	assert.Empty(t, MovingAverage(points, 2, 0))
}
