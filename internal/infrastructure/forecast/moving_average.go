package forecast

// MovingAverage forecasts count steps by repeating the arithmetic mean of
// the last window points' y values. A flat line, not a rolling average.
// A series shorter than the window yields an empty forecast.
func MovingAverage(points []Point, window, count int) []Point {
	if window <= 0 || count <= 0 || len(points) < window {
		return []Point{}
	}

	sum := 0.0
	for _, p := range points[len(points)-window:] {
		sum += p.Y
	}
	avg := sum / float64(window)

	fc := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		fc = append(fc, Point{X: float64(len(points) + i), Y: avg})
	}
	return fc
}
