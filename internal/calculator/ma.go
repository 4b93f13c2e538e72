package calculator

import (
	"errors"
	"math"
)

// SMASeries computes the simple moving average of values over the given
// period. Positions inside the warm-up window hold NaN.
func SMASeries(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := nanSlice(len(values))
	if len(values) < period {
		return out, nil
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out, nil
}

// EMASeries computes the exponential moving average of values over the
// given period, seeded with the SMA of the first full window. Leading
// NaN values are skipped so the series can be chained (e.g. the signal
// line of MACD). Positions before the seed hold NaN.
func EMASeries(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := nanSlice(len(values))

	start := 0
	for start < len(values) && math.IsNaN(values[start]) {
		start++
	}
	if len(values)-start < period {
		return out, nil
	}

	sum := 0.0
	for i := start; i < start+period; i++ {
		sum += values[i]
	}
	seed := start + period - 1
	out[seed] = sum / float64(period)

	k := 2.0 / float64(period+1)
	for i := seed + 1; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*k + out[i-1]
	}
	return out, nil
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
