package calculator

import (
	"errors"
	"math"

	"AlphaTrader/internal/model"
)

// ATRSeries computes the Wilder-smoothed average true range of bars
// over the given period. The first value appears at index period-1,
// seeded with the simple average of the initial true ranges.
func ATRSeries(bars []model.Bar, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := nanSlice(len(bars))
	if len(bars) < period {
		return out, nil
	}

	tr := make([]float64, len(bars))
	for i, b := range bars {
		if i == 0 {
			tr[i] = b.High - b.Low
			continue
		}
		prevClose := bars[i-1].Close
		tr[i] = math.Max(b.High-b.Low,
			math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	out[period-1] = sum / float64(period)

	for i := period; i < len(bars); i++ {
		out[i] = (out[i-1]*float64(period-1) + tr[i]) / float64(period)
	}
	return out, nil
}
