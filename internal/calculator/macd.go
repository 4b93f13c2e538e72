package calculator

import (
	"errors"
	"math"
)

// MACDSeries computes the MACD line, signal line, and histogram over
// closes using the given fast/slow/signal periods.
func MACDSeries(closes []float64, fast, slow, signal int) (line, sig, hist []float64, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, nil, nil, errors.New("periods must be positive")
	}
	if fast >= slow {
		return nil, nil, nil, errors.New("fast period must be shorter than slow period")
	}

	emaFast, err := EMASeries(closes, fast)
	if err != nil {
		return nil, nil, nil, err
	}
	emaSlow, err := EMASeries(closes, slow)
	if err != nil {
		return nil, nil, nil, err
	}

	line = nanSlice(len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i] // NaN until both EMAs are seeded
	}

	sig, err = EMASeries(line, signal)
	if err != nil {
		return nil, nil, nil, err
	}

	hist = nanSlice(len(closes))
	for i := range closes {
		if !math.IsNaN(line[i]) && !math.IsNaN(sig[i]) {
			hist[i] = line[i] - sig[i]
		}
	}
	return line, sig, hist, nil
}
