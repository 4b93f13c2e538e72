package indicator

import (
	"errors"
	"fmt"
	"math"

	"AlphaTrader/internal/calculator"
	"AlphaTrader/internal/model"
)

// ErrInsufficientData is returned when a series is too short for the
// indicator windows to produce meaningful values.
var ErrInsufficientData = errors.New("insufficient history for indicator computation")

// MinBars is the minimum series length accepted by Compute.
const MinBars = 50

// Indicator windows, matching the trading rule set.
const (
	emaFastPeriod   = 8
	emaSlowPeriod   = 21
	macdFastPeriod  = 12
	macdSlowPeriod  = 26
	macdSignalWin   = 9
	volumeSMAPeriod = 10
	atrPeriod       = 14
	rsiPeriod       = 14
)

// Compute derives the full indicator column set from a raw bar series.
// Bars with no executable price are forward-filled from the prior close
// before any column is derived; leading bars that cannot be filled are
// dropped. The result is a pure function of the input: row i depends
// only on bars up to i.
func Compute(bars []model.Bar, atrMult float64) ([]model.IndicatorRow, error) {
	clean := forwardFill(bars)
	if len(clean) < MinBars {
		return nil, fmt.Errorf("%w: have %d bars, need %d", ErrInsufficientData, len(clean), MinBars)
	}

	closes := make([]float64, len(clean))
	volumes := make([]float64, len(clean))
	for i, b := range clean {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	emaFast, err := calculator.EMASeries(closes, emaFastPeriod)
	if err != nil {
		return nil, err
	}
	emaSlow, err := calculator.EMASeries(closes, emaSlowPeriod)
	if err != nil {
		return nil, err
	}
	macdLine, macdSignal, macdHist, err := calculator.MACDSeries(closes, macdFastPeriod, macdSlowPeriod, macdSignalWin)
	if err != nil {
		return nil, err
	}
	volSMA, err := calculator.SMASeries(volumes, volumeSMAPeriod)
	if err != nil {
		return nil, err
	}
	atr, err := calculator.ATRSeries(clean, atrPeriod)
	if err != nil {
		return nil, err
	}
	rsi, err := calculator.RSISeries(closes, rsiPeriod)
	if err != nil {
		return nil, err
	}

	rows := make([]model.IndicatorRow, len(clean))
	for i, b := range clean {
		rows[i] = model.IndicatorRow{
			Bar:        b,
			EMAFast:    emaFast[i],
			EMASlow:    emaSlow[i],
			MACDLine:   macdLine[i],
			MACDSignal: macdSignal[i],
			MACDHist:   macdHist[i],
			ATR:        atr[i],
			StopLoss:   b.Close - atr[i]*atrMult,
			VolumeSMA:  volSMA[i],
			RSI:        rsi[i],
			Signal:     model.SignalHold,
		}
	}
	return rows, nil
}

// forwardFill substitutes the prior close for any bar with no executable
// price. Leading bars with no price have nothing to fill from and are
// dropped.
func forwardFill(bars []model.Bar) []model.Bar {
	out := make([]model.Bar, 0, len(bars))
	lastClose := math.NaN()
	for _, b := range bars {
		if !priced(b) {
			if math.IsNaN(lastClose) {
				continue
			}
			b.Open = lastClose
			b.High = lastClose
			b.Low = lastClose
			b.Close = lastClose
		}
		lastClose = b.Close
		out = append(out, b)
	}
	return out
}

func priced(b model.Bar) bool {
	return b.Close != 0 && !math.IsNaN(b.Close)
}
