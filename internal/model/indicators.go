package model

// IndicatorRow is a Bar augmented with derived indicator columns.
// Values for a given row depend only on bars up to and including that
// row; columns inside their warm-up window hold NaN.
type IndicatorRow struct {
	Bar
	EMAFast    float64
	EMASlow    float64
	MACDLine   float64
	MACDSignal float64
	MACDHist   float64
	ATR        float64
	StopLoss   float64 // Close - ATR * multiplier
	VolumeSMA  float64
	RSI        float64
	Signal     Signal
}
