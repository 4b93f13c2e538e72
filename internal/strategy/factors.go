package strategy

import (
	"fmt"

	"AlphaTrader/internal/model"
)

// Put/call ratio bands used by the options factor.
const (
	pcBullishBand = 0.7
	pcBearishBand = 1.1
)

// scoreTrendStructure scores the moving-average alignment of the row.
func scoreTrendStructure(cur model.IndicatorRow) model.FactorScore {
	var score float64
	var verdict string
	switch {
	case cur.Close > cur.EMAFast && cur.EMAFast > cur.EMASlow:
		score = 1
		verdict = "bullish"
	case cur.Close < cur.EMASlow:
		score = -1
		verdict = "bearish"
	default:
		score = 0
		verdict = "neutral"
	}
	return model.FactorScore{
		Name:       "Trend structure",
		Score:      score,
		Verdict:    verdict,
		Commentary: fmt.Sprintf("close %.2f vs EMA8 %.2f / EMA21 %.2f", cur.Close, cur.EMAFast, cur.EMASlow),
	}
}

// scoreMomentum scores the MACD histogram direction against the prior row.
func scoreMomentum(cur, prev model.IndicatorRow) model.FactorScore {
	var score float64
	var verdict string
	switch {
	case cur.MACDHist > 0 && cur.MACDHist > prev.MACDHist:
		score = 1
		verdict = "accelerating"
	case cur.MACDHist > 0:
		score = 0
		verdict = "fading"
	default:
		score = -1
		verdict = "bearish"
	}
	return model.FactorScore{
		Name:       "MACD momentum",
		Score:      score,
		Verdict:    verdict,
		Commentary: fmt.Sprintf("hist %.3f vs prior %.3f", cur.MACDHist, prev.MACDHist),
	}
}

// scoreRSIZone scores the RSI band. Extremes score at half weight:
// overbought keeps a bullish tilt and oversold a bearish one, both with
// a caution discount.
func scoreRSIZone(cur model.IndicatorRow) model.FactorScore {
	rsi := cur.RSI
	var score float64
	var verdict string
	switch {
	case rsi > 70:
		score = 0.5
		verdict = "overbought caution"
	case rsi > 50:
		score = 1
		verdict = "bullish"
	case rsi >= 30:
		score = -1
		verdict = "bearish"
	default:
		score = -0.5
		verdict = "oversold caution"
	}
	return model.FactorScore{
		Name:       "RSI zone",
		Score:      score,
		Verdict:    verdict,
		Commentary: fmt.Sprintf("RSI=%.0f", rsi),
	}
}

// scoreVolumePrice scores the volume/price relationship. An up close on
// thin volume is weak confirmation and contributes nothing.
func scoreVolumePrice(cur model.IndicatorRow) model.FactorScore {
	up := cur.Close > cur.Open
	heavy := cur.Volume > cur.VolumeSMA*1.2
	thin := cur.Volume < cur.VolumeSMA*0.8

	var score float64
	var verdict string
	switch {
	case up && heavy:
		score = 1
		verdict = "accumulation"
	case up && thin:
		score = 0
		verdict = "weak confirmation"
	case !up && heavy:
		score = -1
		verdict = "distribution"
	default:
		score = 0
		verdict = "quiet"
	}
	ratio := 0.0
	if cur.VolumeSMA > 0 {
		ratio = cur.Volume / cur.VolumeSMA
	}
	return model.FactorScore{
		Name:       "Volume/price",
		Score:      score,
		Verdict:    verdict,
		Commentary: fmt.Sprintf("RVol %.1fx", ratio),
	}
}

// scoreOptionsSentiment scores the put/call ratio. Callers must only
// invoke this when put/call data is actually available.
func scoreOptionsSentiment(pc *model.PutCallSentiment) model.FactorScore {
	var score float64
	var verdict string
	switch {
	case pc.Ratio < pcBullishBand:
		score = 1
		verdict = "call skew"
	case pc.Ratio > pcBearishBand:
		score = -1
		verdict = "put skew"
	default:
		score = 0
		verdict = "balanced"
	}
	return model.FactorScore{
		Name:       "Options sentiment",
		Score:      score,
		Verdict:    verdict,
		Commentary: fmt.Sprintf("P/C %.2f (calls %.0f / puts %.0f)", pc.Ratio, pc.CallVolume, pc.PutVolume),
	}
}
