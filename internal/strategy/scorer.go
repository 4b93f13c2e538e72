package strategy

import "AlphaTrader/internal/model"

// Score total thresholds for the 5-level sentiment label.
const (
	strongBand = 2.5
	leanBand   = 1.0
)

// Score combines the independent sentiment factors into a signed total
// and a 5-level label. The options factor is omitted entirely when no
// put/call data is available rather than forced to zero. Pure function.
func Score(cur, prev model.IndicatorRow, pc *model.PutCallSentiment) *model.SentimentReport {
	factors := []model.FactorScore{
		scoreTrendStructure(cur),
		scoreMomentum(cur, prev),
		scoreRSIZone(cur),
		scoreVolumePrice(cur),
	}
	if pc != nil {
		factors = append(factors, scoreOptionsSentiment(pc))
	}

	total := 0.0
	for _, f := range factors {
		total += f.Score
	}

	return &model.SentimentReport{
		TotalScore: total,
		Label:      mapLabel(total),
		Factors:    factors,
	}
}

func mapLabel(total float64) model.SentimentLabel {
	switch {
	case total >= strongBand:
		return model.SentimentStrongBull
	case total >= leanBand:
		return model.SentimentLeanBull
	case total <= -strongBand:
		return model.SentimentStrongBear
	case total <= -leanBand:
		return model.SentimentLeanBear
	default:
		return model.SentimentBalanced
	}
}
