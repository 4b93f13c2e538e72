package model

// Signal is the categorical trading signal for one instrument.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalHold Signal = "HOLD"
	SignalSell Signal = "SELL"
)

// SentimentLabel is the 5-level bull/bear classification of a total score.
type SentimentLabel string

const (
	SentimentStrongBull SentimentLabel = "STRONG_BULL"
	SentimentLeanBull   SentimentLabel = "LEAN_BULL"
	SentimentBalanced   SentimentLabel = "BALANCED"
	SentimentLeanBear   SentimentLabel = "LEAN_BEAR"
	SentimentStrongBear SentimentLabel = "STRONG_BEAR"
)

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string
	Score      float64
	Verdict    string
	Commentary string
}

// SentimentReport is the output of the weighted sentiment scorer.
type SentimentReport struct {
	TotalScore float64
	Label      SentimentLabel
	Factors    []FactorScore
}
