package model

// Source of the put/call data attached to a report.
const (
	SourceLive     = "live"
	SourceSnapshot = "snapshot"
)

// TickerReport is the per-ticker payload handed to the presentation layer.
type TickerReport struct {
	Ticker    string
	Rows      []IndicatorRow
	Signal    Signal
	StopLoss  float64
	Sentiment *SentimentReport
	PutCall   *PutCallSentiment // nil when neither live nor snapshot data exists
	Source    string            // SourceLive, SourceSnapshot, or "" when PutCall is nil
}

// Latest returns the most recent indicator row.
func (r *TickerReport) Latest() IndicatorRow {
	return r.Rows[len(r.Rows)-1]
}

// Previous returns the second most recent indicator row.
func (r *TickerReport) Previous() IndicatorRow {
	return r.Rows[len(r.Rows)-2]
}

// Risk is the per-share distance between the latest close and its stop-loss.
func (r *TickerReport) Risk() float64 {
	last := r.Latest()
	return last.Close - last.StopLoss
}

// RelativeVolume is the latest volume as a multiple of its moving average.
func (r *TickerReport) RelativeVolume() float64 {
	last := r.Latest()
	if last.VolumeSMA == 0 {
		return 0
	}
	return last.Volume / last.VolumeSMA
}

// ChangePct is the latest close's percent change against the prior close.
func (r *TickerReport) ChangePct() float64 {
	prev := r.Previous()
	if prev.Close == 0 {
		return 0
	}
	return (r.Latest().Close - prev.Close) / prev.Close * 100
}
