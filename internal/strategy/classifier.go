package strategy

import "AlphaTrader/internal/model"

// Volume must exceed its moving average by this factor to confirm a buy.
const volumeBreakout = 1.2

// Classify assigns a Signal to every row in place. The first row has no
// predecessor and can only be classified by the sell rule.
func Classify(rows []model.IndicatorRow) {
	for i := range rows {
		prev := rows[i]
		if i > 0 {
			prev = rows[i-1]
		}
		rows[i].Signal = ClassifyRow(rows[i], prev)
	}
}

// ClassifyRow evaluates the rule set on the current row against the
// prior row. The buy predicate is evaluated first, then the sell rule
// is applied as a final override: exit and risk signals dominate entry
// signals when both technically hold. NaN warm-up values fail every
// comparison, yielding HOLD.
func ClassifyRow(cur, prev model.IndicatorRow) model.Signal {
	buy := cur.Close > cur.EMAFast &&
		cur.EMAFast > cur.EMASlow &&
		cur.MACDHist > 0 &&
		cur.MACDHist > prev.MACDHist &&
		cur.Volume > cur.VolumeSMA*volumeBreakout

	// Sell overrides a simultaneously-true buy.
	if cur.Close < cur.EMASlow || cur.MACDHist < 0 {
		return model.SignalSell
	}
	if buy {
		return model.SignalBuy
	}
	return model.SignalHold
}
