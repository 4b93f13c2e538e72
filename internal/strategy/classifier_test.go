package strategy

import (
	"math"
	"testing"

	"AlphaTrader/internal/model"
)

func bullishRow() model.IndicatorRow {
	return model.IndicatorRow{
		Bar:       model.Bar{Open: 100, Close: 105, Volume: 150},
		EMAFast:   103,
		EMASlow:   100,
		MACDHist:  0.5,
		VolumeSMA: 100,
	}
}

func TestClassifyRow_Buy(t *testing.T) {
	cur := bullishRow()
	prev := model.IndicatorRow{MACDHist: 0.3}
	if got := ClassifyRow(cur, prev); got != model.SignalBuy {
		t.Errorf("expected BUY, got %s", got)
	}
}

func TestClassifyRow_HoldWhenVolumeThin(t *testing.T) {
	cur := bullishRow()
	cur.Volume = 110 // below the 1.2x breakout threshold
	prev := model.IndicatorRow{MACDHist: 0.3}
	if got := ClassifyRow(cur, prev); got != model.SignalHold {
		t.Errorf("expected HOLD, got %s", got)
	}
}

func TestClassifyRow_HoldWhenMomentumFading(t *testing.T) {
	cur := bullishRow()
	prev := model.IndicatorRow{MACDHist: 0.8} // histogram shrinking
	if got := ClassifyRow(cur, prev); got != model.SignalHold {
		t.Errorf("expected HOLD, got %s", got)
	}
}

func TestSellOverridesBuyConditions(t *testing.T) {
	// Every entry condition that can coexist with a broken trend is
	// true, yet close below the slow EMA must force SELL.
	cur := bullishRow()
	cur.Close = 95
	cur.EMAFast = 94
	cur.EMASlow = 99
	prev := model.IndicatorRow{MACDHist: 0.3}
	if got := ClassifyRow(cur, prev); got != model.SignalSell {
		t.Errorf("expected SELL to override entry conditions, got %s", got)
	}

	// Same with negative momentum while the trend structure is intact.
	cur = bullishRow()
	cur.MACDHist = -0.1
	if got := ClassifyRow(cur, prev); got != model.SignalSell {
		t.Errorf("expected SELL on negative histogram, got %s", got)
	}
}

func TestClassify_WarmUpRowsHold(t *testing.T) {
	nan := math.NaN()
	rows := []model.IndicatorRow{
		{Bar: model.Bar{Close: 100, Volume: 100}, EMAFast: nan, EMASlow: nan, MACDHist: nan, VolumeSMA: nan},
		{Bar: model.Bar{Close: 101, Volume: 100}, EMAFast: nan, EMASlow: nan, MACDHist: nan, VolumeSMA: nan},
	}
	Classify(rows)
	for i, r := range rows {
		if r.Signal != model.SignalHold {
			t.Errorf("row %d: expected HOLD during warm-up, got %s", i, r.Signal)
		}
	}
}

func TestClassify_SetsEveryRow(t *testing.T) {
	rows := []model.IndicatorRow{bullishRow(), bullishRow(), bullishRow()}
	rows[1].MACDHist = 0.6
	rows[2].MACDHist = 0.7
	Classify(rows)
	for i, r := range rows {
		if r.Signal == "" {
			t.Errorf("row %d: signal not assigned", i)
		}
	}
	// rows 1 and 2 have rising histograms against their predecessors
	if rows[2].Signal != model.SignalBuy {
		t.Errorf("expected BUY on final row, got %s", rows[2].Signal)
	}
}
