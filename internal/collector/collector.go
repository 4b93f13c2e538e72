package collector

import (
	"fmt"
	"log"

	"AlphaTrader/internal/indicator"
	"AlphaTrader/internal/model"
	"AlphaTrader/internal/snapshot"
	"AlphaTrader/internal/strategy"
)

// PutCallComputer computes live put/call sentiment for a ticker at a
// given spot price.
type PutCallComputer interface {
	Compute(ticker string, spot float64) (*model.PutCallSentiment, error)
}

// Collector runs the full per-ticker pipeline: fetch bars, derive
// indicators, classify the signal, score sentiment, and attach put/call
// data (live, or the last snapshot when live computation fails).
type Collector struct {
	fetcher     Fetcher
	putCall     PutCallComputer // nil disables the options factor
	snapshots   snapshot.Store
	barCache    *Cache
	optionCache *Cache
	atrMult     float64
	historyDays int
}

// New creates a Collector. Snapshots may be nil when no fallback store
// is configured.
func New(fetcher Fetcher, putCall PutCallComputer, snapshots snapshot.Store,
	barCache, optionCache *Cache, atrMult float64, historyDays int) *Collector {
	return &Collector{
		fetcher:     fetcher,
		putCall:     putCall,
		snapshots:   snapshots,
		barCache:    barCache,
		optionCache: optionCache,
		atrMult:     atrMult,
		historyDays: historyDays,
	}
}

// Analyze runs the pipeline for one ticker and assembles the
// presentation payload. Per-unit failures inside the options leg
// degrade the report; only bar fetch and indicator failures are fatal.
func (c *Collector) Analyze(ticker string) (*model.TickerReport, error) {
	bars, err := c.fetchBars(ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch bars for %s: %w", ticker, err)
	}

	rows, err := indicator.Compute(bars, c.atrMult)
	if err != nil {
		return nil, fmt.Errorf("compute indicators for %s: %w", ticker, err)
	}
	strategy.Classify(rows)

	cur := rows[len(rows)-1]
	prev := rows[len(rows)-2]

	pc, source := c.putCallSentiment(ticker, cur.Close)

	return &model.TickerReport{
		Ticker:    ticker,
		Rows:      rows,
		Signal:    cur.Signal,
		StopLoss:  cur.StopLoss,
		Sentiment: strategy.Score(cur, prev, pc),
		PutCall:   pc,
		Source:    source,
	}, nil
}

// ATRMultiplier reports the stop-loss multiplier the pipeline runs with.
func (c *Collector) ATRMultiplier() float64 { return c.atrMult }

func (c *Collector) fetchBars(ticker string) ([]model.Bar, error) {
	key := CacheKey("bars", ticker, c.historyDays)
	if c.barCache != nil {
		if v, ok := c.barCache.Get(key); ok {
			return v.([]model.Bar), nil
		}
	}
	bars, err := c.fetcher.FetchBars(ticker, c.historyDays)
	if err != nil {
		return nil, err
	}
	if c.barCache != nil {
		c.barCache.Set(key, bars)
	}
	return bars, nil
}

// putCallSentiment tries the live calculator first, then the snapshot
// store. Both missing is a degraded-but-valid state: the sentiment
// scorer simply omits the options factor.
func (c *Collector) putCallSentiment(ticker string, spot float64) (*model.PutCallSentiment, string) {
	if c.putCall == nil {
		return c.fromSnapshot(ticker)
	}

	key := CacheKey("options", ticker, 0)
	if c.optionCache != nil {
		if v, ok := c.optionCache.Get(key); ok {
			return v.(*model.PutCallSentiment), model.SourceLive
		}
	}

	pc, err := c.putCall.Compute(ticker, spot)
	if err != nil {
		log.Printf("[WARN] live put/call for %s unavailable: %v", ticker, err)
		return c.fromSnapshot(ticker)
	}
	if c.optionCache != nil {
		c.optionCache.Set(key, pc)
	}
	return pc, model.SourceLive
}

func (c *Collector) fromSnapshot(ticker string) (*model.PutCallSentiment, string) {
	if c.snapshots == nil {
		return nil, ""
	}
	snap, ok := c.snapshots.Load(ticker)
	if !ok || snap.PCData == nil {
		return nil, ""
	}
	return snap.PCData, model.SourceSnapshot
}
