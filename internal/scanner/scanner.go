// Package scanner runs the indicator engine and classifier across a
// ticker universe and buckets the results by signal.
package scanner

import (
	"errors"
	"log"
	"sync"

	"AlphaTrader/internal/collector"
	"AlphaTrader/internal/indicator"
	"AlphaTrader/internal/model"
	"AlphaTrader/internal/strategy"
)

// Entry is one scanned ticker annotated with its latest price action.
type Entry struct {
	Ticker    string
	Price     float64
	ChangePct float64
}

// Failure records a ticker that could not be scanned and why. Failed
// tickers are absent from every bucket; they never abort the scan.
type Failure struct {
	Ticker string
	Err    error
}

// Result maps each signal class to its tickers, in scan order.
type Result struct {
	Buckets map[model.Signal][]Entry
	Failed  []Failure
}

// Scanner fans the per-ticker pipeline over a universe. Bars for the
// whole universe come from one batch fetch; the pure engine/classifier
// then run concurrently per ticker.
type Scanner struct {
	fetcher     collector.Fetcher
	historyDays int
}

// New creates a Scanner fetching historyDays of bars per ticker.
func New(fetcher collector.Fetcher, historyDays int) *Scanner {
	return &Scanner{fetcher: fetcher, historyDays: historyDays}
}

// Scan evaluates every ticker independently and buckets the outcomes.
func (s *Scanner) Scan(tickers []string, atrMult float64) *Result {
	result := &Result{Buckets: map[model.Signal][]Entry{
		model.SignalBuy:  nil,
		model.SignalHold: nil,
		model.SignalSell: nil,
	}}

	batch, err := s.fetcher.FetchBatchBars(tickers, s.historyDays)
	if err != nil {
		log.Printf("[ERROR] batch fetch failed: %v", err)
		batch = nil
	}

	type outcome struct {
		entry  Entry
		signal model.Signal
		err    error
	}
	outcomes := make([]outcome, len(tickers))

	var wg sync.WaitGroup
	for i, ticker := range tickers {
		bars, ok := batch[ticker]
		if !ok {
			outcomes[i] = outcome{err: errors.New("no data")}
			continue
		}
		wg.Add(1)
		go func(i int, ticker string, bars []model.Bar) {
			defer wg.Done()
			entry, signal, err := evaluate(ticker, bars, atrMult)
			outcomes[i] = outcome{entry: entry, signal: signal, err: err}
		}(i, ticker, bars)
	}
	wg.Wait()

	for i, ticker := range tickers {
		o := outcomes[i]
		if o.err != nil {
			log.Printf("[WARN] scan skipped %s: %v", ticker, o.err)
			result.Failed = append(result.Failed, Failure{Ticker: ticker, Err: o.err})
			continue
		}
		result.Buckets[o.signal] = append(result.Buckets[o.signal], o.entry)
	}
	return result
}

func evaluate(ticker string, bars []model.Bar, atrMult float64) (Entry, model.Signal, error) {
	rows, err := indicator.Compute(bars, atrMult)
	if err != nil {
		return Entry{}, "", err
	}
	strategy.Classify(rows)

	cur := rows[len(rows)-1]
	prev := rows[len(rows)-2]
	change := 0.0
	if prev.Close != 0 {
		change = (cur.Close - prev.Close) / prev.Close * 100
	}
	return Entry{Ticker: ticker, Price: cur.Close, ChangePct: change}, cur.Signal, nil
}
