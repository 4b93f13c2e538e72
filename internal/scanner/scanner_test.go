package scanner

import (
	"testing"

	"AlphaTrader/internal/collector"
	"AlphaTrader/internal/model"
)

func TestScan_BucketsEveryHealthyTicker(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	s := New(fetcher, 90)

	tickers := []string{"TSLA", "NVDA", "AVGO", "MU", "ORCL"}
	res := s.Scan(tickers, 2.5)

	if len(res.Failed) != 0 {
		t.Fatalf("expected no failures, got %v", res.Failed)
	}
	total := 0
	for _, entries := range res.Buckets {
		total += len(entries)
	}
	if total != len(tickers) {
		t.Errorf("expected %d bucketed tickers, got %d", len(tickers), total)
	}
	for _, entries := range res.Buckets {
		for _, e := range entries {
			if e.Price == 0 {
				t.Errorf("entry %s has no price", e.Ticker)
			}
		}
	}
}

func TestScan_FailedTickerIsQuarantined(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Price:   100,
		FailFor: map[string]bool{"AVGO": true},
	}
	s := New(fetcher, 90)

	res := s.Scan([]string{"TSLA", "NVDA", "AVGO", "MU", "ORCL"}, 2.5)

	if len(res.Failed) != 1 || res.Failed[0].Ticker != "AVGO" {
		t.Fatalf("expected only AVGO to fail, got %v", res.Failed)
	}
	total := 0
	for _, entries := range res.Buckets {
		for _, e := range entries {
			if e.Ticker == "AVGO" {
				t.Error("failed ticker must not appear in any bucket")
			}
		}
		total += len(entries)
	}
	if total != 4 {
		t.Errorf("expected 4 bucketed tickers, got %d", total)
	}
}

func TestScan_ShortHistoryFails(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100, Bars: collector.GenerateBars(100, 20)}
	s := New(fetcher, 20)

	res := s.Scan([]string{"TSLA"}, 2.5)
	if len(res.Failed) != 1 {
		t.Fatalf("expected ticker with 20 bars to fail, got %v", res.Failed)
	}
}

func TestScan_AllBucketsPresent(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	res := New(fetcher, 90).Scan([]string{"TSLA"}, 2.5)

	for _, sig := range []model.Signal{model.SignalBuy, model.SignalHold, model.SignalSell} {
		if _, ok := res.Buckets[sig]; !ok {
			t.Errorf("bucket %s missing from result", sig)
		}
	}
}
