package collector

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"AlphaTrader/internal/model"
	"AlphaTrader/internal/snapshot"
)

type stubPutCall struct {
	pc  *model.PutCallSentiment
	err error
}

func (s *stubPutCall) Compute(_ string, _ float64) (*model.PutCallSentiment, error) {
	return s.pc, s.err
}

func livePC() *model.PutCallSentiment {
	return &model.PutCallSentiment{Ratio: 0.85, CallVolume: 2000, PutVolume: 1700}
}

func TestAnalyze_LiveOptions(t *testing.T) {
	fetcher := &MockFetcher{Price: 100}
	c := New(fetcher, &stubPutCall{pc: livePC()}, nil, nil, nil, 2.5, 90)

	report, err := c.Analyze("TSLA")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Source != model.SourceLive {
		t.Errorf("expected live source, got %q", report.Source)
	}
	if report.PutCall == nil || report.PutCall.Ratio != 0.85 {
		t.Errorf("expected live put/call data, got %+v", report.PutCall)
	}
	if len(report.Sentiment.Factors) != 5 {
		t.Errorf("expected 5 factors with options data, got %d", len(report.Sentiment.Factors))
	}
	if report.Signal == "" {
		t.Error("expected a classified signal")
	}
}

func TestAnalyze_SnapshotFallback(t *testing.T) {
	store := snapshot.NewFileStore(filepath.Join(t.TempDir(), "snaps.json"))
	if err := store.Save("TSLA", 250.0, livePC()); err != nil {
		t.Fatal(err)
	}

	fetcher := &MockFetcher{Price: 100}
	failing := &stubPutCall{err: errors.New("options backend down")}
	c := New(fetcher, failing, store, nil, nil, 2.5, 90)

	report, err := c.Analyze("TSLA")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Source != model.SourceSnapshot {
		t.Errorf("expected snapshot source, got %q", report.Source)
	}
	if report.PutCall == nil {
		t.Fatal("expected snapshot put/call data")
	}
	if len(report.Sentiment.Factors) != 5 {
		t.Errorf("snapshot data must still feed the options factor, got %d factors", len(report.Sentiment.Factors))
	}
}

func TestAnalyze_NoOptionsData(t *testing.T) {
	fetcher := &MockFetcher{Price: 100}
	failing := &stubPutCall{err: errors.New("options backend down")}
	c := New(fetcher, failing, nil, nil, nil, 2.5, 90)

	report, err := c.Analyze("TSLA")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.PutCall != nil || report.Source != "" {
		t.Errorf("expected no put/call data, got %+v source %q", report.PutCall, report.Source)
	}
	if len(report.Sentiment.Factors) != 4 {
		t.Errorf("expected options factor omitted, got %d factors", len(report.Sentiment.Factors))
	}
}

func TestAnalyze_BarFetchError(t *testing.T) {
	fetcher := &MockFetcher{FetchErr: errors.New("upstream down")}
	c := New(fetcher, nil, nil, nil, nil, 2.5, 90)

	if _, err := c.Analyze("TSLA"); err == nil {
		t.Error("expected error when bars cannot be fetched")
	}
}

func TestAnalyze_BarCacheServesRepeatCalls(t *testing.T) {
	fetcher := &MockFetcher{Price: 100}
	barCache := NewCache(time.Minute, 8)
	c := New(fetcher, nil, nil, barCache, nil, 2.5, 90)

	if _, err := c.Analyze("TSLA"); err != nil {
		t.Fatalf("first analyze: %v", err)
	}

	// with bars cached, a now-failing fetcher must not be consulted
	fetcher.FetchErr = errors.New("upstream down")
	if _, err := c.Analyze("TSLA"); err != nil {
		t.Errorf("expected cached bars to serve the repeat call: %v", err)
	}
}
