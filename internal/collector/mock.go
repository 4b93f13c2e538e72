package collector

import (
	"errors"
	"time"

	"AlphaTrader/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price    float64
	Bars     []model.Bar
	FailFor  map[string]bool // tickers whose fetches fail
	FetchErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) err(ticker string) error {
	if m.FetchErr != nil {
		return m.FetchErr
	}
	if m.FailFor[ticker] {
		return errors.New("mock: fetch failed for " + ticker)
	}
	return nil
}

func (m *MockFetcher) FetchBars(ticker string, days int) ([]model.Bar, error) {
	if err := m.err(ticker); err != nil {
		return nil, err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateBars(m.Price, days), nil
}

func (m *MockFetcher) FetchBatchBars(tickers []string, days int) (map[string][]model.Bar, error) {
	out := make(map[string][]model.Bar, len(tickers))
	for _, t := range tickers {
		bars, err := m.FetchBars(t, days)
		if err != nil {
			continue
		}
		out[t] = bars
	}
	return out, nil
}

func (m *MockFetcher) FetchCurrentPrice(ticker string) (float64, error) {
	if err := m.err(ticker); err != nil {
		return 0, err
	}
	return m.Price, nil
}

// GenerateBars produces a gently trending synthetic series for tests.
func GenerateBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
