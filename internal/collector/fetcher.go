package collector

import "AlphaTrader/internal/model"

// Fetcher defines the interface for fetching historical price data.
// Any failure is opaque: the caller treats it as "no data for this
// unit of work" and continues where possible.
type Fetcher interface {
	// FetchBars returns up to `days` daily bars, ascending by time.
	FetchBars(ticker string, days int) ([]model.Bar, error)
	// FetchBatchBars fetches bars for many tickers in one logical call.
	// A ticker that fails is simply absent from the result map.
	FetchBatchBars(tickers []string, days int) (map[string][]model.Bar, error)
	FetchCurrentPrice(ticker string) (float64, error)
	Name() string
}
