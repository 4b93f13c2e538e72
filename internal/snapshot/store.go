// Package snapshot persists the most recent options-sentiment
// computation per ticker, read back when live options data is
// unavailable (market closed, feed down).
package snapshot

import "AlphaTrader/internal/model"

// Store is the key-value persistence contract for snapshots. Load
// reports ok=false on a missing record, a missing backing file, or
// corrupt content; the absence of a fallback is never an error the
// render path has to handle.
type Store interface {
	Load(ticker string) (*model.Snapshot, bool)
	Save(ticker string, price float64, pc *model.PutCallSentiment) error
	Close() error
}
