package model

import "time"

// SnapshotDateFormat is the durable date format used in snapshot files.
const SnapshotDateFormat = "2006-01-02"

// Snapshot is the persisted copy of the most recent options-sentiment
// computation for a ticker, used as a fallback when live options data
// is unavailable. Field names are the durable file contract.
type Snapshot struct {
	Ticker     string            `json:"ticker"`
	Date       string            `json:"date"` // YYYY-MM-DD
	Timestamp  time.Time         `json:"timestamp"`
	ClosePrice float64           `json:"close_price"`
	PCData     *PutCallSentiment `json:"pc_data"`
}
