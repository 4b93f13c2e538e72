package model

import "time"

// OptionQuote is a single strike's quote on one side of a chain.
type OptionQuote struct {
	Strike float64
	Volume float64
}

// OptionChain holds both sides of the chain for one expiration.
type OptionChain struct {
	Calls []OptionQuote
	Puts  []OptionQuote
}

// ExpirationSample aggregates near-the-money volume for one expiration.
type ExpirationSample struct {
	Expiration time.Time `json:"expiration_date"`
	CallVolume float64   `json:"call_volume_sum"`
	PutVolume  float64   `json:"put_volume_sum"`
}

// PutCallSentiment is the aggregated put/call volume ratio across all
// near-term expirations. Skipped lists expirations whose chains could
// not be retrieved and were excluded from the totals.
type PutCallSentiment struct {
	Ratio      float64            `json:"ratio"`
	CallVolume float64            `json:"total_call_volume"`
	PutVolume  float64            `json:"total_put_volume"`
	Samples    []ExpirationSample `json:"by_expiration"`
	Skipped    []string           `json:"skipped,omitempty"`
}
