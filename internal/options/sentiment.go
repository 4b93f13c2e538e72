package options

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"AlphaTrader/internal/model"
)

// Failure taxonomy for the put/call computation.
var (
	ErrNoOptionsData         = errors.New("ticker has no listed options")
	ErrNoNearTermExpirations = errors.New("no expirations within the near-term window")
	ErrNoVolume              = errors.New("no option volume today")
)

const (
	// Expirations further out than this many days are ignored.
	maxDaysToExpiry = 40
	// Strikes summed on each side of the nearest-to-spot strike.
	strikesAround = 5
	// Ratio reported when puts trade but calls do not.
	putSkewSentinel = 2.0
)

// ChainFetcher supplies option expirations and chains for a ticker.
type ChainFetcher interface {
	ListExpirations(ticker string) ([]time.Time, error)
	FetchChain(ticker string, expiration time.Time) (*model.OptionChain, error)
}

// Calculator aggregates near-the-money call and put volume across all
// near-term expirations into a put/call ratio.
type Calculator struct {
	fetcher ChainFetcher
	now     func() time.Time
}

// NewCalculator creates a Calculator reading chains from the fetcher.
func NewCalculator(fetcher ChainFetcher) *Calculator {
	return &Calculator{fetcher: fetcher, now: time.Now}
}

// Compute scans every expiration within the near-term window, summing
// call and put volume over the 11-strike window centered on the strike
// nearest to spot. An expiration whose chain is empty or unretrievable
// is skipped and recorded, never fatal.
//
// Ratio policy: put/call when calls traded; the fixed sentinel 2.0 when
// only puts traded; ErrNoVolume when neither side traded (a dead chain
// is a failure, not a put skew, and the caller falls back to the last
// snapshot instead).
func (c *Calculator) Compute(ticker string, spot float64) (*model.PutCallSentiment, error) {
	expirations, err := c.fetcher.ListExpirations(ticker)
	if err != nil {
		return nil, fmt.Errorf("list expirations for %s: %w", ticker, err)
	}
	if len(expirations) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoOptionsData)
	}

	today := dateOf(c.now().UTC())
	var nearTerm []time.Time
	for _, exp := range expirations {
		days := int(dateOf(exp.UTC()).Sub(today).Hours() / 24)
		if days >= 0 && days <= maxDaysToExpiry {
			nearTerm = append(nearTerm, exp)
		}
	}
	if len(nearTerm) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoNearTermExpirations)
	}

	result := &model.PutCallSentiment{}
	for _, exp := range nearTerm {
		chain, err := c.fetcher.FetchChain(ticker, exp)
		if err != nil || chain == nil || (len(chain.Calls) == 0 && len(chain.Puts) == 0) {
			log.Printf("[WARN] skipping %s expiration %s: %v", ticker, exp.Format("2006-01-02"), err)
			result.Skipped = append(result.Skipped, exp.Format("2006-01-02"))
			continue
		}
		sample := model.ExpirationSample{
			Expiration: exp,
			CallVolume: nearMoneyVolume(chain.Calls, spot),
			PutVolume:  nearMoneyVolume(chain.Puts, spot),
		}
		result.Samples = append(result.Samples, sample)
		result.CallVolume += sample.CallVolume
		result.PutVolume += sample.PutVolume
	}

	switch {
	case result.CallVolume > 0:
		result.Ratio = result.PutVolume / result.CallVolume
	case result.PutVolume > 0:
		result.Ratio = putSkewSentinel
	default:
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoVolume)
	}
	return result, nil
}

// nearMoneyVolume sums volume over the window of strikes centered on
// the strike nearest to spot, clipped at chain bounds. Clipping may be
// asymmetric at the ends; it never indexes out of range.
func nearMoneyVolume(quotes []model.OptionQuote, spot float64) float64 {
	if len(quotes) == 0 {
		return 0
	}
	sorted := make([]model.OptionQuote, len(quotes))
	copy(sorted, quotes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Strike < sorted[j].Strike })

	nearest := 0
	for i, q := range sorted {
		if dist(q.Strike, spot) < dist(sorted[nearest].Strike, spot) {
			nearest = i
		}
	}

	lo := nearest - strikesAround
	if lo < 0 {
		lo = 0
	}
	hi := nearest + strikesAround
	if hi > len(sorted)-1 {
		hi = len(sorted) - 1
	}

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += sorted[i].Volume
	}
	return sum
}

func dist(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
