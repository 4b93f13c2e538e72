package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"AlphaTrader/internal/model"
)

// YahooFetcher implements Fetcher and options.ChainFetcher using the
// Yahoo Finance public chart and options APIs.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional
// proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooOptions is the response structure from the Yahoo options API.
type yahooOptions struct {
	OptionChain struct {
		Result []struct {
			ExpirationDates []int64 `json:"expirationDates"`
			Options         []struct {
				Calls []yahooContract `json:"calls"`
				Puts  []yahooContract `json:"puts"`
			} `json:"options"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"optionChain"`
}

type yahooContract struct {
	Strike float64 `json:"strike"`
	Volume float64 `json:"volume"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) getJSON(u string, out interface{}) error {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

func (f *YahooFetcher) fetchChart(ticker, interval, rng string) ([]model.Bar, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(ticker), interval, rng)

	var chart yahooChart
	if err := f.getJSON(u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", ticker)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *YahooFetcher) FetchBars(ticker string, days int) ([]model.Bar, error) {
	rng := "2y"
	if days <= 30 {
		rng = "1mo"
	} else if days <= 90 {
		rng = "3mo"
	} else if days <= 180 {
		rng = "6mo"
	} else if days <= 365 {
		rng = "1y"
	}
	bars, err := f.fetchChart(ticker, "1d", rng)
	if err != nil {
		return nil, err
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// FetchBatchBars fetches each ticker in turn. The chart API has no true
// multi-symbol endpoint; failed tickers are logged and left out so the
// scan can continue.
func (f *YahooFetcher) FetchBatchBars(tickers []string, days int) (map[string][]model.Bar, error) {
	out := make(map[string][]model.Bar, len(tickers))
	for _, t := range tickers {
		bars, err := f.FetchBars(t, days)
		if err != nil {
			log.Printf("[WARN] batch fetch %s: %v", t, err)
			continue
		}
		out[t] = bars
	}
	return out, nil
}

func (f *YahooFetcher) FetchCurrentPrice(ticker string) (float64, error) {
	bars, err := f.fetchChart(ticker, "1d", "1d")
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("yahoo: no price data for %s", ticker)
	}
	return bars[len(bars)-1].Close, nil
}

// ListExpirations returns the listed option expiration dates for ticker.
func (f *YahooFetcher) ListExpirations(ticker string) ([]time.Time, error) {
	u := fmt.Sprintf("https://query2.finance.yahoo.com/v7/finance/options/%s", url.PathEscape(ticker))

	var chain yahooOptions
	if err := f.getJSON(u, &chain); err != nil {
		return nil, err
	}
	if chain.OptionChain.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chain.OptionChain.Error.Description)
	}
	if len(chain.OptionChain.Result) == 0 {
		return nil, nil
	}

	dates := chain.OptionChain.Result[0].ExpirationDates
	out := make([]time.Time, 0, len(dates))
	for _, ts := range dates {
		out = append(out, time.Unix(ts, 0).UTC())
	}
	return out, nil
}

// FetchChain returns the call and put sides for one expiration.
func (f *YahooFetcher) FetchChain(ticker string, expiration time.Time) (*model.OptionChain, error) {
	u := fmt.Sprintf("https://query2.finance.yahoo.com/v7/finance/options/%s?date=%d",
		url.PathEscape(ticker), expiration.Unix())

	var chain yahooOptions
	if err := f.getJSON(u, &chain); err != nil {
		return nil, err
	}
	if chain.OptionChain.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chain.OptionChain.Error.Description)
	}
	if len(chain.OptionChain.Result) == 0 || len(chain.OptionChain.Result[0].Options) == 0 {
		return nil, fmt.Errorf("yahoo: no chain for %s @ %s", ticker, expiration.Format("2006-01-02"))
	}

	side := chain.OptionChain.Result[0].Options[0]
	out := &model.OptionChain{
		Calls: make([]model.OptionQuote, 0, len(side.Calls)),
		Puts:  make([]model.OptionQuote, 0, len(side.Puts)),
	}
	for _, c := range side.Calls {
		out.Calls = append(out.Calls, model.OptionQuote{Strike: c.Strike, Volume: c.Volume})
	}
	for _, p := range side.Puts {
		out.Puts = append(out.Puts, model.OptionQuote{Strike: p.Strike, Volume: p.Volume})
	}
	return out, nil
}
