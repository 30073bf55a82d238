// Package provider defines the market data sources used for live quotes,
// price history and company financials.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrSymbolNotFound is returned when the source has no data for a ticker.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrNoData is returned when a response parsed but carried no usable values.
	ErrNoData = errors.New("no data returned")
)

// Instrument identifies a catalog row to a market data source.
type Instrument struct {
	Symbol   string
	Exchange string
	// Ticker overrides the derived provider ticker (e.g. "^NSEI" for NIFTY 50).
	Ticker string
}

// Quote is a single live price observation for one listing. Symbol and
// Exchange echo the requested Instrument.
type Quote struct {
	Symbol        string
	Exchange      string
	Price         float64
	PreviousClose float64
	Change        float64
	ChangePercent float64
	Currency      string
	QuotedAt      time.Time
}

// Bar is one OHLCV candle.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Range is the lookback window of a history request.
type Range string

const (
	Range1d  Range = "1d"
	Range5d  Range = "5d"
	Range7d  Range = "7d"
	Range1mo Range = "1mo"
	Range6mo Range = "6mo"
	Range1y  Range = "1y"
	Range2y  Range = "2y"
)

// Interval is the bar width of a history request.
type Interval string

const (
	Interval1m Interval = "1m"
	Interval5m Interval = "5m"
	Interval1d Interval = "1d"
)

// FetchError represents a failed quote fetch for a specific symbol.
type FetchError struct {
	Symbol string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch quote for %s: %v", e.Symbol, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// QuoteSource fetches current prices for a set of instruments.
type QuoteSource interface {
	// Name returns the source's display name (e.g., "Yahoo Finance").
	Name() string

	// Quotes fetches current prices for the given instruments.
	// A source should return as many quotes as possible, even if some fail.
	Quotes(ctx context.Context, instruments []Instrument) ([]Quote, []FetchError)
}

// HistorySource fetches OHLCV history for one ticker, oldest bar first.
type HistorySource interface {
	History(ctx context.Context, ticker string, rng Range, interval Interval) ([]Bar, error)
}

// FundamentalsSource fetches the latest reported financials for one ticker.
type FundamentalsSource interface {
	Fundamentals(ctx context.Context, ticker string) (*Fundamentals, error)
}

// MarketData is the full set of capabilities the analytics engines need.
type MarketData interface {
	QuoteSource
	HistorySource
	FundamentalsSource
}

// Feed names accepted by New.
const (
	FeedYahoo     = "yahoo"
	FeedSimulated = "simulated"
)

// New builds the market data source selected by name.
func New(name string, httpClient *http.Client, seed uint64) (MarketData, error) {
	switch strings.ToLower(name) {
	case FeedYahoo, "":
		return NewYahoo(httpClient), nil
	case FeedSimulated:
		return NewSimulated(seed), nil
	default:
		return nil, fmt.Errorf("unknown market feed %q", name)
	}
}

// exchangeSuffixes maps exchange codes to Yahoo Finance ticker suffixes.
var exchangeSuffixes = map[string]string{
	"NSE": ".NS",
	"BSE": ".BO",
}

// TickerFor converts an instrument to a provider ticker. An explicit Ticker
// wins; otherwise the symbol gets its exchange suffix.
func TickerFor(inst Instrument) string {
	if inst.Ticker != "" {
		return inst.Ticker
	}
	if suffix, ok := exchangeSuffixes[strings.ToUpper(inst.Exchange)]; ok {
		return inst.Symbol + suffix
	}
	return inst.Symbol
}

// NormalizeTicker turns user input into a provider ticker. Index tickers
// ("^NSEI") and already-suffixed tickers pass through; bare symbols are
// assumed to trade on NSE.
func NormalizeTicker(raw string) string {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" || strings.HasPrefix(t, "^") || strings.Contains(t, ".") {
		return t
	}
	return t + exchangeSuffixes["NSE"]
}

// BaseSymbol strips an exchange suffix from a ticker ("INFY.NS" -> "INFY").
func BaseSymbol(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	for _, suffix := range exchangeSuffixes {
		if strings.HasSuffix(t, suffix) {
			return strings.TrimSuffix(t, suffix)
		}
	}
	return t
}
