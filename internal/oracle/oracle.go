// Package oracle runs the live market loop: it pulls quotes for the catalog
// from a market data source, records them, pushes them to live subscribers
// and sweeps expired buckets.
package oracle

import (
	"context"
	"time"

	"go.uber.org/zap"

	"alphafusion/internal/logger"
	"alphafusion/internal/provider"
)

// MessageQuotes is the feed message type carrying a tick of quotes.
const MessageQuotes = "quotes"

// Catalog defines the stock catalog operations needed by the oracle.
type Catalog interface {
	LiveInstruments(ctx context.Context) ([]provider.Instrument, error)
	ApplyQuotes(ctx context.Context, quotes []provider.Quote) (int, error)
}

// Broadcaster pushes a message to live subscribers.
type Broadcaster interface {
	Broadcast(msgType string, data any) error
}

// Sweeper deletes expired buckets.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// LiveQuote is the wire form of a quote pushed to subscribers.
type LiveQuote struct {
	Symbol        string    `json:"symbol"`
	Exchange      string    `json:"exchange,omitempty"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	QuotedAt      time.Time `json:"quoted_at"`
}

// RunResult contains the outcome of one oracle cycle.
type RunResult struct {
	InstrumentsFetched int
	QuotesApplied      int
	BucketsSwept       int64
	Errors             []provider.FetchError
	Duration           time.Duration
}

// Oracle fetches catalog quotes on an interval.
type Oracle struct {
	catalog     Catalog
	quotes      provider.QuoteSource
	broadcaster Broadcaster
	sweeper     Sweeper
	interval    time.Duration
	log         *zap.SugaredLogger
}

// NewOracle creates a new Oracle. broadcaster and sweeper may be nil.
func NewOracle(catalog Catalog, quotes provider.QuoteSource, broadcaster Broadcaster, sweeper Sweeper, interval time.Duration) *Oracle {
	return &Oracle{
		catalog:     catalog,
		quotes:      quotes,
		broadcaster: broadcaster,
		sweeper:     sweeper,
		interval:    interval,
		log:         logger.Named("oracle"),
	}
}

// Run executes a single cycle: fetch instruments, get quotes, apply them,
// broadcast them and sweep expired buckets.
func (o *Oracle) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{}

	// 1. Fetch the instruments to quote.
	instruments, err := o.catalog.LiveInstruments(ctx)
	if err != nil {
		return nil, err
	}
	result.InstrumentsFetched = len(instruments)

	// 2. Quote them.
	var quotes []provider.Quote
	if len(instruments) > 0 {
		o.log.Debugw("Fetching quotes", "source", o.quotes.Name(), "count", len(instruments))
		quotes, result.Errors = o.quotes.Quotes(ctx, instruments)
	}

	// 3. Record and broadcast.
	if len(quotes) > 0 {
		applied, err := o.catalog.ApplyQuotes(ctx, quotes)
		if err != nil {
			return nil, err
		}
		result.QuotesApplied = applied

		if o.broadcaster != nil {
			if err := o.broadcaster.Broadcast(MessageQuotes, liveQuotes(quotes)); err != nil {
				o.log.Warnw("Failed to broadcast quotes", "error", err)
			}
		}
	}

	// 4. Sweep expired buckets.
	if o.sweeper != nil {
		swept, err := o.sweeper.SweepExpired(ctx)
		if err != nil {
			o.log.Warnw("Failed to sweep expired buckets", "error", err)
		} else {
			result.BucketsSwept = swept
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Start runs a cycle immediately and then once per interval until ctx is
// cancelled. It blocks.
func (o *Oracle) Start(ctx context.Context) {
	o.log.Infow("Oracle started", "source", o.quotes.Name(), "interval", o.interval.String())
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		o.tick(ctx)
		select {
		case <-ctx.Done():
			o.log.Info("Oracle stopped")
			return
		case <-ticker.C:
		}
	}
}

func (o *Oracle) tick(ctx context.Context) {
	result, err := o.Run(ctx)
	if err != nil {
		if ctx.Err() == nil {
			o.log.Errorw("Oracle run failed", "error", err)
		}
		return
	}
	o.log.Infow("Oracle run completed",
		"instruments", result.InstrumentsFetched,
		"quotes_applied", result.QuotesApplied,
		"buckets_swept", result.BucketsSwept,
		"errors", len(result.Errors),
		"duration", result.Duration.String(),
	)
	for _, fetchErr := range result.Errors {
		o.log.Warnw("Quote fetch failed", "symbol", fetchErr.Symbol, "error", fetchErr.Err)
	}
}

func liveQuotes(quotes []provider.Quote) []LiveQuote {
	out := make([]LiveQuote, len(quotes))
	for i, q := range quotes {
		out[i] = LiveQuote{
			Symbol:        q.Symbol,
			Exchange:      q.Exchange,
			Price:         q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
			QuotedAt:      q.QuotedAt,
		}
	}
	return out
}
