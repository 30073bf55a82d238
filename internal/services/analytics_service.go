package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/fundamental"
	"alphafusion/internal/provider"
	"alphafusion/internal/technical"
)

// Sections of a combined report.
const (
	SectionFundamental = "fundamental"
	SectionTechnical   = "technical"
	SectionSentiment   = "sentiment"
)

// analyticsService runs the fundamental and technical engines and reads the
// sentiment cache.
type analyticsService struct {
	stocks       StockServicer
	sentiment    SentimentServicer
	fundamentals *fundamental.Analyzer
	technicals   *technical.Analyzer
}

// NewAnalyticsService creates a new AnalyticsServicer backed by market.
func NewAnalyticsService(stocks StockServicer, sentiment SentimentServicer, market provider.MarketData) AnalyticsServicer {
	return &analyticsService{
		stocks:       stocks,
		sentiment:    sentiment,
		fundamentals: fundamental.NewAnalyzer(market),
		technicals:   technical.NewAnalyzer(market),
	}
}

// resolved is a request ticker mapped to the catalog.
type resolved struct {
	ticker string // provider ticker, e.g. HDFCBANK.NS
	symbol string // catalog symbol, e.g. HDFC
}

// resolve maps user input to a provider ticker. Catalog symbols use their
// ticker override; anything else is treated as an NSE symbol.
func (s *analyticsService) resolve(ctx context.Context, raw string) (resolved, error) {
	ticker := provider.NormalizeTicker(raw)
	if ticker == "" {
		return resolved{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "ticker is required")
	}

	stock, err := s.stocks.GetBySymbol(ctx, provider.BaseSymbol(ticker))
	switch {
	case err == nil:
		return resolved{
			ticker: provider.TickerFor(provider.Instrument{Symbol: stock.Symbol, Exchange: stock.Exchange, Ticker: stock.Ticker}),
			symbol: stock.Symbol,
		}, nil
	case errors.Is(err, apperrors.ErrStockNotFound):
		return resolved{ticker: ticker, symbol: provider.BaseSymbol(ticker)}, nil
	default:
		return resolved{}, err
	}
}

// upstreamError maps engine failures to API errors.
func upstreamError(ticker string, err error) error {
	switch {
	case errors.Is(err, provider.ErrSymbolNotFound):
		return apperrors.WithMessage(apperrors.ErrNotFound, fmt.Sprintf("Unknown ticker %s", ticker))
	case errors.Is(err, technical.ErrInsufficientHistory):
		return apperrors.Wrap(apperrors.ErrInsufficientData, err)
	case errors.Is(err, technical.ErrInvalidWindow):
		return invalidWindow(err)
	default:
		return apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err)
	}
}

// invalidWindow reports which backtest parameter is out of range.
func invalidWindow(err error) error {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, msg)
}

// Fundamental scores the company's latest financials.
func (s *analyticsService) Fundamental(ctx context.Context, ticker string) (*fundamental.Report, error) {
	r, err := s.resolve(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return s.fundamental(ctx, r)
}

func (s *analyticsService) fundamental(ctx context.Context, r resolved) (*fundamental.Report, error) {
	report, err := s.fundamentals.Analyze(ctx, r.ticker)
	if err != nil {
		return nil, upstreamError(r.ticker, err)
	}
	return report, nil
}

// Technical runs the indicator engine over the price history.
func (s *analyticsService) Technical(ctx context.Context, ticker string, periodDays int) (*technical.Report, error) {
	r, err := s.resolve(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return s.technical(ctx, r, periodDays)
}

func (s *analyticsService) technical(ctx context.Context, r resolved, periodDays int) (*technical.Report, error) {
	report, err := s.technicals.Analyze(ctx, r.ticker, periodDays)
	if err != nil {
		return nil, upstreamError(r.ticker, err)
	}
	return report, nil
}

// Credibility backtests the technical signal.
func (s *analyticsService) Credibility(ctx context.Context, ticker string, horizon, step int) (*technical.CredibilityReport, error) {
	if err := technical.ValidateWindow(horizon, step); err != nil {
		return nil, invalidWindow(err)
	}
	r, err := s.resolve(ctx, ticker)
	if err != nil {
		return nil, err
	}
	report, err := s.technicals.Credibility(ctx, r.ticker, horizon, step)
	if err != nil {
		return nil, upstreamError(r.ticker, err)
	}
	return report, nil
}

// Combined runs every engine concurrently. A failing engine is reported in
// Errors and does not fail the report.
func (s *analyticsService) Combined(ctx context.Context, ticker string) (*CombinedReport, error) {
	r, err := s.resolve(ctx, ticker)
	if err != nil {
		return nil, err
	}

	report := &CombinedReport{Ticker: r.ticker}
	var mu sync.Mutex
	fail := func(section string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if report.Errors == nil {
			report.Errors = make(map[string]string)
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			report.Errors[section] = appErr.Message
			return
		}
		report.Errors[section] = err.Error()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := s.fundamental(gctx, r)
		if err != nil {
			fail(SectionFundamental, err)
			return nil
		}
		report.Fundamental = f
		return nil
	})
	g.Go(func() error {
		t, err := s.technical(gctx, r, technical.DefaultPeriodDays)
		if err != nil {
			fail(SectionTechnical, err)
			return nil
		}
		report.Technical = t
		return nil
	})
	g.Go(func() error {
		score, err := s.sentiment.GetSentiment(gctx, r.symbol)
		if err != nil {
			fail(SectionSentiment, err)
			return nil
		}
		report.Sentiment = score
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err)
	}
	return report, nil
}
