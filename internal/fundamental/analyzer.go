package fundamental

import (
	"context"
	"fmt"

	"alphafusion/internal/provider"
)

// Report is the fundamental analysis of one ticker.
type Report struct {
	Ticker         string  `json:"ticker"`
	Metrics        Metrics `json:"metrics"`
	Scores         Scores  `json:"scores"`
	Recommendation string  `json:"recommendation"`
}

// Analyzer runs fundamental analysis against a financials source.
type Analyzer struct {
	source provider.FundamentalsSource
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(source provider.FundamentalsSource) *Analyzer {
	return &Analyzer{source: source}
}

// Analyze fetches the financials for ticker and scores them.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (*Report, error) {
	data, err := a.source.Fundamentals(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("financials for %s: %w", ticker, err)
	}
	return Analyze(ticker, data), nil
}

// Analyze scores already-fetched financials.
func Analyze(ticker string, data *provider.Fundamentals) *Report {
	metrics := CalculateMetrics(data)
	scores := Score(metrics)
	return &Report{
		Ticker:         ticker,
		Metrics:        metrics,
		Scores:         scores,
		Recommendation: Recommend(scores.Composite),
	}
}
