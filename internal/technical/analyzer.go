package technical

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"alphafusion/internal/logger"
	"alphafusion/internal/provider"
)

// Data modes reported with an analysis.
const (
	ModeRealtime   = "REAL-TIME (1m)"
	ModeHistorical = "HISTORICAL (1d)"
)

const (
	// DefaultPeriodDays is the default length of the recent close series.
	DefaultPeriodDays = 90
	// MaxPeriodDays caps the recent close series at the daily history fetched.
	MaxPeriodDays = 365

	fullHistoryBars = 200
)

// MACDSnapshot is the latest MACD reading.
type MACDSnapshot struct {
	MACD      *float64 `json:"macd"`
	Signal    *float64 `json:"signal"`
	Histogram *float64 `json:"histogram"`
}

// Report is the technical analysis of one ticker.
type Report struct {
	Ticker         string             `json:"ticker"`
	DataMode       string             `json:"data_mode"`
	BarTime        time.Time          `json:"bar_time"`
	LatestClose    float64            `json:"latest_close"`
	Open           float64            `json:"open"`
	High           float64            `json:"high"`
	Low            float64            `json:"low"`
	Volume         float64            `json:"volume"`
	ChangePercent  float64            `json:"change_percent"`
	RSILatest      *float64           `json:"rsi_latest"`
	MACD           MACDSnapshot       `json:"macd"`
	Score          float64            `json:"score"`
	Interpretation string             `json:"interpretation"`
	Signal         Signal             `json:"signal"`
	Confidence     float64            `json:"confidence"`
	SmartStop      float64            `json:"smart_stop"`
	Features       Features           `json:"features"`
	Weights        Weights            `json:"weights"`
	Breakdown      map[string]float64 `json:"breakdown"`
	Chart          Chart              `json:"chart"`
	History        []ChartPoint       `json:"history"`
}

// Analyzer runs technical analysis against a history source.
type Analyzer struct {
	source provider.HistorySource
	now    func() time.Time
	log    *zap.SugaredLogger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(source provider.HistorySource) *Analyzer {
	return &Analyzer{source: source, now: time.Now, log: logger.Named("technical")}
}

// Analyze scores ticker. While NSE is open it scores one-minute bars from the
// last week; otherwise, or when the intraday series is too short, a year of
// daily bars. periodDays bounds the recent close series in the report.
func (a *Analyzer) Analyze(ctx context.Context, ticker string, periodDays int) (*Report, error) {
	if periodDays <= 0 {
		periodDays = DefaultPeriodDays
	}
	periodDays = min(periodDays, MaxPeriodDays)

	daily, err := a.source.History(ctx, ticker, provider.Range1y, provider.Interval1d)
	if err != nil {
		return nil, fmt.Errorf("daily history for %s: %w", ticker, err)
	}

	bars, mode := daily, ModeHistorical
	if IsMarketOpen(a.now()) {
		intraday, err := a.source.History(ctx, ticker, provider.Range7d, provider.Interval1m)
		switch {
		case err != nil:
			a.log.Warnw("intraday history unavailable, using daily bars", "ticker", ticker, "error", err)
		case len(intraday) >= fullHistoryBars || len(intraday) >= len(daily):
			bars, mode = intraday, ModeRealtime
		}
	}

	eval, err := Evaluate(bars)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}

	intradayChart, err := a.source.History(ctx, ticker, provider.Range1d, provider.Interval5m)
	if err != nil {
		a.log.Warnw("1D chart unavailable", "ticker", ticker, "error", err)
		intradayChart = nil
	}

	latest := bars[len(bars)-1]
	f := eval.Frame
	return &Report{
		Ticker:        ticker,
		DataMode:      mode,
		BarTime:       latest.Time,
		LatestClose:   latest.Close,
		Open:          latest.Open,
		High:          latest.High,
		Low:           latest.Low,
		Volume:        latest.Volume,
		ChangePercent: last(f.Ret) * 100,
		RSILatest:     nullable(last(f.RSI)),
		MACD: MACDSnapshot{
			MACD:      nullable(last(f.MACD.MACD)),
			Signal:    nullable(last(f.MACD.Signal)),
			Histogram: nullable(last(f.MACD.Histogram)),
		},
		Score:          eval.Score,
		Interpretation: Interpret(eval.Score),
		Signal:         eval.Signal,
		Confidence:     eval.Confidence,
		SmartStop:      eval.SmartStop,
		Features:       eval.Features,
		Weights:        eval.Weights,
		Breakdown:      eval.Breakdown,
		Chart:          BuildChart(intradayChart, daily),
		History:        TailPoints(daily, periodDays),
	}, nil
}

// Credibility backtests the signal on two years of daily bars.
func (a *Analyzer) Credibility(ctx context.Context, ticker string, horizon, step int) (*CredibilityReport, error) {
	if err := ValidateWindow(horizon, step); err != nil {
		return nil, err
	}
	bars, err := a.source.History(ctx, ticker, provider.Range2y, provider.Interval1d)
	if err != nil {
		return nil, fmt.Errorf("daily history for %s: %w", ticker, err)
	}
	report, err := Backtest(bars, horizon, step)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}
	report.Ticker = ticker
	return report, nil
}
