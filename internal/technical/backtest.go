package technical

import (
	"errors"
	"fmt"

	"alphafusion/internal/provider"
)

// Backtest defaults.
const (
	BacktestWarmup  = 200
	DefaultHorizon  = 10
	DefaultStep     = 5
	MaxHorizon      = 60
	MaxStep         = 60
)

// ErrInvalidWindow is returned for a horizon or step outside its range.
var ErrInvalidWindow = errors.New("invalid backtest window")

// ValidateWindow checks horizon and step before any history is fetched.
// Zero selects the default for either.
func ValidateWindow(horizon, step int) error {
	if horizon < 0 || horizon > MaxHorizon {
		return fmt.Errorf("%w: horizon must be between 1 and %d, or 0 for the default of %d", ErrInvalidWindow, MaxHorizon, DefaultHorizon)
	}
	if step < 0 || step > MaxStep {
		return fmt.Errorf("%w: step must be between 1 and %d, or 0 for the default of %d", ErrInvalidWindow, MaxStep, DefaultStep)
	}
	return nil
}

// SignalStats summarises forward returns after one kind of signal.
type SignalStats struct {
	Count            int     `json:"count"`
	AvgForwardReturn float64 `json:"avg_forward_return"`
}

// CredibilityReport measures how well past signals predicted the move over
// the following horizon bars.
type CredibilityReport struct {
	Ticker      string                 `json:"ticker"`
	Horizon     int                    `json:"horizon"`
	Step        int                    `json:"step"`
	Samples     int                    `json:"samples"`
	BuyCount    int                    `json:"buy_count"`
	BuyHitRate  float64                `json:"buy_hit_rate"`
	Accuracy    float64                `json:"directional_accuracy"`
	Credibility float64                `json:"credibility"`
	BySignal    map[Signal]SignalStats `json:"by_signal"`
}

// direction is the move a signal predicts: +1 up, -1 down, 0 no call.
func (s Signal) direction() int {
	switch s {
	case SignalBuy:
		return 1
	case SignalExit, SignalExitAnomaly, SignalTightenStop:
		return -1
	default:
		return 0
	}
}

// Backtest walks forward through bars. From bar BacktestWarmup onwards,
// every step bars, it scores the prefix ending at that bar and compares the
// signal with the return over the next horizon bars.
func Backtest(bars []provider.Bar, horizon, step int) (*CredibilityReport, error) {
	if err := ValidateWindow(horizon, step); err != nil {
		return nil, err
	}
	if horizon == 0 {
		horizon = DefaultHorizon
	}
	if step == 0 {
		step = DefaultStep
	}
	if len(bars) < BacktestWarmup+horizon+1 {
		return nil, ErrInsufficientHistory
	}

	report := &CredibilityReport{Horizon: horizon, Step: step, BySignal: map[Signal]SignalStats{}}
	sums := map[Signal]float64{}
	var directional, correct, buyHits int

	for i := BacktestWarmup; i+horizon < len(bars); i += step {
		eval, err := Evaluate(bars[:i+1])
		if err != nil {
			continue
		}
		entry := bars[i].Close
		if entry <= 0 {
			continue
		}
		fwd := bars[i+horizon].Close/entry - 1

		report.Samples++
		stats := report.BySignal[eval.Signal]
		stats.Count++
		report.BySignal[eval.Signal] = stats
		sums[eval.Signal] += fwd

		if eval.Signal == SignalBuy {
			report.BuyCount++
			if fwd > 0 {
				buyHits++
			}
		}
		if dir := eval.Signal.direction(); dir != 0 {
			directional++
			if (dir > 0 && fwd > 0) || (dir < 0 && fwd < 0) {
				correct++
			}
		}
	}

	if report.Samples == 0 {
		return nil, ErrInsufficientHistory
	}
	for sig, stats := range report.BySignal {
		stats.AvgForwardReturn = sums[sig] / float64(stats.Count)
		report.BySignal[sig] = stats
	}
	if report.BuyCount > 0 {
		report.BuyHitRate = float64(buyHits) / float64(report.BuyCount)
	}
	if directional > 0 {
		report.Accuracy = float64(correct) / float64(directional)
	}
	report.Credibility = report.Accuracy * 100
	return report, nil
}
