package technical

import "math"

// Signal is the trading action suggested by the technical score.
type Signal string

const (
	SignalBuy              Signal = "BUY"
	SignalHold             Signal = "HOLD"
	SignalTightenStop      Signal = "TIGHTEN_STOP"
	SignalExit             Signal = "EXIT"
	SignalVigilanceHighVol Signal = "VIGILANCE_HIGH_VOL"
	SignalExitAnomaly      Signal = "EXIT_ANOMALY"
)

const (
	anomalyZ         = 3.0
	minBuyConfidence = 0.35
)

// RecommendSignal maps score bands to a signal, downgrades it when the latest
// return or volume is anomalous, and demotes low-confidence buys.
func RecommendSignal(score, confidence, retZ, volZ float64) Signal {
	var signal Signal
	switch {
	case score < 30:
		signal = SignalExit
	case score < 45:
		signal = SignalTightenStop
	case score < 60:
		signal = SignalHold
	default:
		signal = SignalBuy
	}

	if math.Abs(retZ) > anomalyZ || math.Abs(volZ) > anomalyZ {
		switch signal {
		case SignalBuy:
			signal = SignalTightenStop
		case SignalHold:
			signal = SignalVigilanceHighVol
		case SignalTightenStop, SignalExit:
			signal = SignalExitAnomaly
		}
	}

	if confidence < minBuyConfidence && signal == SignalBuy {
		signal = SignalHold
	}
	return signal
}

// SmartStop places a stop-loss a signal-dependent number of ATRs below price.
// The stop is always below 99.5% of price and never negative.
func SmartStop(price, atr float64, signal Signal) float64 {
	if !(price > 0) {
		return 0
	}
	if math.IsNaN(atr) || atr <= 0 {
		atr = price * 0.01
	}

	var stop float64
	switch signal {
	case SignalBuy:
		stop = price - 3*atr
	case SignalHold:
		stop = price - 2*atr
	case SignalTightenStop, SignalVigilanceHighVol:
		stop = price - atr
	default:
		stop = price - 0.5*atr
	}

	stop = math.Min(stop, price*0.995)
	return math.Max(0, stop)
}

// Interpret gives a short verdict for a technical score.
func Interpret(score float64) string {
	switch {
	case score > 70:
		return "Strong Technical Buy"
	case score > 60:
		return "Moderate Technical Buy"
	case score < 30:
		return "Strong Technical Sell/Avoid"
	case score < 40:
		return "Moderate Technical Sell/Avoid"
	default:
		return "Hold"
	}
}
