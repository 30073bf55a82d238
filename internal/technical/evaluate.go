package technical

import (
	"errors"
	"math"

	"alphafusion/internal/provider"
)

// ErrInsufficientHistory is returned when there are too few bars to score.
var ErrInsufficientHistory = errors.New("insufficient price history")

// MinBars is the smallest history Evaluate accepts.
const MinBars = 2

// Evaluation is the score of the latest bar of a series.
type Evaluation struct {
	Frame      *Frame
	Features   Features
	Weights    Weights
	Breakdown  map[string]float64
	Score      float64
	Confidence float64
	Signal     Signal
	SmartStop  float64
	RetZ       float64
	VolZ       float64
}

// Evaluate runs the full scoring pipeline on bars (oldest first).
func Evaluate(bars []provider.Bar) (*Evaluation, error) {
	if len(bars) < MinBars {
		return nil, ErrInsufficientHistory
	}
	frame := Compute(bars)
	if math.IsNaN(last(frame.Close)) {
		return nil, ErrInsufficientHistory
	}
	return evaluateFrame(frame), nil
}

func evaluateFrame(frame *Frame) *Evaluation {
	feats := Normalize(frame)
	weights := AdaptWeights(BaseWeights(), feats)
	score, breakdown := Aggregate(feats, weights)
	confidence := Confidence(breakdown, feats)

	retZ, volZ := zeroIfNaN(last(frame.RetZ)), zeroIfNaN(last(frame.VolZ))
	signal := RecommendSignal(score, confidence, retZ, volZ)

	return &Evaluation{
		Frame:      frame,
		Features:   feats,
		Weights:    weights,
		Breakdown:  breakdown,
		Score:      score,
		Confidence: confidence,
		Signal:     signal,
		SmartStop:  SmartStop(last(frame.Close), last(frame.ATR), signal),
		RetZ:       retZ,
		VolZ:       volZ,
	}
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// nullable turns NaN into a JSON null.
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
