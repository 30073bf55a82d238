// Package scoring holds the heuristics that turn the three 0-100 scores
// (sentiment, technical, fundamental) into the labels shown on the dashboard.
package scoring

import (
	"alphafusion/internal/config"
	"alphafusion/internal/models"
)

// Recommendation is the buy/hold/sell label used by search and trends.
type Recommendation string

const (
	RecommendBuy  Recommendation = "buy"
	RecommendHold Recommendation = "hold"
	RecommendSell Recommendation = "sell"
)

// ParseRecommendation returns the label for s and whether it is known.
func ParseRecommendation(s string) (Recommendation, bool) {
	switch r := Recommendation(s); r {
	case RecommendBuy, RecommendHold, RecommendSell:
		return r, true
	}
	return "", false
}

// Metrics is one set of the three scores.
type Metrics struct {
	Sentiment   float64 `json:"sentiment"`
	Technical   float64 `json:"technical"`
	Fundamental float64 `json:"fundamental"`
}

// Mean returns the arithmetic mean of the three scores.
func (m Metrics) Mean() float64 {
	return Mean(m.Sentiment, m.Technical, m.Fundamental)
}

// Mean returns (s+t+f)/3.
func Mean(s, t, f float64) float64 {
	return (s + t + f) / 3
}

// Scorer applies configured thresholds.
type Scorer struct {
	threshold float64
	buyAt     float64
	holdAt    float64
}

// NewScorer builds a Scorer from the scoring configuration.
func NewScorer(cfg config.Scoring) *Scorer {
	return &Scorer{
		threshold: cfg.StatusThreshold,
		buyAt:     cfg.Recommendation.Buy,
		holdAt:    cfg.Recommendation.Hold,
	}
}

// Threshold returns the investable cut-off.
func (s *Scorer) Threshold() float64 { return s.threshold }

// Status labels a stock investable iff the mean of its scores reaches the
// threshold.
func (s *Scorer) Status(m Metrics) models.HoldingStatus {
	return Status(m, s.threshold)
}

// Recommend maps a 0-100 score to buy, hold or sell.
func (s *Scorer) Recommend(score float64) Recommendation {
	switch {
	case score >= s.buyAt:
		return RecommendBuy
	case score >= s.holdAt:
		return RecommendHold
	default:
		return RecommendSell
	}
}

// Status is the threshold comparison without a Scorer.
func Status(m Metrics, threshold float64) models.HoldingStatus {
	if m.Mean() >= threshold {
		return models.HoldingStatusInvestable
	}
	return models.HoldingStatusRisky
}
