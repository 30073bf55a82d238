package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Scoring holds the tunable thresholds used to label stocks. Values in the
// YAML file override the defaults field by field.
type Scoring struct {
	StatusThreshold float64              `yaml:"status_threshold"`
	Recommendation  RecommendationConfig `yaml:"recommendation"`
	Sentiment       SentimentConfig      `yaml:"sentiment"`
}

type RecommendationConfig struct {
	Buy  float64 `yaml:"buy"`
	Hold float64 `yaml:"hold"`
}

type SentimentConfig struct {
	Sources         map[string]float64 `yaml:"sources"`
	FallbackSources map[string]float64 `yaml:"fallback_sources"`
	NeutralWeight   float64            `yaml:"neutral_weight"`
}

// DefaultScoring returns the built-in scoring configuration.
func DefaultScoring() Scoring {
	return Scoring{
		StatusThreshold: 60,
		Recommendation:  RecommendationConfig{Buy: 75, Hold: 60},
		Sentiment: SentimentConfig{
			Sources: map[string]float64{
				"EconomicTimes": 1.0,
				"GoogleNews":    0.9,
			},
			FallbackSources: map[string]float64{
				"GoogleNews": 0.9,
			},
			NeutralWeight: 0.3,
		},
	}
}

// LoadScoring reads the scoring YAML at path on top of DefaultScoring.
// A missing file is not an error.
func LoadScoring(path string) (Scoring, error) {
	scoring := DefaultScoring()
	if path == "" {
		return scoring, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return scoring, nil
	}
	if err != nil {
		return scoring, fmt.Errorf("failed to read scoring config: %w", err)
	}

	if err := yaml.Unmarshal(data, &scoring); err != nil {
		return scoring, fmt.Errorf("failed to parse scoring config %s: %w", path, err)
	}
	if err := scoring.Validate(); err != nil {
		return scoring, fmt.Errorf("invalid scoring config %s: %w", path, err)
	}
	return scoring, nil
}

// Validate checks that thresholds lie on the 0-100 score scale.
func (s Scoring) Validate() error {
	inRange := func(v float64) bool { return v >= 0 && v <= 100 }
	if !inRange(s.StatusThreshold) {
		return fmt.Errorf("status_threshold must be within 0..100, got %v", s.StatusThreshold)
	}
	if !inRange(s.Recommendation.Buy) || !inRange(s.Recommendation.Hold) {
		return fmt.Errorf("recommendation cut-offs must be within 0..100")
	}
	if s.Recommendation.Hold > s.Recommendation.Buy {
		return fmt.Errorf("recommendation.hold (%v) must not exceed recommendation.buy (%v)", s.Recommendation.Hold, s.Recommendation.Buy)
	}
	for name, w := range s.Sentiment.Sources {
		if w <= 0 {
			return fmt.Errorf("sentiment source %q must have a positive weight", name)
		}
	}
	return nil
}
