package sentiment

import "strings"

// Polarity is the tone of one article.
type Polarity int

const (
	Negative Polarity = -1
	Neutral  Polarity = 0
	Positive Polarity = 1
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// polarityBand is the averaged word score a text must exceed to be
// classified as positive or negative.
const polarityBand = 0.1

// Classifier labels a text.
type Classifier interface {
	Classify(text string) Polarity
}

// Lexicon is a word-list classifier tuned for market news.
type Lexicon struct {
	positive map[string]float64
	negative map[string]float64
}

// NewLexicon returns the default finance lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{
		positive: map[string]float64{
			"surge": 1.0, "surges": 1.0, "soar": 1.0, "soars": 1.0, "skyrocket": 1.0,
			"record": 0.9, "bullish": 0.95, "rally": 0.95, "rallies": 0.95, "breakout": 0.9,
			"outperform": 0.9, "outperforms": 0.9, "multibagger": 0.9,
			"beat": 0.85, "beats": 0.85, "upgrade": 0.85, "upgrades": 0.85, "upgraded": 0.85,
			"exceed": 0.85, "exceeds": 0.85, "optimistic": 0.8,
			"profit": 0.8, "profits": 0.8, "growth": 0.8, "gain": 0.8, "gains": 0.8,
			"jump": 0.8, "jumps": 0.8, "strong": 0.8, "boost": 0.8, "boosts": 0.8,
			"wins": 0.8, "win": 0.8, "order": 0.6, "orders": 0.6, "dividend": 0.7, "bonus": 0.7,
			"buyback": 0.75, "acquire": 0.6, "acquires": 0.6, "expansion": 0.75, "expands": 0.75,
			"improve": 0.75, "improves": 0.75, "rises": 0.7, "rising": 0.75, "climbs": 0.75,
			"recover": 0.7, "recovers": 0.7, "rebound": 0.7, "rebounds": 0.7, "momentum": 0.7,
			"upside": 0.75, "positive": 0.65, "rise": 0.65, "higher": 0.65, "increase": 0.65,
			"better": 0.65, "solid": 0.65, "robust": 0.6, "healthy": 0.55, "resilient": 0.6,
			"buy": 0.6, "accumulate": 0.6, "overweight": 0.6, "approval": 0.6, "launch": 0.5,
			"launches": 0.5, "stable": 0.5, "steady": 0.5, "highs": 0.7,
		},
		negative: map[string]float64{
			"crash": 1.0, "crashes": 1.0, "plunge": 1.0, "plunges": 1.0, "collapse": 1.0,
			"fraud": 1.0, "default": 0.95, "defaults": 0.95, "bankruptcy": 0.95, "insolvency": 0.95,
			"plummet": 0.95, "plummets": 0.95, "tumble": 0.95, "tumbles": 0.95, "rout": 0.95,
			"crisis": 0.95, "panic": 0.9, "raid": 0.9, "raids": 0.9, "probe": 0.85,
			"bearish": 0.85, "downgrade": 0.85, "downgrades": 0.85, "downgraded": 0.85,
			"penalty": 0.85, "fine": 0.6, "fined": 0.85, "lawsuit": 0.85, "ban": 0.8, "banned": 0.8,
			"miss": 0.8, "misses": 0.8, "loss": 0.8, "losses": 0.8, "slump": 0.8, "slumps": 0.8,
			"decline": 0.8, "declines": 0.8, "underperform": 0.8, "fail": 0.8, "fails": 0.8,
			"weak": 0.75, "weakness": 0.75, "drop": 0.75, "drops": 0.75, "fall": 0.75,
			"falls": 0.75, "falling": 0.75, "sell": 0.6, "selloff": 0.85, "sell-off": 0.85,
			"concern": 0.7, "concerns": 0.7, "worry": 0.7, "worries": 0.7, "uncertain": 0.7,
			"risk": 0.65, "risks": 0.65, "pressure": 0.6, "lower": 0.6, "cut": 0.5, "cuts": 0.5,
			"negative": 0.6, "poor": 0.6, "slowdown": 0.6, "dip": 0.55, "dips": 0.55,
			"slips": 0.55, "slip": 0.55, "caution": 0.55, "cautious": 0.55, "headwind": 0.5,
			"headwinds": 0.5, "underweight": 0.6, "resigns": 0.6, "lows": 0.7, "volatile": 0.5,
		},
	}
}

// Score averages the weights of the lexicon words found in text. Negative
// words count against the total.
func (l *Lexicon) Score(text string) float64 {
	var score float64
	var matches int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?\"'()[]{}:;")
		if v, ok := l.positive[word]; ok {
			score += v
			matches++
		} else if v, ok := l.negative[word]; ok {
			score -= v
			matches++
		}
	}
	if matches == 0 {
		return 0
	}
	return score / float64(matches)
}

// Classify implements Classifier.
func (l *Lexicon) Classify(text string) Polarity {
	switch s := l.Score(text); {
	case s > polarityBand:
		return Positive
	case s < -polarityBand:
		return Negative
	default:
		return Neutral
	}
}
