package fundamental

import "math"

// Scores are the 0-100 sub-scores and their weighted composite.
type Scores struct {
	Valuation     Number `json:"valuation"`
	Profitability Number `json:"profitability"`
	Health        Number `json:"health"`
	Growth        Number `json:"growth"`
	Composite     Number `json:"composite"`
}

// Composite weights.
const (
	valuationWeight     = 0.30
	profitabilityWeight = 0.30
	healthWeight        = 0.20
	growthWeight        = 0.20

	// unknownPEG is treated as a very expensive PEG.
	unknownPEG = 999
)

// higherIsBetter maps val onto 0-100: 50 at good, 100 at excellent and above.
// Unknown values score a neutral 50; non-positive values score 0.
func higherIsBetter(val Number, good, excellent float64) float64 {
	if !val.Known() {
		return 50
	}
	v := float64(val)
	if v <= 0 && good > 0 {
		return 0
	}
	if v >= excellent {
		return 100
	}
	if v <= good {
		if good == 0 {
			if v > 0 {
				return 50
			}
			return 0
		}
		return v / good * 50
	}
	return 50 + (v-good)/(excellent-good)*50
}

// lowerIsBetter maps val onto 0-100: 100 at excellent and below, 0 at fair
// and above. Unknown values score a neutral 50.
func lowerIsBetter(val Number, fair, excellent float64) float64 {
	if !val.Known() {
		return 50
	}
	v := float64(val)
	if v <= excellent {
		return 100
	}
	if v >= fair {
		return 0
	}
	return (fair - v) / (fair - excellent) * 100
}

// Score rates the metrics.
func Score(m Metrics) Scores {
	peg := m.PEG
	if !peg.Known() || peg <= 0 {
		peg = unknownPEG
	}
	valuation := nanMean(
		lowerIsBetter(m.PE, 50, 15),
		lowerIsBetter(m.PB, 10, 1.5),
		lowerIsBetter(m.PS, 6, 1.5),
		lowerIsBetter(peg, 2.5, 0.5),
	)
	profitability := nanMean(
		higherIsBetter(m.ROEPct, 15, 30),
		higherIsBetter(m.ROAPct, 7, 15),
		higherIsBetter(m.NetProfitMargin, 10, 25),
	)
	health := nanMean(
		lowerIsBetter(m.DebtToEquity, 1.5, 0.2),
		higherIsBetter(m.CurrentRatio, 1.2, 3),
		higherIsBetter(m.InterestCoverage, 5, 20),
	)
	growth := nanMean(
		higherIsBetter(m.EPSGrowthPct, 10, 25),
		higherIsBetter(m.FCFPerShare, 30, 70),
	)

	composite := valuation*valuationWeight + profitability*profitabilityWeight +
		health*healthWeight + growth*growthWeight

	return Scores{
		Valuation:     Number(valuation),
		Profitability: Number(profitability),
		Health:        Number(health),
		Growth:        Number(growth),
		Composite:     Number(composite),
	}
}

func nanMean(vals ...float64) float64 {
	sum, n := 0.0, 0
	for _, v := range vals {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Recommendation labels.
const (
	RecommendationStrongBuy  = "Strong Buy (Fundamentals look excellent)"
	RecommendationBuy        = "Buy (Fundamentals look solid)"
	RecommendationHold       = "Hold (Fundamentals are average)"
	RecommendationReduce     = "Reduce / Sell (Fundamentals look weak)"
	RecommendationStrongSell = "Strong Sell / Avoid (Fundamentals look poor)"
	RecommendationUnknown    = "N/A (Could not calculate score)"
)

// Recommend maps a composite score to a recommendation.
func Recommend(score Number) string {
	switch {
	case !score.Known():
		return RecommendationUnknown
	case score >= 80:
		return RecommendationStrongBuy
	case score >= 65:
		return RecommendationBuy
	case score >= 50:
		return RecommendationHold
	case score >= 35:
		return RecommendationReduce
	default:
		return RecommendationStrongSell
	}
}
