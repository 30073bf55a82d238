package technical

import "math"

// Weights maps feature name to its share of the score.
type Weights map[string]float64

var rawBaseWeights = Weights{
	FeatureSMATrend: 0.08,
	FeatureEMATrend: 0.06,
	FeatureMACD:     0.09,
	FeatureADX:      0.05,
	FeatureRSI:      0.08,
	FeatureATR:      0.05,
	FeatureBoll:     0.06,
	FeatureOBV:      0.05,
	FeatureCMF:      0.04,
	FeatureMFI:      0.03,
	FeatureStoch:    0.04,
	FeatureCCI:      0.03,
	FeatureVolZ:     0.02,
}

// trendRegime is the ADX feature level above which trend-following
// features are boosted.
const trendRegime = 0.3

// BaseWeights returns the regime-neutral weights, normalised to sum to 1.
func BaseWeights() Weights {
	w := make(Weights, len(rawBaseWeights))
	for k, v := range rawBaseWeights {
		w[k] = v
	}
	return w.normalized()
}

// AdaptWeights shifts weight towards trend features when ADX says the market
// is trending, and towards mean-reversion features otherwise. The result
// sums to 1.
func AdaptWeights(base Weights, feats Features) Weights {
	w := make(Weights, len(base))
	for k, v := range base {
		w[k] = v
	}

	boost := math.Max(0, feats[FeatureADX])
	if boost > trendRegime {
		for _, k := range []string{FeatureSMATrend, FeatureEMATrend, FeatureMACD} {
			if _, ok := w[k]; ok {
				w[k] *= 1 + 0.5*boost
			}
		}
		if _, ok := w[FeatureBoll]; ok {
			w[FeatureBoll] *= math.Max(0.4, 1-0.8*boost)
		}
	} else {
		if _, ok := w[FeatureBoll]; ok {
			w[FeatureBoll] *= 1 + 0.8*(trendRegime-boost)
		}
		if _, ok := w[FeatureRSI]; ok {
			w[FeatureRSI] *= 1 + 0.3*(trendRegime-boost)
		}
	}
	return w.normalized()
}

func (w Weights) normalized() Weights {
	sum := 0.0
	for _, v := range w {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	if sum > 1e-9 {
		for k := range w {
			w[k] /= sum
		}
	}
	return w
}

// Aggregate folds features into a 0-100 score and returns each feature's
// signed contribution.
func Aggregate(feats Features, weights Weights) (float64, map[string]float64) {
	s := 0.0
	breakdown := make(map[string]float64, len(weights))
	for k, w := range weights {
		v := feats[k]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		contr := w * v
		breakdown[k] = contr
		s += contr
	}

	score := (s + 1) / 2 * 100
	if math.IsNaN(score) || math.IsInf(score, 0) {
		score = 50
	}
	return score, breakdown
}

// Confidence mixes conviction (total absolute contribution per feature)
// with trend strength.
func Confidence(breakdown map[string]float64, feats Features) float64 {
	mag := 0.0
	for _, v := range breakdown {
		mag += math.Abs(v)
	}
	conf := (mag/float64(len(rawBaseWeights)))*0.8 + math.Abs(feats[FeatureADX])*0.2
	return clamp(conf, 0, 1)
}
