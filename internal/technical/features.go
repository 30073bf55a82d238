package technical

import (
	"math"
)

// Feature names. Every feature lies in [-1, 1]; positive is bullish.
const (
	FeatureSMATrend = "SMA_trend"
	FeatureEMATrend = "EMA_trend"
	FeatureMACD     = "MACD"
	FeatureADX      = "ADX"
	FeatureRSI      = "RSI"
	FeatureATR      = "ATR"
	FeatureBoll     = "BOLL"
	FeatureOBV      = "OBV"
	FeatureCMF      = "CMF"
	FeatureMFI      = "MFI"
	FeatureStoch    = "STOCH"
	FeatureCCI      = "CCI"
	FeatureVolZ     = "VOL_Z"
)

// FeatureOrder lists the scored features in a stable order.
var FeatureOrder = []string{
	FeatureSMATrend, FeatureEMATrend, FeatureMACD, FeatureADX, FeatureRSI, FeatureATR,
	FeatureBoll, FeatureOBV, FeatureCMF, FeatureMFI, FeatureStoch, FeatureCCI, FeatureVolZ,
}

const (
	adxTrendThreshold = 25.0
	volumeSpikeZ      = 1.5
)

// Features maps feature name to its normalised value.
type Features map[string]float64

// Normalize turns the latest bar of f into features. Indicators that are not
// yet defined contribute a neutral 0.
func Normalize(f *Frame) Features {
	feats := Features{}

	sma20, sma50, sma200 := last(f.SMA20), last(f.SMA50), last(f.SMA200)
	switch {
	case anyNaN(sma20, sma50, sma200):
		feats[FeatureSMATrend] = 0
	case sma20 > sma50 && sma50 > sma200:
		feats[FeatureSMATrend] = 1
	case sma20 < sma50 && sma50 < sma200:
		feats[FeatureSMATrend] = -1
	default:
		feats[FeatureSMATrend] = 0
	}

	ema12, ema26 := last(f.EMA12), last(f.EMA26)
	switch {
	case anyNaN(ema12, ema26):
		feats[FeatureEMATrend] = 0
	case ema12 > ema26:
		feats[FeatureEMATrend] = 1
	default:
		feats[FeatureEMATrend] = -1
	}

	feats[FeatureMACD] = macdFeature(f.MACD.Histogram)
	feats[FeatureADX] = math.Tanh((last(f.ADX.ADX) - adxTrendThreshold) / 10)
	feats[FeatureRSI] = clamp((last(f.RSI)-50)/50, -1, 1)

	closePrice := last(f.Close)
	if atr := last(f.ATR); atr > 0 && closePrice > 0 {
		feats[FeatureATR] = math.Tanh((0.02 - atr/(closePrice+1e-9)) * 50)
	} else {
		feats[FeatureATR] = 0
	}

	mid := last(f.Bands.Middle)
	width := last(f.Bands.Upper) - last(f.Bands.Lower)
	if mid != 0 && width > 1e-9 {
		feats[FeatureBoll] = math.Tanh(-(closePrice - mid) / width)
	} else {
		feats[FeatureBoll] = 0
	}

	feats[FeatureOBV] = obvFeature(f.OBV)
	feats[FeatureCMF] = math.Tanh(last(f.CMF) * 5)
	feats[FeatureMFI] = clamp((last(f.MFI)-50)/50, -1, 1)

	k, d := last(f.Stoch.K), last(f.Stoch.D)
	switch {
	case anyNaN(k, d):
		feats[FeatureStoch] = 0
	case k > d:
		feats[FeatureStoch] = 1
	default:
		feats[FeatureStoch] = -1
	}

	feats[FeatureCCI] = math.Tanh(last(f.CCI) / 200)

	volz, ret := last(f.VolZ), last(f.Ret)
	switch {
	case volz > volumeSpikeZ && ret > 0:
		feats[FeatureVolZ] = 1
	case volz > volumeSpikeZ && ret < 0:
		feats[FeatureVolZ] = -1
	default:
		feats[FeatureVolZ] = 0
	}

	for k, v := range feats {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			feats[k] = 0
		}
	}
	return feats
}

// macdFeature is the z-score of the latest histogram value against its own
// history, squashed by tanh. It needs more than 10 defined points.
func macdFeature(hist []float64) float64 {
	vals := dropNaN(hist)
	if len(vals) <= 10 {
		return 0
	}
	latest := last(hist)
	if math.IsNaN(latest) {
		return 0
	}
	mean, sd := meanStd(vals)
	return math.Tanh((latest - mean) / (sd + 1e-9))
}

// obvFeature compares the latest OBV with its 20-bar mean.
func obvFeature(obv []float64) float64 {
	vals := dropNaN(obv)
	if len(vals) <= 20 {
		return 0
	}
	window := vals[len(vals)-20:]
	mean := 0.0
	for _, v := range window {
		mean += v
	}
	mean /= 20
	if vals[len(vals)-1] > mean {
		return 1
	}
	return -1
}

func dropNaN(s []float64) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// meanStd returns the mean and sample standard deviation.
func meanStd(vals []float64) (float64, float64) {
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	if len(vals) < 2 {
		return mean, 0
	}
	ss := 0.0
	for _, v := range vals {
		ss += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(ss / float64(len(vals)-1))
}

func anyNaN(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
