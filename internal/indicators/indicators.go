// Package indicators computes technical indicator series over OHLCV columns.
// Every function returns a slice the same length as its input; positions
// without enough history hold NaN.
package indicators

import "math"

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA is the simple moving average over length bars.
func SMA(src []float64, length int) []float64 {
	out := nanSlice(len(src))
	if length <= 0 {
		return out
	}
	sum, count := 0.0, 0
	for i, v := range src {
		if math.IsNaN(v) {
			sum, count = 0, 0
			continue
		}
		sum += v
		count++
		if count > length {
			sum -= src[i-length]
			count = length
		}
		if count == length {
			out[i] = sum / float64(length)
		}
	}
	return out
}

// EMA is the exponential moving average seeded with the SMA of the first
// length valid values. Leading NaNs are skipped.
func EMA(src []float64, length int) []float64 {
	return smooth(src, length, 2/float64(length+1))
}

// RMA is Wilder's smoothing (alpha = 1/length), seeded with an SMA.
func RMA(src []float64, length int) []float64 {
	return smooth(src, length, 1/float64(length))
}

func smooth(src []float64, length int, alpha float64) []float64 {
	out := nanSlice(len(src))
	if length <= 0 {
		return out
	}
	start := 0
	for start < len(src) && math.IsNaN(src[start]) {
		start++
	}
	if len(src)-start < length {
		return out
	}
	seed := 0.0
	for i := start; i < start+length; i++ {
		seed += src[i]
	}
	prev := seed / float64(length)
	out[start+length-1] = prev
	for i := start + length; i < len(src); i++ {
		if math.IsNaN(src[i]) {
			out[i] = prev
			continue
		}
		prev = alpha*src[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

// MACDResult holds the MACD line, its signal line and their difference.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes EMA(fast) - EMA(slow) with an EMA(signal) signal line.
func MACD(close []float64, fast, slow, signal int) MACDResult {
	fastEMA := EMA(close, fast)
	slowEMA := EMA(close, slow)
	line := nanSlice(len(close))
	for i := range close {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			line[i] = fastEMA[i] - slowEMA[i]
		}
	}
	sig := EMA(line, signal)
	hist := nanSlice(len(close))
	for i := range close {
		if !math.IsNaN(line[i]) && !math.IsNaN(sig[i]) {
			hist[i] = line[i] - sig[i]
		}
	}
	return MACDResult{MACD: line, Signal: sig, Histogram: hist}
}

// RSI is Wilder's relative strength index.
func RSI(close []float64, length int) []float64 {
	n := len(close)
	gains, losses := nanSlice(n), nanSlice(n)
	for i := 1; i < n; i++ {
		d := close[i] - close[i-1]
		gains[i] = math.Max(d, 0)
		losses[i] = math.Max(-d, 0)
	}
	avgGain := RMA(gains, length)
	avgLoss := RMA(losses, length)

	out := nanSlice(n)
	for i := range out {
		g, l := avgGain[i], avgLoss[i]
		switch {
		case math.IsNaN(g) || math.IsNaN(l):
		case l == 0 && g == 0:
			out[i] = 50
		case l == 0:
			out[i] = 100
		default:
			out[i] = 100 - 100/(1+g/l)
		}
	}
	return out
}

// TrueRange is max(high-low, |high-prevClose|, |low-prevClose|).
func TrueRange(high, low, close []float64) []float64 {
	out := nanSlice(len(close))
	for i := range close {
		hl := high[i] - low[i]
		if i == 0 {
			out[i] = hl
			continue
		}
		out[i] = math.Max(hl, math.Max(math.Abs(high[i]-close[i-1]), math.Abs(low[i]-close[i-1])))
	}
	return out
}

// ATR is the Wilder-smoothed average true range.
func ATR(high, low, close []float64, length int) []float64 {
	tr := TrueRange(high, low, close)
	if len(tr) > 0 {
		tr[0] = math.NaN()
	}
	return RMA(tr, length)
}

// ADXResult holds the average directional index and the directional indicators.
type ADXResult struct {
	ADX     []float64
	PlusDI  []float64
	MinusDI []float64
}

// ADX computes Wilder's directional movement system.
func ADX(high, low, close []float64, length int) ADXResult {
	n := len(close)
	plusDM, minusDM := nanSlice(n), nanSlice(n)
	for i := 1; i < n; i++ {
		up := high[i] - high[i-1]
		down := low[i-1] - low[i]
		plusDM[i], minusDM[i] = 0, 0
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}
	atr := ATR(high, low, close, length)
	smPlus := RMA(plusDM, length)
	smMinus := RMA(minusDM, length)

	plusDI, minusDI, dx := nanSlice(n), nanSlice(n), nanSlice(n)
	for i := 0; i < n; i++ {
		if math.IsNaN(atr[i]) || atr[i] == 0 || math.IsNaN(smPlus[i]) || math.IsNaN(smMinus[i]) {
			continue
		}
		plusDI[i] = 100 * smPlus[i] / atr[i]
		minusDI[i] = 100 * smMinus[i] / atr[i]
		sum := plusDI[i] + minusDI[i]
		if sum == 0 {
			dx[i] = 0
			continue
		}
		dx[i] = 100 * math.Abs(plusDI[i]-minusDI[i]) / sum
	}
	return ADXResult{ADX: RMA(dx, length), PlusDI: plusDI, MinusDI: minusDI}
}

// BandsResult holds Bollinger bands.
type BandsResult struct {
	Lower  []float64
	Middle []float64
	Upper  []float64
}

// Bollinger computes SMA(length) ± mult population standard deviations.
func Bollinger(close []float64, length int, mult float64) BandsResult {
	mid := SMA(close, length)
	lower, upper := nanSlice(len(close)), nanSlice(len(close))
	for i := range close {
		if math.IsNaN(mid[i]) {
			continue
		}
		variance := 0.0
		for j := i - length + 1; j <= i; j++ {
			d := close[j] - mid[i]
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(length))
		lower[i] = mid[i] - mult*sd
		upper[i] = mid[i] + mult*sd
	}
	return BandsResult{Lower: lower, Middle: mid, Upper: upper}
}

// OBV is on-balance volume starting from zero.
func OBV(close, volume []float64) []float64 {
	out := make([]float64, len(close))
	for i := 1; i < len(close); i++ {
		switch {
		case close[i] > close[i-1]:
			out[i] = out[i-1] + volume[i]
		case close[i] < close[i-1]:
			out[i] = out[i-1] - volume[i]
		default:
			out[i] = out[i-1]
		}
	}
	return out
}

// CMF is the Chaikin money flow over length bars.
func CMF(high, low, close, volume []float64, length int) []float64 {
	n := len(close)
	mfv := make([]float64, n)
	for i := range close {
		if rng := high[i] - low[i]; rng > 0 {
			mfv[i] = ((close[i] - low[i]) - (high[i] - close[i])) / rng * volume[i]
		}
	}
	out := nanSlice(n)
	for i := length - 1; i < n; i++ {
		sumMFV, sumVol := 0.0, 0.0
		for j := i - length + 1; j <= i; j++ {
			sumMFV += mfv[j]
			sumVol += volume[j]
		}
		if sumVol > 0 {
			out[i] = sumMFV / sumVol
		}
	}
	return out
}

// TypicalPrice is (high+low+close)/3.
func TypicalPrice(high, low, close []float64) []float64 {
	out := make([]float64, len(close))
	for i := range close {
		out[i] = (high[i] + low[i] + close[i]) / 3
	}
	return out
}

// MFI is the money flow index over length bars.
func MFI(high, low, close, volume []float64, length int) []float64 {
	n := len(close)
	tp := TypicalPrice(high, low, close)
	out := nanSlice(n)
	for i := length; i < n; i++ {
		pos, neg := 0.0, 0.0
		for j := i - length + 1; j <= i; j++ {
			flow := tp[j] * volume[j]
			switch {
			case tp[j] > tp[j-1]:
				pos += flow
			case tp[j] < tp[j-1]:
				neg += flow
			}
		}
		switch {
		case pos+neg == 0:
			out[i] = 50
		default:
			out[i] = 100 * pos / (pos + neg)
		}
	}
	return out
}

// StochResult holds the smoothed %K and %D lines.
type StochResult struct {
	K []float64
	D []float64
}

// Stochastic computes the slow stochastic oscillator (k, smoothK, d).
func Stochastic(high, low, close []float64, k, smoothK, d int) StochResult {
	n := len(close)
	raw := nanSlice(n)
	for i := k - 1; i < n; i++ {
		hh, ll := math.Inf(-1), math.Inf(1)
		for j := i - k + 1; j <= i; j++ {
			hh = math.Max(hh, high[j])
			ll = math.Min(low[j], ll)
		}
		if hh > ll {
			raw[i] = 100 * (close[i] - ll) / (hh - ll)
		} else {
			raw[i] = 50
		}
	}
	kLine := SMA(raw, smoothK)
	return StochResult{K: kLine, D: SMA(kLine, d)}
}

// CCI is the commodity channel index over length bars.
func CCI(high, low, close []float64, length int) []float64 {
	tp := TypicalPrice(high, low, close)
	mean := SMA(tp, length)
	out := nanSlice(len(close))
	for i := range tp {
		if math.IsNaN(mean[i]) {
			continue
		}
		dev := 0.0
		for j := i - length + 1; j <= i; j++ {
			dev += math.Abs(tp[j] - mean[i])
		}
		dev /= float64(length)
		if dev > 0 {
			out[i] = (tp[i] - mean[i]) / (0.015 * dev)
		} else {
			out[i] = 0
		}
	}
	return out
}

// Returns is the bar-over-bar percentage change; the first bar is 0.
func Returns(close []float64) []float64 {
	out := make([]float64, len(close))
	for i := 1; i < len(close); i++ {
		if close[i-1] != 0 {
			out[i] = close[i]/close[i-1] - 1
		}
	}
	return out
}

// ZScore is the rolling z-score over window bars, needing at least minPeriods
// observations. Windows with zero deviation yield 0.
func ZScore(src []float64, window, minPeriods int) []float64 {
	out := make([]float64, len(src))
	for i := range src {
		lo := max(0, i-window+1)
		count := i - lo + 1
		if count < minPeriods || count < 2 {
			continue
		}
		mean := 0.0
		for j := lo; j <= i; j++ {
			mean += src[j]
		}
		mean /= float64(count)
		ss := 0.0
		for j := lo; j <= i; j++ {
			d := src[j] - mean
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(count-1))
		if sd > 0 {
			out[i] = (src[i] - mean) / sd
		}
	}
	return out
}

// Last returns the final element of s, or NaN for an empty slice.
func Last(s []float64) float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}
