// Package technical scores a stock from its price and volume history:
// indicators are normalised into features, weighted by market regime and
// folded into a 0-100 score with a trading signal and a volatility stop.
package technical

import (
	"alphafusion/internal/indicators"
	"alphafusion/internal/provider"
)

// Indicator lengths.
const (
	zWindow     = 60
	zMinPeriods = 10
)

// Frame holds the OHLCV columns of a bar series and every derived indicator,
// aligned index for index.
type Frame struct {
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64

	SMA20  []float64
	SMA50  []float64
	SMA200 []float64
	EMA12  []float64
	EMA26  []float64
	MACD   indicators.MACDResult
	ADX    indicators.ADXResult
	RSI    []float64
	ATR    []float64
	Bands  indicators.BandsResult
	OBV    []float64
	CMF    []float64
	MFI    []float64
	Stoch  indicators.StochResult
	CCI    []float64
	Ret    []float64
	RetZ   []float64
	VolZ   []float64
}

// Compute derives every indicator column from bars (oldest first).
func Compute(bars []provider.Bar) *Frame {
	n := len(bars)
	f := &Frame{
		Open:   make([]float64, n),
		High:   make([]float64, n),
		Low:    make([]float64, n),
		Close:  make([]float64, n),
		Volume: make([]float64, n),
	}
	for i, b := range bars {
		f.Open[i], f.High[i], f.Low[i], f.Close[i], f.Volume[i] = b.Open, b.High, b.Low, b.Close, b.Volume
	}

	f.SMA20 = indicators.SMA(f.Close, 20)
	f.SMA50 = indicators.SMA(f.Close, 50)
	f.SMA200 = indicators.SMA(f.Close, 200)
	f.EMA12 = indicators.EMA(f.Close, 12)
	f.EMA26 = indicators.EMA(f.Close, 26)
	f.MACD = indicators.MACD(f.Close, 12, 26, 9)
	f.ADX = indicators.ADX(f.High, f.Low, f.Close, 14)
	f.RSI = indicators.RSI(f.Close, 14)
	f.ATR = indicators.ATR(f.High, f.Low, f.Close, 14)
	f.Bands = indicators.Bollinger(f.Close, 20, 2)
	f.OBV = indicators.OBV(f.Close, f.Volume)
	f.CMF = indicators.CMF(f.High, f.Low, f.Close, f.Volume, 20)
	f.MFI = indicators.MFI(f.High, f.Low, f.Close, f.Volume, 14)
	f.Stoch = indicators.Stochastic(f.High, f.Low, f.Close, 14, 3, 3)
	f.CCI = indicators.CCI(f.High, f.Low, f.Close, 20)
	f.Ret = indicators.Returns(f.Close)
	f.RetZ = indicators.ZScore(f.Ret, zWindow, zMinPeriods)
	f.VolZ = indicators.ZScore(f.Volume, zWindow, zMinPeriods)
	return f
}

// Len is the number of bars in the frame.
func (f *Frame) Len() int { return len(f.Close) }

func last(s []float64) float64 { return indicators.Last(s) }
