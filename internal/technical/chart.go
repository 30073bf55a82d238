package technical

import (
	"time"

	"alphafusion/internal/provider"
)

// ChartPoint is one close price on a chart.
type ChartPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Chart keys.
const (
	Chart1D = "1D"
	Chart1M = "1M"
	Chart6M = "6M"
	Chart1Y = "1Y"
)

// Chart holds price-only series per timeframe.
type Chart map[string][]ChartPoint

// BuildChart turns an intraday series and a year of daily bars into 1D, 1M,
// 6M and 1Y series. The monthly series are trailing slices of the daily bars
// measured back from the last bar.
func BuildChart(intraday, daily []provider.Bar) Chart {
	chart := Chart{
		Chart1D: points(intraday),
		Chart1M: []ChartPoint{},
		Chart6M: []ChartPoint{},
		Chart1Y: points(daily),
	}
	if len(daily) == 0 {
		return chart
	}
	end := daily[len(daily)-1].Time
	chart[Chart1M] = points(since(daily, end.AddDate(0, -1, 0)))
	chart[Chart6M] = points(since(daily, end.AddDate(0, -6, 0)))
	return chart
}

// since returns the suffix of bars strictly after cutoff.
func since(bars []provider.Bar, cutoff time.Time) []provider.Bar {
	for i, b := range bars {
		if b.Time.After(cutoff) {
			return bars[i:]
		}
	}
	return nil
}

// TailPoints returns the last n bars as chart points.
func TailPoints(bars []provider.Bar, n int) []ChartPoint {
	if n > 0 && len(bars) > n {
		bars = bars[len(bars)-n:]
	}
	return points(bars)
}

func points(bars []provider.Bar) []ChartPoint {
	out := make([]ChartPoint, 0, len(bars))
	for _, b := range bars {
		out = append(out, ChartPoint{Date: b.Time.In(ist).Format(time.RFC3339), Price: b.Close})
	}
	return out
}
