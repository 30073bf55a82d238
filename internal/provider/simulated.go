package provider

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// Simulated is an offline market data source. Every ticker follows its own
// random walk, seeded from the source seed and the ticker name, so the same
// seed always produces the same series.
type Simulated struct {
	seed uint64
	now  func() time.Time

	mu   sync.Mutex
	last map[string]float64
	rngs map[string]*rand.Rand
}

// NewSimulated creates a simulated source.
func NewSimulated(seed uint64) *Simulated {
	return &Simulated{
		seed: seed,
		now:  time.Now,
		last: make(map[string]float64),
		rngs: make(map[string]*rand.Rand),
	}
}

// Name returns the source's display name.
func (s *Simulated) Name() string { return "Simulated" }

func (s *Simulated) tickerSeed(ticker string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToUpper(ticker)))
	return h.Sum64()
}

// basePrice puts every ticker somewhere between 100 and 5000.
func (s *Simulated) basePrice(ticker string) float64 {
	return 100 + float64(s.tickerSeed(ticker)%4900)
}

// Quotes advances each instrument's walk by one step.
func (s *Simulated) Quotes(_ context.Context, instruments []Instrument) ([]Quote, []FetchError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	quotes := make([]Quote, 0, len(instruments))
	for _, inst := range instruments {
		ticker := TickerFor(inst)
		rng, ok := s.rngs[ticker]
		if !ok {
			rng = rand.New(rand.NewPCG(s.seed, s.tickerSeed(ticker)))
			s.rngs[ticker] = rng
		}
		prev, ok := s.last[ticker]
		if !ok {
			prev = s.basePrice(ticker)
		}
		price := round2(prev * (1 + rng.NormFloat64()*0.004))
		s.last[ticker] = price

		change := price - prev
		quotes = append(quotes, Quote{
			Symbol:        inst.Symbol,
			Exchange:      inst.Exchange,
			Price:         price,
			PreviousClose: prev,
			Change:        round2(change),
			ChangePercent: change / prev * 100,
			Currency:      "INR",
			QuotedAt:      now,
		})
	}
	return quotes, nil
}

// History generates a deterministic series of bars ending now.
func (s *Simulated) History(_ context.Context, ticker string, rng Range, interval Interval) ([]Bar, error) {
	n, step := barCount(rng, interval)
	r := rand.New(rand.NewPCG(s.seed, s.tickerSeed(ticker)^uint64(n)))

	end := s.now().UTC().Truncate(step)
	price := s.basePrice(ticker)
	baseVolume := 1e5 + float64(s.tickerSeed(ticker)%9e5)

	bars := make([]Bar, n)
	for i := range bars {
		open := price
		closing := math.Max(1, open*(1+r.NormFloat64()*0.015+0.0003))
		spread := math.Abs(r.NormFloat64()) * 0.01 * open
		bars[i] = Bar{
			Time:   end.Add(-time.Duration(n-1-i) * step),
			Open:   round2(open),
			High:   round2(math.Max(open, closing) + spread),
			Low:    round2(math.Max(0.01, math.Min(open, closing)-spread)),
			Close:  round2(closing),
			Volume: math.Round(baseVolume * (0.5 + r.Float64())),
		}
		price = closing
	}
	return bars, nil
}

// Fundamentals derives plausible company financials from the ticker seed.
func (s *Simulated) Fundamentals(_ context.Context, ticker string) (*Fundamentals, error) {
	r := rand.New(rand.NewPCG(s.seed, s.tickerSeed(ticker)+1))
	price := s.basePrice(ticker)
	shares := 1e8 + r.Float64()*5e9

	f := EmptyFundamentals(ticker)
	f.Price = price
	f.SharesOutstanding = shares
	f.Revenue = shares * price * (0.2 + r.Float64()*1.5)
	f.NetIncome = f.Revenue * (0.02 + r.Float64()*0.25)
	f.NetIncomePrevious = f.NetIncome * (0.8 + r.Float64()*0.35)
	f.ShareholderEquity = f.NetIncome * (3 + r.Float64()*10)
	f.TotalAssets = f.ShareholderEquity * (1.2 + r.Float64()*3)
	f.TotalDebt = f.ShareholderEquity * r.Float64() * 1.8
	f.CurrentAssets = f.TotalAssets * (0.2 + r.Float64()*0.3)
	f.CurrentLiabilities = f.CurrentAssets / (0.8 + r.Float64()*2.5)
	f.EBIT = f.NetIncome * 1.35
	f.InterestExpense = f.EBIT / (2 + r.Float64()*25)
	f.OperatingCashFlow = f.NetIncome * (0.9 + r.Float64()*0.6)
	f.CapitalExpenditure = -f.OperatingCashFlow * r.Float64() * 0.5
	return f, nil
}

func barCount(rng Range, interval Interval) (int, time.Duration) {
	step := 24 * time.Hour
	switch interval {
	case Interval1m:
		step = time.Minute
	case Interval5m:
		step = 5 * time.Minute
	}

	var span time.Duration
	switch rng {
	case Range1d:
		span = 24 * time.Hour
	case Range5d:
		span = 5 * 24 * time.Hour
	case Range7d:
		span = 7 * 24 * time.Hour
	case Range1mo:
		span = 30 * 24 * time.Hour
	case Range6mo:
		span = 182 * 24 * time.Hour
	case Range2y:
		span = 730 * 24 * time.Hour
	default:
		span = 365 * 24 * time.Hour
	}

	n := int(span / step)
	if step == 24*time.Hour {
		// trading days only
		n = n * 5 / 7
	} else {
		// 375 minutes per NSE session
		n = min(n, int(375*time.Minute/step)*int(span/(24*time.Hour)))
	}
	return max(n, 1), step
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
