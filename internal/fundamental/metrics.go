// Package fundamental scores a company on valuation, profitability,
// balance-sheet health and growth from its reported financials.
package fundamental

import (
	"math"
	"strconv"

	"alphafusion/internal/provider"
)

// Number is a float that encodes NaN as JSON null.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// Known reports whether the value is defined.
func (n Number) Known() bool { return !math.IsNaN(float64(n)) }

// Metrics are the ratios derived from one set of financials. Percentages
// are expressed as 0-100.
type Metrics struct {
	EPS              Number `json:"eps"`
	EPSPrevious      Number `json:"eps_previous"`
	PE               Number `json:"pe"`
	PB               Number `json:"pb"`
	PS               Number `json:"ps"`
	PEG              Number `json:"peg"`
	ROEPct           Number `json:"roe_pct"`
	ROAPct           Number `json:"roa_pct"`
	NetProfitMargin  Number `json:"net_profit_margin_pct"`
	DebtToEquity     Number `json:"debt_to_equity"`
	DebtToAssets     Number `json:"debt_to_assets"`
	CurrentRatio     Number `json:"current_ratio"`
	InterestCoverage Number `json:"interest_coverage"`
	EPSGrowthPct     Number `json:"eps_growth_pct"`
	FCFPerShare      Number `json:"fcf_per_share"`
	TotalDebt        Number `json:"total_debt"`
	ProfitPrevious   Number `json:"profit_previous"`
	IsInDebt         bool   `json:"is_in_debt"`
}

func safeDiv(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) || b == 0 {
		return math.NaN()
	}
	return a / b
}

// orElse returns v unless it is NaN, in which case it tries the fallbacks in order.
func orElse(v float64, fallbacks ...float64) float64 {
	if !math.IsNaN(v) {
		return v
	}
	for _, f := range fallbacks {
		if !math.IsNaN(f) {
			return f
		}
	}
	return math.NaN()
}

// CalculateMetrics derives ratios from raw financials. Ratios the source
// reports directly win over ratios computed from statement lines.
func CalculateMetrics(d *provider.Fundamentals) Metrics {
	shares := d.SharesOutstanding

	eps := orElse(d.TrailingEPS, safeDiv(d.NetIncome, shares))
	epsPrevCalc := safeDiv(d.NetIncomePrevious, shares)
	bvpsManual := safeDiv(d.ShareholderEquity, shares)

	pe := orElse(d.TrailingPE, safeDiv(d.Price, eps))
	pb := orElse(d.PriceToBook, safeDiv(d.Price, d.BookValuePerShare), safeDiv(d.Price, bvpsManual))
	ps := orElse(d.PriceToSales, safeDiv(d.Price, d.RevenuePerShare), safeDiv(d.Price, safeDiv(d.Revenue, shares)))

	growthCalc := math.NaN()
	if !math.IsNaN(eps) && !math.IsNaN(epsPrevCalc) && epsPrevCalc != 0 {
		growthCalc = (eps - epsPrevCalc) / math.Abs(epsPrevCalc) * 100
	}
	growth := orElse(d.EarningsGrowth*100, growthCalc)

	epsPrevFromGrowth := math.NaN()
	if !math.IsNaN(eps) && !math.IsNaN(growth) && 1+growth/100 != 0 {
		epsPrevFromGrowth = eps / (1 + growth/100)
	}

	peg := math.NaN()
	if !math.IsNaN(growth) && growth > 0 {
		peg = safeDiv(pe, growth)
	}

	fcfManual := math.NaN()
	if op := d.OperatingCashFlow; !math.IsNaN(op) {
		switch capex := d.CapitalExpenditure; {
		case math.IsNaN(capex):
			fcfManual = op
		case capex > 0:
			fcfManual = op - capex
		default:
			fcfManual = op + capex
		}
	}
	fcf := orElse(d.FreeCashFlow, fcfManual)

	return Metrics{
		EPS:              Number(eps),
		EPSPrevious:      Number(orElse(epsPrevFromGrowth, epsPrevCalc)),
		PE:               Number(pe),
		PB:               Number(pb),
		PS:               Number(ps),
		PEG:              Number(peg),
		ROEPct:           Number(safeDiv(d.NetIncome, d.ShareholderEquity) * 100),
		ROAPct:           Number(safeDiv(d.NetIncome, d.TotalAssets) * 100),
		NetProfitMargin:  Number(safeDiv(d.NetIncome, d.Revenue) * 100),
		DebtToEquity:     Number(safeDiv(d.TotalDebt, d.ShareholderEquity)),
		DebtToAssets:     Number(safeDiv(d.TotalDebt, d.TotalAssets)),
		CurrentRatio:     Number(safeDiv(d.CurrentAssets, d.CurrentLiabilities)),
		InterestCoverage: Number(safeDiv(d.EBIT, d.InterestExpense)),
		EPSGrowthPct:     Number(growth),
		FCFPerShare:      Number(safeDiv(fcf, shares)),
		TotalDebt:        Number(d.TotalDebt),
		ProfitPrevious:   Number(d.NetIncomePrevious),
		IsInDebt:         d.TotalDebt > 0,
	}
}
