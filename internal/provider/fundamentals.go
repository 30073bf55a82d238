package provider

import "math"

// Fundamentals carries the most recent reported figures for a company.
// Unknown values are NaN, never zero.
type Fundamentals struct {
	Ticker string

	Price             float64
	SharesOutstanding float64

	// Income statement (latest annual period, and the one before it).
	NetIncome         float64
	NetIncomePrevious float64
	Revenue           float64
	EBIT              float64
	InterestExpense   float64

	// Balance sheet.
	TotalAssets        float64
	TotalDebt          float64
	ShareholderEquity  float64
	CurrentAssets      float64
	CurrentLiabilities float64

	// Cash flow.
	OperatingCashFlow float64
	CapitalExpenditure float64
	FreeCashFlow      float64

	// Ratios reported by the source.
	BookValuePerShare float64
	PriceToBook       float64
	PriceToSales      float64
	RevenuePerShare   float64
	TrailingEPS       float64
	TrailingPE        float64
	EarningsGrowth    float64 // fraction, 0.12 = 12%
}

// EmptyFundamentals returns a Fundamentals with every figure unknown.
func EmptyFundamentals(ticker string) *Fundamentals {
	nan := math.NaN()
	return &Fundamentals{
		Ticker:             ticker,
		Price:              nan,
		SharesOutstanding:  nan,
		NetIncome:          nan,
		NetIncomePrevious:  nan,
		Revenue:            nan,
		EBIT:               nan,
		InterestExpense:    nan,
		TotalAssets:        nan,
		TotalDebt:          nan,
		ShareholderEquity:  nan,
		CurrentAssets:      nan,
		CurrentLiabilities: nan,
		OperatingCashFlow:  nan,
		CapitalExpenditure: nan,
		FreeCashFlow:       nan,
		BookValuePerShare:  nan,
		PriceToBook:        nan,
		PriceToSales:       nan,
		RevenuePerShare:    nan,
		TrailingEPS:        nan,
		TrailingPE:         nan,
		EarningsGrowth:     nan,
	}
}
