package models

import "time"

// StockKind distinguishes tradable equities from market indices.
type StockKind string

const (
	StockKindEquity StockKind = "equity"
	StockKindIndex  StockKind = "index"
)

// Stock is a catalog entry: a listed instrument with its latest quote and,
// once analysed, its three 0-100 scores.
type Stock struct {
	Base
	Symbol        string     `gorm:"not null;uniqueIndex:uq_stocks_symbol_exchange" json:"symbol"`
	Name          string     `gorm:"not null" json:"name"`
	Exchange      string     `gorm:"not null;default:'NSE';uniqueIndex:uq_stocks_symbol_exchange" json:"exchange"`
	Sector        string     `json:"sector,omitempty"`
	Kind          StockKind  `gorm:"not null;default:'equity'" json:"kind"`
	Ticker        string     `json:"ticker,omitempty"` // provider ticker override, e.g. ^NSEI
	Price         float64    `json:"price"`
	Change        float64    `json:"change"`
	ChangePercent float64    `json:"change_percent"`
	Sentiment     *float64   `json:"sentiment,omitempty"`
	Technical     *float64   `json:"technical,omitempty"`
	Fundamental   *float64   `json:"fundamental,omitempty"`
	QuotedAt      *time.Time `json:"quoted_at,omitempty"`
}

// Scores returns the three scores when all of them are known.
func (s *Stock) Scores() (sentiment, technical, fundamental float64, ok bool) {
	if s.Sentiment == nil || s.Technical == nil || s.Fundamental == nil {
		return 0, 0, 0, false
	}
	return *s.Sentiment, *s.Technical, *s.Fundamental, true
}
