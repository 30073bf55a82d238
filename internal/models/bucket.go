package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bucket is a session-scoped watchlist. It disappears once ExpiresAt passes.
type Bucket struct {
	Base
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Holdings  []Holding `gorm:"foreignKey:BucketID;constraint:OnDelete:CASCADE" json:"holdings,omitempty"`
}

// HoldingStatus is the derived investable/risky label.
type HoldingStatus string

const (
	HoldingStatusInvestable HoldingStatus = "investable"
	HoldingStatusRisky      HoldingStatus = "risky"
)

// Holding is one stock inside a bucket. Status is never set directly; it is
// recomputed from the three scores whenever they change.
type Holding struct {
	Base
	BucketID    string          `gorm:"type:uuid;not null;uniqueIndex:uq_holdings_bucket_symbol" json:"bucket_id"`
	Symbol      string          `gorm:"not null;uniqueIndex:uq_holdings_bucket_symbol" json:"symbol"`
	Name        string          `gorm:"not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Sentiment   float64         `gorm:"not null" json:"sentiment"`
	Technical   float64         `gorm:"not null" json:"technical"`
	Fundamental float64         `gorm:"not null" json:"fundamental"`
	Status      HoldingStatus   `gorm:"not null" json:"status"`
	Position    int             `gorm:"not null" json:"-"`
}

// Value returns price × quantity.
func (h *Holding) Value() decimal.Decimal {
	return h.Price.Mul(decimal.NewFromInt(int64(h.Quantity)))
}
