package models

import (
	"time"

	"alphafusion/internal/uuid"

	"gorm.io/gorm"
)

// StockPrice is one recorded quote tick for a catalog stock.
// This is immutable time-series data, so there is no Base embed.
type StockPrice struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	StockID    string    `gorm:"type:uuid;not null;index:idx_stock_prices_stock_time" json:"stock_id"`
	Price      float64   `gorm:"not null" json:"price"`
	RecordedAt time.Time `gorm:"not null;index:idx_stock_prices_stock_time" json:"recorded_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *StockPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	return nil
}
