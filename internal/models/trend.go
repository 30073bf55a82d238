package models

import "gorm.io/datatypes"

// TrendRecord is a curated trending stock with analyst commentary.
type TrendRecord struct {
	Base
	Symbol         string                       `gorm:"not null;uniqueIndex" json:"symbol"`
	Name           string                       `gorm:"not null" json:"name"`
	Price          float64                      `json:"price"`
	Change         float64                      `json:"change"`
	ChangePercent  float64                      `json:"change_percent"`
	TrendScore     float64                      `gorm:"not null" json:"trend_score"`
	NewsCount      int                          `json:"news_count"`
	Analysis       string                       `gorm:"type:text" json:"analysis"`
	ChartData      datatypes.JSONSlice[float64] `json:"chart_data"`
	Recommendation string                       `gorm:"-" json:"recommendation"`
}
