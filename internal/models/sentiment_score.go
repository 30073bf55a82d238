package models

import "time"

// SentimentScore caches the latest news sentiment for a stock. Score lies
// in [-1, 1].
type SentimentScore struct {
	Base
	Symbol       string    `gorm:"not null;uniqueIndex" json:"symbol"`
	Company      string    `gorm:"not null" json:"company"`
	Score        float64   `gorm:"not null" json:"score"`
	ArticleCount int       `gorm:"not null" json:"article_count"`
	ComputedAt   time.Time `gorm:"not null" json:"computed_at"`
}
