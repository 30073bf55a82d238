package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"alphafusion/internal/models"
	"alphafusion/internal/scoring"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

func ptr(v float64) *float64 { return &v }

// CreateTestStock creates a scored NSE equity with the given symbol.
func CreateTestStock(t *testing.T, db *gorm.DB, symbol string) *models.Stock {
	t.Helper()
	return CreateTestStockWithScores(t, db, symbol, 70, 65, 75)
}

// CreateTestStockWithScores creates an NSE equity with the given scores.
func CreateTestStockWithScores(t *testing.T, db *gorm.DB, symbol string, sentiment, technical, fundamental float64) *models.Stock {
	t.Helper()

	stock := &models.Stock{
		Symbol:      symbol,
		Name:        fmt.Sprintf("%s Test Ltd %d", symbol, nextID()),
		Exchange:    "NSE",
		Kind:        models.StockKindEquity,
		Price:       1000,
		Sentiment:   ptr(sentiment),
		Technical:   ptr(technical),
		Fundamental: ptr(fundamental),
	}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return stock
}

// CreateTestUnscoredStock creates an equity that has not been analysed yet.
func CreateTestUnscoredStock(t *testing.T, db *gorm.DB, symbol, name string) *models.Stock {
	t.Helper()

	stock := &models.Stock{
		Symbol:   symbol,
		Name:     name,
		Exchange: "NSE",
		Kind:     models.StockKindEquity,
		Price:    500,
	}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return stock
}

// CreateTestIndex creates a market index with a provider ticker.
func CreateTestIndex(t *testing.T, db *gorm.DB, symbol, ticker string) *models.Stock {
	t.Helper()

	index := &models.Stock{
		Symbol:   symbol,
		Name:     symbol,
		Exchange: "NSE",
		Kind:     models.StockKindIndex,
		Ticker:   ticker,
		Price:    24000,
	}
	if err := db.Create(index).Error; err != nil {
		t.Fatalf("failed to create test index: %v", err)
	}
	return index
}

// CreateTestBucket creates a bucket that expires in a day.
func CreateTestBucket(t *testing.T, db *gorm.DB) *models.Bucket {
	t.Helper()
	return CreateTestBucketExpiring(t, db, time.Now().Add(24*time.Hour))
}

// CreateTestBucketExpiring creates a bucket with the given expiry.
func CreateTestBucketExpiring(t *testing.T, db *gorm.DB, expiresAt time.Time) *models.Bucket {
	t.Helper()

	bucket := &models.Bucket{ExpiresAt: expiresAt.UTC()}
	if err := db.Create(bucket).Error; err != nil {
		t.Fatalf("failed to create test bucket: %v", err)
	}
	return bucket
}

// CreateTestHolding creates a holding at the given position. Status is
// derived with the default threshold.
func CreateTestHolding(t *testing.T, db *gorm.DB, bucketID, symbol string, position int) *models.Holding {
	t.Helper()

	m := scoring.Metrics{Sentiment: 70, Technical: 60, Fundamental: 80}
	holding := &models.Holding{
		BucketID:    bucketID,
		Symbol:      symbol,
		Name:        fmt.Sprintf("%s Holding %d", symbol, nextID()),
		Price:       decimal.RequireFromString("100.50"),
		Quantity:    10,
		Sentiment:   m.Sentiment,
		Technical:   m.Technical,
		Fundamental: m.Fundamental,
		Status:      scoring.Status(m, 60),
		Position:    position,
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestTrend creates a trend record with the given trend score.
func CreateTestTrend(t *testing.T, db *gorm.DB, symbol string, trendScore float64) *models.TrendRecord {
	t.Helper()

	trend := &models.TrendRecord{
		Symbol:     symbol,
		Name:       fmt.Sprintf("%s Trend %d", symbol, nextID()),
		Price:      1500,
		TrendScore: trendScore,
		NewsCount:  12,
		Analysis:   "Steady accumulation on rising volumes.",
		ChartData:  datatypes.NewJSONSlice([]float64{1480, 1490, 1500}),
	}
	if err := db.Create(trend).Error; err != nil {
		t.Fatalf("failed to create test trend: %v", err)
	}
	return trend
}
