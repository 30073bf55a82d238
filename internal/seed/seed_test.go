package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alphafusion/internal/models"
	"alphafusion/internal/seed"
	"alphafusion/internal/testutil"
)

func TestLoad(t *testing.T) {
	c, err := seed.Load()
	require.NoError(t, err)

	assert.Len(t, c.Indices, 3)
	assert.Len(t, c.Stocks, 50)
	assert.Len(t, c.Trends, 10)

	stocks := c.StockModels()
	require.Len(t, stocks, 53)
	assert.Equal(t, models.StockKindIndex, stocks[0].Kind)
	assert.Equal(t, "^NSEI", stocks[0].Ticker)
	assert.Equal(t, models.StockKindEquity, stocks[3].Kind)
	assert.Equal(t, "NSE", stocks[3].Exchange, "exchange defaults to NSE")

	seen := make(map[string]bool)
	for _, s := range c.Stocks {
		assert.False(t, seen[s.Symbol], "duplicate symbol %s", s.Symbol)
		seen[s.Symbol] = true
		assert.NotNil(t, s.Sentiment, s.Symbol)
		assert.NotNil(t, s.Technical, s.Symbol)
		assert.NotNil(t, s.Fundamental, s.Symbol)
	}
	for _, tr := range c.Trends {
		assert.NotEmpty(t, tr.ChartData, tr.Symbol)
	}
}

func TestParse_RejectsIncompleteEntries(t *testing.T) {
	_, err := seed.Parse([]byte("stocks:\n  - {symbol: TCS}\n"))
	require.Error(t, err)

	_, err = seed.Parse([]byte("stocks: [unterminated"))
	require.Error(t, err)
}

func TestApply_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()

	c, err := seed.Load()
	require.NoError(t, err)

	result, err := seed.Apply(ctx, db, c)
	require.NoError(t, err)
	assert.Equal(t, 53, result.Stocks)
	assert.Equal(t, 10, result.Trends)

	var tcs models.Stock
	require.NoError(t, db.Where("symbol = ?", "TCS").First(&tcs).Error)
	require.NoError(t, db.Model(&tcs).Update("price", 4000.5).Error)

	c.Stocks[1].Name = "TCS Renamed"
	_, err = seed.Apply(ctx, db, c)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Stock{}).Count(&count).Error)
	assert.Equal(t, int64(53), count)
	require.NoError(t, db.Model(&models.TrendRecord{}).Count(&count).Error)
	assert.Equal(t, int64(10), count)

	var again models.Stock
	require.NoError(t, db.Where("symbol = ?", "TCS").First(&again).Error)
	assert.Equal(t, tcs.ID, again.ID, "id survives a reseed")
	assert.Equal(t, "TCS Renamed", again.Name)
	assert.InDelta(t, 4000.5, again.Price, 1e-9, "live price survives a reseed")
}
