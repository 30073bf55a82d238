// Package seed loads the bundled stock catalog and trending list into the
// database.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alphafusion/internal/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Instrument is one catalog row in the seed file.
type Instrument struct {
	Symbol      string   `yaml:"symbol"`
	Name        string   `yaml:"name"`
	Exchange    string   `yaml:"exchange"`
	Sector      string   `yaml:"sector"`
	Ticker      string   `yaml:"ticker"`
	Price       float64  `yaml:"price"`
	Sentiment   *float64 `yaml:"sentiment"`
	Technical   *float64 `yaml:"technical"`
	Fundamental *float64 `yaml:"fundamental"`
}

// Trend is one trending entry in the seed file.
type Trend struct {
	Symbol        string    `yaml:"symbol"`
	Name          string    `yaml:"name"`
	Price         float64   `yaml:"price"`
	Change        float64   `yaml:"change"`
	ChangePercent float64   `yaml:"change_percent"`
	TrendScore    float64   `yaml:"trend_score"`
	NewsCount     int       `yaml:"news_count"`
	Analysis      string    `yaml:"analysis"`
	ChartData     []float64 `yaml:"chart_data"`
}

// Catalog is the parsed seed file.
type Catalog struct {
	Indices []Instrument `yaml:"indices"`
	Stocks  []Instrument `yaml:"stocks"`
	Trends  []Trend      `yaml:"trends"`
}

// Result counts the rows written by Apply.
type Result struct {
	Stocks int
	Trends int
}

// Load parses the bundled catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse parses a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for _, list := range [][]Instrument{c.Indices, c.Stocks} {
		for _, inst := range list {
			if inst.Symbol == "" || inst.Name == "" {
				return nil, fmt.Errorf("catalog entry %q is missing a symbol or name", inst.Symbol+inst.Name)
			}
		}
	}
	return &c, nil
}

// StockModels returns the catalog rows as models, indices first.
func (c *Catalog) StockModels() []models.Stock {
	out := make([]models.Stock, 0, len(c.Indices)+len(c.Stocks))
	for _, inst := range c.Indices {
		out = append(out, inst.model(models.StockKindIndex))
	}
	for _, inst := range c.Stocks {
		out = append(out, inst.model(models.StockKindEquity))
	}
	return out
}

// TrendModels returns the trending list as models.
func (c *Catalog) TrendModels() []models.TrendRecord {
	out := make([]models.TrendRecord, 0, len(c.Trends))
	for _, t := range c.Trends {
		out = append(out, models.TrendRecord{
			Symbol:        t.Symbol,
			Name:          t.Name,
			Price:         t.Price,
			Change:        t.Change,
			ChangePercent: t.ChangePercent,
			TrendScore:    t.TrendScore,
			NewsCount:     t.NewsCount,
			Analysis:      t.Analysis,
			ChartData:     datatypes.NewJSONSlice(t.ChartData),
		})
	}
	return out
}

func (i Instrument) model(kind models.StockKind) models.Stock {
	exchange := i.Exchange
	if exchange == "" {
		exchange = "NSE"
	}
	return models.Stock{
		Symbol:      i.Symbol,
		Name:        i.Name,
		Exchange:    exchange,
		Sector:      i.Sector,
		Kind:        kind,
		Ticker:      i.Ticker,
		Price:       i.Price,
		Sentiment:   i.Sentiment,
		Technical:   i.Technical,
		Fundamental: i.Fundamental,
	}
}

// Apply upserts the catalog. Existing rows keep their id and live price;
// descriptive fields and scores are overwritten.
func Apply(ctx context.Context, db *gorm.DB, c *Catalog) (*Result, error) {
	stocks := c.StockModels()
	trends := c.TrendModels()

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(stocks) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "symbol"}, {Name: "exchange"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "sector", "kind", "ticker", "sentiment", "technical", "fundamental", "updated_at"}),
			}).Create(&stocks).Error; err != nil {
				return fmt.Errorf("seed stocks: %w", err)
			}
		}
		if len(trends) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "symbol"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "price", "change", "change_percent", "trend_score", "news_count", "analysis", "chart_data", "updated_at"}),
			}).Create(&trends).Error; err != nil {
				return fmt.Errorf("seed trends: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Stocks: len(stocks), Trends: len(trends)}, nil
}
