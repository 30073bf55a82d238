package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/models"
	"alphafusion/internal/pagination"
	"alphafusion/internal/provider"
)

// stockService handles catalog search and live quote updates.
type stockService struct {
	db *gorm.DB
}

// NewStockService creates a new StockServicer.
func NewStockService(db *gorm.DB) StockServicer {
	return &stockService{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere in a lower-cased column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// Search returns catalog rows whose symbol or name contains query,
// case-insensitively. A blank query returns the whole catalog.
func (s *stockService) Search(ctx context.Context, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Stock], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Stock{})
	if q := strings.TrimSpace(query); q != "" {
		pattern := containsPattern(q)
		base = base.Where(`LOWER(symbol) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var stocks []models.Stock
	if err := base.Order("symbol ASC").Scopes(pagination.Paginate(page)).Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(stocks, page, totalItems)
	return &result, nil
}

// GetBySymbol returns the catalog row for symbol, ignoring case.
func (s *stockService) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	var stock models.Stock
	err := s.db.WithContext(ctx).
		Where("UPPER(symbol) = ?", strings.ToUpper(strings.TrimSpace(symbol))).
		Order("exchange ASC").
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stock, nil
}

// Indices returns the market indices in the catalog.
func (s *stockService) Indices(ctx context.Context) ([]models.Stock, error) {
	var indices []models.Stock
	if err := s.db.WithContext(ctx).
		Where("kind = ?", models.StockKindIndex).
		Order("symbol ASC").
		Find(&indices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return indices, nil
}

// LiveInstruments returns every catalog row as a quotable instrument.
func (s *stockService) LiveInstruments(ctx context.Context) ([]provider.Instrument, error) {
	var stocks []models.Stock
	if err := s.db.WithContext(ctx).
		Select("symbol", "exchange", "ticker").
		Order("symbol ASC").
		Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	instruments := make([]provider.Instrument, len(stocks))
	for i, st := range stocks {
		instruments[i] = provider.Instrument{Symbol: st.Symbol, Exchange: st.Exchange, Ticker: st.Ticker}
	}
	return instruments, nil
}

// listing is the catalog's unique key: one symbol on one exchange.
type listing struct {
	symbol, exchange string
}

// listingOf keys a row or quote. An empty exchange means NSE, as in the
// catalog.
func listingOf(symbol, exchange string) listing {
	exchange = strings.ToUpper(strings.TrimSpace(exchange))
	if exchange == "" {
		exchange = "NSE"
	}
	return listing{symbol: symbol, exchange: exchange}
}

// ApplyQuotes records a tick of quotes: the catalog row takes the new price
// and a StockPrice row is appended. Quotes are matched on symbol and exchange;
// quotes for unknown listings are skipped.
func (s *stockService) ApplyQuotes(ctx context.Context, quotes []provider.Quote) (int, error) {
	if len(quotes) == 0 {
		return 0, nil
	}

	symbols := make([]string, len(quotes))
	for i, q := range quotes {
		symbols[i] = q.Symbol
	}

	applied := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stocks []models.Stock
		if err := tx.Select("id", "symbol", "exchange").Where("symbol IN ?", symbols).Find(&stocks).Error; err != nil {
			return err
		}
		ids := make(map[listing]string, len(stocks))
		for _, st := range stocks {
			ids[listingOf(st.Symbol, st.Exchange)] = st.ID
		}

		prices := make([]models.StockPrice, 0, len(quotes))
		for _, q := range quotes {
			id, ok := ids[listingOf(q.Symbol, q.Exchange)]
			if !ok {
				continue
			}
			quotedAt := q.QuotedAt
			if err := tx.Model(&models.Stock{}).Where("id = ?", id).Updates(map[string]interface{}{
				"price":          q.Price,
				"change":         q.Change,
				"change_percent": q.ChangePercent,
				"quoted_at":      &quotedAt,
			}).Error; err != nil {
				return err
			}
			prices = append(prices, models.StockPrice{StockID: id, Price: q.Price, RecordedAt: quotedAt})
			applied++
		}

		if len(prices) > 0 {
			if err := tx.Create(&prices).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return applied, nil
}
