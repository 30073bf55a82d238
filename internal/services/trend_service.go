package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/models"
	"alphafusion/internal/scoring"
)

// trendService handles the curated trending list.
type trendService struct {
	db     *gorm.DB
	scorer *scoring.Scorer
}

// NewTrendService creates a new TrendServicer.
func NewTrendService(db *gorm.DB, scorer *scoring.Scorer) TrendServicer {
	return &trendService{db: db, scorer: scorer}
}

// ListTrends returns trending stocks by descending trend score, each with a
// buy/hold/sell recommendation. The recommendation uses the mean of the
// catalog scores when the stock has them and the trend score otherwise.
func (s *trendService) ListTrends(ctx context.Context, recommendation *scoring.Recommendation) ([]models.TrendRecord, error) {
	db := s.db.WithContext(ctx)

	var trends []models.TrendRecord
	if err := db.Order("trend_score DESC").Order("symbol ASC").Find(&trends).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(trends) == 0 {
		return []models.TrendRecord{}, nil
	}

	symbols := make([]string, len(trends))
	for i := range trends {
		symbols[i] = trends[i].Symbol
	}
	var stocks []models.Stock
	if err := db.Where("symbol IN ?", symbols).Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	bySymbol := make(map[string]*models.Stock, len(stocks))
	for i := range stocks {
		bySymbol[stocks[i].Symbol] = &stocks[i]
	}

	out := make([]models.TrendRecord, 0, len(trends))
	for _, trend := range trends {
		score := trend.TrendScore
		if stock, ok := bySymbol[trend.Symbol]; ok {
			if sen, tec, fun, ok := stock.Scores(); ok {
				score = scoring.Mean(sen, tec, fun)
			}
		}
		rec := s.scorer.Recommend(score)
		if recommendation != nil && rec != *recommendation {
			continue
		}
		trend.Recommendation = string(rec)
		out = append(out, trend)
	}
	return out, nil
}
