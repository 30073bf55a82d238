package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/models"
	"alphafusion/internal/provider"
	"alphafusion/internal/sentiment"
)

// sentimentService owns the sentiment cache and the job that refreshes it.
type sentimentService struct {
	db        *gorm.DB
	refresher *sentiment.Refresher
	// jobCtx bounds background refreshes; it is cancelled on shutdown.
	jobCtx context.Context
}

// NewSentimentService creates a new SentimentServicer. Refreshes started
// with StartRefresh run until they finish or ctx is cancelled.
func NewSentimentService(ctx context.Context, db *gorm.DB, scorer sentiment.CompanyScorer, workers int) SentimentServicer {
	s := &sentimentService{db: db, jobCtx: ctx}
	s.refresher = sentiment.NewRefresher(scorer, s, workers)
	return s
}

// SentimentTargets returns every catalog equity.
func (s *sentimentService) SentimentTargets(ctx context.Context) ([]sentiment.Target, error) {
	var stocks []models.Stock
	if err := s.db.WithContext(ctx).
		Select("symbol", "name").
		Where("kind = ?", models.StockKindEquity).
		Order("symbol ASC").
		Find(&stocks).Error; err != nil {
		return nil, err
	}

	targets := make([]sentiment.Target, len(stocks))
	for i, st := range stocks {
		targets[i] = sentiment.Target{Symbol: st.Symbol, Company: st.Name}
	}
	return targets, nil
}

// SaveSentiment upserts the cached score for symbol.
func (s *sentimentService) SaveSentiment(ctx context.Context, symbol string, res sentiment.Result, computedAt time.Time) error {
	row := &models.SentimentScore{
		Symbol:       symbol,
		Company:      res.Company,
		Score:        res.Score,
		ArticleCount: res.ArticleCount,
		ComputedAt:   computedAt.UTC(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"company", "score", "article_count", "computed_at", "updated_at"}),
	}).Create(row).Error
}

// ListSentiment returns the whole cache. An empty cache is SENTIMENT_NOT_FOUND.
func (s *sentimentService) ListSentiment(ctx context.Context) ([]models.SentimentScore, error) {
	var scores []models.SentimentScore
	if err := s.db.WithContext(ctx).Order("symbol ASC").Find(&scores).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(scores) == 0 {
		return nil, apperrors.ErrSentimentNotFound
	}
	return scores, nil
}

// GetSentiment returns the cached score for a symbol or provider ticker.
func (s *sentimentService) GetSentiment(ctx context.Context, ticker string) (*models.SentimentScore, error) {
	symbol := provider.BaseSymbol(ticker)
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "ticker is required")
	}

	var score models.SentimentScore
	if err := s.db.WithContext(ctx).Where("UPPER(symbol) = ?", strings.ToUpper(symbol)).First(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSentimentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &score, nil
}

// StartRefresh launches a background refresh. Only one runs at a time.
func (s *sentimentService) StartRefresh(_ context.Context) error {
	if err := s.refresher.Start(s.jobCtx); err != nil {
		return refreshError(err)
	}
	return nil
}

// RunRefresh refreshes synchronously and reports the run.
func (s *sentimentService) RunRefresh(ctx context.Context) (*sentiment.RefreshSummary, error) {
	summary, err := s.refresher.Run(ctx)
	if err != nil {
		return nil, refreshError(err)
	}
	return summary, nil
}

// WaitRefresh blocks until a background refresh has finished.
func (s *sentimentService) WaitRefresh() {
	s.refresher.Wait()
}

func refreshError(err error) error {
	if errors.Is(err, sentiment.ErrRefreshInProgress) {
		return apperrors.ErrRefreshInProgress
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
