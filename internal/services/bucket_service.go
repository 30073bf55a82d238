package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/format"
	"alphafusion/internal/models"
	"alphafusion/internal/scoring"
)

// bucketService handles session buckets and their holdings.
type bucketService struct {
	db     *gorm.DB
	scorer *scoring.Scorer
	ttl    time.Duration
	now    func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewBucketService creates a new BucketServicer. Buckets live for ttl.
func NewBucketService(db *gorm.DB, scorer *scoring.Scorer, ttl time.Duration) BucketServicer {
	seed := uint64(time.Now().UnixNano())
	return &bucketService{
		db:     db,
		scorer: scorer,
		ttl:    ttl,
		now:    time.Now,
		rng:    rand.New(rand.NewPCG(seed, seed>>32)),
	}
}

// CreateBucket creates an empty bucket that expires after the session TTL.
func (s *bucketService) CreateBucket(ctx context.Context) (*models.Bucket, error) {
	bucket := &models.Bucket{ExpiresAt: s.now().Add(s.ttl).UTC()}
	if err := s.db.WithContext(ctx).Create(bucket).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bucket, nil
}

// GetBucket returns a live bucket. An expired bucket that has not been swept
// yet reports SESSION_EXPIRED.
func (s *bucketService) GetBucket(ctx context.Context, bucketID string) (*models.Bucket, error) {
	return s.activeBucket(s.db.WithContext(ctx), bucketID)
}

func (s *bucketService) activeBucket(db *gorm.DB, bucketID string) (*models.Bucket, error) {
	var bucket models.Bucket
	if err := db.Where("id = ?", bucketID).First(&bucket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBucketNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !bucket.ExpiresAt.After(s.now()) {
		return nil, apperrors.ErrSessionExpired
	}
	return &bucket, nil
}

// ListHoldings returns the bucket's holdings, newest first.
func (s *bucketService) ListHoldings(ctx context.Context, bucketID string) ([]models.Holding, error) {
	db := s.db.WithContext(ctx)
	if _, err := s.activeBucket(db, bucketID); err != nil {
		return nil, err
	}

	holdings := []models.Holding{}
	if err := db.Where("bucket_id = ?", bucketID).Order("position DESC").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}

// AddHolding adds a stock to the bucket. A symbol already in the bucket is
// merged: its price and quantity are replaced and everything else is kept.
// A new symbol takes its scores from the catalog, or synthetic scores when
// the catalog has none, and goes to the top of the list.
func (s *bucketService) AddHolding(ctx context.Context, bucketID string, input HoldingInput) (*AddHoldingResult, error) {
	var result *AddHoldingResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.activeBucket(tx, bucketID); err != nil {
			return err
		}

		var existing models.Holding
		err := tx.Where("bucket_id = ? AND symbol = ?", bucketID, input.Symbol).First(&existing).Error
		switch {
		case err == nil:
			existing.Price = input.Price
			existing.Quantity = input.Quantity
			if err := tx.Save(&existing).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			result = &AddHoldingResult{Holding: &existing, Merged: true}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		m, err := s.resolveScores(tx, input)
		if err != nil {
			return err
		}

		var top struct{ Position int }
		if err := tx.Model(&models.Holding{}).
			Select("COALESCE(MAX(position), 0) AS position").
			Where("bucket_id = ?", bucketID).
			Scan(&top).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		holding := &models.Holding{
			BucketID:    bucketID,
			Symbol:      input.Symbol,
			Name:        input.Name,
			Price:       input.Price,
			Quantity:    input.Quantity,
			Sentiment:   m.Sentiment,
			Technical:   m.Technical,
			Fundamental: m.Fundamental,
			Status:      s.scorer.Status(m),
			Position:    top.Position + 1,
		}
		if err := tx.Create(holding).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result = &AddHoldingResult{Holding: holding}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveScores prefers the catalog's published scores and falls back to
// synthetic ones biased by the company name.
func (s *bucketService) resolveScores(tx *gorm.DB, input HoldingInput) (scoring.Metrics, error) {
	var stock models.Stock
	err := tx.Where("UPPER(symbol) = ?", input.Symbol).First(&stock).Error
	switch {
	case err == nil:
		if sen, tec, fun, ok := stock.Scores(); ok {
			return scoring.Metrics{Sentiment: sen, Technical: tec, Fundamental: fun}, nil
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return scoring.Metrics{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return scoring.Synthetic(scoring.SectorHint(input.Name), s.rng), nil
}

// RemoveHolding deletes one holding and returns it. The remaining holdings
// keep their order.
func (s *bucketService) RemoveHolding(ctx context.Context, bucketID, holdingID string) (*models.Holding, error) {
	var removed models.Holding
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.activeBucket(tx, bucketID); err != nil {
			return err
		}
		if err := tx.Where("id = ? AND bucket_id = ?", holdingID, bucketID).First(&removed).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrHoldingNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&removed).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// Summary totals the bucket's value and counts holdings by status.
func (s *bucketService) Summary(ctx context.Context, bucketID string) (*BucketSummary, error) {
	holdings, err := s.ListHoldings(ctx, bucketID)
	if err != nil {
		return nil, err
	}

	summary := &BucketSummary{Holdings: len(holdings), TotalValue: decimal.Zero}
	for i := range holdings {
		summary.TotalValue = summary.TotalValue.Add(holdings[i].Value())
		if holdings[i].Status == models.HoldingStatusInvestable {
			summary.Investable++
		} else {
			summary.Risky++
		}
	}
	summary.TotalValueDisplay = format.FormatINR(summary.TotalValue)
	return summary, nil
}

// SweepExpired hard-deletes expired buckets and their holdings and returns
// how many buckets were removed.
func (s *bucketService) SweepExpired(ctx context.Context) (int64, error) {
	var swept int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&models.Bucket{}).Select("id").Where("expires_at <= ?", s.now().UTC())
		if err := tx.Where("bucket_id IN (?)", expired).Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		res := tx.Where("expires_at <= ?", s.now().UTC()).Delete(&models.Bucket{})
		if res.Error != nil {
			return res.Error
		}
		swept = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return swept, nil
}
