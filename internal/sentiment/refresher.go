package sentiment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alphafusion/internal/logger"
)

// ErrRefreshInProgress is returned when a refresh is requested while one is
// still running.
var ErrRefreshInProgress = errors.New("sentiment refresh already in progress")

// DefaultWorkers bounds how many companies are scored at once.
const DefaultWorkers = 10

// Target is a company whose sentiment should be refreshed.
type Target struct {
	Symbol  string
	Company string
}

// Store provides refresh targets and persists results.
type Store interface {
	SentimentTargets(ctx context.Context) ([]Target, error)
	SaveSentiment(ctx context.Context, symbol string, res Result, computedAt time.Time) error
}

// CompanyScorer scores one company.
type CompanyScorer interface {
	Score(ctx context.Context, company string) (Result, error)
}

// RefreshSummary reports one refresh run.
type RefreshSummary struct {
	Total      int       `json:"total"`
	Scored     int       `json:"scored"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Refresher rescores every target with a bounded worker pool. At most one
// refresh runs at a time.
type Refresher struct {
	scorer  CompanyScorer
	store   Store
	workers int
	now     func() time.Time
	log     *zap.SugaredLogger

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewRefresher creates a Refresher. workers <= 0 uses DefaultWorkers.
func NewRefresher(scorer CompanyScorer, store Store, workers int) *Refresher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Refresher{
		scorer:  scorer,
		store:   store,
		workers: workers,
		now:     time.Now,
		log:     logger.Named("sentiment"),
	}
}

// Running reports whether a refresh is in progress.
func (r *Refresher) Running() bool { return r.running.Load() }

// Start launches a refresh in the background and returns immediately.
func (r *Refresher) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrRefreshInProgress
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.running.Store(false)
		summary, err := r.run(ctx)
		if err != nil {
			r.log.Errorw("Sentiment refresh failed", "error", err)
			return
		}
		r.log.Infow("Sentiment refresh finished",
			"total", summary.Total, "scored", summary.Scored, "failed", summary.Failed,
			"duration", summary.FinishedAt.Sub(summary.StartedAt))
	}()
	return nil
}

// Wait blocks until a background refresh started with Start has finished.
func (r *Refresher) Wait() { r.wg.Wait() }

// Run refreshes synchronously.
func (r *Refresher) Run(ctx context.Context) (*RefreshSummary, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRefreshInProgress
	}
	defer r.running.Store(false)
	return r.run(ctx)
}

func (r *Refresher) run(ctx context.Context) (*RefreshSummary, error) {
	summary := &RefreshSummary{StartedAt: r.now()}

	targets, err := r.store.SentimentTargets(ctx)
	if err != nil {
		return nil, err
	}
	summary.Total = len(targets)

	var scored, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, target := range targets {
		g.Go(func() error {
			res, err := r.scorer.Score(gctx, target.Company)
			if err == nil {
				err = r.store.SaveSentiment(gctx, target.Symbol, res, r.now())
			}
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				r.log.Warnw("Sentiment scoring failed", "symbol", target.Symbol, "error", err)
				return nil
			}
			scored.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.Scored = int(scored.Load())
	summary.Failed = int(failed.Load())
	summary.FinishedAt = r.now()
	return summary, nil
}
