package services

import (
	"context"

	"github.com/shopspring/decimal"

	"alphafusion/internal/fundamental"
	"alphafusion/internal/models"
	"alphafusion/internal/pagination"
	"alphafusion/internal/provider"
	"alphafusion/internal/scoring"
	"alphafusion/internal/sentiment"
	"alphafusion/internal/technical"
)

// StockServicer defines the contract for catalog lookups and quote updates.
type StockServicer interface {
	Search(ctx context.Context, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Stock], error)
	GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error)
	Indices(ctx context.Context) ([]models.Stock, error)
	LiveInstruments(ctx context.Context) ([]provider.Instrument, error)
	ApplyQuotes(ctx context.Context, quotes []provider.Quote) (int, error)
}

// AddHoldingResult reports whether an add created a holding or merged into
// an existing one.
type AddHoldingResult struct {
	Holding *models.Holding `json:"holding"`
	Merged  bool            `json:"merged"`
}

// BucketSummary contains the totals shown under a bucket.
type BucketSummary struct {
	Holdings          int             `json:"holdings"`
	TotalValue        decimal.Decimal `json:"total_value"`
	TotalValueDisplay string          `json:"total_value_display"`
	Investable        int             `json:"investable"`
	Risky             int             `json:"risky"`
}

// BucketServicer defines the contract for session buckets and their holdings.
type BucketServicer interface {
	CreateBucket(ctx context.Context) (*models.Bucket, error)
	GetBucket(ctx context.Context, bucketID string) (*models.Bucket, error)
	ListHoldings(ctx context.Context, bucketID string) ([]models.Holding, error)
	AddHolding(ctx context.Context, bucketID string, input HoldingInput) (*AddHoldingResult, error)
	RemoveHolding(ctx context.Context, bucketID, holdingID string) (*models.Holding, error)
	Summary(ctx context.Context, bucketID string) (*BucketSummary, error)
	SweepExpired(ctx context.Context) (int64, error)
}

// TrendServicer defines the contract for the trending list.
type TrendServicer interface {
	ListTrends(ctx context.Context, recommendation *scoring.Recommendation) ([]models.TrendRecord, error)
}

// CombinedReport is the fan-out of all three analytics engines. A failing
// engine leaves its section nil and adds an entry to Errors.
type CombinedReport struct {
	Ticker      string                 `json:"ticker"`
	Fundamental *fundamental.Report    `json:"fundamental"`
	Technical   *technical.Report      `json:"technical"`
	Sentiment   *models.SentimentScore `json:"sentiment"`
	Errors      map[string]string      `json:"errors,omitempty"`
}

// AnalyticsServicer defines the contract for the analytics engines.
type AnalyticsServicer interface {
	Fundamental(ctx context.Context, ticker string) (*fundamental.Report, error)
	Technical(ctx context.Context, ticker string, periodDays int) (*technical.Report, error)
	Credibility(ctx context.Context, ticker string, horizon, step int) (*technical.CredibilityReport, error)
	Combined(ctx context.Context, ticker string) (*CombinedReport, error)
}

// SentimentServicer defines the contract for the sentiment cache and its
// refresh job.
type SentimentServicer interface {
	sentiment.Store
	ListSentiment(ctx context.Context) ([]models.SentimentScore, error)
	GetSentiment(ctx context.Context, ticker string) (*models.SentimentScore, error)
	StartRefresh(ctx context.Context) error
	RunRefresh(ctx context.Context) (*sentiment.RefreshSummary, error)
	WaitRefresh()
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, entry AuditEntry)
}
