package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"alphafusion/internal/fundamental"
	"alphafusion/internal/models"
	"alphafusion/internal/pagination"
	"alphafusion/internal/provider"
	"alphafusion/internal/scoring"
	"alphafusion/internal/sentiment"
	"alphafusion/internal/services"
	"alphafusion/internal/technical"
	"alphafusion/internal/validator"
)

// --- mock stock service ---

type mockStockService struct {
	searchFn      func(ctx context.Context, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Stock], error)
	getBySymbolFn func(ctx context.Context, symbol string) (*models.Stock, error)
	indicesFn     func(ctx context.Context) ([]models.Stock, error)
}

func (m *mockStockService) Search(ctx context.Context, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Stock], error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, page)
	}
	resp := pagination.NewPageResponse([]models.Stock{}, pagination.PageRequest{Page: 1, PageSize: 20}, 0)
	return &resp, nil
}

func (m *mockStockService) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	if m.getBySymbolFn != nil {
		return m.getBySymbolFn(ctx, symbol)
	}
	return &models.Stock{Symbol: symbol}, nil
}

func (m *mockStockService) Indices(ctx context.Context) ([]models.Stock, error) {
	if m.indicesFn != nil {
		return m.indicesFn(ctx)
	}
	return []models.Stock{}, nil
}

func (m *mockStockService) LiveInstruments(_ context.Context) ([]provider.Instrument, error) {
	return nil, nil
}

func (m *mockStockService) ApplyQuotes(_ context.Context, quotes []provider.Quote) (int, error) {
	return len(quotes), nil
}

var _ services.StockServicer = (*mockStockService)(nil)

// --- mock bucket service ---

type mockBucketService struct {
	createBucketFn  func(ctx context.Context) (*models.Bucket, error)
	getBucketFn     func(ctx context.Context, bucketID string) (*models.Bucket, error)
	listHoldingsFn  func(ctx context.Context, bucketID string) ([]models.Holding, error)
	addHoldingFn    func(ctx context.Context, bucketID string, input services.HoldingInput) (*services.AddHoldingResult, error)
	removeHoldingFn func(ctx context.Context, bucketID, holdingID string) (*models.Holding, error)
	summaryFn       func(ctx context.Context, bucketID string) (*services.BucketSummary, error)
}

func (m *mockBucketService) CreateBucket(ctx context.Context) (*models.Bucket, error) {
	if m.createBucketFn != nil {
		return m.createBucketFn(ctx)
	}
	return &models.Bucket{}, nil
}

func (m *mockBucketService) GetBucket(ctx context.Context, bucketID string) (*models.Bucket, error) {
	if m.getBucketFn != nil {
		return m.getBucketFn(ctx, bucketID)
	}
	return &models.Bucket{Base: models.Base{ID: bucketID}}, nil
}

func (m *mockBucketService) ListHoldings(ctx context.Context, bucketID string) ([]models.Holding, error) {
	if m.listHoldingsFn != nil {
		return m.listHoldingsFn(ctx, bucketID)
	}
	return []models.Holding{}, nil
}

func (m *mockBucketService) AddHolding(ctx context.Context, bucketID string, input services.HoldingInput) (*services.AddHoldingResult, error) {
	if m.addHoldingFn != nil {
		return m.addHoldingFn(ctx, bucketID, input)
	}
	return &services.AddHoldingResult{Holding: &models.Holding{}}, nil
}

func (m *mockBucketService) RemoveHolding(ctx context.Context, bucketID, holdingID string) (*models.Holding, error) {
	if m.removeHoldingFn != nil {
		return m.removeHoldingFn(ctx, bucketID, holdingID)
	}
	return &models.Holding{Base: models.Base{ID: holdingID}}, nil
}

func (m *mockBucketService) Summary(ctx context.Context, bucketID string) (*services.BucketSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, bucketID)
	}
	return &services.BucketSummary{}, nil
}

func (m *mockBucketService) SweepExpired(_ context.Context) (int64, error) {
	return 0, nil
}

var _ services.BucketServicer = (*mockBucketService)(nil)

// --- mock trend service ---

type mockTrendService struct {
	listTrendsFn func(ctx context.Context, recommendation *scoring.Recommendation) ([]models.TrendRecord, error)
}

func (m *mockTrendService) ListTrends(ctx context.Context, recommendation *scoring.Recommendation) ([]models.TrendRecord, error) {
	if m.listTrendsFn != nil {
		return m.listTrendsFn(ctx, recommendation)
	}
	return []models.TrendRecord{}, nil
}

var _ services.TrendServicer = (*mockTrendService)(nil)

// --- mock analytics service ---

type mockAnalyticsService struct {
	fundamentalFn func(ctx context.Context, ticker string) (*fundamental.Report, error)
	technicalFn   func(ctx context.Context, ticker string, periodDays int) (*technical.Report, error)
	credibilityFn func(ctx context.Context, ticker string, horizon, step int) (*technical.CredibilityReport, error)
	combinedFn    func(ctx context.Context, ticker string) (*services.CombinedReport, error)
}

func (m *mockAnalyticsService) Fundamental(ctx context.Context, ticker string) (*fundamental.Report, error) {
	if m.fundamentalFn != nil {
		return m.fundamentalFn(ctx, ticker)
	}
	return &fundamental.Report{Ticker: ticker}, nil
}

func (m *mockAnalyticsService) Technical(ctx context.Context, ticker string, periodDays int) (*technical.Report, error) {
	if m.technicalFn != nil {
		return m.technicalFn(ctx, ticker, periodDays)
	}
	return &technical.Report{Ticker: ticker}, nil
}

func (m *mockAnalyticsService) Credibility(ctx context.Context, ticker string, horizon, step int) (*technical.CredibilityReport, error) {
	if m.credibilityFn != nil {
		return m.credibilityFn(ctx, ticker, horizon, step)
	}
	return &technical.CredibilityReport{Ticker: ticker, Horizon: horizon, Step: step}, nil
}

func (m *mockAnalyticsService) Combined(ctx context.Context, ticker string) (*services.CombinedReport, error) {
	if m.combinedFn != nil {
		return m.combinedFn(ctx, ticker)
	}
	return &services.CombinedReport{Ticker: ticker}, nil
}

var _ services.AnalyticsServicer = (*mockAnalyticsService)(nil)

// --- mock sentiment service ---

type mockSentimentService struct {
	listSentimentFn func(ctx context.Context) ([]models.SentimentScore, error)
	getSentimentFn  func(ctx context.Context, ticker string) (*models.SentimentScore, error)
	startRefreshFn  func(ctx context.Context) error
}

func (m *mockSentimentService) SentimentTargets(_ context.Context) ([]sentiment.Target, error) {
	return nil, nil
}

func (m *mockSentimentService) SaveSentiment(_ context.Context, _ string, _ sentiment.Result, _ time.Time) error {
	return nil
}

func (m *mockSentimentService) ListSentiment(ctx context.Context) ([]models.SentimentScore, error) {
	if m.listSentimentFn != nil {
		return m.listSentimentFn(ctx)
	}
	return []models.SentimentScore{}, nil
}

func (m *mockSentimentService) GetSentiment(ctx context.Context, ticker string) (*models.SentimentScore, error) {
	if m.getSentimentFn != nil {
		return m.getSentimentFn(ctx, ticker)
	}
	return &models.SentimentScore{Symbol: ticker}, nil
}

func (m *mockSentimentService) StartRefresh(ctx context.Context) error {
	if m.startRefreshFn != nil {
		return m.startRefreshFn(ctx)
	}
	return nil
}

func (m *mockSentimentService) RunRefresh(_ context.Context) (*sentiment.RefreshSummary, error) {
	return &sentiment.RefreshSummary{}, nil
}

func (m *mockSentimentService) WaitRefresh() {}

var _ services.SentimentServicer = (*mockSentimentService)(nil)

// --- mock audit service ---

type mockAuditService struct {
	mu      sync.Mutex
	entries []services.AuditEntry
}

func (m *mockAuditService) Log(_ context.Context, entry services.AuditEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectBucketID(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("bucketID", id)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func newRecorder(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertErrorMessage(t *testing.T, result map[string]interface{}, message string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["message"] != message {
		t.Errorf("expected error message %q, got %q", message, errObj["message"])
	}
}
