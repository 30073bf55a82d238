package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "alphafusion/internal/errors"
	"alphafusion/internal/fundamental"
	"alphafusion/internal/models"
	"alphafusion/internal/services"
	"alphafusion/internal/technical"
)

func setupAnalyticsRouter(handler *AnalyticsHandler) *gin.Engine {
	r := gin.New()
	r.GET("/analytics/fundamental", handler.GetFundamental)
	r.GET("/analytics/technical", handler.GetTechnical)
	r.GET("/analytics/credibility", handler.GetCredibility)
	r.GET("/analytics/sentiment", handler.GetSentiment)
	r.POST("/analytics/sentiment/refresh", handler.RefreshSentiment)
	r.GET("/analytics/combined", handler.GetCombined)
	return r
}

func TestAnalyticsHandler_RequiresTicker(t *testing.T) {
	r := setupAnalyticsRouter(NewAnalyticsHandler(&mockAnalyticsService{}, &mockSentimentService{}))

	for _, path := range []string{"/analytics/fundamental", "/analytics/technical?ticker=%20", "/analytics/credibility", "/analytics/combined"} {
		rec := doRequest(r, "GET", path, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rec.Code)
			continue
		}
		assertErrorMessage(t, parseJSON(t, rec), "ticker is required")
	}
}

func TestAnalyticsHandler_GetFundamental(t *testing.T) {
	t.Run("returns the report", func(t *testing.T) {
		svc := &mockAnalyticsService{
			fundamentalFn: func(_ context.Context, ticker string) (*fundamental.Report, error) {
				return &fundamental.Report{Ticker: ticker + ".NS", Recommendation: "Buy"}, nil
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc, &mockSentimentService{}))

		rec := doRequest(r, "GET", "/analytics/fundamental?ticker=TCS", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["ticker"] != "TCS.NS" || result["recommendation"] != "Buy" {
			t.Errorf("unexpected report %v", result)
		}
	})

	t.Run("returns 502 when the provider is down", func(t *testing.T) {
		svc := &mockAnalyticsService{
			fundamentalFn: func(_ context.Context, _ string) (*fundamental.Report, error) {
				return nil, apperrors.ErrUpstreamUnavailable
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc, &mockSentimentService{}))

		rec := doRequest(r, "GET", "/analytics/fundamental?ticker=TCS", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UPSTREAM_UNAVAILABLE")
	})
}

func TestAnalyticsHandler_GetTechnical(t *testing.T) {
	t.Run("defaults period_days", func(t *testing.T) {
		var captured int
		svc := &mockAnalyticsService{
			technicalFn: func(_ context.Context, ticker string, periodDays int) (*technical.Report, error) {
				captured = periodDays
				return &technical.Report{Ticker: ticker, Score: 62.5, Signal: "Buy"}, nil
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc, &mockSentimentService{}))

		rec := doRequest(r, "GET", "/analytics/technical?ticker=INFY", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured != technical.DefaultPeriodDays {
			t.Errorf("expected %d, got %d", technical.DefaultPeriodDays, captured)
		}
		if parseJSON(t, rec)["score"].(float64) != 62.5 {
			t.Error("expected score 62.5")
		}
	})

	t.Run("passes period_days", func(t *testing.T) {
		var captured int
		svc := &mockAnalyticsService{
			technicalFn: func(_ context.Context, ticker string, periodDays int) (*technical.Report, error) {
				captured = periodDays
				return &technical.Report{Ticker: ticker}, nil
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc, &mockSentimentService{}))

		doRequest(r, "GET", "/analytics/technical?ticker=INFY&period_days=30", "")

		if captured != 30 {
			t.Errorf("expected 30, got %d", captured)
		}
	})

	t.Run("returns 400 on a non-numeric period", func(t *testing.T) {
		r := setupAnalyticsRouter(NewAnalyticsHandler(&mockAnalyticsService{}, &mockSentimentService{}))

		rec := doRequest(r, "GET", "/analytics/technical?ticker=INFY&period_days=ninety", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "period_days must be an integer")
	})

	t.Run("returns 422 on short history", func(t *testing.T) {
		svc := &mockAnalyticsService{
			technicalFn: func(_ context.Context, _ string, _ int) (*technical.Report, error) {
				return nil, apperrors.ErrInsufficientData
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(svc, &mockSentimentService{}))

		rec := doRequest(r, "GET", "/analytics/technical?ticker=NEWIPO", "")

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestAnalyticsHandler_GetCredibility(t *testing.T) {
	var horizon, step int
	svc := &mockAnalyticsService{
		credibilityFn: func(_ context.Context, ticker string, h, s int) (*technical.CredibilityReport, error) {
			horizon, step = h, s
			return &technical.CredibilityReport{Ticker: ticker, Horizon: h, Step: s, Credibility: 55}, nil
		},
	}
	r := setupAnalyticsRouter(NewAnalyticsHandler(svc, &mockSentimentService{}))

	rec := doRequest(r, "GET", "/analytics/credibility?ticker=TCS", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if horizon != technical.DefaultHorizon || step != technical.DefaultStep {
		t.Errorf("expected defaults, got horizon=%d step=%d", horizon, step)
	}

	doRequest(r, "GET", "/analytics/credibility?ticker=TCS&horizon=20&step=2", "")
	if horizon != 20 || step != 2 {
		t.Errorf("expected horizon=20 step=2, got horizon=%d step=%d", horizon, step)
	}
}

func TestAnalyticsHandler_GetSentiment(t *testing.T) {
	t.Run("lists the cache without a ticker", func(t *testing.T) {
		sentimentSvc := &mockSentimentService{
			listSentimentFn: func(_ context.Context) ([]models.SentimentScore, error) {
				return []models.SentimentScore{{Symbol: "INFY", Score: 0.2}, {Symbol: "TCS", Score: -0.1}}, nil
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(&mockAnalyticsService{}, sentimentSvc))

		rec := doRequest(r, "GET", "/analytics/sentiment", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if n := len(parseJSON(t, rec)["sentiment"].([]interface{})); n != 2 {
			t.Errorf("expected 2 scores, got %d", n)
		}
	})

	t.Run("returns one ticker", func(t *testing.T) {
		var captured string
		sentimentSvc := &mockSentimentService{
			getSentimentFn: func(_ context.Context, ticker string) (*models.SentimentScore, error) {
				captured = ticker
				return &models.SentimentScore{Symbol: "TCS", Score: 0.4}, nil
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(&mockAnalyticsService{}, sentimentSvc))

		rec := doRequest(r, "GET", "/analytics/sentiment?ticker=TCS.NS", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured != "TCS.NS" {
			t.Errorf("expected TCS.NS, got %s", captured)
		}
	})

	t.Run("returns 404 on an empty cache", func(t *testing.T) {
		sentimentSvc := &mockSentimentService{
			listSentimentFn: func(_ context.Context) ([]models.SentimentScore, error) {
				return nil, apperrors.ErrSentimentNotFound
			},
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(&mockAnalyticsService{}, sentimentSvc))

		rec := doRequest(r, "GET", "/analytics/sentiment", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SENTIMENT_NOT_FOUND")
	})
}

func TestAnalyticsHandler_RefreshSentiment(t *testing.T) {
	t.Run("returns 202", func(t *testing.T) {
		r := setupAnalyticsRouter(NewAnalyticsHandler(&mockAnalyticsService{}, &mockSentimentService{}))

		rec := doRequest(r, "POST", "/analytics/sentiment/refresh", "")

		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", rec.Code)
		}
		if parseJSON(t, rec)["status"] != "started" {
			t.Error("expected status=started")
		}
	})

	t.Run("returns 409 while running", func(t *testing.T) {
		sentimentSvc := &mockSentimentService{
			startRefreshFn: func(_ context.Context) error { return apperrors.ErrRefreshInProgress },
		}
		r := setupAnalyticsRouter(NewAnalyticsHandler(&mockAnalyticsService{}, sentimentSvc))

		rec := doRequest(r, "POST", "/analytics/sentiment/refresh", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "REFRESH_IN_PROGRESS")
	})
}

func TestAnalyticsHandler_GetCombined(t *testing.T) {
	svc := &mockAnalyticsService{
		combinedFn: func(_ context.Context, ticker string) (*services.CombinedReport, error) {
			return &services.CombinedReport{
				Ticker:      ticker,
				Fundamental: &fundamental.Report{Ticker: ticker},
				Errors:      map[string]string{services.SectionSentiment: "No sentiment data available"},
			}, nil
		},
	}
	r := setupAnalyticsRouter(NewAnalyticsHandler(svc, &mockSentimentService{}))

	rec := doRequest(r, "GET", "/analytics/combined?ticker=TCS", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["fundamental"] == nil {
		t.Error("expected the fundamental section")
	}
	if result["sentiment"] != nil {
		t.Error("expected no sentiment section")
	}
	errs := result["errors"].(map[string]interface{})
	if errs["sentiment"] != "No sentiment data available" {
		t.Errorf("unexpected errors %v", errs)
	}
}
