package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"alphafusion/internal/models"
	"alphafusion/internal/sentiment"
	"alphafusion/internal/testutil"
)

// mockCompanyScorer implements sentiment.CompanyScorer for testing.
type mockCompanyScorer struct {
	scoreFn func(ctx context.Context, company string) (sentiment.Result, error)
}

func (m *mockCompanyScorer) Score(ctx context.Context, company string) (sentiment.Result, error) {
	return m.scoreFn(ctx, company)
}

func fixedScorer(score float64) *mockCompanyScorer {
	return &mockCompanyScorer{scoreFn: func(_ context.Context, company string) (sentiment.Result, error) {
		return sentiment.Result{Company: company, Score: score, ArticleCount: 4}, nil
	}}
}

func TestSentimentTargets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSentimentService(context.Background(), db, fixedScorer(0), 1)
	testutil.CreateTestUnscoredStock(t, db, "TCS", "Tata Consultancy Services")
	testutil.CreateTestIndex(t, db, "NIFTY 50", "^NSEI")

	targets, err := svc.SentimentTargets(context.Background())
	testutil.AssertNoError(t, err)
	if len(targets) != 1 {
		t.Fatalf("expected only the equity, got %+v", targets)
	}
	if targets[0].Symbol != "TCS" || targets[0].Company != "Tata Consultancy Services" {
		t.Errorf("unexpected target %+v", targets[0])
	}
}

func TestSaveSentiment_Upserts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSentimentService(context.Background(), db, fixedScorer(0), 1)
	ctx := context.Background()

	first := time.Now().Add(-time.Hour)
	testutil.AssertNoError(t, svc.SaveSentiment(ctx, "TCS", sentiment.Result{Company: "TCS", Score: 0.25, ArticleCount: 8}, first))
	testutil.AssertNoError(t, svc.SaveSentiment(ctx, "TCS", sentiment.Result{Company: "TCS", Score: -0.4, ArticleCount: 3}, time.Now()))

	var rows []models.SentimentScore
	db.Find(&rows)
	if len(rows) != 1 {
		t.Fatalf("expected one cached row, got %d", len(rows))
	}
	if rows[0].Score != -0.4 || rows[0].ArticleCount != 3 {
		t.Errorf("expected the latest score, got %+v", rows[0])
	}
	if !rows[0].ComputedAt.After(first) {
		t.Errorf("expected computed_at to move forward, got %v", rows[0].ComputedAt)
	}
}

func TestGetSentiment(t *testing.T) {
	t.Run("empty_cache", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSentimentService(context.Background(), db, fixedScorer(0), 1)

		_, err := svc.ListSentiment(context.Background())
		testutil.AssertAppError(t, err, "SENTIMENT_NOT_FOUND")
	})

	t.Run("by_ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSentimentService(context.Background(), db, fixedScorer(0), 1)
		testutil.AssertNoError(t, svc.SaveSentiment(context.Background(), "TCS", sentiment.Result{Company: "TCS", Score: 0.5}, time.Now()))

		score, err := svc.GetSentiment(context.Background(), "tcs.ns")
		testutil.AssertNoError(t, err)
		if score.Symbol != "TCS" || score.Score != 0.5 {
			t.Errorf("unexpected score %+v", score)
		}

		_, err = svc.GetSentiment(context.Background(), "INFY")
		testutil.AssertAppError(t, err, "SENTIMENT_NOT_FOUND")

		_, err = svc.GetSentiment(context.Background(), " ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestRunRefresh(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	scorer := &mockCompanyScorer{scoreFn: func(_ context.Context, company string) (sentiment.Result, error) {
		if company == "Broken Ltd" {
			return sentiment.Result{}, errors.New("all sources down")
		}
		return sentiment.Result{Company: company, Score: 0.3, ArticleCount: 5}, nil
	}}
	svc := NewSentimentService(context.Background(), db, scorer, 1)
	testutil.CreateTestUnscoredStock(t, db, "TCS", "Tata Consultancy Services")
	testutil.CreateTestUnscoredStock(t, db, "INFY", "Infosys Limited")
	testutil.CreateTestUnscoredStock(t, db, "BRKN", "Broken Ltd")

	summary, err := svc.RunRefresh(context.Background())
	testutil.AssertNoError(t, err)
	if summary.Total != 3 || summary.Scored != 2 || summary.Failed != 1 {
		t.Errorf("expected 3 total, 2 scored, 1 failed, got %+v", summary)
	}

	scores, err := svc.ListSentiment(context.Background())
	testutil.AssertNoError(t, err)
	if len(scores) != 2 || scores[0].Symbol != "INFY" || scores[1].Symbol != "TCS" {
		t.Errorf("unexpected cache contents %+v", scores)
	}
}

func TestStartRefresh_SingleFlight(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	started := make(chan struct{})
	release := make(chan struct{})
	scorer := &mockCompanyScorer{scoreFn: func(ctx context.Context, company string) (sentiment.Result, error) {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
			return sentiment.Result{}, ctx.Err()
		}
		return sentiment.Result{Company: company, Score: 0.1, ArticleCount: 1}, nil
	}}
	svc := NewSentimentService(context.Background(), db, scorer, 1)
	testutil.CreateTestUnscoredStock(t, db, "TCS", "Tata Consultancy Services")

	testutil.AssertNoError(t, svc.StartRefresh(context.Background()))
	<-started

	err := svc.StartRefresh(context.Background())
	testutil.AssertAppError(t, err, "REFRESH_IN_PROGRESS")
	_, err = svc.RunRefresh(context.Background())
	testutil.AssertAppError(t, err, "REFRESH_IN_PROGRESS")

	close(release)
	svc.WaitRefresh()

	score, err := svc.GetSentiment(context.Background(), "TCS")
	testutil.AssertNoError(t, err)
	if score.Score != 0.1 {
		t.Errorf("expected score 0.1, got %v", score.Score)
	}
}
