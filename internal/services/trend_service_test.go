package services

import (
	"context"
	"testing"

	"alphafusion/internal/config"
	"alphafusion/internal/scoring"
	"alphafusion/internal/testutil"
)

func TestListTrends(t *testing.T) {
	t.Run("orders_and_recommends", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTrendService(db, scoring.NewScorer(config.DefaultScoring()))

		// ITC is in the catalog with weak scores, which outrank its trend score.
		testutil.CreateTestStockWithScores(t, db, "ITC", 50, 50, 50)
		testutil.CreateTestTrend(t, db, "ITC", 80)
		testutil.CreateTestTrend(t, db, "ADANIENT", 94)
		testutil.CreateTestTrend(t, db, "MARUTI", 65)
		testutil.CreateTestTrend(t, db, "TECHM", 40)

		trends, err := svc.ListTrends(context.Background(), nil)
		testutil.AssertNoError(t, err)
		if len(trends) != 4 {
			t.Fatalf("expected 4 trends, got %d", len(trends))
		}

		want := []struct {
			symbol string
			rec    scoring.Recommendation
		}{
			{"ADANIENT", scoring.RecommendBuy},
			{"ITC", scoring.RecommendSell},
			{"MARUTI", scoring.RecommendHold},
			{"TECHM", scoring.RecommendSell},
		}
		for i, w := range want {
			if trends[i].Symbol != w.symbol {
				t.Errorf("position %d: expected %s, got %s", i, w.symbol, trends[i].Symbol)
			}
			if trends[i].Recommendation != string(w.rec) {
				t.Errorf("%s: expected %s, got %s", trends[i].Symbol, w.rec, trends[i].Recommendation)
			}
		}
	})

	t.Run("filters_by_recommendation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTrendService(db, scoring.NewScorer(config.DefaultScoring()))
		testutil.CreateTestTrend(t, db, "ADANIENT", 94)
		testutil.CreateTestTrend(t, db, "MARUTI", 65)

		hold := scoring.RecommendHold
		trends, err := svc.ListTrends(context.Background(), &hold)
		testutil.AssertNoError(t, err)
		if len(trends) != 1 || trends[0].Symbol != "MARUTI" {
			t.Errorf("expected only MARUTI, got %+v", trends)
		}
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTrendService(db, scoring.NewScorer(config.DefaultScoring()))

		trends, err := svc.ListTrends(context.Background(), nil)
		testutil.AssertNoError(t, err)
		if trends == nil || len(trends) != 0 {
			t.Errorf("expected an empty list, got %v", trends)
		}
	})
}
