package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScoringFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write scoring file: %v", err)
	}
	return path
}

func TestLoadScoring(t *testing.T) {
	t.Run("missing_file_returns_defaults", func(t *testing.T) {
		s, err := LoadScoring(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.StatusThreshold != 60 {
			t.Errorf("expected default threshold 60, got %v", s.StatusThreshold)
		}
		if s.Recommendation.Buy != 75 || s.Recommendation.Hold != 60 {
			t.Errorf("unexpected recommendation defaults: %+v", s.Recommendation)
		}
	})

	t.Run("overrides_only_given_fields", func(t *testing.T) {
		path := writeScoringFile(t, "status_threshold: 65\n")
		s, err := LoadScoring(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.StatusThreshold != 65 {
			t.Errorf("expected threshold 65, got %v", s.StatusThreshold)
		}
		if s.Recommendation.Buy != 75 {
			t.Errorf("expected buy cut-off to keep default 75, got %v", s.Recommendation.Buy)
		}
		if s.Sentiment.NeutralWeight != 0.3 {
			t.Errorf("expected neutral weight 0.3, got %v", s.Sentiment.NeutralWeight)
		}
	})

	t.Run("rejects_out_of_range_threshold", func(t *testing.T) {
		path := writeScoringFile(t, "status_threshold: 140\n")
		if _, err := LoadScoring(path); err == nil {
			t.Fatal("expected error for threshold above 100")
		}
	})

	t.Run("rejects_hold_above_buy", func(t *testing.T) {
		path := writeScoringFile(t, "recommendation:\n  buy: 50\n  hold: 70\n")
		if _, err := LoadScoring(path); err == nil {
			t.Fatal("expected error when hold exceeds buy")
		}
	})

	t.Run("rejects_malformed_yaml", func(t *testing.T) {
		path := writeScoringFile(t, "status_threshold: [oops\n")
		if _, err := LoadScoring(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestLoad_StatusThresholdEnv(t *testing.T) {
	t.Setenv("SCORING_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("STATUS_THRESHOLD", "65")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scoring.StatusThreshold != 65 {
		t.Errorf("expected threshold 65 from env, got %v", cfg.Scoring.StatusThreshold)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}
