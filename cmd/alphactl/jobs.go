package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"alphafusion/internal/config"
	"alphafusion/internal/logger"
	"alphafusion/internal/seed"
	"alphafusion/internal/sentiment"
	"alphafusion/internal/services"
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment",
	Short: "Manage the news sentiment cache",
}

var sentimentRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Score news for every catalog equity and update the cache",
	Long: `Run the sentiment job once against the configured database.

Headlines are pulled from the configured news sources, classified and written
to the sentiment cache. Companies whose sources all fail keep their previous
score.`,
	Args: cobra.NoArgs,
	RunE: runSentimentRefresh,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled catalog into the database",
	Long: `Upsert the bundled stock, index and trend catalog. Running it again
updates existing rows in place.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	sentimentCmd.AddCommand(sentimentRefreshCmd)
}

// newsScorer builds the headline scorer from the configured source weights.
func newsScorer(cfg *config.Config, client *http.Client) *sentiment.Scorer {
	primary, fallback := sentiment.DefaultSources(client)
	return sentiment.NewScorer(
		sentiment.Reweight(primary, cfg.Scoring.Sentiment.Sources),
		sentiment.Reweight(fallback, cfg.Scoring.Sentiment.FallbackSources),
		sentiment.NewLexicon(),
	).WithNeutralWeight(cfg.Scoring.Sentiment.NeutralWeight)
}

func runSentimentRefresh(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	manager, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Get().Warnf("database close error: %v", err)
		}
	}()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	client := &http.Client{Timeout: cfg.RequestTimeout}
	svc := services.NewSentimentService(ctx, manager.DB(), newsScorer(cfg, client), cfg.SentimentWorkers)
	summary, err := svc.RunRefresh(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scored %d of %d companies (%d failed) in %s\n",
		summary.Scored, summary.Total, summary.Failed, summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	catalog, err := seed.Load()
	if err != nil {
		return err
	}
	manager, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Get().Warnf("database close error: %v", err)
		}
	}()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	result, err := seed.Apply(ctx, manager.DB(), catalog)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d stocks and %d trends\n", result.Stocks, result.Trends)
	return nil
}
