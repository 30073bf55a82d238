// Command alphactl runs the AlphaFusion analytics engines and jobs from the
// command line.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"alphafusion/internal/config"
	"alphafusion/internal/database"
	"alphafusion/internal/logger"
	"alphafusion/internal/provider"
)

var (
	feedName string
	timeout  time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "alphactl",
	Short: "AlphaFusion analytics and maintenance jobs",
	Long: `alphactl runs the AlphaFusion scoring engines outside the API server.

Available commands:
  fundamentals - Score company financials
  technicals   - Run technical analysis on a ticker
  sentiment    - Manage the news sentiment cache
  seed         - Load the bundled catalog into the database`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Init(os.Getenv("ENV"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&feedName, "feed", "", "Market data feed: yahoo or simulated (default: MARKET_FEED)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(fundamentalsCmd)
	rootCmd.AddCommand(technicalsCmd)
	rootCmd.AddCommand(sentimentCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// commandContext bounds a command by --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// marketData builds the feed chosen by --feed, falling back to configuration.
func marketData(cfg *config.Config) (provider.MarketData, error) {
	name := feedName
	if name == "" {
		name = cfg.MarketFeed
	}
	client := &http.Client{Timeout: cfg.RequestTimeout}
	return provider.New(name, client, uint64(time.Now().UnixNano()))
}

// openDatabase connects and migrates the configured database.
func openDatabase(cfg *config.Config) (*database.Manager, error) {
	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := manager.Migrate(); err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return manager, nil
}
