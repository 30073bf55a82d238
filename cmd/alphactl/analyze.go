package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alphafusion/internal/config"
	"alphafusion/internal/fundamental"
	"alphafusion/internal/models"
	"alphafusion/internal/provider"
	"alphafusion/internal/seed"
	"alphafusion/internal/technical"
)

var (
	periodDays  int
	credibility bool
)

var fundamentalsCmd = &cobra.Command{
	Use:   "fundamentals [tickers...]",
	Short: "Score company financials",
	Long: `Fetch the latest financials for each ticker and print the valuation,
profitability, health and growth scores with the composite recommendation.

Without arguments every equity in the bundled catalog is scored.`,
	RunE: runFundamentals,
}

var technicalsCmd = &cobra.Command{
	Use:   "technicals TICKER",
	Short: "Run technical analysis on a ticker",
	Args:  cobra.ExactArgs(1),
	RunE:  runTechnicals,
}

func init() {
	technicalsCmd.Flags().IntVar(&periodDays, "period-days", technical.DefaultPeriodDays, "Days of closing prices in the history series")
	technicalsCmd.Flags().BoolVar(&credibility, "credibility", false, "Also backtest the signal over two years of history")
}

func runFundamentals(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	market, err := marketData(cfg)
	if err != nil {
		return err
	}

	tickers, err := fundamentalTickers(args)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	analyzer := fundamental.NewAnalyzer(market)
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tVALUATION\tPROFITABILITY\tHEALTH\tGROWTH\tCOMPOSITE\tRECOMMENDATION")
	failed := 0
	for _, ticker := range tickers {
		report, err := analyzer.Analyze(ctx, ticker)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\terror: %v\n", ticker, err)
			continue
		}
		s := report.Scores
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", report.Ticker,
			score(s.Valuation), score(s.Profitability), score(s.Health), score(s.Growth), score(s.Composite),
			report.Recommendation)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printLegend(out)

	if failed == len(tickers) {
		return errors.New("no ticker could be scored")
	}
	return nil
}

// fundamentalTickers normalises args, or lists the catalog equities.
func fundamentalTickers(args []string) ([]string, error) {
	if len(args) > 0 {
		tickers := make([]string, 0, len(args))
		for _, a := range args {
			if t := provider.NormalizeTicker(a); t != "" {
				tickers = append(tickers, t)
			}
		}
		return tickers, nil
	}

	catalog, err := seed.Load()
	if err != nil {
		return nil, err
	}
	var tickers []string
	for _, s := range catalog.StockModels() {
		if s.Kind != models.StockKindEquity {
			continue
		}
		tickers = append(tickers, provider.TickerFor(provider.Instrument{Symbol: s.Symbol, Exchange: s.Exchange, Ticker: s.Ticker}))
	}
	return tickers, nil
}

func score(n fundamental.Number) string {
	if !n.Known() {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", float64(n))
}

func printLegend(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Legend:")
	fmt.Fprintf(w, "  80+  %s\n", fundamental.RecommendationStrongBuy)
	fmt.Fprintf(w, "  65+  %s\n", fundamental.RecommendationBuy)
	fmt.Fprintf(w, "  50+  %s\n", fundamental.RecommendationHold)
	fmt.Fprintf(w, "  35+  %s\n", fundamental.RecommendationReduce)
	fmt.Fprintf(w, "  <35  %s\n", fundamental.RecommendationStrongSell)
}

func runTechnicals(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	market, err := marketData(cfg)
	if err != nil {
		return err
	}
	ticker := provider.NormalizeTicker(args[0])

	ctx, cancel := commandContext(cmd)
	defer cancel()

	analyzer := technical.NewAnalyzer(market)
	report, err := analyzer.Analyze(ctx, ticker, periodDays)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Ticker\t%s (%s)\n", report.Ticker, report.DataMode)
	fmt.Fprintf(w, "Bar\t%s\n", report.BarTime.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(w, "Close\t%.2f (%+.2f%%)\n", report.LatestClose, report.ChangePercent)
	if report.RSILatest != nil {
		fmt.Fprintf(w, "RSI\t%.1f\n", *report.RSILatest)
	}
	fmt.Fprintf(w, "Score\t%.1f\n", report.Score)
	fmt.Fprintf(w, "Signal\t%s (confidence %.0f%%)\n", report.Signal, report.Confidence*100)
	fmt.Fprintf(w, "Smart stop\t%.2f\n", report.SmartStop)
	fmt.Fprintf(w, "Interpretation\t%s\n", report.Interpretation)
	if err := w.Flush(); err != nil {
		return err
	}

	if !credibility {
		return nil
	}
	backtest, err := analyzer.Credibility(ctx, ticker, technical.DefaultHorizon, technical.DefaultStep)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nCredibility %.1f over %d samples (buy hit rate %.1f%%, directional accuracy %.1f%%)\n",
		backtest.Credibility, backtest.Samples, backtest.BuyHitRate*100, backtest.Accuracy*100)
	return nil
}
