package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	yahooChartURL      = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooSummaryURL    = "https://query2.finance.yahoo.com/v10/finance/quoteSummary"
	yahooMaxConcurrent = 5
	yahooUA            = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

var summaryModules = []string{
	"financialData",
	"defaultKeyStatistics",
	"summaryDetail",
	"incomeStatementHistory",
	"balanceSheetHistory",
	"cashflowStatementHistory",
}

// yahooChartResponse is the v8 chart API response.
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *yahooAPIError     `json:"error"`
	} `json:"chart"`
}

type yahooAPIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooChartResult struct {
	Meta struct {
		Symbol             string  `json:"symbol"`
		Currency           string  `json:"currency"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		ChartPreviousClose float64 `json:"chartPreviousClose"`
		PreviousClose      float64 `json:"previousClose"`
		RegularMarketTime  int64   `json:"regularMarketTime"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// yahooSummaryResponse is the v10 quoteSummary API response.
type yahooSummaryResponse struct {
	QuoteSummary struct {
		Result []yahooSummaryResult `json:"result"`
		Error  *yahooAPIError       `json:"error"`
	} `json:"quoteSummary"`
}

// rawValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v rawValue) value() float64 {
	if v.Raw == nil {
		return math.NaN()
	}
	return *v.Raw
}

type yahooSummaryResult struct {
	FinancialData struct {
		CurrentPrice    rawValue `json:"currentPrice"`
		TotalRevenue    rawValue `json:"totalRevenue"`
		RevenuePerShare rawValue `json:"revenuePerShare"`
		TotalDebt       rawValue `json:"totalDebt"`
		EarningsGrowth  rawValue `json:"earningsGrowth"`
		FreeCashflow    rawValue `json:"freeCashflow"`
		OperatingCash   rawValue `json:"operatingCashflow"`
	} `json:"financialData"`
	DefaultKeyStatistics struct {
		SharesOutstanding rawValue `json:"sharesOutstanding"`
		BookValue         rawValue `json:"bookValue"`
		PriceToBook       rawValue `json:"priceToBook"`
		TrailingEps       rawValue `json:"trailingEps"`
		NetIncomeToCommon rawValue `json:"netIncomeToCommon"`
	} `json:"defaultKeyStatistics"`
	SummaryDetail struct {
		TrailingPE   rawValue `json:"trailingPE"`
		PriceToSales rawValue `json:"priceToSalesTrailing12Months"`
	} `json:"summaryDetail"`
	IncomeStatementHistory struct {
		Statements []struct {
			NetIncome       rawValue `json:"netIncome"`
			TotalRevenue    rawValue `json:"totalRevenue"`
			Ebit            rawValue `json:"ebit"`
			InterestExpense rawValue `json:"interestExpense"`
		} `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	BalanceSheetHistory struct {
		Statements []struct {
			TotalAssets             rawValue `json:"totalAssets"`
			TotalStockholderEquity  rawValue `json:"totalStockholderEquity"`
			TotalCurrentAssets      rawValue `json:"totalCurrentAssets"`
			TotalCurrentLiabilities rawValue `json:"totalCurrentLiabilities"`
			LongTermDebt            rawValue `json:"longTermDebt"`
			ShortLongTermDebt       rawValue `json:"shortLongTermDebt"`
		} `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
	CashflowStatementHistory struct {
		Statements []struct {
			TotalCashFromOperatingActivities rawValue `json:"totalCashFromOperatingActivities"`
			CapitalExpenditures              rawValue `json:"capitalExpenditures"`
		} `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
}

// Yahoo fetches quotes, history and financials from Yahoo Finance.
type Yahoo struct {
	httpClient *http.Client
	chartURL   string // overridable for tests
	summaryURL string // overridable for tests
}

// NewYahoo creates a new Yahoo Finance market data source.
func NewYahoo(httpClient *http.Client) *Yahoo {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Yahoo{httpClient: httpClient, chartURL: yahooChartURL, summaryURL: yahooSummaryURL}
}

// Name returns the source's display name.
func (p *Yahoo) Name() string { return "Yahoo Finance" }

// Quotes fetches the latest price for each instrument from the chart meta
// block, at most yahooMaxConcurrent requests at a time.
func (p *Yahoo) Quotes(ctx context.Context, instruments []Instrument) ([]Quote, []FetchError) {
	if len(instruments) == 0 {
		return nil, nil
	}

	var (
		mu          sync.Mutex
		quotes      []Quote
		fetchErrors []FetchError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(yahooMaxConcurrent)
	for _, inst := range instruments {
		g.Go(func() error {
			q, err := p.quote(gctx, inst)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fetchErrors = append(fetchErrors, FetchError{Symbol: inst.Symbol, Err: err})
				return nil
			}
			quotes = append(quotes, q)
			return nil
		})
	}
	_ = g.Wait()

	return quotes, fetchErrors
}

func (p *Yahoo) quote(ctx context.Context, inst Instrument) (Quote, error) {
	ticker := TickerFor(inst)
	result, err := p.chart(ctx, ticker, Range1d, Interval1d)
	if err != nil {
		return Quote{}, err
	}

	meta := result.Meta
	if meta.RegularMarketPrice == 0 {
		return Quote{}, fmt.Errorf("zero price for %s", ticker)
	}

	prev := meta.PreviousClose
	if prev == 0 {
		prev = meta.ChartPreviousClose
	}
	q := Quote{
		Symbol:        inst.Symbol,
		Exchange:      inst.Exchange,
		Price:         meta.RegularMarketPrice,
		PreviousClose: prev,
		Currency:      strings.ToUpper(meta.Currency),
		QuotedAt:      time.Now().UTC(),
	}
	if meta.RegularMarketTime > 0 {
		q.QuotedAt = time.Unix(meta.RegularMarketTime, 0).UTC()
	}
	if prev > 0 {
		q.Change = q.Price - prev
		q.ChangePercent = q.Change / prev * 100
	}
	return q, nil
}

// History fetches OHLCV bars for ticker. Bars with any missing field are dropped.
func (p *Yahoo) History(ctx context.Context, ticker string, rng Range, interval Interval) ([]Bar, error) {
	result, err := p.chart(ctx, ticker, rng, interval)
	if err != nil {
		return nil, err
	}
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoData)
	}

	q := result.Indicators.Quote[0]
	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, okO := at(q.Open, i)
		h, okH := at(q.High, i)
		l, okL := at(q.Low, i)
		c, okC := at(q.Close, i)
		v, okV := at(q.Volume, i)
		if !okO || !okH || !okL || !okC || !okV {
			continue
		}
		bars = append(bars, Bar{Time: time.Unix(ts, 0).UTC(), Open: o, High: h, Low: l, Close: c, Volume: v})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoData)
	}
	return bars, nil
}

func at(s []*float64, i int) (float64, bool) {
	if i >= len(s) || s[i] == nil || math.IsNaN(*s[i]) {
		return 0, false
	}
	return *s[i], true
}

func (p *Yahoo) chart(ctx context.Context, ticker string, rng Range, interval Interval) (*yahooChartResult, error) {
	q := url.Values{}
	q.Set("range", string(rng))
	q.Set("interval", string(interval))
	endpoint := p.chartURL + "/" + url.PathEscape(ticker) + "?" + q.Encode()

	var resp yahooChartResponse
	if err := p.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%s: %s: %w", resp.Chart.Error.Code, resp.Chart.Error.Description, ErrSymbolNotFound)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrSymbolNotFound)
	}
	return &resp.Chart.Result[0], nil
}

// Fundamentals fetches the quoteSummary modules and flattens them.
func (p *Yahoo) Fundamentals(ctx context.Context, ticker string) (*Fundamentals, error) {
	endpoint := p.summaryURL + "/" + url.PathEscape(ticker) + "?modules=" + strings.Join(summaryModules, ",")

	var resp yahooSummaryResponse
	if err := p.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("%s: %s: %w", resp.QuoteSummary.Error.Code, resp.QuoteSummary.Error.Description, ErrSymbolNotFound)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrSymbolNotFound)
	}
	r := resp.QuoteSummary.Result[0]

	f := EmptyFundamentals(ticker)
	f.Price = r.FinancialData.CurrentPrice.value()
	f.SharesOutstanding = r.DefaultKeyStatistics.SharesOutstanding.value()
	f.Revenue = r.FinancialData.TotalRevenue.value()
	f.RevenuePerShare = r.FinancialData.RevenuePerShare.value()
	f.TotalDebt = r.FinancialData.TotalDebt.value()
	f.EarningsGrowth = r.FinancialData.EarningsGrowth.value()
	f.FreeCashFlow = r.FinancialData.FreeCashflow.value()
	f.OperatingCashFlow = r.FinancialData.OperatingCash.value()
	f.BookValuePerShare = r.DefaultKeyStatistics.BookValue.value()
	f.PriceToBook = r.DefaultKeyStatistics.PriceToBook.value()
	f.TrailingEPS = r.DefaultKeyStatistics.TrailingEps.value()
	f.NetIncome = r.DefaultKeyStatistics.NetIncomeToCommon.value()
	f.TrailingPE = r.SummaryDetail.TrailingPE.value()
	f.PriceToSales = r.SummaryDetail.PriceToSales.value()

	if st := r.IncomeStatementHistory.Statements; len(st) > 0 {
		f.NetIncome = firstKnown(st[0].NetIncome.value(), f.NetIncome)
		f.Revenue = firstKnown(st[0].TotalRevenue.value(), f.Revenue)
		f.EBIT = st[0].Ebit.value()
		f.InterestExpense = math.Abs(st[0].InterestExpense.value())
		if len(st) > 1 {
			f.NetIncomePrevious = st[1].NetIncome.value()
		}
	}
	if st := r.BalanceSheetHistory.Statements; len(st) > 0 {
		f.TotalAssets = st[0].TotalAssets.value()
		f.ShareholderEquity = st[0].TotalStockholderEquity.value()
		f.CurrentAssets = st[0].TotalCurrentAssets.value()
		f.CurrentLiabilities = st[0].TotalCurrentLiabilities.value()
		if math.IsNaN(f.TotalDebt) {
			lt, cur := st[0].LongTermDebt.value(), st[0].ShortLongTermDebt.value()
			if !math.IsNaN(lt) || !math.IsNaN(cur) {
				f.TotalDebt = zeroIfNaN(lt) + zeroIfNaN(cur)
			}
		}
	}
	if st := r.CashflowStatementHistory.Statements; len(st) > 0 {
		f.OperatingCashFlow = firstKnown(f.OperatingCashFlow, st[0].TotalCashFromOperatingActivities.value())
		f.CapitalExpenditure = st[0].CapitalExpenditures.value()
	}

	if math.IsNaN(f.Price) {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoData)
	}
	return f, nil
}

func (p *Yahoo) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Yahoo reports unknown tickers as 404 with a JSON error body.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func firstKnown(vals ...float64) float64 {
	for _, v := range vals {
		if !math.IsNaN(v) {
			return v
		}
	}
	return math.NaN()
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
