package sentiment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

var ist = time.FixedZone("IST", 5*3600+1800)

var testNow = time.Date(2025, time.October, 20, 12, 0, 0, 0, ist)

func at(t time.Time) *time.Time { return &t }

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Tata Motors jumps 5%", NormalizeText("  Tata \n Motors\tjumps   5%  "))
	assert.Equal(t, "", NormalizeText(" \n\t "))
}

func TestDedupe(t *testing.T) {
	in := []Article{
		{Title: "A", Snippet: "x", Source: "one"},
		{Title: "A", Snippet: "x", Source: "two"},
		{Title: "A", Snippet: "y"},
		{Title: "", Snippet: "orphan"},
		{Title: "B"},
	}
	out := dedupe(in)
	require.Len(t, out, 3)
	assert.Equal(t, "one", out[0].Source)
	assert.Equal(t, "y", out[1].Snippet)
	assert.Equal(t, "B", out[2].Title)
}

func TestParseDate(t *testing.T) {
	oct5 := time.Date(2025, time.October, 5, 0, 0, 0, 0, ist)
	tests := []struct {
		in   string
		want *time.Time
	}{
		{"Oct 5, 2025", &oct5},
		{"Oct 05, 2025", &oct5},
		{"05 Oct 2025", &oct5},
		{"Updated: 5 Oct, 2025", &oct5},
		{"Published on Oct 5, 2025", &oct5},
		{"October 5, 2025", &oct5},
		{"5 October 2025", &oct5},
		{"2025-10-05", &oct5},
		{"05-10-2025", &oct5},
		{"2025/10/05", &oct5},
		{"05/10/2025", &oct5},
		{"5 hours ago", at(testNow.Add(-5 * time.Hour))},
		{"2 days ago", at(testNow.AddDate(0, 0, -2))},
		{"30 mins ago", at(testNow.Add(-30 * time.Minute))},
		{"sometime soon", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseDate(tt.in, testNow)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v want %v", got, tt.want)
		})
	}
}

func TestLexicon(t *testing.T) {
	l := NewLexicon()
	tests := []struct {
		text string
		want Polarity
	}{
		{"Reliance shares surge after record profit", Positive},
		{"Infosys beats estimates, upgrades guidance.", Positive},
		{"Stock plunges amid fraud probe", Negative},
		{"Bank slips as losses widen", Negative},
		{"Company holds annual general meeting", Neutral},
		{"Profit rises but concerns over debt remain", Positive},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Classify(tt.text))
		})
	}
}

func TestRecencyWeight(t *testing.T) {
	assert.Equal(t, 0.5, recencyWeight(nil, testNow))
	assert.Equal(t, 0.01, recencyWeight(at(time.Date(2025, time.September, 30, 23, 0, 0, 0, ist)), testNow))
	assert.Equal(t, 0.01, recencyWeight(at(time.Date(2025, time.November, 1, 0, 0, 0, 0, ist)), testNow))
	assert.Equal(t, 1.0, recencyWeight(at(testNow.Add(-time.Hour)), testNow))
	assert.InDelta(t, 1-10.0/31*0.8, recencyWeight(at(testNow.AddDate(0, 0, -10)), testNow), 1e-12)
	assert.InDelta(t, 1-19.0/31*0.8, recencyWeight(at(time.Date(2025, time.October, 1, 0, 0, 0, 0, ist)), testNow), 1e-12)
}

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<item><title>Tata Motors shares surge on strong sales - Economic Times</title>
<pubDate>Sat, 18 Oct 2025 06:30:00 GMT</pubDate><source>Economic Times</source></item>
<item><title>Tata Motors slips after weak guidance - Mint</title>
<pubDate>not a date</pubDate></item>
<item><title> </title></item>
</channel></rss>`

func TestGoogleNews_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssBody)
	}))
	defer srv.Close()

	g := NewGoogleNews(srv.Client())
	g.baseURL = srv.URL
	articles, err := g.Search(context.Background(), "Tata Motors")
	require.NoError(t, err)

	assert.Equal(t, "Tata Motors", gotQuery)
	require.Len(t, articles, 2)
	assert.Equal(t, "Tata Motors shares surge on strong sales", articles[0].Title)
	require.NotNil(t, articles[0].Published)
	assert.Equal(t, 2025, articles[0].Published.Year())
	assert.Equal(t, 0.9, articles[0].Weight)
	assert.Equal(t, "Tata Motors slips after weak guidance", articles[1].Title)
	assert.Nil(t, articles[1].Published)
}

func TestFetcher_Retries(t *testing.T) {
	var calls atomic.Int32
	var broken atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 || broken.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	f := newFetcher(srv.Client())
	f.backoff = 0
	body, err := f.get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(2), calls.Load())

	broken.Store(true)
	_, err = f.get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, int32(4), calls.Load())
}

const etPage = `<html><body>
<div class="eachStory"><h3><a href="/x">Tata Motors  shares
 jump</a></h3><p>Strong quarterly numbers.</p><time>Oct 18, 2025</time></div>
<div class="eachStory other"><a href="/y">Tata Motors recall hits margins</a><time>2 days ago</time></div>
<div class="eachStory"><span>no link here</span></div>
</body></html>`

func TestEconomicTimes_Search(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		mu.Unlock()
		if r.URL.Query().Get("page") != "1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, etPage)
	}))
	defer srv.Close()

	et := NewEconomicTimes(srv.Client())
	et.baseURL = srv.URL
	et.pause = 0
	et.fetch.backoff = 0
	et.now = func() time.Time { return testNow }

	articles, err := et.Search(context.Background(), "Tata Motors")
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "Tata Motors shares jump", articles[0].Title)
	assert.Equal(t, "Strong quarterly numbers.", articles[0].Snippet)
	assert.Equal(t, "EconomicTimes", articles[0].Source)
	require.NotNil(t, articles[0].Published)
	assert.Equal(t, 18, articles[0].Published.Day())
	require.NotNil(t, articles[1].Published)
	assert.True(t, testNow.AddDate(0, 0, -2).Equal(*articles[1].Published))

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, paths, "/topic/Tata-Motors/news?sort=date&page=1")
	// 4 pages, pages 2-4 retried once each.
	assert.Len(t, paths, 1+3*2)
}

func TestHTMLSource_AllPagesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewIndianExpress(srv.Client())
	src.baseURL = srv.URL
	src.pause = 0
	src.fetch.backoff = 0

	_, err := src.Search(context.Background(), "Infosys")
	require.Error(t, err)
}

func TestExtractors(t *testing.T) {
	page := `<html><body>
<ul><li class="clearfix"><a href="/n1">Infosys wins large deal</a><span class="dateline">October 10, 2025</span></li></ul>
<a href="/business/infosys/articleshow/123.cms">Infosys shares climb</a>
<a href="/elsewhere">Not an article</a>
<h2 class="title">Infosys expands in Europe</h2><h3>Untitled class</h3>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	titles := func(src *HTMLSource) []string {
		src.baseURL = srv.URL
		src.pages = 1
		src.now = func() time.Time { return testNow }
		articles, err := src.Search(context.Background(), "Infosys")
		require.NoError(t, err)
		var out []string
		for _, a := range articles {
			out = append(out, a.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Infosys wins large deal"}, titles(NewMoneycontrol(srv.Client())))
	assert.Equal(t, []string{"Infosys shares climb"}, titles(NewTimesOfIndia(srv.Client())))
	assert.Equal(t, []string{"Infosys expands in Europe"}, titles(NewIndianExpress(srv.Client())))
	assert.Equal(t, []string{"Infosys expands in Europe", "Untitled class"}, titles(NewBloombergQuint(srv.Client())))
}

type fakeSource struct {
	name     string
	weight   float64
	articles []Article
	err      error
	calls    atomic.Int32
}

func (f *fakeSource) Name() string    { return f.name }
func (f *fakeSource) Weight() float64 { return f.weight }

func (f *fakeSource) Search(_ context.Context, _ string) ([]Article, error) {
	f.calls.Add(1)
	return f.articles, f.err
}

func newTestScorer(primary, fallback []Source) *Scorer {
	s := NewScorer(primary, fallback, NewLexicon())
	s.now = func() time.Time { return testNow }
	return s
}

func TestScorer_Score(t *testing.T) {
	t.Run("weights by source and recency", func(t *testing.T) {
		src := &fakeSource{name: "A", weight: 1, articles: []Article{
			{Title: "Shares surge", Weight: 1, Published: at(testNow.Add(-time.Hour))},
			{Title: "Shares plunge", Weight: 1},
		}}
		res, err := newTestScorer([]Source{src}, nil).Score(context.Background(), "Acme")
		require.NoError(t, err)

		// (1*1 - 1*0.5) / 1.5
		assert.Equal(t, 0.3333, res.Score)
		assert.Equal(t, 2, res.ArticleCount)
		assert.Equal(t, 1, res.Positive)
		assert.Equal(t, 1, res.Negative)
	})

	t.Run("duplicates count once", func(t *testing.T) {
		a := &fakeSource{name: "A", articles: []Article{{Title: "Shares surge", Weight: 1}}}
		b := &fakeSource{name: "B", articles: []Article{{Title: "Shares surge", Weight: 0.5}}}
		res, err := newTestScorer([]Source{a, b}, nil).Score(context.Background(), "Acme")
		require.NoError(t, err)
		assert.Equal(t, 1, res.ArticleCount)
		assert.Equal(t, 1.0, res.Score)
	})

	t.Run("stale news triggers fallback", func(t *testing.T) {
		stale := at(time.Date(2025, time.August, 1, 0, 0, 0, 0, ist))
		a := &fakeSource{name: "A", weight: 1, articles: []Article{{Title: "Shares plunge", Weight: 1, Published: stale}}}
		b := &fakeSource{name: "B", weight: 1, articles: []Article{{Title: "Shares surge", Weight: 1, Published: stale}}}
		c := &fakeSource{name: "C", weight: 1, articles: []Article{{Title: "Old profit record", Weight: 1, Published: stale}}}

		res, err := newTestScorer([]Source{a, b}, []Source{b, c}).Score(context.Background(), "Acme")
		require.NoError(t, err)

		assert.Equal(t, 2, res.ArticleCount)
		assert.Equal(t, 1.0, res.Score)
		assert.Equal(t, int32(1), a.calls.Load())
		assert.Equal(t, int32(1), b.calls.Load(), "fallback reuses primary results")
		assert.Equal(t, int32(1), c.calls.Load())
	})

	t.Run("nothing found scores neutral", func(t *testing.T) {
		a := &fakeSource{name: "A", err: errors.New("boom")}
		res, err := newTestScorer([]Source{a}, nil).Score(context.Background(), "Acme")
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.Score)
		assert.Equal(t, 1, res.ArticleCount)
		assert.Equal(t, 1, res.Neutral)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a := &fakeSource{name: "A"}
		_, err := newTestScorer([]Source{a}, nil).Score(ctx, "Acme")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestReweight(t *testing.T) {
	a := &fakeSource{name: "A", weight: 1, articles: []Article{{Title: "Profit rises", Weight: 1}}}
	b := &fakeSource{name: "B", weight: 0.6}

	out := Reweight([]Source{a, b}, map[string]float64{"A": 0.4, "C": 2})
	require.Len(t, out, 2)
	assert.InDelta(t, 0.4, out[0].Weight(), 1e-9)
	assert.Same(t, b, out[1])

	articles, err := out[0].Search(context.Background(), "Acme")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.InDelta(t, 0.4, articles[0].Weight, 1e-9)
	assert.Equal(t, "A", out[0].Name())
}

func TestScorer_NeutralWeight(t *testing.T) {
	s := newTestScorer([]Source{&fakeSource{name: "A"}}, nil).WithNeutralWeight(0.5)
	assert.InDelta(t, 0.5, s.neutral, 1e-9)
	s.WithNeutralWeight(0)
	assert.InDelta(t, 0.5, s.neutral, 1e-9)

	res, err := s.Score(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ArticleCount)
	assert.Zero(t, res.Score)
}

type memoryStore struct {
	mu      sync.Mutex
	targets []Target
	saved   map[string]Result
	err     error
}

func (m *memoryStore) SentimentTargets(context.Context) ([]Target, error) {
	return m.targets, m.err
}

func (m *memoryStore) SaveSentiment(_ context.Context, symbol string, res Result, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		m.saved = map[string]Result{}
	}
	m.saved[symbol] = res
	return nil
}

type funcScorer func(ctx context.Context, company string) (Result, error)

func (f funcScorer) Score(ctx context.Context, company string) (Result, error) { return f(ctx, company) }

func TestRefresher_Run(t *testing.T) {
	store := &memoryStore{}
	for i := 0; i < 25; i++ {
		store.targets = append(store.targets, Target{Symbol: fmt.Sprintf("S%02d", i), Company: fmt.Sprintf("Company %d", i)})
	}

	var inFlight, peak atomic.Int32
	scorer := funcScorer(func(_ context.Context, company string) (Result, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		if company == "Company 3" {
			return Result{}, errors.New("scrape failed")
		}
		return Result{Company: company, Score: 0.25, ArticleCount: 4}, nil
	})

	r := NewRefresher(scorer, store, 4)
	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 25, summary.Total)
	assert.Equal(t, 24, summary.Scored)
	assert.Equal(t, 1, summary.Failed)
	assert.LessOrEqual(t, peak.Load(), int32(4))
	assert.Len(t, store.saved, 24)
	assert.Equal(t, 0.25, store.saved["S00"].Score)
	assert.False(t, r.Running())
}

func TestRefresher_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	scorer := funcScorer(func(ctx context.Context, company string) (Result, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return Result{Company: company}, nil
	})
	store := &memoryStore{targets: []Target{{Symbol: "A", Company: "A Ltd"}}}

	r := NewRefresher(scorer, store, 0)
	require.NoError(t, r.Start(context.Background()))
	<-started

	assert.True(t, r.Running())
	assert.ErrorIs(t, r.Start(context.Background()), ErrRefreshInProgress)
	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrRefreshInProgress)

	close(release)
	r.Wait()
	assert.False(t, r.Running())
	assert.Contains(t, store.saved, "A")

	// A new refresh may start once the previous one finished.
	require.NoError(t, r.Start(context.Background()))
	r.Wait()
}

func TestRefresher_TargetError(t *testing.T) {
	store := &memoryStore{err: errors.New("db down")}
	r := NewRefresher(funcScorer(func(context.Context, string) (Result, error) { return Result{}, nil }), store, 2)
	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.False(t, r.Running())
}
