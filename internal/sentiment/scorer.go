package sentiment

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alphafusion/internal/logger"
)

// Recency weights.
const (
	unknownDateWeight  = 0.5
	staleArticleWeight = 0.01
	minRecencyWeight   = 0.2
	recencyDecay       = 0.8

	// DefaultNeutralWeight is the source weight of the neutral stand-in used
	// when no article was found at all.
	DefaultNeutralWeight = 0.3
)

// Result is the sentiment of one company.
type Result struct {
	Company      string  `json:"company"`
	Score        float64 `json:"score"` // -1..1
	ArticleCount int     `json:"article_count"`
	Positive     int     `json:"positive"`
	Negative     int     `json:"negative"`
	Neutral      int     `json:"neutral"`
}

// Scorer gathers news for a company and turns it into a weighted score.
type Scorer struct {
	primary    []Source
	fallback   []Source
	classifier Classifier
	neutral    float64
	now        func() time.Time
	log        *zap.SugaredLogger
}

// NewScorer creates a Scorer. fallback may be empty.
func NewScorer(primary, fallback []Source, classifier Classifier) *Scorer {
	if classifier == nil {
		classifier = NewLexicon()
	}
	return &Scorer{
		primary:    primary,
		fallback:   fallback,
		classifier: classifier,
		neutral:    DefaultNeutralWeight,
		now:        time.Now,
		log:        logger.Named("sentiment"),
	}
}

// WithNeutralWeight sets the weight of the neutral stand-in article.
// Non-positive weights are ignored.
func (s *Scorer) WithNeutralWeight(w float64) *Scorer {
	if w > 0 {
		s.neutral = w
	}
	return s
}

// monthBounds returns the first instant of now's month and of the next one.
func monthBounds(now time.Time) (lower, upper time.Time) {
	lower = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return lower, lower.AddDate(0, 1, 0)
}

func inMonth(t, now time.Time) bool {
	lower, upper := monthBounds(now)
	return !t.Before(lower) && t.Before(upper)
}

// recencyWeight favours fresh articles. Articles from outside the current
// month barely count, and undated ones count half.
func recencyWeight(published *time.Time, now time.Time) float64 {
	if published == nil {
		return unknownDateWeight
	}
	if !inMonth(*published, now) {
		return staleArticleWeight
	}
	lower, upper := monthBounds(now)
	totalDays := math.Round(upper.Sub(lower).Hours() / 24)
	if totalDays <= 0 {
		totalDays = 30
	}
	days := math.Floor(now.Sub(*published).Hours() / 24)
	w := 1 - days/totalDays*recencyDecay
	return math.Max(minRecencyWeight, math.Min(1, w))
}

// Score rates the news tone for company. Sources that fail are logged and
// skipped; only cancellation of ctx is returned as an error.
func (s *Scorer) Score(ctx context.Context, company string) (Result, error) {
	now := s.now()
	found, err := s.search(ctx, s.primary, company)
	if err != nil {
		return Result{Company: company}, err
	}

	var articles []Article
	for _, src := range s.primary {
		for _, a := range found[src.Name()] {
			if a.Published == nil || inMonth(*a.Published, now) {
				articles = append(articles, a)
			}
		}
	}

	if len(articles) == 0 && len(s.fallback) > 0 {
		s.log.Debugw("No current-month articles, using fallback sources", "company", company)
		articles, err = s.gatherFallback(ctx, found, company)
		if err != nil {
			return Result{Company: company}, err
		}
	}

	articles = dedupe(articles)
	if len(articles) == 0 {
		s.log.Infow("No articles found, scoring neutral", "company", company)
		articles = []Article{{Title: company, Source: "Fallback", Weight: s.neutral}}
	}

	return s.aggregate(company, articles, now), nil
}

// gatherFallback takes every article of the fallback sources regardless of
// date, reusing results of sources already queried.
func (s *Scorer) gatherFallback(ctx context.Context, found map[string][]Article, company string) ([]Article, error) {
	var missing []Source
	for _, src := range s.fallback {
		if _, ok := found[src.Name()]; !ok {
			missing = append(missing, src)
		}
	}
	extra, err := s.search(ctx, missing, company)
	if err != nil {
		return nil, err
	}

	var out []Article
	for _, src := range s.fallback {
		batch, ok := found[src.Name()]
		if !ok {
			batch = extra[src.Name()]
		}
		out = append(out, batch...)
	}
	return out, nil
}

// search queries sources concurrently. Failed sources are left out of the
// returned map.
func (s *Scorer) search(ctx context.Context, sources []Source, company string) (map[string][]Article, error) {
	results := make([][]Article, len(sources))
	ok := make([]bool, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			articles, err := src.Search(gctx, company)
			if err != nil {
				s.log.Warnw("News source failed", "source", src.Name(), "company", company, "error", err)
				return nil
			}
			results[i], ok[i] = articles, true
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found := make(map[string][]Article, len(sources))
	for i, src := range sources {
		if ok[i] {
			found[src.Name()] = results[i]
		}
	}
	return found, nil
}

func (s *Scorer) aggregate(company string, articles []Article, now time.Time) Result {
	res := Result{Company: company, ArticleCount: len(articles)}
	var weighted, total float64
	for _, a := range articles {
		p := s.classifier.Classify(a.Text())
		switch p {
		case Positive:
			res.Positive++
		case Negative:
			res.Negative++
		default:
			res.Neutral++
		}
		w := a.Weight * recencyWeight(a.Published, now)
		weighted += float64(p) * w
		total += w
	}
	if total > 0 {
		res.Score = math.Round(weighted/total*10000) / 10000
	}
	return res
}
