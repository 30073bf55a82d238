package sentiment

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Source finds news articles about a company.
type Source interface {
	Name() string
	Weight() float64
	Search(ctx context.Context, company string) ([]Article, error)
}

const (
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/5.37.36 Chrome/120.0 Safari/5.36"
	requestTimeout = 10 * time.Second
	fetchTries     = 2
	retryBackoff   = time.Second
	pagePause      = 300 * time.Millisecond
)

// fetcher GETs pages with a browser user agent, retrying once on failure.
type fetcher struct {
	client  *http.Client
	tries   int
	backoff time.Duration
}

func newFetcher(client *http.Client) *fetcher {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	return &fetcher{client: client, tries: fetchTries, backoff: retryBackoff}
}

func (f *fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < f.tries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.backoff):
			}
		}
		body, err := f.once(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (f *fetcher) once(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// GoogleNews reads the Google News RSS search feed.
type GoogleNews struct {
	fetch   *fetcher
	baseURL string // overridable for tests
}

// NewGoogleNews creates a Google News source.
func NewGoogleNews(client *http.Client) *GoogleNews {
	return &GoogleNews{fetch: newFetcher(client), baseURL: "https://news.google.com/rss/search"}
}

func (g *GoogleNews) Name() string    { return "GoogleNews" }
func (g *GoogleNews) Weight() float64 { return 0.9 }

type rssResponse struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	PubDate string `xml:"pubDate"`
	Source  string `xml:"source"`
}

// Search implements Source.
func (g *GoogleNews) Search(ctx context.Context, company string) ([]Article, error) {
	u := g.baseURL + "?q=" + url.QueryEscape(company) + "&hl=en-IN&gl=IN&ceid=IN:en"
	body, err := g.fetch.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var rss rssResponse
	if err := xml.Unmarshal(body, &rss); err != nil {
		return nil, fmt.Errorf("decode rss: %w", err)
	}

	var out []Article
	for _, item := range rss.Channel.Items {
		title := NormalizeText(item.Title)
		// Google News appends " - Publisher" to titles.
		if idx := strings.LastIndex(title, " - "); idx > 0 {
			title = title[:idx]
		}
		if title == "" {
			continue
		}
		a := Article{Title: title, Source: g.Name(), Weight: g.Weight()}
		if t, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			a.Published = &t
		} else if t, err := time.Parse(time.RFC1123, item.PubDate); err == nil {
			a.Published = &t
		}
		out = append(out, a)
	}
	return out, nil
}

// scrapedHeadline is what an extractor pulls out of one listing entry.
type scrapedHeadline struct {
	title, snippet, date string
}

// HTMLSource scrapes the paged topic or search listing of a news site.
type HTMLSource struct {
	name    string
	weight  float64
	pages   int
	baseURL string // overridable for tests
	pageURL func(base, company string, page int) string
	extract func(doc *html.Node) []scrapedHeadline

	fetch *fetcher
	pause time.Duration
	now   func() time.Time
}

func (s *HTMLSource) Name() string    { return s.name }
func (s *HTMLSource) Weight() float64 { return s.weight }

// Search implements Source. A page that fails to load is skipped; the
// search only fails when no page could be read.
func (s *HTMLSource) Search(ctx context.Context, company string) ([]Article, error) {
	var out []Article
	var lastErr error
	loaded := 0
	for page := 1; page <= s.pages; page++ {
		if page > 1 && s.pause > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(s.pause):
			}
		}
		body, err := s.fetch.get(ctx, s.pageURL(s.baseURL, company, page))
		if err != nil {
			lastErr = err
			continue
		}
		doc, err := html.Parse(strings.NewReader(string(body)))
		if err != nil {
			lastErr = err
			continue
		}
		loaded++
		now := s.now()
		for _, h := range s.extract(doc) {
			title := NormalizeText(h.title)
			if title == "" {
				continue
			}
			out = append(out, Article{
				Title:     title,
				Snippet:   NormalizeText(h.snippet),
				Source:    s.name,
				Weight:    s.weight,
				Published: ParseDate(h.date, now),
			})
		}
	}
	if loaded == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}

func newHTMLSource(client *http.Client, name string, weight float64, pages int, base string,
	pageURL func(base, company string, page int) string, extract func(*html.Node) []scrapedHeadline) *HTMLSource {
	return &HTMLSource{
		name:    name,
		weight:  weight,
		pages:   pages,
		baseURL: base,
		pageURL: pageURL,
		extract: extract,
		fetch:   newFetcher(client),
		pause:   pagePause,
		now:     time.Now,
	}
}

// NewEconomicTimes scrapes Economic Times topic pages.
func NewEconomicTimes(client *http.Client) *HTMLSource {
	return newHTMLSource(client, "EconomicTimes", 1.0, 4, "https://economictimes.indiatimes.com",
		func(base, company string, page int) string {
			slug := strings.ReplaceAll(company, " ", "-")
			return fmt.Sprintf("%s/topic/%s/news?sort=date&page=%d", base, url.PathEscape(slug), page)
		},
		func(doc *html.Node) []scrapedHeadline {
			var out []scrapedHeadline
			for _, story := range findAll(doc, withClass("", "eachStory")) {
				out = append(out, scrapedHeadline{
					title:   textOf(findFirst(story, withTag("a"))),
					snippet: textOf(findFirst(story, withTag("p"))),
					date:    textOf(findFirst(story, withTag("time"))),
				})
			}
			return out
		})
}

// NewMoneycontrol scrapes Moneycontrol tag pages.
func NewMoneycontrol(client *http.Client) *HTMLSource {
	return newHTMLSource(client, "Moneycontrol", 1.0, 3, "https://www.moneycontrol.com",
		func(base, company string, page int) string {
			slug := strings.ToLower(strings.ReplaceAll(company, " ", "-"))
			return fmt.Sprintf("%s/news/tags/%s-%d.html", base, url.PathEscape(slug), page)
		},
		func(doc *html.Node) []scrapedHeadline {
			var out []scrapedHeadline
			for _, li := range findAll(doc, withClass("li", "clearfix")) {
				out = append(out, scrapedHeadline{
					title: textOf(findFirst(li, withTag("a"))),
					date:  textOf(findFirst(li, withClass("span", "dateline"))),
				})
			}
			return out
		})
}

// NewTimesOfIndia scrapes Times of India topic pages.
func NewTimesOfIndia(client *http.Client) *HTMLSource {
	return newHTMLSource(client, "TimesOfIndia", 0.6, 2, "https://timesofindia.indiatimes.com",
		func(base, company string, page int) string {
			slug := strings.ReplaceAll(company, " ", "+")
			return fmt.Sprintf("%s/topic/%s/%d", base, slug, page)
		},
		func(doc *html.Node) []scrapedHeadline {
			links := findAll(doc, func(n *html.Node) bool {
				return n.Data == "a" && strings.Contains(attr(n, "href"), "/articleshow/")
			})
			return titlesOf(links)
		})
}

// NewIndianExpress scrapes Indian Express search results.
func NewIndianExpress(client *http.Client) *HTMLSource {
	return newHTMLSource(client, "IndianExpress", 0.6, 2, "https://indianexpress.com",
		func(base, company string, page int) string {
			return fmt.Sprintf("%s/?s=%s&_paged=%d", base, url.QueryEscape(company), page)
		},
		func(doc *html.Node) []scrapedHeadline {
			return titlesOf(findAll(doc, func(n *html.Node) bool {
				return (n.Data == "h2" || n.Data == "h3") && hasClass(n, "title")
			}))
		})
}

// NewBloombergQuint scrapes BloombergQuint search results.
func NewBloombergQuint(client *http.Client) *HTMLSource {
	return newHTMLSource(client, "BloombergQuint", 0.7, 2, "https://www.bloombergquint.com",
		func(base, company string, page int) string {
			return fmt.Sprintf("%s/search?query=%s&page=%d", base, url.QueryEscape(company), page)
		},
		func(doc *html.Node) []scrapedHeadline {
			return titlesOf(findAll(doc, func(n *html.Node) bool {
				return n.Data == "h2" || n.Data == "h3"
			}))
		})
}

// DefaultSources returns the primary sources and the smaller set that is
// consulted when the primary sources have nothing from the current month.
func DefaultSources(client *http.Client) (primary, fallback []Source) {
	google := NewGoogleNews(client)
	toi := NewTimesOfIndia(client)
	ie := NewIndianExpress(client)
	bq := NewBloombergQuint(client)
	primary = []Source{NewEconomicTimes(client), NewMoneycontrol(client), toi, ie, bq, google}
	fallback = []Source{google, toi, ie, bq}
	return primary, fallback
}

// reweighted overrides the trust weight of a source.
type reweighted struct {
	Source
	weight float64
}

func (r reweighted) Weight() float64 { return r.weight }

func (r reweighted) Search(ctx context.Context, company string) ([]Article, error) {
	articles, err := r.Source.Search(ctx, company)
	for i := range articles {
		articles[i].Weight = r.weight
	}
	return articles, err
}

// Reweight returns sources with the trust weights named in weights applied.
// Sources not in weights keep their own.
func Reweight(sources []Source, weights map[string]float64) []Source {
	out := make([]Source, len(sources))
	for i, src := range sources {
		if w, ok := weights[src.Name()]; ok && w > 0 {
			out[i] = reweighted{Source: src, weight: w}
			continue
		}
		out[i] = src
	}
	return out
}

func titlesOf(nodes []*html.Node) []scrapedHeadline {
	out := make([]scrapedHeadline, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, scrapedHeadline{title: textOf(n)})
	}
	return out
}

func withTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

// withClass matches elements carrying class; an empty tag matches any element.
func withClass(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return (tag == "" || n.Data == tag) && hasClass(n, class)
	}
}

// findAll returns the element nodes below n that match, in document order.
// Matches are not searched for nested matches.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.ElementNode && match(node) {
			out = append(out, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return out
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return sb.String()
}
