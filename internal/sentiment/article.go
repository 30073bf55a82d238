// Package sentiment scores companies from recent news. Articles are gathered
// from several news sites, classified with a finance lexicon and averaged
// with weights for source trust and recency.
package sentiment

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Article is one headline found for a company.
type Article struct {
	Title     string
	Snippet   string
	Source    string
	Weight    float64    // source trust, 0-1
	Published *time.Time // nil when the page gives no usable date
}

// Text is the string that gets classified.
func (a Article) Text() string {
	if a.Snippet == "" {
		return a.Title
	}
	return strings.TrimSpace(a.Title + ". " + a.Snippet)
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeText collapses runs of whitespace and trims the ends.
func NormalizeText(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func articleKey(a Article) string {
	sum := md5.Sum([]byte(a.Title + "|" + a.Snippet))
	return hex.EncodeToString(sum[:])
}

// dedupe drops untitled articles and repeats of the same title and snippet,
// keeping the first occurrence.
func dedupe(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.Title == "" {
			continue
		}
		key := articleKey(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

var (
	datePrefix = regexp.MustCompile(`(?i)published|updated|on\s+`)
	firstInt   = regexp.MustCompile(`\d+`)

	dateLayouts = []string{
		"Jan 2, 2006",
		"2 Jan 2006",
		"2 Jan, 2006",
		"January 2, 2006",
		"2 January 2006",
		"2006-01-02",
		"02-01-2006",
		"2006/01/02",
		"02/01/2006",
		time.RFC1123Z,
		time.RFC1123,
		time.RFC3339,
	}
)

// ParseDate understands the date strings news sites print next to
// headlines, including relative ones such as "5 hours ago". It returns nil
// when nothing matches.
func ParseDate(text string, now time.Time) *time.Time {
	text = strings.Trim(datePrefix.ReplaceAllString(text, ""), " :|\t\n")
	if text == "" {
		return nil
	}

	if strings.Contains(text, "ago") {
		if m := firstInt.FindString(text); m != "" {
			n, _ := strconv.Atoi(m)
			var t time.Time
			switch {
			case strings.Contains(text, "min"):
				t = now.Add(-time.Duration(n) * time.Minute)
			case strings.Contains(text, "hour"):
				t = now.Add(-time.Duration(n) * time.Hour)
			case strings.Contains(text, "day"):
				t = now.AddDate(0, 0, -n)
			}
			if !t.IsZero() {
				return &t
			}
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, now.Location()); err == nil {
			return &t
		}
	}
	return nil
}
