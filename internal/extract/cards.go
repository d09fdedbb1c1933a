// Package extract turns raw upstream markup into normalized posting records.
// Two source shapes are supported: rendered HTML card listings and Markdown
// documents with heading-delimited tables. Both are third-party markup, so
// each extractor is an ordered chain of strategies: the first one producing
// candidates wins.
package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"intern-watch/internal/config"
	"intern-watch/internal/model"
	"intern-watch/internal/observability"
)

// companyPattern picks a capitalized phrase after "at"/"@" out of the text
// surrounding a posting link. The capture stops at a line break, which is
// where goquery's Text() puts element boundaries, so the anchor's own title
// is not swallowed into the company name.
var companyPattern = regexp.MustCompile(`\b(?:at|@)[ \t]+([A-Z][A-Za-z0-9.&' -]*)`)

// CardExtractor pulls posting links out of one rendered HTML listing page.
// The page is assumed to list a single category's postings.
type CardExtractor struct {
	base     *url.URL
	tabRoots map[string]bool
	logger   *observability.Logger
}

func NewCardExtractor(cfg config.CardSiteConfig, logger *observability.Logger) (*CardExtractor, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	// Category-tab roots never count as postings themselves.
	tabRoots := make(map[string]bool)
	for _, tab := range cfg.Tabs {
		if tab.Path != "" {
			tabRoots[cleanPath(tab.Path)] = true
		}
		for _, p := range tab.FallbackPaths {
			tabRoots[cleanPath(p)] = true
		}
	}

	return &CardExtractor{base: base, tabRoots: tabRoots, logger: logger}, nil
}

// Extract returns the postings linked from html, tagged with source and
// category. Zero matching anchors is not an error; the caller logs and moves
// on to other sources.
func (e *CardExtractor) Extract(html, source, category string) ([]model.PostingRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing HTML: %w", err)
	}

	strategies := []func(*goquery.Document) []*goquery.Selection{
		e.internalCandidates,
		e.externalCandidates,
	}

	var anchors []*goquery.Selection
	for _, strategy := range strategies {
		if anchors = strategy(doc); len(anchors) > 0 {
			break
		}
	}

	seen := make(map[string]bool)
	var records []model.PostingRecord
	for _, a := range anchors {
		href, _ := a.Attr("href")
		abs := e.resolve(href)
		if abs == "" || seen[abs] {
			continue
		}
		seen[abs] = true

		records = append(records, model.PostingRecord{
			Source:   source,
			Category: category,
			Title:    strings.TrimSpace(a.Text()),
			Company:  companyNear(a),
			URL:      abs,
		})
	}

	return records, nil
}

// internalCandidates collects relative, non-root links that are not category
// tabs and mention "intern" in their text or path.
func (e *CardExtractor) internalCandidates(doc *goquery.Document) []*goquery.Selection {
	var out []*goquery.Selection
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if skippable(href) || !isRelative(href) {
			return
		}
		path := cleanPath(href)
		if path == "" || e.tabRoots[path] {
			return
		}
		if mentionsIntern(a.Text()) || mentionsIntern(href) {
			out = append(out, a)
		}
	})
	return out
}

// externalCandidates is the fallback: absolute links mentioning "intern"
// that do not merely point back at a category tab.
func (e *CardExtractor) externalCandidates(doc *goquery.Document) []*goquery.Selection {
	var out []*goquery.Selection
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if skippable(href) || isRelative(href) {
			return
		}
		if !mentionsIntern(a.Text()) && !mentionsIntern(href) {
			return
		}
		if u, err := url.Parse(href); err == nil && e.tabRoots[cleanPath(u.Path)] {
			return
		}
		out = append(out, a)
	})
	return out
}

func (e *CardExtractor) resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	abs := e.base.ResolveReference(ref)
	if !abs.IsAbs() {
		return ""
	}
	abs.Fragment = "" // anchors on the same page are the same posting
	return abs.String()
}

// companyNear searches the enclosing container's text for an "at <Company>"
// pattern. Absent a match the company stays blank.
func companyNear(a *goquery.Selection) string {
	parent := a.Parent()
	if parent.Length() == 0 {
		return ""
	}
	if m := companyPattern.FindStringSubmatch(parent.Text()); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func skippable(href string) bool {
	h := strings.ToLower(strings.TrimSpace(href))
	switch {
	case h == "" || strings.HasPrefix(h, "#"):
		return true
	case strings.HasPrefix(h, "mailto:") || strings.HasPrefix(h, "javascript:"):
		return true
	case strings.Contains(h, "privacy") || strings.Contains(h, "terms") || strings.Contains(h, "sitemap"):
		return true
	}
	return false
}

func isRelative(href string) bool {
	return !strings.Contains(href, "://")
}

func mentionsIntern(s string) bool {
	return strings.Contains(strings.ToLower(s), "intern")
}

// cleanPath strips surrounding slashes and any query/fragment, so
// "/swe-intern-list/" and "/swe-intern-list?p=2" both compare as
// "swe-intern-list".
func cleanPath(p string) string {
	if idx := strings.IndexAny(p, "?#"); idx >= 0 {
		p = p[:idx]
	}
	return strings.Trim(strings.TrimSpace(p), "/")
}

// DiscoverTabPath scans a homepage's nav for the first site-relative link
// whose text mentions one of terms, returning its path ("" when absent).
// Used for tabs whose slug changes upstream, e.g. the ML/AI listing.
func DiscoverTabPath(html string, terms []string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if !strings.HasPrefix(href, "/") {
			return true
		}
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		for _, term := range terms {
			if term != "" && strings.Contains(text, strings.ToLower(term)) {
				found = "/" + strings.Trim(href, "/")
				return false
			}
		}
		return true
	})
	return found
}
