package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"intern-watch/internal/config"
	"intern-watch/internal/fetcher"
	"intern-watch/internal/model"
	"intern-watch/internal/observability"
)

var (
	mdLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	urlInParens   = regexp.MustCompile(`\((https?://[^)\s]+)\)`)
)

// freshLabel is the only recency label this source ever surfaces as new:
// same-day rows.
const freshLabel = "0d"

// MarkdownExtractor reads a Markdown document whose "##" sections each hold
// one category's pipe table, and extracts the same-day posting rows.
type MarkdownExtractor struct {
	fetcher *fetcher.Fetcher
	cfg     config.MarkdownDocConfig
	logger  *observability.Logger
}

func NewMarkdownExtractor(f *fetcher.Fetcher, cfg config.MarkdownDocConfig, logger *observability.Logger) *MarkdownExtractor {
	return &MarkdownExtractor{fetcher: f, cfg: cfg, logger: logger}
}

// Extract locates the document among the configured (owner, repo, branch)
// candidates and parses it. A missing or renamed upstream document is not an
// error: the extractor logs and contributes zero records.
func (e *MarkdownExtractor) Extract(ctx context.Context) []model.PostingRecord {
	doc := e.discover(ctx)
	if doc == "" {
		e.logger.Warn("markdown document not found in any candidate location",
			"source", e.cfg.SourceName,
			"candidates", len(e.cfg.Candidates),
		)
		return nil
	}
	return e.parse(doc)
}

// discover tries each candidate in order, preferring the raw-text form and
// falling back to the raw-redirect form; the first non-empty body wins.
func (e *MarkdownExtractor) discover(ctx context.Context) string {
	headers := map[string]string{"Accept": "text/plain"}
	for _, cand := range e.cfg.Candidates {
		urls := []string{
			fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", cand.Owner, cand.Repo, cand.Branch, e.cfg.File),
			fmt.Sprintf("https://github.com/%s/%s/raw/%s/%s", cand.Owner, cand.Repo, cand.Branch, e.cfg.File),
		}
		for _, u := range urls {
			body, err := e.fetcher.Fetch(ctx, u, headers)
			if err != nil {
				e.logger.Warn("markdown candidate failed",
					"source", e.cfg.SourceName,
					"url", u,
					"error", err.Error(),
				)
				continue
			}
			if strings.TrimSpace(body) == "" {
				continue
			}
			e.logger.Debug("markdown document located", "source", e.cfg.SourceName, "url", u)
			return body
		}
	}
	return ""
}

func (e *MarkdownExtractor) parse(doc string) []model.PostingRecord {
	lines := strings.Split(doc, "\n")

	var records []model.PostingRecord
	for _, spec := range e.cfg.Sections {
		section := sectionLines(lines, spec.Heading)
		if section == nil {
			e.logger.Warn("markdown section not found",
				"source", e.cfg.SourceName,
				"heading", spec.Heading,
			)
			continue
		}
		records = append(records, e.parseSection(section, spec.Category)...)
	}
	return records
}

// sectionLines returns the lines between the first "##" heading whose
// normalized text contains fragment and the next "##" heading (or EOF).
// Returns nil when no heading matches.
func sectionLines(lines []string, fragment string) []string {
	want := normalizeHeading(fragment)
	start := -1
	for i, line := range lines {
		if !isHeading(line) {
			continue
		}
		if start >= 0 {
			return lines[start:i]
		}
		if strings.Contains(normalizeHeading(line), want) {
			start = i + 1
		}
	}
	if start >= 0 {
		return lines[start:]
	}
	return nil
}

func isHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "## ")
}

// normalizeHeading lowercases, drops emoji/symbol code points, collapses
// non-word punctuation to spaces and collapses whitespace, so decorated
// upstream headings still match configured fragments.
func normalizeHeading(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSymbol(r):
			// emoji and decorations vanish entirely
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func (e *MarkdownExtractor) parseSection(lines []string, category string) []model.PostingRecord {
	var rows [][]string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			continue
		}
		cells := splitRow(trimmed)
		if len(cells) == 0 || isSeparatorRow(cells) {
			continue
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil
	}

	// Header row gives us the Age column; without one we fall back to
	// scanning every cell for the freshness label.
	ageIdx := -1
	if hasCompanyHeader(rows[0]) {
		for i, cell := range rows[0] {
			if strings.EqualFold(cell, "Age") {
				ageIdx = i
				break
			}
		}
		rows = rows[1:]
	}

	var records []model.PostingRecord
	for _, cells := range rows {
		if len(cells) < 4 {
			continue
		}

		posted, ok := freshness(cells, ageIdx)
		if !ok {
			continue
		}

		url := firstURL(cells[3])
		if url == "" {
			continue
		}

		records = append(records, model.PostingRecord{
			Source:   e.cfg.SourceName,
			Category: category,
			Company:  strings.TrimSpace(stripMarkdownLinks(cells[0])),
			Title:    strings.TrimSpace(stripMarkdownLinks(cells[1])),
			Location: cells[2],
			URL:      url,
			Posted:   posted,
		})
	}
	return records
}

// splitRow splits a framed "| a | b |" row into trimmed cells, dropping the
// empty leading/trailing cells the frame produces.
func splitRow(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// isSeparatorRow reports whether every cell consists only of dashes, colons
// and whitespace (the Markdown header separator).
func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if strings.Trim(cell, "-: ") != "" {
			return false
		}
	}
	return true
}

func hasCompanyHeader(cells []string) bool {
	for _, cell := range cells {
		if strings.EqualFold(cell, "Company") {
			return true
		}
	}
	return false
}

// freshness keeps only same-day rows. With a detected Age column the check
// is against that cell; otherwise any cell carrying the label qualifies.
func freshness(cells []string, ageIdx int) (string, bool) {
	if ageIdx >= 0 && ageIdx < len(cells) {
		if isFresh(cells[ageIdx]) {
			return cells[ageIdx], true
		}
		return "", false
	}
	for _, cell := range cells {
		if isFresh(cell) {
			return freshLabel, true
		}
	}
	return "", false
}

func isFresh(cell string) bool {
	c := strings.TrimSpace(cell)
	return c == freshLabel || strings.HasSuffix(c, " "+freshLabel)
}

func stripMarkdownLinks(s string) string {
	return mdLinkPattern.ReplaceAllString(s, "$1")
}

func firstURL(cell string) string {
	if m := urlInParens.FindStringSubmatch(cell); m != nil {
		return m[1]
	}
	return ""
}
