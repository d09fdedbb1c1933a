package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intern-watch/internal/config"
	"intern-watch/internal/observability"
)

func testCardExtractor(t *testing.T) *CardExtractor {
	t.Helper()
	e, err := NewCardExtractor(config.CardSiteConfig{
		SourceName: "Intern List",
		BaseURL:    "https://careers.example",
		Tabs: []config.CardTab{
			{Category: "Software Engineering", Path: "/swe-intern-list"},
			{Category: "Product Management", Path: "/pm-intern-list"},
		},
	}, observability.NewLogger("", "error"))
	require.NoError(t, err)
	return e
}

func TestExtractInternalCandidates(t *testing.T) {
	html := `
	<html><body>
		<div class="card">SWE Intern at Acme Corp
			<a href="/swe-intern-list/acme-swe-intern">SWE Intern</a>
		</div>
		<div class="card">
			<a href="/swe-intern-list/globex-backend-intern?ref=home">Backend Intern</a>
		</div>
		<a href="/swe-intern-list">All SWE roles</a>
		<a href="/pm-intern-list">PM tab</a>
		<a href="#top">Internships top</a>
		<a href="mailto:jobs@example.com">intern mail</a>
		<a href="javascript:void(0)">intern popup</a>
		<a href="/privacy-policy">Privacy</a>
		<a href="/about">About us</a>
	</body></html>`

	records, err := testCardExtractor(t).Extract(html, "Intern List", "Software Engineering")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "SWE Intern", records[0].Title)
	assert.Equal(t, "Acme Corp", records[0].Company)
	assert.Equal(t, "https://careers.example/swe-intern-list/acme-swe-intern", records[0].URL)
	assert.Equal(t, "Software Engineering", records[0].Category)
	assert.Equal(t, "Intern List", records[0].Source)

	assert.Equal(t, "Backend Intern", records[1].Title)
	assert.Equal(t, "", records[1].Company)
}

func TestExtractFallsBackToExternalLinks(t *testing.T) {
	html := `
	<html><body>
		<a href="/about">About</a>
		<div>Openings at Initech
			<a href="https://jobs.example.org/intern/123">Platform Intern</a>
		</div>
		<a href="https://jobs.example.org/senior/9">Senior Engineer</a>
		<a href="https://careers.example/swe-intern-list">intern tab mirror</a>
	</body></html>`

	records, err := testCardExtractor(t).Extract(html, "Intern List", "Software Engineering")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://jobs.example.org/intern/123", records[0].URL)
	assert.Equal(t, "Initech", records[0].Company)
}

func TestExtractDeduplicatesByResolvedURL(t *testing.T) {
	html := `
	<html><body>
		<a href="/swe-intern-list/acme-intern">SWE Intern</a>
		<a href="/swe-intern-list/acme-intern#apply">SWE Intern again</a>
	</body></html>`

	records, err := testCardExtractor(t).Extract(html, "Intern List", "Software Engineering")
	require.NoError(t, err)
	// Fragment-only variants resolve to distinct URLs, but the exact
	// duplicate path collapses to one record per resolved URL.
	urls := make(map[string]bool)
	for _, r := range records {
		require.False(t, urls[r.URL], "duplicate URL %s", r.URL)
		urls[r.URL] = true
	}
}

func TestExtractNoMatchesIsNotAnError(t *testing.T) {
	records, err := testCardExtractor(t).Extract("<html><body><p>nothing here</p></body></html>", "Intern List", "Software Engineering")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDiscoverTabPath(t *testing.T) {
	html := `
	<nav>
		<a href="/swe-intern-list">SWE</a>
		<a href="https://elsewhere.example/ml">Machine Learning (external)</a>
		<a href="/machine-learning-internships/">Machine Learning &amp; AI</a>
	</nav>`

	assert.Equal(t, "/machine-learning-internships", DiscoverTabPath(html, []string{"machine learning", "ml", "ai"}))
	assert.Equal(t, "", DiscoverTabPath(html, []string{"quant"}))
}
