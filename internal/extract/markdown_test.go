package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intern-watch/internal/config"
	"intern-watch/internal/model"
	"intern-watch/internal/observability"
)

func testMarkdownExtractor(sections []config.SectionSpec) *MarkdownExtractor {
	return NewMarkdownExtractor(nil, config.MarkdownDocConfig{
		SourceName: "SimplifyJobs 2026",
		File:       "README.md",
		Sections:   sections,
	}, observability.NewLogger("", "error"))
}

var sweSection = []config.SectionSpec{
	{Category: model.CategorySWE, Heading: "software engineering internship roles"},
}

func TestParseEndToEndRow(t *testing.T) {
	doc := `# Summer Internships

## 💻 Software Engineering Internship Roles

| Company | Role | Location | Application | Age |
| ------- | ---- | -------- | ----------- | --- |
| [Acme](https://acme.example) | [SWE Intern](https://acme.example) | Remote | [Apply](https://acme.example/apply) | 0d |
`
	records := testMarkdownExtractor(sweSection).parse(doc)
	require.Len(t, records, 1)

	assert.Equal(t, model.PostingRecord{
		Source:   "SimplifyJobs 2026",
		Category: model.CategorySWE,
		Title:    "SWE Intern",
		Company:  "Acme",
		Location: "Remote",
		URL:      "https://acme.example/apply",
		Posted:   "0d",
	}, records[0])
}

func TestParseSectionIsolation(t *testing.T) {
	doc := `## 💻 Software Engineering Internship Roles

| Company | Role | Location | Application | Age |
| --- | --- | --- | --- | --- |
| Acme | SWE Intern | NYC | [Apply](https://acme.example/swe) | 0d |

## 📈 Product Management Internship Roles

| Company | Role | Location | Application | Age |
| --- | --- | --- | --- | --- |
| Globex | PM Intern | Remote | [Apply](https://globex.example/pm) | 0d |
`
	records := testMarkdownExtractor(sweSection).parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].Company)
	assert.Equal(t, model.CategorySWE, records[0].Category)
}

func TestParseAgeFilter(t *testing.T) {
	doc := `## Software Engineering Internship Roles

| Company | Role | Location | Application | Age |
| --- | --- | --- | --- | --- |
| Stale | Old Intern | Remote | [Apply](https://stale.example/a) | 5d |
| Fresh | New Intern | Remote | [Apply](https://fresh.example/a) | 0d |
`
	records := testMarkdownExtractor(sweSection).parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "Fresh", records[0].Company)
}

func TestParseAgeFallbackWithoutHeader(t *testing.T) {
	// No header row: any cell normalizing to "0d" keeps the row.
	doc := `## Software Engineering Internship Roles

| Acme | SWE Intern | Remote | [Apply](https://acme.example/a) | 0d |
| Globex | SWE Intern | Remote | [Apply](https://globex.example/a) | 7d |
`
	records := testMarkdownExtractor(sweSection).parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].Company)
	assert.Equal(t, "0d", records[0].Posted)
}

func TestParseEmbeddedFreshLabel(t *testing.T) {
	doc := `## Software Engineering Internship Roles

| Company | Role | Location | Application | Age |
| --- | --- | --- | --- | --- |
| Acme | SWE Intern | Remote | [Apply](https://acme.example/a) | added 0d |
| Globex | SWE Intern | Remote | [Apply](https://globex.example/a) | 10d |
`
	records := testMarkdownExtractor(sweSection).parse(doc)
	require.Len(t, records, 1)
	assert.Equal(t, "Acme", records[0].Company)
}

func TestParseDropsRowsWithoutURL(t *testing.T) {
	doc := `## Software Engineering Internship Roles

| Company | Role | Location | Application | Age |
| --- | --- | --- | --- | --- |
| Acme | SWE Intern | Remote | Closed | 0d |
`
	records := testMarkdownExtractor(sweSection).parse(doc)
	assert.Empty(t, records)
}

func TestParseMissingSection(t *testing.T) {
	doc := `## Quant Internship Roles

| Company | Role | Location | Application | Age |
| --- | --- | --- | --- | --- |
| Hedge | Quant Intern | NYC | [Apply](https://hedge.example/q) | 0d |
`
	records := testMarkdownExtractor(sweSection).parse(doc)
	assert.Empty(t, records)
}

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"## 💻 Software Engineering Internship Roles", "software engineering internship roles"},
		{"Data Science, AI & Machine Learning Internship Roles", "data science ai machine learning internship roles"},
		{"  Product   Management  ", "product management"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeHeading(tt.input), "input %q", tt.input)
	}
}

func TestSplitRowAndSeparator(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitRow("| a | b | c |"))
	assert.True(t, isSeparatorRow([]string{"---", ":--:", "-"}))
	assert.False(t, isSeparatorRow([]string{"---", "0d"}))
}
