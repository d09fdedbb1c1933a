package notify

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intern-watch/internal/model"
)

func TestComposeBatchTruncation(t *testing.T) {
	records := make([]model.PostingRecord, 9)
	for i := range records {
		records[i] = model.PostingRecord{
			Category: model.CategorySWE,
			Source:   "Intern List",
			Company:  fmt.Sprintf("Company %d", i),
			Title:    "SWE Intern",
			URL:      fmt.Sprintf("https://example.com/%d", i),
		}
	}

	msg := NewComposer(6).Compose(records)

	assert.Equal(t, 6, strings.Count(msg, "• "))
	assert.Contains(t, msg, "(+3 more new roles)")
	assert.Contains(t, msg, "Company 5")
	assert.NotContains(t, msg, "Company 6")
	assert.True(t, strings.HasSuffix(msg, optOutFooter))
}

func TestComposeLineFormat(t *testing.T) {
	msg := NewComposer(6).Compose([]model.PostingRecord{{
		Category: model.CategoryML,
		Source:   "SimplifyJobs 2026",
		Company:  "Acme",
		Title:    "ML Intern",
		Location: "Remote",
		URL:      "https://acme.example/ml",
		Posted:   "0d",
	}})

	require.True(t, strings.HasPrefix(msg, "New internships:\n"))
	assert.Contains(t, msg, "• [Machine Learning & AI] [SimplifyJobs 2026] Acme — ML Intern — Remote — 0d\nhttps://acme.example/ml")
	assert.NotContains(t, msg, "more new roles")
}

func TestComposePlaceholders(t *testing.T) {
	msg := NewComposer(6).Compose([]model.PostingRecord{{
		URL: "https://example.com/1",
	}})

	assert.Contains(t, msg, companyPlaceholder)
	assert.Contains(t, msg, titlePlaceholder)
	assert.Contains(t, msg, "[?] [?]")
}

func TestComposeTruncatesLongFields(t *testing.T) {
	msg := NewComposer(6).Compose([]model.PostingRecord{{
		Company: strings.Repeat("C", 60),
		Title:   strings.Repeat("T", 100),
		URL:     "https://example.com/1",
	}})

	assert.Contains(t, msg, strings.Repeat("C", maxCompanyChars))
	assert.NotContains(t, msg, strings.Repeat("C", maxCompanyChars+1))
	assert.Contains(t, msg, strings.Repeat("T", maxTitleChars))
	assert.NotContains(t, msg, strings.Repeat("T", maxTitleChars+1))
}

func TestIdleMessage(t *testing.T) {
	assert.Equal(t, "No new internships since the last check.", NewComposer(6).IdleMessage())
}
