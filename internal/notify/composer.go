// Package notify renders the alert digest and delivers it over the
// configured transports, best effort per recipient.
package notify

import (
	"fmt"
	"strings"

	"intern-watch/internal/model"
)

const (
	companyPlaceholder = "Unknown Company"
	titlePlaceholder   = "Role"
	optOutFooter       = "Reply STOP to opt out."
	idleMessage        = "No new internships since the last check."

	maxCompanyChars = 40
	maxTitleChars   = 70
)

// Composer renders a bounded-length plain-text digest from new postings.
type Composer struct {
	batchSize int
}

func NewComposer(batchSize int) *Composer {
	return &Composer{batchSize: batchSize}
}

// Compose itemizes up to batchSize postings, appends a "+N more" line when
// records overflow the batch, and closes with the opt-out footer.
func (c *Composer) Compose(records []model.PostingRecord) string {
	batch := records
	if len(batch) > c.batchSize {
		batch = batch[:c.batchSize]
	}

	lines := make([]string, 0, len(batch))
	for _, r := range batch {
		lines = append(lines, line(r))
	}

	var b strings.Builder
	b.WriteString("New internships:\n")
	b.WriteString(strings.Join(lines, "\n"))
	if extra := len(records) - len(batch); extra > 0 {
		b.WriteString(fmt.Sprintf("\n(+%d more new roles)", extra))
	}
	b.WriteString("\n" + optOutFooter)
	return b.String()
}

// IdleMessage is the single fixed sentence sent at most once per dry spell.
func (c *Composer) IdleMessage() string {
	return idleMessage
}

func line(r model.PostingRecord) string {
	var b strings.Builder
	b.WriteString("• [" + orUnknown(r.Category) + "] [" + orUnknown(r.Source) + "] ")
	b.WriteString(orDefault(truncate(r.Company, maxCompanyChars), companyPlaceholder))
	b.WriteString(" — ")
	b.WriteString(orDefault(truncate(r.Title, maxTitleChars), titlePlaceholder))
	if r.Location != "" {
		b.WriteString(" — " + r.Location)
	}
	if r.Posted != "" {
		b.WriteString(" — " + r.Posted)
	}
	b.WriteString("\n" + r.URL)
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
