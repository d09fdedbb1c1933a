// Package model defines shared data structures for the watcher.
package model

// Job categories a posting can be filed under. CategoryUnclassified is the
// bucket for titles no keyword group matches.
const (
	CategorySWE          = "Software Engineering"
	CategoryDataAnalysis = "Data Analysis"
	CategoryML           = "Machine Learning & AI"
	CategoryPM           = "Product Management"
	CategoryUnclassified = "Unclassified"
)

// PostingRecord is one normalized internship listing extracted from an
// upstream source. Records are plain values; identity for dedup purposes is
// the (company, title, url) tuple, see the dedup package.
type PostingRecord struct {
	Source   string // which origin produced the record
	Category string // one of the Category constants; empty until classified
	Title    string
	Company  string
	Location string
	URL      string // always absolute and non-empty after extraction
	Posted   string // optional free-form recency label, e.g. "0d"
}
