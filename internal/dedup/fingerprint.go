// Package dedup decides which extracted postings are new, keyed by a stable
// fingerprint persisted across runs.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"intern-watch/internal/model"
)

// Fingerprint returns the SHA-256 digest identifying a posting.
// Identity is the trimmed (company, title, url) tuple; source and category
// do not participate, so the same posting surfaced by two sources collapses
// to a single notification.
func Fingerprint(r model.PostingRecord) string {
	key := strings.TrimSpace(r.Company) + "|" + strings.TrimSpace(r.Title) + "|" + strings.TrimSpace(r.URL)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
