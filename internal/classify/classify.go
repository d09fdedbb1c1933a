// Package classify maps free-text role titles to job categories with
// ordered keyword precedence.
package classify

import (
	"strings"

	"intern-watch/internal/model"
)

// Rule is one keyword group. Rules are tested in order and the first group
// with a match wins, so a title mentioning both "product manager" and "swe"
// lands in whichever group is listed first.
type Rule struct {
	Category string
	Keywords []string
}

// DefaultRules returns the built-in precedence tables: Product Management,
// then Data Analysis, then ML & AI, then Software Engineering.
func DefaultRules() []Rule {
	return []Rule{
		{model.CategoryPM, []string{"product manager", "apm", "product management", "pm intern", "product intern"}},
		{model.CategoryDataAnalysis, []string{"data analyst", "analytics", "business analyst", "data analysis"}},
		{model.CategoryML, []string{"machine learning", " ml", "ml ", " ai", "artificial intelligence", "deep learning", "research scientist"}},
		{model.CategorySWE, []string{"software engineer", "swe", "backend", "front end", "frontend", "full stack", "mobile", "android", "ios"}},
	}
}

type Classifier struct {
	rules []Rule
}

func New(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify returns the category of the first matching keyword group, or def
// when no group matches. Matching is a case-insensitive substring test.
func (c *Classifier) Classify(title, def string) string {
	t := strings.ToLower(title)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if keyword != "" && strings.Contains(t, keyword) {
				return rule.Category
			}
		}
	}
	return def
}
