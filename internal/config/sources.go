package config

import "fmt"

type SourcesConfig struct {
	Cards    CardSiteConfig    `yaml:"cards"`
	Markdown MarkdownDocConfig `yaml:"markdown"`
}

// CardSiteConfig describes an HTML site that lists postings on per-category
// tab pages.
type CardSiteConfig struct {
	SourceName string    `yaml:"source_name"`
	BaseURL    string    `yaml:"base_url"` // site origin, e.g. https://www.intern-list.com
	Tabs       []CardTab `yaml:"tabs"`
}

// CardTab is one category tab of the card site. A tab with an empty category
// gets its records routed through the classifier. When Discover is set, the
// tab path is looked up in the homepage nav first, then the fallback paths
// are tried in order.
type CardTab struct {
	Category      string   `yaml:"category"`
	Path          string   `yaml:"path"`
	Discover      bool     `yaml:"discover"`
	DiscoverTerms []string `yaml:"discover_terms"`
	FallbackPaths []string `yaml:"fallback_paths"`
}

// MarkdownDocConfig describes a Markdown document on a code-hosting site
// holding one pipe table per category section. The document is located by
// trying the candidates in order; no single (owner, repo, branch) is
// authoritative upstream.
type MarkdownDocConfig struct {
	SourceName string         `yaml:"source_name"`
	File       string         `yaml:"file"` // e.g. README.md
	Candidates []DocCandidate `yaml:"candidates"`
	Sections   []SectionSpec  `yaml:"sections"`
}

type DocCandidate struct {
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`
}

// SectionSpec binds a category to the normalized heading-text fragment that
// opens its table section.
type SectionSpec struct {
	Category string `yaml:"category"`
	Heading  string `yaml:"heading"`
}

func (s *SourcesConfig) validate() error {
	if len(s.Cards.Tabs) > 0 && s.Cards.BaseURL == "" {
		return fmt.Errorf("sources.cards.base_url is required when tabs are configured")
	}
	if len(s.Cards.Tabs) > 0 && s.Cards.SourceName == "" {
		return fmt.Errorf("sources.cards.source_name is required when tabs are configured")
	}
	for i, tab := range s.Cards.Tabs {
		if tab.Path == "" && !tab.Discover && len(tab.FallbackPaths) == 0 {
			return fmt.Errorf("sources.cards.tabs[%d]: path, discover or fallback_paths required", i)
		}
		if tab.Discover && len(tab.DiscoverTerms) == 0 {
			return fmt.Errorf("sources.cards.tabs[%d]: discover_terms required when discover is set", i)
		}
	}
	if len(s.Markdown.Candidates) > 0 {
		if s.Markdown.SourceName == "" {
			return fmt.Errorf("sources.markdown.source_name is required when candidates are configured")
		}
		if s.Markdown.File == "" {
			return fmt.Errorf("sources.markdown.file is required when candidates are configured")
		}
		if len(s.Markdown.Sections) == 0 {
			return fmt.Errorf("sources.markdown.sections is required when candidates are configured")
		}
	}
	for i, cand := range s.Markdown.Candidates {
		if cand.Owner == "" || cand.Repo == "" || cand.Branch == "" {
			return fmt.Errorf("sources.markdown.candidates[%d]: owner, repo and branch are required", i)
		}
	}
	for i, sec := range s.Markdown.Sections {
		if sec.Heading == "" {
			return fmt.Errorf("sources.markdown.sections[%d].heading is required", i)
		}
	}
	return nil
}
