package models

// Page represents one fetched web page, reduced to what the brochure
// pipeline needs: a title, the visible text, and the links found on it.
// A Page is immutable after the fetcher constructs it.
type Page struct {
	URL         string       `json:"url"`
	Title       string       `json:"title"`
	Text        string       `json:"text"`
	Links       []string     `json:"links,omitempty"`
	FetchFailed bool         `json:"fetch_failed"`
	Metadata    PageMetadata `json:"metadata,omitempty"`
}

// PageMetadata carries enrichment signals computed after a successful fetch.
// None of it feeds the prompts; it is logged and stored with run records.
type PageMetadata struct {
	// Language detection
	Language           string  `json:"language,omitempty"` // ISO-639-1 if possible (e.g. "en")
	LanguageConfidence float64 `json:"language_confidence,omitempty"`

	// Size signals
	WordCount int `json:"word_count,omitempty"`

	// Domain classification
	DomainType string `json:"domain_type,omitempty"` // gov, edu, commercial, unknown
	Country    string `json:"country,omitempty"`     // TLD-based: us, uk, de, jp, etc

	// Readability enrichment (from go-readability)
	SiteName string `json:"site_name,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"` // meta description
	Author   string `json:"author,omitempty"`
}
