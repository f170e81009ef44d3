// Package detector enriches fetched pages with cheap metadata: detected
// language, word count, TLD-based domain classification, and article
// metadata pulled by go-readability. The signals never feed the prompts;
// they are logged and stored with run records.
package detector

import (
	"net/url"
	"strings"

	"github.com/dtnitsch/brochure-agent/models"
	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// Detector holds the language detector, which is expensive to build and
// safe to share.
type Detector struct {
	languages lingua.LanguageDetector
}

// New builds a Detector over a small set of common site languages.
func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English, lingua.German, lingua.French, lingua.Spanish,
			lingua.Italian, lingua.Portuguese, lingua.Dutch, lingua.Japanese,
		).
		Build()
	return &Detector{languages: detector}
}

// Analyze computes metadata for a successfully fetched page. The raw HTML
// is optional; without it the readability enrichment is skipped.
func (d *Detector) Analyze(page *models.Page, rawHTML string) models.PageMetadata {
	meta := models.PageMetadata{
		WordCount: len(strings.Fields(page.Text)),
	}

	if parsedURL, err := url.Parse(page.URL); err == nil {
		meta.DomainType = detectDomainType(parsedURL)
		meta.Country = detectCountry(parsedURL)
	}

	if lang, conf := d.detectLanguage(page.Text); lang != "" {
		meta.Language = lang
		meta.LanguageConfidence = conf
	}

	if rawHTML != "" {
		if parsedURL, err := url.Parse(page.URL); err == nil {
			parser := readability.NewParser()
			if article, err := parser.Parse(strings.NewReader(rawHTML), parsedURL); err == nil {
				meta.SiteName = article.SiteName
				meta.Excerpt = article.Excerpt
				meta.Author = article.Byline
			}
		}
	}

	return meta
}

// detectLanguage returns an ISO-639-1 code and confidence, or empty when
// the text is too thin to classify.
func (d *Detector) detectLanguage(text string) (string, float64) {
	if len(strings.Fields(text)) < 5 {
		return "", 0
	}
	lang, ok := d.languages.DetectLanguageOf(text)
	if !ok {
		return "", 0
	}
	conf := d.languages.ComputeLanguageConfidence(text, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), conf
}

// detectDomainType identifies a coarse domain classification.
func detectDomainType(u *url.URL) string {
	host := strings.ToLower(u.Host)

	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".mil") {
		return "gov"
	}
	if strings.HasSuffix(host, ".edu") {
		return "edu"
	}
	if strings.HasPrefix(host, "m.") || strings.HasPrefix(host, "mobile.") {
		return "mobile"
	}
	return "commercial"
}

// detectCountry extracts a country guess from the TLD.
func detectCountry(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return "unknown"
	}

	tld := parts[len(parts)-1]

	countries := map[string]string{
		"uk": "uk", "de": "de", "fr": "fr", "jp": "jp", "cn": "cn",
		"au": "au", "ca": "ca", "in": "in", "br": "br", "ru": "ru",
		"it": "it", "es": "es", "nl": "nl", "se": "se", "ch": "ch",
	}
	if country, ok := countries[tld]; ok {
		return country
	}

	// US implied for US-administered TLDs
	if tld == "gov" || tld == "edu" || tld == "mil" {
		return "us"
	}
	return "unknown"
}
