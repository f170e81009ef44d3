// Package webpage fetches web pages and reduces them to the title, visible
// text, and links the brochure pipeline works with. Target URLs are
// validated before any network I/O; network and HTTP failures become
// flagged pages rather than errors so a batch can continue with what it got.
package webpage

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dtnitsch/brochure-agent/models"
	"github.com/dtnitsch/brochure-agent/pkg/detector"
)

const defaultTimeout = 10 * time.Second

// failureTitle is the title of any page whose fetch failed.
const failureTitle = "Error"

type validateFunc func(rawURL string) error

// Fetcher retrieves pages over HTTP.
type Fetcher struct {
	client   *http.Client
	validate validateFunc
	detector *detector.Detector
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout overrides the default 10s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithAllowedTLDs replaces the TLD allowlist used during URL validation.
func WithAllowedTLDs(tlds []string) Option {
	return func(f *Fetcher) {
		f.validate = func(rawURL string) error {
			return ValidateURL(rawURL, tlds)
		}
	}
}

// WithDetector enables metadata enrichment of successfully fetched pages.
func WithDetector(d *detector.Detector) Option {
	return func(f *Fetcher) {
		f.detector = d
	}
}

// NewFetcher creates a Fetcher with the default validation rules.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
		validate: func(rawURL string) error {
			return ValidateURL(rawURL, models.DefaultAllowedTLDs)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch validates the URL, performs a GET, and extracts the page content.
// Validation failure returns ErrInvalidURL before any network call. Any
// transport error or non-success status yields a Page with FetchFailed set
// and a diagnostic in Text; extraction problems are reported the same way.
func (f *Fetcher) Fetch(rawURL string) (*models.Page, error) {
	if err := f.validate(rawURL); err != nil {
		return nil, err
	}

	resp, err := f.client.Get(rawURL)
	if err != nil {
		return failedPage(rawURL, fmt.Sprintf("failed to make HTTP request: %s", err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failedPage(rawURL, fmt.Sprintf("failed to fetch page, status: %s", resp.Status)), nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return failedPage(rawURL, fmt.Sprintf("failed to read response body: %s", err)), nil
	}

	page, err := ExtractPage(rawURL, string(bodyBytes))
	if err != nil {
		return failedPage(rawURL, fmt.Sprintf("failed to parse HTML: %s", err)), nil
	}
	if f.detector != nil {
		page.Metadata = f.detector.Analyze(page, string(bodyBytes))
	}
	return page, nil
}

func failedPage(rawURL, diagnostic string) *models.Page {
	return &models.Page{
		URL:         rawURL,
		Title:       failureTitle,
		Text:        diagnostic,
		FetchFailed: true,
	}
}
