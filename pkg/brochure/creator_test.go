package brochure

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dtnitsch/brochure-agent/models"
	"github.com/dtnitsch/brochure-agent/pkg/inference"
)

// scriptedProvider replays canned replies and records every request.
type scriptedProvider struct {
	mu       sync.Mutex
	replies  []string
	requests []inference.Request
}

func (p *scriptedProvider) Respond(ctx context.Context, req inference.Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if len(p.replies) == 0 {
		return "", errors.New("scripted provider exhausted")
	}
	reply := p.replies[0]
	p.replies = p.replies[1:]
	return reply, nil
}

// stubFetcher serves canned pages by URL and counts fetches.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]*models.Page
	calls int
}

func (f *stubFetcher) Fetch(rawURL string) (*models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if page, ok := f.pages[rawURL]; ok {
		return page, nil
	}
	return &models.Page{URL: rawURL, Title: "Error", Text: "connection refused", FetchFailed: true}, nil
}

func rootPage() *models.Page {
	return &models.Page{
		URL:   "https://example.com",
		Title: "Example Inc",
		Text:  "We build examples.",
		Links: []string{"/about", "/privacy"},
	}
}

func TestBuildBrochure_NoRelevantLinks(t *testing.T) {
	provider := &scriptedProvider{replies: []string{`{"links": []}`}}
	fetcher := &stubFetcher{}

	creator := NewCreator(provider, fetcher, "test-model", rootPage(), 1, nil)
	result, err := creator.BuildBrochure(context.Background())
	if err != nil {
		t.Fatalf("BuildBrochure() error = %v", err)
	}

	if result != "No relevant pages found to create a brochure." {
		t.Errorf("BuildBrochure() = %q, want the exact fallback literal", result)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher.calls = %d, want 0", fetcher.calls)
	}
	// Only the classification round-trip happened.
	if len(provider.requests) != 1 {
		t.Errorf("provider received %d requests, want 1", len(provider.requests))
	}
}

func TestBuildBrochure_FullPipeline(t *testing.T) {
	provider := &scriptedProvider{replies: []string{
		`{"links": [{"type": "about page", "url": "https://example.com/about"}]}`,
		"Example Inc",
		"company",
		"# Example Inc\n\nA fine company.",
	}}
	fetcher := &stubFetcher{pages: map[string]*models.Page{
		"https://example.com/about": {
			URL:   "https://example.com/about",
			Title: "About",
			Text:  "Founded long ago.",
		},
	}}

	creator := NewCreator(provider, fetcher, "test-model", rootPage(), 1, nil)
	result, err := creator.BuildBrochure(context.Background())
	if err != nil {
		t.Fatalf("BuildBrochure() error = %v", err)
	}

	if result != "# Example Inc\n\nA fine company." {
		t.Errorf("BuildBrochure() = %q, want the final reply verbatim", result)
	}
	if len(provider.requests) != 4 {
		t.Fatalf("provider received %d requests, want 4", len(provider.requests))
	}

	// The evidence prompt is the user turn of the name-inference call.
	nameReq := provider.requests[1]
	evidence := nameReq.Input[len(nameReq.Input)-1].Content
	if !strings.Contains(evidence, "Main page:") || !strings.Contains(evidence, "Example Inc") {
		t.Errorf("evidence prompt missing the root page section:\n%s", evidence)
	}
	if !strings.Contains(evidence, "about page:") || !strings.Contains(evidence, "Founded long ago.") {
		t.Errorf("evidence prompt missing the about page section:\n%s", evidence)
	}
	if !strings.Contains(evidence, `"""`) {
		t.Errorf("evidence prompt missing the quote delimiters:\n%s", evidence)
	}

	// The status prompt references the inferred name.
	statusReq := provider.requests[2]
	statusPrompt := statusReq.Input[len(statusReq.Input)-1].Content
	if !strings.Contains(statusPrompt, "Entity: Example Inc") {
		t.Errorf("status prompt missing the inferred name:\n%s", statusPrompt)
	}

	// The final prompt references status, name, and root URL, but does not
	// restate the evidence.
	finalReq := provider.requests[3]
	finalPrompt := finalReq.Input[len(finalReq.Input)-1].Content
	for _, want := range []string{"company", "Example Inc", "https://example.com"} {
		if !strings.Contains(finalPrompt, want) {
			t.Errorf("final prompt missing %q:\n%s", want, finalPrompt)
		}
	}
	if strings.Contains(finalPrompt, "Founded long ago.") {
		t.Errorf("final prompt restates evidence:\n%s", finalPrompt)
	}

	report := creator.Report()
	if report.EntityName != "Example Inc" || report.EntityStatus != "company" {
		t.Errorf("report entity = %q/%q, want Example Inc/company", report.EntityName, report.EntityStatus)
	}
}

func TestBuildBrochure_FailedFetchOmittedFromEvidence(t *testing.T) {
	provider := &scriptedProvider{replies: []string{
		`{"links": [{"type": "about page", "url": "https://example.com/about"}]}`,
		"Example Inc",
		"company",
		"# Brochure",
	}}
	// No canned page: the about fetch fails with connection refused.
	fetcher := &stubFetcher{}

	creator := NewCreator(provider, fetcher, "test-model", rootPage(), 1, nil)
	result, err := creator.BuildBrochure(context.Background())
	if err != nil {
		t.Fatalf("BuildBrochure() error = %v, want pipeline to tolerate the failed fetch", err)
	}
	if result != "# Brochure" {
		t.Errorf("BuildBrochure() = %q, want %q", result, "# Brochure")
	}

	nameReq := provider.requests[1]
	evidence := nameReq.Input[len(nameReq.Input)-1].Content
	if !strings.Contains(evidence, "Main page:") {
		t.Errorf("evidence prompt missing the root page section:\n%s", evidence)
	}
	if strings.Contains(evidence, "about page:") || strings.Contains(evidence, "connection refused") {
		t.Errorf("evidence prompt should omit the failed page:\n%s", evidence)
	}

	report := creator.Report()
	if len(report.Pages) != 1 || !report.Pages[0].FetchFailed {
		t.Errorf("report.Pages = %+v, want one failed page recorded", report.Pages)
	}
	if report.FetchedPageCount() != 0 {
		t.Errorf("FetchedPageCount() = %d, want 0", report.FetchedPageCount())
	}
}

func TestBuildBrochure_EvidenceOrderIsDeterministic(t *testing.T) {
	var links []string
	pages := map[string]*models.Page{}
	for i := 0; i < 8; i++ {
		url := fmt.Sprintf("https://example.com/p%d", i)
		links = append(links, fmt.Sprintf(`{"type": "page %d", "url": %q}`, i, url))
		pages[url] = &models.Page{URL: url, Title: fmt.Sprintf("P%d", i), Text: fmt.Sprintf("text %d", i)}
	}

	provider := &scriptedProvider{replies: []string{
		`{"links": [` + strings.Join(links, ",") + `]}`,
		"Example Inc",
		"company",
		"# Brochure",
	}}
	fetcher := &stubFetcher{pages: pages}

	// Concurrent fetches must not reorder the evidence sections.
	creator := NewCreator(provider, fetcher, "test-model", rootPage(), 4, nil)
	if _, err := creator.BuildBrochure(context.Background()); err != nil {
		t.Fatalf("BuildBrochure() error = %v", err)
	}

	nameReq := provider.requests[1]
	evidence := nameReq.Input[len(nameReq.Input)-1].Content
	lastIdx := -1
	for i := 0; i < 8; i++ {
		idx := strings.Index(evidence, fmt.Sprintf("page %d:", i))
		if idx == -1 {
			t.Fatalf("evidence prompt missing section for page %d", i)
		}
		if idx < lastIdx {
			t.Fatalf("evidence sections out of order at page %d", i)
		}
		lastIdx = idx
	}
	if fetcher.calls != 8 {
		t.Errorf("fetcher.calls = %d, want 8", fetcher.calls)
	}
}

func TestBuildBrochure_ClassifierFailureAborts(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"not json at all"}}
	fetcher := &stubFetcher{}

	creator := NewCreator(provider, fetcher, "test-model", rootPage(), 1, nil)
	if _, err := creator.BuildBrochure(context.Background()); err == nil {
		t.Fatal("BuildBrochure() error = nil, want classifier parse failure to propagate")
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher.calls = %d, want 0 after aborted classification", fetcher.calls)
	}
}
