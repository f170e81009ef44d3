// Package brochure orchestrates the full pipeline: classify the links on a
// root page, fetch the relevant ones, and walk the model through name
// inference, status inference, and the final Markdown brochure, all over one
// shared conversation history.
package brochure

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dtnitsch/brochure-agent/models"
	"github.com/dtnitsch/brochure-agent/pkg/agent"
)

// NoRelevantPages is returned verbatim when the classifier finds nothing
// worth following; no further model calls happen in that case.
const NoRelevantPages = "No relevant pages found to create a brochure."

const creatorBehavior = "You are an assistant that analyzes the contents of several relevant pages from a company website " +
	"and creates a short brochure about the company for prospective customers, investors and recruits. " +
	"Include details of company culture, customers and careers/jobs if information is available. "

// quoteDelimiter wraps each page section of the evidence prompt.
const quoteDelimiter = "\n\"\"\"\n"

// PageFetcher retrieves one page. Satisfied by *webpage.Fetcher.
type PageFetcher interface {
	Fetch(rawURL string) (*models.Page, error)
}

// relevantPage pairs a classified link with its fetched page.
type relevantPage struct {
	Type string
	Page *models.Page
}

// Report summarizes a finished build for run recording.
type Report struct {
	EntityName   string
	EntityStatus string
	Pages        []PageReport
}

// PageReport is the recorded outcome of one classified relevant link.
type PageReport struct {
	Type        string
	URL         string
	FetchFailed bool
	Language    string
	WordCount   int
}

// FetchedPageCount counts the pages that actually made it into the
// evidence prompt.
func (r *Report) FetchedPageCount() int {
	n := 0
	for _, p := range r.Pages {
		if !p.FetchFailed {
			n++
		}
	}
	return n
}

// Creator builds a brochure for one root page. It owns its conversation
// history (via the embedded Agent) and a separate classifier agent with a
// history of its own.
type Creator struct {
	*agent.Agent

	extractor *agent.LinkExtractor
	fetcher   PageFetcher
	rootPage  *models.Page
	workers   int
	logger    *slog.Logger
	report    Report
}

// NewCreator wires a Creator for the given root page. workers bounds the
// fetch pool for relevant pages; values below 1 mean sequential.
func NewCreator(provider agent.Provider, fetcher PageFetcher, model string, rootPage *models.Page, workers int, logger *slog.Logger) *Creator {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Creator{
		Agent:     agent.New(provider, model, creatorBehavior),
		extractor: agent.NewLinkExtractor(provider, model),
		fetcher:   fetcher,
		rootPage:  rootPage,
		workers:   workers,
		logger:    logger,
	}
}

// BuildBrochure runs the whole pipeline and returns the model's Markdown
// output verbatim. Fetch failures of relevant pages degrade the evidence
// prompt; every other failure aborts the build.
func (c *Creator) BuildBrochure(ctx context.Context) (string, error) {
	links, err := c.extractor.ExtractRelevantLinks(ctx, c.rootPage)
	if err != nil {
		return "", fmt.Errorf("failed to classify links: %w", err)
	}
	if len(links) == 0 {
		c.logger.Info("No relevant links classified", "url", c.rootPage.URL)
		return NoRelevantPages, nil
	}

	pages := c.fetchRelevantPages(links)
	for _, rp := range pages {
		c.report.Pages = append(c.report.Pages, PageReport{
			Type:        rp.Type,
			URL:         rp.Page.URL,
			FetchFailed: rp.Page.FetchFailed,
			Language:    rp.Page.Metadata.Language,
			WordCount:   rp.Page.Metadata.WordCount,
		})
	}

	evidence := c.evidencePrompt(pages)
	name, err := c.inferName(ctx, evidence)
	if err != nil {
		return "", fmt.Errorf("failed to infer entity name: %w", err)
	}
	c.report.EntityName = name

	status, err := c.inferStatus(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to infer entity status: %w", err)
	}
	c.report.EntityStatus = status

	c.logger.Info("Generating brochure", "entity", name, "status", status, "relevant_pages", len(pages))
	markdown, err := c.Ask(ctx, c.fullPrompt(name, status))
	if err != nil {
		return "", fmt.Errorf("failed to generate brochure: %w", err)
	}
	return markdown, nil
}

// Report returns the recorded outcome of the last BuildBrochure call.
func (c *Creator) Report() *Report {
	return &c.report
}

// fetchRelevantPages resolves every classified link into a page. Fetches run
// on a bounded worker pool, but results are stored by index so the evidence
// prompt keeps the source link order. Per-page failures are tolerated.
func (c *Creator) fetchRelevantPages(links []models.LinkDescriptor) []relevantPage {
	pages := make([]relevantPage, len(links))

	jobs := make(chan int, len(links))
	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				link := links[i]
				page, err := c.fetcher.Fetch(link.URL)
				if err != nil {
					// Validation rejects are data here, same as a failed fetch.
					c.logger.Warn("Relevant link rejected", "url", link.URL, "error", err)
					page = &models.Page{URL: link.URL, Title: "Error", Text: err.Error(), FetchFailed: true}
				} else if page.FetchFailed {
					c.logger.Warn("Relevant page fetch failed", "url", link.URL, "diagnostic", page.Text)
				}
				pages[i] = relevantPage{Type: link.Type, Page: page}
			}
		}()
	}
	for i := range links {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return pages
}

// evidencePrompt assembles the quote-delimited sections: the root page
// first, then each successfully fetched relevant page in link order. Failed
// fetches are silently omitted.
func (c *Creator) evidencePrompt(pages []relevantPage) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Main page:%sTitle: %s\nText:\n%s%s\n", quoteDelimiter, c.rootPage.Title, c.rootPage.Text, quoteDelimiter)

	for _, rp := range pages {
		if rp.Page == nil || rp.Page.FetchFailed {
			continue
		}
		fmt.Fprintf(&sb, "%s:%sTitle: %s\nText:\n%s%s\n", rp.Type, quoteDelimiter, rp.Page.Title, rp.Page.Text, quoteDelimiter)
	}
	return sb.String()
}

func (c *Creator) inferName(ctx context.Context, evidence string) (string, error) {
	prompt := "Infer the name of the company or the full name of the owner of this website based on the following information that was obtained from their website:\n" +
		evidence + "\nRespond only with the name."
	return c.Ask(ctx, prompt)
}

func (c *Creator) inferStatus(ctx context.Context, name string) (string, error) {
	prompt := "Infer the current status of the entity by the provided name based on the information obtained from their website previously. There can be only two statuses: a company or an individual.\n" +
		fmt.Sprintf("Entity: %s\n", name) +
		"Respond only with the status of said entity."
	return c.Ask(ctx, prompt)
}

// fullPrompt relies entirely on conversation history for source material;
// the evidence is not restated.
func (c *Creator) fullPrompt(name, status string) string {
	return fmt.Sprintf("You are looking at a %s called %s, to whom website %s belongs.\n", status, name, c.rootPage.URL) +
		fmt.Sprintf("Build a short brochure about the %s. Use the information from the website that is already stored in the history.\n", status) +
		"Your response must be in a Markdown format."
}
