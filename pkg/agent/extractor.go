package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtnitsch/brochure-agent/models"
)

// ErrMalformedReply marks a classifier reply that did not conform to the
// expected {"links": [...]} schema. It is fatal to the current operation;
// there is no local recovery.
var ErrMalformedReply = errors.New("malformed classifier reply")

const extractorBehavior = `You are an expert in creation of online advertisement materials. You are going to be provided with a list of links found on a website. You are able to decide which of the links would be most relevant to include in a brochure about the company, such as links to an About page or a Company page or Careers/Jobs pages.
You should respond in JSON as in this example:
{
    "links": [
        {"type": "about page", "url": "https://www.example.com/about"},
        {"type": "company page", "url": "https://www.another_example.net/company"},
        {"type": "careers page", "url": "https://ex.one_more_example.org/careers"}
    ]
}`

// LinkExtractor asks the model which links on a page are worth following
// for a company brochure.
type LinkExtractor struct {
	*Agent
}

// NewLinkExtractor creates a classifier sharing the given provider.
func NewLinkExtractor(provider Provider, model string) *LinkExtractor {
	return &LinkExtractor{Agent: New(provider, model, extractorBehavior)}
}

// ExtractRelevantLinks sends the page's link list through the shared ask
// loop and parses the structured reply. A reply that does not parse as the
// expected schema returns ErrMalformedReply.
func (e *LinkExtractor) ExtractRelevantLinks(ctx context.Context, page *models.Page) ([]models.LinkDescriptor, error) {
	reply, err := e.Ask(ctx, linksUserPrompt(page))
	if err != nil {
		return nil, err
	}

	result, err := models.ParseRelevanceResult([]byte(stripCodeFence(reply)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return result.Links, nil
}

// linksUserPrompt enumerates every link found on the page, one per line,
// with the selection instructions in front.
func linksUserPrompt(page *models.Page) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here is a list of links found on the website of %s - ", page.URL)
	sb.WriteString("please decide which of these links are relevant web links for a brochure about company.")
	sb.WriteString("Respond with full HTTPS URLs. Avoid including Terms of Service, Privacy, email links, social media pages.\n")
	sb.WriteString("Links (some might be relative links):\n")

	if len(page.Links) == 0 {
		sb.WriteString("No links found.")
		return sb.String()
	}

	for i, link := range page.Links {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(link)
	}
	return sb.String()
}

// stripCodeFence unwraps a reply the model wrapped in a Markdown code fence.
// The JSON inside is still parsed strictly.
func stripCodeFence(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
