package webpage

import (
	"bufio"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/brochure-agent/models"
)

const (
	noTitle   = "No title"
	noContent = "No content"
)

// strippedSelector removes elements that carry no visible prose before the
// body text is extracted.
const strippedSelector = "script,style,img,figure,video,audio,button,svg,canvas"

// ExtractPage parses HTML into a Page: the <title> text, the
// whitespace-normalized visible body text, and every anchor href found
// anywhere in the document. Relative hrefs are kept as-is.
func ExtractPage(rawURL, html string) (*models.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	title := normalizeText(doc.Find("title").First().Text())
	if title == "" {
		title = noTitle
	}

	var links []string
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href != "" {
			links = append(links, href)
		}
	})

	doc.Find(strippedSelector).Remove()

	text := ""
	body := doc.Find("body")
	if body.Length() > 0 {
		text = normalizeText(body.Text())
	}
	if text == "" {
		text = noContent
	}

	return &models.Page{
		URL:   rawURL,
		Title: title,
		Text:  text,
		Links: links,
	}, nil
}

// normalizeText collapses runs of whitespace and newlines to single spaces
// so extracted text stays compact inside prompts.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.Join(strings.Fields(scanner.Text()), " ")
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
