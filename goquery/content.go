package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docmirror"
)

// Ensure Extractor implements docmirror.Extractor at compile time.
var _ docmirror.Extractor = (*Extractor)(nil)

// contentSelectors locate the main content region across documentation
// generators, most specific first. MkDocs Material wraps content in
// article.md-content__inner; Sphinx uses div[role=main]; most modern
// generators use a semantic article or main element.
var contentSelectors = []string{
	"article.md-content__inner",
	"div[role='main']",
	"article",
	"main",
	"div.content",
}

// chromeSelectors match elements removed from the content region before
// conversion: navigation, page-local TOC, edit buttons, pagination.
var chromeSelectors = []string{
	"nav",
	"aside",
	"header",
	"footer",
	"script",
	"style",
	".md-sidebar",
	".md-source-file",
	".headerlink",
	".edit-this-page",
	".pagination-nav",
	"a.md-content__button",
}

// Extractor isolates the main content region of a documentation page using
// CSS selectors. It is precise on known generator layouts; pages it cannot
// place should go to a fuzzier fallback extractor.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page's content region with chrome removed, plus the
// page title. An empty ContentHTML means no selector matched.
func (e *Extractor) Extract(html string) (*docmirror.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docmirror.Errorf(docmirror.EINVALID, "failed to parse HTML: %v", err)
	}

	title := pageTitle(doc)

	for _, selector := range contentSelectors {
		region := doc.Find(selector).First()
		if region.Length() == 0 {
			continue
		}

		for _, chrome := range chromeSelectors {
			region.Find(chrome).Remove()
		}

		contentHTML, err := region.Html()
		if err != nil {
			return nil, docmirror.Errorf(docmirror.EINVALID, "failed to render content region: %v", err)
		}
		if strings.TrimSpace(region.Text()) == "" {
			continue
		}

		return &docmirror.ExtractResult{
			Title:       title,
			ContentHTML: contentHTML,
		}, nil
	}

	return &docmirror.ExtractResult{Title: title}, nil
}

// pageTitle prefers the first content heading over the document title,
// which usually carries a "| Site Name" suffix.
func pageTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if idx := strings.IndexAny(title, "|-"); idx > 0 {
		title = strings.TrimSpace(title[:idx])
	}
	return title
}
