package ingestion

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors are elements that should end with a line break so the
// extractor sees one logical line per block.
const blockSelectors = "p, div, li, ul, ol, h1, h2, h3, h4, h5, h6, tr, section, article"

// HTMLToText reduces an HTML document to plain text suitable for the
// pipeline. List items become bullet lines so bullet extraction still works.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, head").Remove()
	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return CleanText(root.Text()), nil
}
