package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// blockSelector lists the elements that each start a new line of text
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, dt, dd, pre, blockquote, tr"

// lineBreak stands in for <br> so source newlines can still collapse
const lineBreak = "\u2028"

// ExtractHTMLText flattens an HTML document to lines of plain text. Headings
// start a new paragraph and list items become "•" bullets.
func ExtractHTMLText(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove elements that never carry document text
	doc.Find("script, style, noscript, template, head").Remove()
	doc.Find("br").ReplaceWithHtml(lineBreak)

	var lines []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Nested blocks are covered by their outermost ancestor
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}

		name := goquery.NodeName(s)
		isHeading := len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6'
		if isHeading && len(lines) > 0 {
			lines = append(lines, "")
		}

		for i, text := range splitBlock(s) {
			if name == "li" && i == 0 {
				text = "• " + text
			}
			lines = append(lines, text)
		}
	})

	if len(lines) == 0 {
		return cleanWhitespace(strings.ReplaceAll(doc.Find("body").Text(), lineBreak, "\n")), nil
	}
	return strings.Join(lines, "\n"), nil
}

// splitBlock returns the non-empty, whitespace-collapsed lines of s
func splitBlock(s *goquery.Selection) []string {
	if goquery.NodeName(s) == "tr" {
		var cells []string
		s.Find("td, th").Each(func(_ int, c *goquery.Selection) {
			if text := strings.Join(strings.Fields(c.Text()), " "); text != "" {
				cells = append(cells, text)
			}
		})
		if len(cells) == 0 {
			return nil
		}
		return []string{strings.Join(cells, " | ")}
	}

	var out []string
	for _, line := range strings.Split(s.Text(), lineBreak) {
		if text := strings.Join(strings.Fields(line), " "); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// cleanWhitespace trims every line and drops empty ones
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// MarkdownToText renders Markdown to HTML and flattens the result like
// ExtractHTMLText.
func MarkdownToText(src string) (string, error) {
	var buf strings.Builder
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return ExtractHTMLText(buf.String())
}
