package ingestion

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	headingMarker  = regexp.MustCompile(`^#{1,6}\s+`)
	emphasisMarker = regexp.MustCompile(`\*\*|__`)
	ruleLine       = regexp.MustCompile(`^[*_]{3,}$`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	blankLineRun   = regexp.MustCompile(`\n\n\n+`)
)

// Format is the markup an input is written in
type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// DetectFormat picks the input format from a file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// ParseFormat validates a format name. An empty name means plain text.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatText:
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown input format %q", name)
	}
}

// CleanText normalizes generated text into one logical line per output line.
// Markdown emphasis and heading markers are dropped, "*" and "+" list
// markers become "•", and runs of blank lines collapse to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF) and compose characters
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = norm.NFC.String(content)

	// 2. Process each line
	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	// 3. Join, drop excessive blank lines, trim the whole
	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || ruleLine.MatchString(line) {
		return ""
	}

	if loc := headingMarker.FindStringIndex(line); loc != nil {
		line = line[loc[1]:]
	}
	line = emphasisMarker.ReplaceAllString(line, "")

	if strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		line = "• " + strings.TrimSpace(line[2:])
	}

	// Normalize spaces in content (multiple spaces → single)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
}

// removeExcessiveBlankLines reduces consecutive blank lines to one
func removeExcessiveBlankLines(content string) string {
	return blankLineRun.ReplaceAllString(content, "\n\n")
}

// Ingest converts content in the given format to cleaned plain text
func Ingest(ctx context.Context, content string, format Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var text string
	var err error
	switch format {
	case FormatHTML:
		text, err = ExtractHTMLText(content)
	case FormatMarkdown:
		text, err = MarkdownToText(content)
	default:
		text = content
	}
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// IngestFromReader reads all of r and ingests it
func IngestFromReader(ctx context.Context, r io.Reader, format Format, source string) (string, *Metadata, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read input: %w", err)
	}

	cleanedText, err := Ingest(ctx, string(content), format)
	if err != nil {
		return "", nil, err
	}
	return cleanedText, NewMetadata(cleanedText, source), nil
}

// IngestFromFile reads a text, Markdown or HTML file, cleans it, and returns cleaned text with metadata
func IngestFromFile(ctx context.Context, path string) (string, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return IngestFromReader(ctx, f, DetectFormat(path), path)
}
