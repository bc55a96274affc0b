// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"

	"github.com/jonathan/resume-pdf/internal/layout"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// minBoxWidth and maxBoxWidth bound the width taken from a terminal
	minBoxWidth = 40
	maxBoxWidth = 100
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, width: boxWidth}
}

// NewTerminalPrinter creates a Printer sized to the terminal behind f, or
// the default width when f is not a terminal.
func NewTerminalPrinter(f *os.File) *Printer {
	p := NewPrinter(f)
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			p.width = max(minBoxWidth, min(w, maxBoxWidth))
		}
	}
	return p
}

// fit truncates line to the box interior and pads it to full width
func (p *Printer) fit(line string) string {
	inner := uint(p.width - 4)
	if ansi.PrintableRuneWidth(line) > int(inner) {
		line = truncate.StringWithTail(line, inner, "...")
	}
	return padding.String(line, inner)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", p.width-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", p.fit(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", p.fit(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintHeader outputs the extracted name and contact details.
func (p *Printer) PrintHeader(h layout.HeaderBlock) {
	if !h.HasName() {
		p.printBox("HEADER", "(no header found)")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s (line %d)\n", h.Name, h.NameLine+1))
	if !h.HasContact() {
		sb.WriteString("Contact:  none")
	} else {
		sb.WriteString(fmt.Sprintf("Contact:  line %d\n", h.ContactLine+1))
		for _, part := range h.ContactParts {
			sb.WriteString(fmt.Sprintf("  • %s\n", part))
		}
		if len(h.ContactParts) == 0 {
			sb.WriteString(fmt.Sprintf("  %s\n", h.Contact))
		}
	}

	p.printBox("HEADER", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintClassification outputs role counts and the first lines of each role.
func (p *Printer) PrintClassification(lines []layout.ClassifiedLine) {
	if len(lines) == 0 {
		return
	}

	counts := map[layout.LineRole]int{}
	samples := map[layout.LineRole][]string{}
	for _, l := range lines {
		if l.Header || l.Role == layout.RoleBlank {
			continue
		}
		counts[l.Role]++
		if len(samples[l.Role]) < maxItemsToShow {
			samples[l.Role] = append(samples[l.Role], l.Text)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Lines: %d\n", len(lines)))
	for _, role := range []layout.LineRole{
		layout.RoleSectionHeader,
		layout.RoleSubsection,
		layout.RoleJobTitleDate,
		layout.RoleBullet,
		layout.RoleParagraph,
	} {
		if counts[role] == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s (%d):\n", role, counts[role]))
		for _, text := range samples[role] {
			sb.WriteString(fmt.Sprintf("  %s\n", text))
		}
		if counts[role] > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", counts[role]-maxItemsToShow))
		}
	}

	p.printBox("LINE CLASSIFICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLayoutSummary outputs page and heading statistics for a laid-out
// document and where it was written.
func (p *Printer) PrintLayoutSummary(doc *layout.Document, outPath string) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	if doc.Filename != "" {
		sb.WriteString(fmt.Sprintf("File:     %s\n", doc.Filename))
	}
	if doc.Kind != "" {
		sb.WriteString(fmt.Sprintf("Kind:     %s\n", doc.Kind))
	}
	sb.WriteString(fmt.Sprintf("Page:     %.1f x %.1f mm\n", doc.PageWidth, doc.PageHeight))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", doc.PageCount()))
	for _, page := range doc.Pages {
		sb.WriteString(fmt.Sprintf("  page %d: %d items\n", page.Number, len(page.Items)))
	}

	headings := doc.Headings()
	if len(headings) > 0 {
		sb.WriteString(fmt.Sprintf("\nSections (%d):\n", len(headings)))
		for _, h := range headings {
			sb.WriteString(fmt.Sprintf("  • %s\n", h))
		}
	}
	if outPath != "" {
		sb.WriteString(fmt.Sprintf("\nWritten to %s\n", outPath))
	}

	p.printBox("LAYOUT SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
