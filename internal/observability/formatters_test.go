package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-pdf/internal/layout"
)

// assertBoxAligned checks every output line has the same printable width
func assertBoxAligned(t *testing.T, output string, width int) {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		assert.Equal(t, width, ansi.PrintableRuneWidth(line), "line %q", line)
	}
}

func sampleDocument(t *testing.T) *layout.Document {
	t.Helper()
	e, err := layout.NewEngine(layout.DefaultConfig(), layout.NewFixedWidthMeasurer())
	require.NoError(t, err)
	doc, err := e.Layout(layout.NewRawDocument("Jane Doe\njane@example.com\n\nSUMMARY\nBuilt things.\n\nSKILLS\nLanguages: Go"), "tailored-resume.pdf")
	require.NoError(t, err)
	doc.Kind = "resume"
	return doc
}

func TestPrintHeader(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	h := layout.ExtractHeader(layout.NewRawDocument("Jane Doe\njane@example.com | 555-123-4567"), "  •  ")
	p.PrintHeader(h)
	output := buf.String()

	assert.Contains(t, output, "HEADER")
	assert.Contains(t, output, "Jane Doe (line 1)")
	assert.Contains(t, output, "Contact:  line 2")
	assert.Contains(t, output, "• jane@example.com")
	assert.Contains(t, output, "• 555-123-4567")
	assertBoxAligned(t, output, boxWidth)
}

func TestPrintHeader_NoContact(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintHeader(layout.ExtractHeader(layout.NewRawDocument("Jane Doe\nSUMMARY"), "  •  "))

	assert.Contains(t, buf.String(), "Contact:  none")
}

func TestPrintHeader_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintHeader(layout.ExtractHeader(layout.NewRawDocument(""), "  •  "))

	assert.Contains(t, buf.String(), "(no header found)")
}

func TestPrintClassification(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var sb strings.Builder
	sb.WriteString("Jane Doe\njane@example.com\n\nEXPERIENCE\n")
	for i := 0; i < 7; i++ {
		sb.WriteString("• Shipped a thing\n")
	}
	p.PrintClassification(layout.ClassifyDocument(layout.NewRawDocument(sb.String())))
	output := buf.String()

	assert.Contains(t, output, "LINE CLASSIFICATION")
	assert.Contains(t, output, "section_header (1):")
	assert.Contains(t, output, "bullet (7):")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "jane@example.com")
	assertBoxAligned(t, output, boxWidth)
}

func TestPrintClassification_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintClassification(nil)

	assert.Empty(t, buf.String())
}

func TestPrintLayoutSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLayoutSummary(sampleDocument(t), "out/tailored-resume.pdf")
	output := buf.String()

	assert.Contains(t, output, "LAYOUT SUMMARY")
	assert.Contains(t, output, "tailored-resume.pdf")
	assert.Contains(t, output, "Kind:     resume")
	assert.Contains(t, output, "Pages:    1")
	assert.Contains(t, output, "Sections (2):")
	assert.Contains(t, output, "• SUMMARY")
	assert.Contains(t, output, "• SKILLS")
	assert.Contains(t, output, "Written to out/tailored-resume.pdf")
	assertBoxAligned(t, output, boxWidth)
}

func TestPrintLayoutSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLayoutSummary(nil, "")

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200)+"\n• "+strings.Repeat("é", 100))
	output := buf.String()

	assert.Contains(t, output, "...")
	assert.NotContains(t, output, strings.Repeat("x", 100))
	assertBoxAligned(t, output, boxWidth)
}

func TestNewTerminalPrinter_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	p := NewTerminalPrinter(f)

	assert.Equal(t, boxWidth, p.width)
}
