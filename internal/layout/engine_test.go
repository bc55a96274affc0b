package layout

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMeasure = errors.New("font metrics unavailable")

// failingMeasurer reports errMeasure once it has measured a string
// containing trigger.
type failingMeasurer struct {
	FixedWidthMeasurer
	trigger string
	failed  bool
}

func (m *failingMeasurer) TextWidth(text string, style Style) float64 {
	if strings.Contains(text, m.trigger) {
		m.failed = true
	}
	return m.FixedWidthMeasurer.TextWidth(text, style)
}

func (m *failingMeasurer) Error() error {
	if m.failed {
		return errMeasure
	}
	return nil
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), NewFixedWidthMeasurer())
	require.NoError(t, err)
	return e
}

func textItems(p Page) []Item {
	var out []Item
	for _, it := range p.Items {
		if it.Kind == ItemText {
			out = append(out, it)
		}
	}
	return out
}

func findText(t *testing.T, doc *Document, text string) (Item, int) {
	t.Helper()
	for _, p := range doc.Pages {
		for _, it := range p.Items {
			if it.Kind == ItemText && it.Fragment.Text == text {
				return it, p.Number
			}
		}
	}
	t.Fatalf("fragment %q not found", text)
	return Item{}, 0
}

func TestNewEngine_Errors(t *testing.T) {
	_, err := NewEngine(DefaultConfig(), nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.PageWidth = 0
	_, err = NewEngine(cfg, NewFixedWidthMeasurer())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLayout_Header(t *testing.T) {
	e := newTestEngine(t)

	doc, err := e.Layout(NewRawDocument("Jane Doe\njane@example.com | (555) 123-4567\n• Shipped things"), "jane.pdf")
	require.NoError(t, err)
	require.Equal(t, 1, doc.PageCount())
	assert.Equal(t, "jane.pdf", doc.Filename)

	items := doc.Pages[0].Items
	require.GreaterOrEqual(t, len(items), 3)

	name := items[0]
	assert.Equal(t, RoleName, name.Role)
	assert.Equal(t, "JANE DOE", name.Fragment.Text)
	assert.Equal(t, 18.0, name.Y)
	assert.InDelta(t, (210-name.Fragment.Width)/2, name.X, 1e-9)

	contact := items[1]
	assert.Equal(t, RoleContact, contact.Role)
	assert.Equal(t, "jane@example.com  •  (555) 123-4567", contact.Fragment.Text)
	assert.Equal(t, 28.0, contact.Y)
	assert.InDelta(t, (210-contact.Fragment.Width)/2, contact.X, 1e-9)

	rule := items[2]
	assert.Equal(t, ItemRule, rule.Kind)
	assert.Equal(t, 18.0, rule.X)
	assert.Equal(t, 192.0, rule.X2)
	assert.Equal(t, 36.0, rule.Y)
	assert.Equal(t, 0.8, rule.Thickness)

	glyph := items[3]
	assert.Equal(t, "•", glyph.Fragment.Text)
	assert.Equal(t, 44.0, glyph.Y)
	assert.Equal(t, 21.0, glyph.X)
}

func TestLayout_HeaderNotRepeatedInBody(t *testing.T) {
	e := newTestEngine(t)

	doc, err := e.Layout(NewRawDocument("Jane Doe\njane@example.com\n\nSUMMARY\nBuilt things."), "")
	require.NoError(t, err)

	count := map[string]int{}
	for _, f := range doc.Fragments() {
		count[f.Text]++
	}
	assert.Equal(t, 1, count["JANE DOE"])
	assert.Equal(t, 1, count["jane@example.com"])
	assert.Zero(t, count["Jane Doe"])
}

func TestLayout_NoContactLine(t *testing.T) {
	e := newTestEngine(t)

	doc, err := e.Layout(NewRawDocument("Jane Doe\nBuilding reliable systems since 2010"), "")
	require.NoError(t, err)

	for _, it := range doc.Pages[0].Items {
		assert.NotEqual(t, RoleContact, it.Role)
	}
	texts := textItems(doc.Pages[0])
	require.Len(t, texts, 2)
	assert.Equal(t, "Building reliable systems since 2010", texts[1].Fragment.Text)
	assert.Equal(t, 28.0, texts[1].Y)
}

func TestLayout_EmptyInput(t *testing.T) {
	e := newTestEngine(t)

	for _, input := range []string{"", "\n\n   \n"} {
		doc, err := e.Layout(NewRawDocument(input), "empty.pdf")
		require.NoError(t, err)
		require.Equal(t, 1, doc.PageCount())
		assert.Empty(t, doc.Pages[0].Items)
	}
}

func TestLayout_PageBreak(t *testing.T) {
	e := newTestEngine(t)
	var sb strings.Builder
	sb.WriteString("Jane Doe\njane@example.com")
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&sb, "\n• Item %d", i)
	}

	doc, err := e.Layout(NewRawDocument(sb.String()), "")
	require.NoError(t, err)
	require.Equal(t, 2, doc.PageCount())

	for i := 0; i < 60; i++ {
		it, page := findText(t, doc, fmt.Sprintf("Item %d", i))
		if i <= 45 {
			assert.Equal(t, 1, page, "item %d", i)
			assert.InDelta(t, 44+5*float64(i), it.Y, 1e-9)
		} else {
			assert.Equal(t, 2, page, "item %d", i)
			assert.InDelta(t, 18+5*float64(i-46), it.Y, 1e-9)
		}
	}

	// Every item lands exactly once.
	bullets := 0
	for _, f := range doc.Fragments() {
		if strings.HasPrefix(f.Text, "Item ") {
			bullets++
		}
	}
	assert.Equal(t, 60, bullets)
}

func TestLayout_SectionHeading(t *testing.T) {
	e := newTestEngine(t)

	doc, err := e.Layout(NewRawDocument("Jane Doe\njane@example.com\n\nSummary\nBuilt things.\n\nExperience\n• Led a team"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"SUMMARY", "EXPERIENCE"}, doc.Headings())

	heading, _ := findText(t, doc, "SUMMARY")
	assert.Equal(t, 50.0, heading.Y)
	assert.Equal(t, 18.0, heading.X)

	var underline *Item
	for i, it := range doc.Pages[0].Items {
		if it.Kind == ItemRule && it.Role == RoleSectionHeader {
			underline = &doc.Pages[0].Items[i]
			break
		}
	}
	require.NotNil(t, underline)
	assert.Equal(t, 18.0, underline.X)
	assert.InDelta(t, 18+heading.Fragment.Width, underline.X2, 1e-9)
	assert.Equal(t, 51.0, underline.Y)
	assert.Equal(t, 0.6, underline.Thickness)
}

func TestLayout_JobDateRightAligned(t *testing.T) {
	e := newTestEngine(t)

	doc, err := e.Layout(NewRawDocument("Jane Doe\njane@example.com\nSenior Engineer, Acme Corp (Remote) (2021 - Present)"), "")
	require.NoError(t, err)

	title, _ := findText(t, doc, "Senior Engineer, Acme Corp (Remote)")
	date, _ := findText(t, doc, "(2021 - Present)")
	assert.Equal(t, title.Y, date.Y)
	assert.Equal(t, 18.0, title.X)
	assert.InDelta(t, 210-18-date.Fragment.Width, date.X, 1e-9)
	assert.InDelta(t, 163.2, date.X, 1e-9)
}

func TestLayout_Idempotent(t *testing.T) {
	e := newTestEngine(t)
	raw := NewRawDocument("Jane Doe\njane@example.com\n\nSKILLS\nLanguages: Go, SQL\n\nEXPERIENCE\nEngineer, Globex (2018 - 2020)\n• Built a queue")

	first, err := e.Layout(raw, "a.pdf")
	require.NoError(t, err)
	second, err := e.Layout(raw, "a.pdf")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLayout_MeasurerErrorInHeader(t *testing.T) {
	m := &failingMeasurer{FixedWidthMeasurer: FixedWidthMeasurer{Factor: DefaultCellFactor}, trigger: "JANE"}
	e, err := NewEngine(DefaultConfig(), m)
	require.NoError(t, err)

	doc, err := e.Layout(NewRawDocument("Jane Doe\njane@example.com"), "")
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, errMeasure))

	var layoutErr *LayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, -1, layoutErr.Line)
}

func TestLayout_MeasurerErrorInBody(t *testing.T) {
	m := &failingMeasurer{FixedWidthMeasurer: FixedWidthMeasurer{Factor: DefaultCellFactor}, trigger: "PROJECTS"}
	e, err := NewEngine(DefaultConfig(), m)
	require.NoError(t, err)

	_, err = e.Layout(NewRawDocument("Jane Doe\njane@example.com\n\nProjects\n• Thing"), "")
	require.Error(t, err)

	var layoutErr *LayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, 3, layoutErr.Line)
	assert.Equal(t, "section_header", layoutErr.Message)
	assert.ErrorIs(t, err, errMeasure)
}
