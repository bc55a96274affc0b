package layout

import (
	"math"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Measurer is the text-measurement capability layout depends on. Width and
// wrapping are reported in the document's physical units for the given style.
// Implementations may record a failure and report it through Error, the way a
// PDF writer accumulates errors.
type Measurer interface {
	TextWidth(text string, style Style) float64
	SplitText(text string, width float64, style Style) []string
	Error() error
}

// FixedWidthMeasurer treats every printable cell as Factor*size units wide.
// It is deterministic and needs no fonts, which makes it the measurer of
// choice for tests and dry runs.
type FixedWidthMeasurer struct {
	Factor float64
}

// DefaultCellFactor approximates Helvetica's average glyph width in
// millimetres per point.
const DefaultCellFactor = 0.18

// NewFixedWidthMeasurer returns a FixedWidthMeasurer using DefaultCellFactor
func NewFixedWidthMeasurer() *FixedWidthMeasurer {
	return &FixedWidthMeasurer{Factor: DefaultCellFactor}
}

func (m *FixedWidthMeasurer) cell(style Style) float64 {
	f := m.Factor
	if f <= 0 {
		f = DefaultCellFactor
	}
	return f * style.Size
}

// TextWidth returns the printable width of text
func (m *FixedWidthMeasurer) TextWidth(text string, style Style) float64 {
	return float64(ansi.PrintableRuneWidth(text)) * m.cell(style)
}

// SplitText wraps text at word boundaries so each line fits width. Words
// longer than the width are hard-wrapped across lines. A width narrower than
// one cell leaves the text unwrapped.
func (m *FixedWidthMeasurer) SplitText(text string, width float64, style Style) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}
	limit := int(math.Floor(width / m.cell(style)))
	if limit < 1 {
		return []string{text}
	}

	w := wordwrap.NewWriter(limit)
	w.Breakpoints = nil
	_, _ = w.Write([]byte(text))
	_ = w.Close()

	var lines []string
	for _, line := range strings.Split(wrap.String(w.String(), limit), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// Error always returns nil; fixed-width measurement cannot fail
func (m *FixedWidthMeasurer) Error() error {
	return nil
}

// WrapWords greedily packs the words of text into lines no wider than width
// as reported by measure. A word wider than width on its own is broken into
// the longest rune prefixes that fit. It is the building block for measurers
// backed by real font metrics.
func WrapWords(text string, width float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		if current != "" {
			candidate := current + " " + word
			if measure(candidate) <= width {
				current = candidate
				continue
			}
			lines = append(lines, current)
		}
		pieces := breakWord(word, width, measure)
		lines = append(lines, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
	}
	return append(lines, current)
}

// breakWord splits word into runs that each fit width. Every run holds at
// least one rune, so a single glyph wider than width still makes progress.
func breakWord(word string, width float64, measure func(string) float64) []string {
	if measure(word) <= width {
		return []string{word}
	}

	runes := []rune(word)
	var pieces []string
	for start := 0; start < len(runes); {
		end := start + 1
		for end < len(runes) && measure(string(runes[start:end+1])) <= width {
			end++
		}
		pieces = append(pieces, string(runes[start:end]))
		start = end
	}
	return pieces
}
