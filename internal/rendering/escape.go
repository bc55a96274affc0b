package rendering

import "strings"

// EscapeCoreFont replaces characters the cp1252-encoded core fonts cannot
// show with the closest character they can. Everything else passes through
// unchanged for the font translator to encode.
func EscapeCoreFont(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '●', '▪', '◦', '‣', '∙', '⁃', '■', '□', '▸', '►':
			result.WriteRune('•')
		case '‐', '‑', '‒', '−':
			result.WriteRune('-')
		case '→', '⇒', '⟶':
			result.WriteString("->")
		case '←', '⇐':
			result.WriteString("<-")
		case '≥':
			result.WriteString(">=")
		case '≤':
			result.WriteString("<=")
		case '≈':
			result.WriteRune('~')
		case '✓', '✔', '★', '☆':
			result.WriteRune('*')
		case '\u00a0', '\u2002', '\u2003', '\u2009', '\u202f', '\t':
			result.WriteRune(' ')
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			// zero width
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
