package layout

import (
	"regexp"
	"strings"
	"unicode"
)

// sectionLexicon lists headings recognized regardless of casing
var sectionLexicon = map[string]bool{
	"SUMMARY":         true,
	"SKILLS":          true,
	"WORK EXPERIENCE": true,
	"EXPERIENCE":      true,
	"CERTIFICATIONS":  true,
	"CERTIFICATION":   true,
	"EDUCATION":       true,
	"PROJECTS":        true,
}

var (
	fourDigitRun   = regexp.MustCompile(`\d{4}`)
	subsectionLine = regexp.MustCompile(`^[A-Z][a-zA-Z\s&]+:\s*.+`)
	jobTitleLine   = regexp.MustCompile(`^[A-Z][a-zA-Z\s,]+.*\(.*(\d{4}|(?i:present))`)
)

// ClassRule is one named predicate in the classification order
type ClassRule struct {
	Name  string
	Role  LineRole
	Match func(line string) bool
}

// classRules is evaluated top to bottom and the first match wins. The order
// matters because the categories overlap.
var classRules = []ClassRule{
	{Name: "section_header", Role: RoleSectionHeader, Match: isSectionHeader},
	{Name: "subsection", Role: RoleSubsection, Match: isSubsection},
	{Name: "job_title_date", Role: RoleJobTitleDate, Match: isJobTitleDate},
	{Name: "bullet", Role: RoleBullet, Match: isBullet},
}

// Rules returns the ordered classification rules
func Rules() []ClassRule {
	out := make([]ClassRule, len(classRules))
	copy(out, classRules)
	return out
}

// Classify assigns a role to a single line. Blank lines yield RoleBlank and
// anything no rule claims is a paragraph.
func Classify(line string) LineRole {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return RoleBlank
	}
	for _, r := range classRules {
		if r.Match(trimmed) {
			return r.Role
		}
	}
	return RoleParagraph
}

// isSectionHeader matches lexicon headings, or all-caps lines that are not
// table rows, bullets or dates.
func isSectionHeader(line string) bool {
	upper := strings.ToUpper(line)
	if sectionLexicon[upper] {
		return true
	}
	return line == upper &&
		hasUpperLetter(line) &&
		len([]rune(line)) > 3 &&
		!strings.Contains(line, "|") &&
		!strings.Contains(line, "•") &&
		!fourDigitRun.MatchString(line)
}

func hasUpperLetter(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func isSubsection(line string) bool {
	if !subsectionLine.MatchString(line) {
		return false
	}
	label, _, _ := strings.Cut(line, ":")
	return len(label) < 50
}

func isJobTitleDate(line string) bool {
	return jobTitleLine.MatchString(line)
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-")
}

// ClassifiedLine is a line of input together with its assigned role
type ClassifiedLine struct {
	Index  int      `json:"index"`
	Text   string   `json:"text"`
	Role   LineRole `json:"role"`
	Header bool     `json:"header,omitempty"` // consumed by the header block
}

// ClassifyDocument classifies every line of raw, marking lines consumed by the
// header block instead of assigning them a body role.
func ClassifyDocument(raw RawDocument) []ClassifiedLine {
	header := ExtractHeader(raw, DefaultConfig().ContactSeparator)
	scan := newBodyScanner(header)

	out := make([]ClassifiedLine, 0, raw.Len())
	for i := 0; i < raw.Len(); i++ {
		trimmed := strings.TrimSpace(raw.Line(i))
		cl := ClassifiedLine{Index: i, Text: trimmed}
		switch {
		case trimmed == "":
			cl.Role = RoleBlank
		case scan.skip(i, trimmed):
			cl.Header = true
			cl.Role = headerRole(header, i)
		default:
			cl.Role = Classify(trimmed)
		}
		out = append(out, cl)
	}
	return out
}

func headerRole(h HeaderBlock, i int) LineRole {
	if i == h.NameLine {
		return RoleName
	}
	return RoleContact
}
