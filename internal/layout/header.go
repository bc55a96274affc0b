package layout

import (
	"regexp"
	"strings"
)

var (
	emailPattern       = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern       = regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinURLPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w-]+`)
	linkedinTagPattern = regexp.MustCompile(`(?i)LinkedIn:\s*([\w-]+)`)
	githubPattern      = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w-]+`)
	namePattern        = regexp.MustCompile(`(?i)^[A-Z][a-z]+\s+[A-Z][a-z]+$`)
)

// ExtractHeader finds the name and contact lines at the top of raw. The first
// non-blank line is the name. A contact line (containing "@" or "email") is
// looked for until body content starts; header-like lines such as a bare
// profile link are passed over on the way.
func ExtractHeader(raw RawDocument, separator string) HeaderBlock {
	h := HeaderBlock{NameLine: -1, ContactLine: -1, EndLine: -1}

	for i := 0; i < raw.Len(); i++ {
		line := strings.TrimSpace(raw.Line(i))
		if line == "" {
			continue
		}
		if !h.HasName() {
			h.Name = line
			h.NameLine = i
			h.EndLine = i
			continue
		}
		if isContactLine(line) {
			h.ContactLine = i
			h.EndLine = i
			h.ContactParts = ExtractContactParts(line)
			if len(h.ContactParts) > 0 {
				h.Contact = strings.Join(h.ContactParts, separator)
			} else {
				h.Contact = line
			}
			break
		}
		if !isHeaderLike(line) {
			break
		}
		h.EndLine = i
	}
	return h
}

// ExtractContactParts pulls email, phone and profile links out of a contact
// line, in that order. Missing parts are skipped and repeats dropped.
func ExtractContactParts(line string) []string {
	var parts []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		for _, p := range parts {
			if strings.EqualFold(p, s) {
				return
			}
		}
		parts = append(parts, s)
	}

	email := emailPattern.FindString(line)
	add(email)

	// Digits inside the email address must not be read as a phone number.
	rest := line
	if email != "" {
		rest = strings.Replace(rest, email, " ", 1)
	}
	add(phonePattern.FindString(rest))

	if m := linkedinURLPattern.FindString(line); m != "" {
		add(m)
	} else if m := linkedinTagPattern.FindStringSubmatch(line); m != nil {
		add(m[1])
	}
	add(githubPattern.FindString(line))
	return parts
}

func isContactLine(line string) bool {
	return strings.Contains(line, "@") || strings.Contains(strings.ToLower(line), "email")
}

// isHeaderLike matches lines that belong to a name/contact header rather than
// the body: contact details, profile links and bare two-word names.
func isHeaderLike(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(line, "@") ||
		namePattern.MatchString(line) ||
		strings.Contains(lower, "email") ||
		strings.Contains(lower, "git") ||
		strings.Contains(lower, "linkedin")
}

// bodyScanner decides which lines belong to the header so the body pass never
// emits them again. Once the first non-header line is seen, or the scan moves
// past the last line the header consumed, the header is processed for good.
type bodyScanner struct {
	header    HeaderBlock
	processed bool
}

func newBodyScanner(h HeaderBlock) *bodyScanner {
	return &bodyScanner{header: h}
}

// skip reports whether the non-blank line at index i is header content
func (s *bodyScanner) skip(i int, line string) bool {
	if s.processed {
		return false
	}
	if i <= s.header.EndLine && (i == s.header.NameLine || i == s.header.ContactLine || isHeaderLike(line)) {
		return true
	}
	s.processed = true
	return false
}
