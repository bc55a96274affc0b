// Package layout infers structure from plain-text resumes and cover letters and
// lays them out as a paginated document description.
package layout

import "strings"

// RawDocument is the unparsed input text split into lines
type RawDocument struct {
	lines []string
}

// NewRawDocument splits text into lines, normalizing CRLF and CR line endings
func NewRawDocument(text string) RawDocument {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return RawDocument{lines: strings.Split(text, "\n")}
}

// Lines returns a copy of the document lines
func (d RawDocument) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Len returns the number of lines
func (d RawDocument) Len() int {
	return len(d.lines)
}

// Line returns the line at index i
func (d RawDocument) Line(i int) string {
	return d.lines[i]
}

// LineRole is the semantic role assigned to a line of input
type LineRole int

const (
	RoleBlank LineRole = iota
	RoleSectionHeader
	RoleSubsection
	RoleJobTitleDate
	RoleBullet
	RoleParagraph
	// RoleName and RoleContact tag header items in the emitted document only;
	// Classify never returns them.
	RoleName
	RoleContact
)

var roleNames = map[LineRole]string{
	RoleBlank:         "blank",
	RoleSectionHeader: "section_header",
	RoleSubsection:    "subsection",
	RoleJobTitleDate:  "job_title_date",
	RoleBullet:        "bullet",
	RoleParagraph:     "paragraph",
	RoleName:          "name",
	RoleContact:       "contact",
}

func (r LineRole) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the role by name so JSON output stays readable
func (r LineRole) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Align controls how a fragment's x position is resolved
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// MarshalText encodes the alignment by name
func (a Align) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Style is the font treatment of a piece of text
type Style struct {
	Size float64 `json:"size"`
	Bold bool    `json:"bold"`
}

// StyledFragment is a styled piece of text ready for positioning
type StyledFragment struct {
	Text   string  `json:"text"`
	Style  Style   `json:"style"`
	Align  Align   `json:"align"`
	Offset float64 `json:"offset,omitempty"` // from the left margin, AlignLeft only
	Indent int     `json:"indent,omitempty"` // 0 or 1
	Width  float64 `json:"width"`
}

// Rule is a horizontal line drawn relative to a block line's baseline
type Rule struct {
	Offset    float64 // from the left margin
	Length    float64
	DY        float64 // from the baseline
	Thickness float64
}

// HeaderBlock is the name and contact region extracted once per document
type HeaderBlock struct {
	Name         string   `json:"name"`
	ContactParts []string `json:"contact_parts,omitempty"`
	Contact      string   `json:"contact,omitempty"`
	NameLine     int      `json:"name_line"`
	ContactLine  int      `json:"contact_line"`
	EndLine      int      `json:"end_line"` // last line index the header consumed
}

// HasName reports whether a name line was found
func (h HeaderBlock) HasName() bool {
	return h.NameLine >= 0
}

// HasContact reports whether a contact line was found
func (h HeaderBlock) HasContact() bool {
	return h.ContactLine >= 0
}

// Cursor is the vertical position state threaded through pagination
type Cursor struct {
	Y    float64
	Page int
}
