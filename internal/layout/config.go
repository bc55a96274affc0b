package layout

import "fmt"

// Config holds the page geometry and typographic constants used during layout.
// Units are the document's physical units (millimetres for the default A4
// page); font sizes are in points.
type Config struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64 // distance from the page bottom where breaks kick in

	ContactSeparator string

	Name     NameStyle
	Contact  ContactStyle
	Section  SectionStyle
	Sub      SubsectionStyle
	Job      JobStyle
	Bullet   BulletStyle
	Para     ParagraphStyle
	BlankGap float64
}

// NameStyle configures the name line
type NameStyle struct {
	Size        float64
	SpaceNeeded float64
	Advance     float64
}

// ContactStyle configures the contact line and the divider below it
type ContactStyle struct {
	Size          float64
	Advance       float64
	RuleThickness float64
	RuleAdvance   float64
}

// SectionStyle configures section headings
type SectionStyle struct {
	Size          float64
	SpaceNeeded   float64
	Lead          float64
	Advance       float64
	RuleDY        float64
	RuleThickness float64
}

// SubsectionStyle configures "Label: content" lines
type SubsectionStyle struct {
	LabelSize      float64
	ContentSize    float64
	SpaceNeeded    float64
	ContinueNeeded float64
	Advance        float64
	LabelGap       float64 // between label and inline content
	WrapAllowance  float64 // subtracted from the remaining width when wrapping
}

// JobStyle configures job-title/date lines
type JobStyle struct {
	TitleSize   float64
	DateSize    float64
	SpaceNeeded float64
	Lead        float64
	WrapAdvance float64
	Advance     float64
	DateGap     float64
}

// BulletStyle configures bullet list items
type BulletStyle struct {
	Size           float64
	SpaceNeeded    float64
	ContinueNeeded float64
	GlyphOffset    float64
	TextOffset     float64
	WrapAllowance  float64
	WrapAdvance    float64
	Advance        float64
}

// ParagraphStyle configures plain paragraphs
type ParagraphStyle struct {
	Size           float64
	SpaceNeeded    float64
	ContinueNeeded float64
	Advance        float64
}

// DefaultConfig returns A4 portrait geometry with 18mm margins
func DefaultConfig() Config {
	return Config{
		PageWidth:        210,
		PageHeight:       297,
		MarginLeft:       18,
		MarginRight:      18,
		MarginTop:        18,
		MarginBottom:     20,
		ContactSeparator: "  •  ",
		Name: NameStyle{
			Size:        24,
			SpaceNeeded: 15,
			Advance:     10,
		},
		Contact: ContactStyle{
			Size:          9,
			Advance:       8,
			RuleThickness: 0.8,
			RuleAdvance:   8,
		},
		Section: SectionStyle{
			Size:          13,
			SpaceNeeded:   20,
			Lead:          4,
			Advance:       8,
			RuleDY:        1,
			RuleThickness: 0.6,
		},
		Sub: SubsectionStyle{
			LabelSize:      10,
			ContentSize:    9.5,
			SpaceNeeded:    10,
			ContinueNeeded: 6,
			Advance:        5,
			LabelGap:       1,
			WrapAllowance:  2,
		},
		Job: JobStyle{
			TitleSize:   11,
			DateSize:    10,
			SpaceNeeded: 15,
			Lead:        2,
			WrapAdvance: 5,
			Advance:     6,
			DateGap:     5,
		},
		Bullet: BulletStyle{
			Size:           9.5,
			SpaceNeeded:    8,
			ContinueNeeded: 6,
			GlyphOffset:    3,
			TextOffset:     8,
			WrapAllowance:  10,
			WrapAdvance:    4.5,
			Advance:        5,
		},
		Para: ParagraphStyle{
			Size:           10,
			SpaceNeeded:    8,
			ContinueNeeded: 6,
			Advance:        5,
		},
		BlankGap: 2,
	}
}

// ColumnWidth is the usable width between the left and right margins
func (c Config) ColumnWidth() float64 {
	return c.PageWidth - c.MarginLeft - c.MarginRight
}

// BreakLimit is the y position beyond which content moves to a new page
func (c Config) BreakLimit() float64 {
	return c.PageHeight - c.MarginBottom
}

// Validate checks the geometry leaves room for content
func (c Config) Validate() error {
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("page size must be positive (got %.1fx%.1f)", c.PageWidth, c.PageHeight)
	}
	if c.MarginLeft < 0 || c.MarginRight < 0 || c.MarginTop < 0 || c.MarginBottom < 0 {
		return fmt.Errorf("margins must be non-negative")
	}
	if c.ColumnWidth() <= c.Bullet.WrapAllowance {
		return fmt.Errorf("column width %.1f is too narrow", c.ColumnWidth())
	}
	if c.BreakLimit() <= c.MarginTop+c.Section.SpaceNeeded {
		return fmt.Errorf("page height %.1f leaves no room below the top margin", c.PageHeight)
	}
	return nil
}
