package layout

import (
	"regexp"
	"strings"
)

// datePattern matches a trailing "(2021 - Present)" style group. Month names
// in front of either year are allowed.
var datePattern = regexp.MustCompile(`(?i)\(((?:[a-z]{3,9}\.?\s+)?\d{4}\s*[-–—]\s*(?:(?:[a-z]{3,9}\.?\s+)?\d{4}|present))\)\s*$`)

// BlockLine is one baseline worth of output: fragments sharing a y position,
// the rules drawn relative to it, and how far the cursor moves afterwards.
type BlockLine struct {
	SpaceNeeded float64 // requested before placing this line; 0 skips the check
	Fragments   []StyledFragment
	Rules       []Rule
	Advance     float64
}

// Block is the formatted output for one input line
type Block struct {
	Role  LineRole
	Lead  float64 // padding added after the break check, before the first line
	Lines []BlockLine
	Gap   float64 // blank lines only
}

// Formatter turns classified lines into styled blocks
type Formatter struct {
	cfg Config
	m   Measurer
}

// NewFormatter creates a Formatter for the given geometry and measurer
func NewFormatter(cfg Config, m Measurer) *Formatter {
	return &Formatter{cfg: cfg, m: m}
}

// Format produces the block for a trimmed line with the given role
func (f *Formatter) Format(role LineRole, line string) Block {
	switch role {
	case RoleSectionHeader:
		return f.sectionHeader(line)
	case RoleSubsection:
		return f.subsection(line)
	case RoleJobTitleDate:
		return f.jobTitle(line)
	case RoleBullet:
		return f.bullet(line)
	case RoleParagraph:
		return f.paragraph(line)
	default:
		return Block{Role: RoleBlank, Gap: f.cfg.BlankGap}
	}
}

func (f *Formatter) fragment(text string, style Style, align Align, offset float64) StyledFragment {
	return StyledFragment{
		Text:   text,
		Style:  style,
		Align:  align,
		Offset: offset,
		Width:  f.m.TextWidth(text, style),
	}
}

func (f *Formatter) sectionHeader(line string) Block {
	s := f.cfg.Section
	style := Style{Size: s.Size, Bold: true}
	frag := f.fragment(strings.ToUpper(line), style, AlignLeft, 0)
	return Block{
		Role: RoleSectionHeader,
		Lead: s.Lead,
		Lines: []BlockLine{{
			SpaceNeeded: s.SpaceNeeded,
			Fragments:   []StyledFragment{frag},
			Rules: []Rule{{
				Length:    frag.Width,
				DY:        s.RuleDY,
				Thickness: s.RuleThickness,
			}},
			Advance: s.Advance,
		}},
	}
}

func (f *Formatter) subsection(line string) Block {
	s := f.cfg.Sub
	colon := strings.Index(line, ":")
	if colon < 0 {
		return f.paragraph(line)
	}
	label := line[:colon+1]
	content := strings.TrimSpace(line[colon+1:])

	labelFrag := f.fragment(label, Style{Size: s.LabelSize, Bold: true}, AlignLeft, 0)
	contentStyle := Style{Size: s.ContentSize}
	wrapped := f.m.SplitText(content, f.cfg.ColumnWidth()-labelFrag.Width-s.WrapAllowance, contentStyle)

	lines := make([]BlockLine, 0, len(wrapped))
	lines = append(lines, BlockLine{
		SpaceNeeded: s.SpaceNeeded,
		Fragments: []StyledFragment{
			labelFrag,
			f.fragment(wrapped[0], contentStyle, AlignLeft, labelFrag.Width+s.LabelGap),
		},
		Advance: s.Advance,
	})
	for _, text := range wrapped[1:] {
		lines = append(lines, BlockLine{
			SpaceNeeded: s.ContinueNeeded,
			Fragments:   []StyledFragment{f.fragment(text, contentStyle, AlignLeft, 0)},
			Advance:     s.Advance,
		})
	}
	return Block{Role: RoleSubsection, Lines: lines}
}

// SplitJobDate separates the trailing date group from the title, employer and
// location in front of it. ok is false when the line has no such group.
func SplitJobDate(line string) (title, date string, ok bool) {
	loc := datePattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, "", false
	}
	title = strings.TrimSpace(line[:loc[0]])
	date = "(" + line[loc[2]:loc[3]] + ")"
	return title, date, true
}

func (f *Formatter) jobTitle(line string) Block {
	s := f.cfg.Job
	titleStyle := Style{Size: s.TitleSize, Bold: true}

	title, date, ok := SplitJobDate(line)
	if !ok {
		return Block{
			Role: RoleJobTitleDate,
			Lead: s.Lead,
			Lines: []BlockLine{{
				SpaceNeeded: s.SpaceNeeded,
				Fragments:   []StyledFragment{f.fragment(line, titleStyle, AlignLeft, 0)},
				Advance:     s.Advance,
			}},
		}
	}

	dateFrag := f.fragment(date, Style{Size: s.DateSize}, AlignRight, 0)
	maxTitle := f.cfg.ColumnWidth() - dateFrag.Width - s.DateGap
	wrapped := f.m.SplitText(title, maxTitle, titleStyle)

	lines := make([]BlockLine, 0, len(wrapped))
	first := BlockLine{
		SpaceNeeded: s.SpaceNeeded,
		Fragments:   []StyledFragment{f.fragment(wrapped[0], titleStyle, AlignLeft, 0), dateFrag},
		Advance:     s.Advance,
	}
	if len(wrapped) > 1 {
		first.Advance = s.WrapAdvance
	}
	lines = append(lines, first)
	for i, text := range wrapped[1:] {
		adv := s.WrapAdvance
		if i == len(wrapped)-2 {
			adv += s.Advance
		}
		lines = append(lines, BlockLine{
			Fragments: []StyledFragment{f.fragment(text, titleStyle, AlignLeft, 0)},
			Advance:   adv,
		})
	}
	return Block{Role: RoleJobTitleDate, Lead: s.Lead, Lines: lines}
}

func (f *Formatter) bullet(line string) Block {
	s := f.cfg.Bullet
	style := Style{Size: s.Size}
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "•"), "-"))
	wrapped := f.m.SplitText(text, f.cfg.ColumnWidth()-s.WrapAllowance, style)

	lines := make([]BlockLine, 0, len(wrapped))
	for i, t := range wrapped {
		body := f.fragment(t, style, AlignLeft, s.TextOffset)
		body.Indent = 1
		bl := BlockLine{
			SpaceNeeded: s.ContinueNeeded,
			Fragments:   []StyledFragment{body},
			Advance:     s.WrapAdvance,
		}
		if i == 0 {
			bl.SpaceNeeded = s.SpaceNeeded
			bl.Fragments = append([]StyledFragment{f.fragment("•", style, AlignLeft, s.GlyphOffset)}, body)
		}
		if i == len(wrapped)-1 {
			bl.Advance = s.Advance
		}
		lines = append(lines, bl)
	}
	return Block{Role: RoleBullet, Lines: lines}
}

func (f *Formatter) paragraph(line string) Block {
	s := f.cfg.Para
	style := Style{Size: s.Size}
	wrapped := f.m.SplitText(line, f.cfg.ColumnWidth(), style)

	lines := make([]BlockLine, 0, len(wrapped)+1)
	for i, t := range wrapped {
		need := s.ContinueNeeded
		if i == 0 {
			// The paragraph as a whole asks for more room than each of its lines.
			need = max(s.SpaceNeeded, s.ContinueNeeded)
		}
		lines = append(lines, BlockLine{
			SpaceNeeded: need,
			Fragments:   []StyledFragment{f.fragment(t, style, AlignLeft, 0)},
			Advance:     s.Advance,
		})
	}
	return Block{Role: RoleParagraph, Lines: lines}
}
