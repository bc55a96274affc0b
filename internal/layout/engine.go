package layout

import (
	"fmt"
	"strings"
)

// Engine lays out raw documents. An Engine holds no per-document state, but
// its Measurer may; give each concurrent layout its own Engine.
type Engine struct {
	cfg       Config
	m         Measurer
	formatter *Formatter
	pag       Paginator
}

// NewEngine returns an Engine for cfg that measures text with m
func NewEngine(cfg Config, m Measurer) (*Engine, error) {
	if m == nil {
		return nil, fmt.Errorf("layout: measurer is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("layout: invalid config: %w", err)
	}
	return &Engine{
		cfg:       cfg,
		m:         m,
		formatter: NewFormatter(cfg, m),
		pag:       NewPaginator(cfg),
	}, nil
}

// Config returns the geometry the engine lays out against
func (e *Engine) Config() Config {
	return e.cfg
}

// layoutState is the accumulator threaded through the line-by-line reduction
type layoutState struct {
	cursor Cursor
	out    *Emitter
}

// Layout classifies and places every line of raw and returns the paginated
// document. Degenerate input never fails; only measurer errors are returned.
func (e *Engine) Layout(raw RawDocument, filename string) (*Document, error) {
	st := layoutState{cursor: e.pag.Start(), out: NewEmitter(e.cfg)}

	header := ExtractHeader(raw, e.cfg.ContactSeparator)
	st = e.placeHeader(st, header)
	if err := e.m.Error(); err != nil {
		return nil, &LayoutError{Line: -1, Message: "header", Cause: err}
	}

	scan := newBodyScanner(header)
	for i := 0; i < raw.Len(); i++ {
		trimmed := strings.TrimSpace(raw.Line(i))
		if trimmed == "" {
			st.cursor = e.pag.Advance(st.cursor, e.cfg.BlankGap)
			continue
		}
		if scan.skip(i, trimmed) {
			continue
		}
		role := Classify(trimmed)
		st = e.place(st, e.formatter.Format(role, trimmed))
		if err := e.m.Error(); err != nil {
			return nil, &LayoutError{Line: i, Message: role.String(), Cause: err}
		}
	}

	return st.out.Finish(filename, header), nil
}

// placeHeader emits the centered name and, when present, the contact line
// and the divider under it.
func (e *Engine) placeHeader(st layoutState, h HeaderBlock) layoutState {
	if !h.HasName() {
		return st
	}
	ns := e.cfg.Name
	nameStyle := Style{Size: ns.Size, Bold: true}
	name := strings.ToUpper(h.Name)
	st = e.place(st, Block{
		Role: RoleName,
		Lines: []BlockLine{{
			SpaceNeeded: ns.SpaceNeeded,
			Fragments: []StyledFragment{{
				Text:  name,
				Style: nameStyle,
				Align: AlignCenter,
				Width: e.m.TextWidth(name, nameStyle),
			}},
			Advance: ns.Advance,
		}},
	})

	if !h.HasContact() {
		return st
	}
	cs := e.cfg.Contact
	contactStyle := Style{Size: cs.Size}
	st = e.place(st, Block{
		Role: RoleContact,
		Lines: []BlockLine{{
			Fragments: []StyledFragment{{
				Text:  h.Contact,
				Style: contactStyle,
				Align: AlignCenter,
				Width: e.m.TextWidth(h.Contact, contactStyle),
			}},
			Advance: cs.Advance,
		}},
	})
	st.out.Rule(RoleContact, e.cfg.MarginLeft, e.cfg.PageWidth-e.cfg.MarginRight, st.cursor.Y, cs.RuleThickness)
	st.cursor = e.pag.Advance(st.cursor, cs.RuleAdvance)
	return st
}

// place reserves room for each line of b, opening pages as needed, emits its
// fragments and rules, and advances the cursor.
func (e *Engine) place(st layoutState, b Block) layoutState {
	for i, line := range b.Lines {
		next, broke := e.pag.Reserve(st.cursor, line.SpaceNeeded)
		if broke {
			st.out.NewPage()
		}
		st.cursor = next
		if i == 0 {
			st.cursor = e.pag.Advance(st.cursor, b.Lead)
		}

		y := st.cursor.Y
		for _, f := range line.Fragments {
			st.out.Text(b.Role, f, y)
		}
		for _, r := range line.Rules {
			x := e.cfg.MarginLeft + r.Offset
			st.out.Rule(b.Role, x, x+r.Length, y+r.DY, r.Thickness)
		}
		st.cursor = e.pag.Advance(st.cursor, line.Advance)
	}
	return st
}
