package layout

// ItemKind distinguishes text from drawn rules
type ItemKind int

const (
	ItemText ItemKind = iota
	ItemRule
)

func (k ItemKind) String() string {
	if k == ItemRule {
		return "rule"
	}
	return "text"
}

// MarshalText encodes the kind by name
func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Item is a positioned element on a page. Text items carry a fragment drawn
// at (X, Y) on its baseline; rule items run from X to X2 at Y.
type Item struct {
	Kind      ItemKind        `json:"kind"`
	Role      LineRole        `json:"role"`
	Fragment  *StyledFragment `json:"fragment,omitempty"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	X2        float64         `json:"x2,omitempty"`
	Thickness float64         `json:"thickness,omitempty"`
}

// Page holds the items placed on one page
type Page struct {
	Number int    `json:"number"`
	Items  []Item `json:"items"`
}

// Document is the finished, paginated layout of one input text
type Document struct {
	Filename   string      `json:"filename"`
	Kind       string      `json:"kind,omitempty"`
	PageWidth  float64     `json:"page_width"`
	PageHeight float64     `json:"page_height"`
	Header     HeaderBlock `json:"header"`
	Pages      []Page      `json:"pages"`
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Fragments returns every text fragment in emission order
func (d *Document) Fragments() []StyledFragment {
	var out []StyledFragment
	for _, p := range d.Pages {
		for _, it := range p.Items {
			if it.Kind == ItemText && it.Fragment != nil {
				out = append(out, *it.Fragment)
			}
		}
	}
	return out
}

// Headings returns the rendered section heading texts in order
func (d *Document) Headings() []string {
	var out []string
	for _, p := range d.Pages {
		for _, it := range p.Items {
			if it.Kind == ItemText && it.Role == RoleSectionHeader {
				out = append(out, it.Fragment.Text)
			}
		}
	}
	return out
}

// Emitter resolves fragment positions and accumulates them into pages
type Emitter struct {
	cfg   Config
	pages []Page
}

// NewEmitter starts a document with one empty page
func NewEmitter(cfg Config) *Emitter {
	return &Emitter{cfg: cfg, pages: []Page{{Number: 1}}}
}

// NewPage opens a fresh page
func (e *Emitter) NewPage() {
	e.pages = append(e.pages, Page{Number: len(e.pages) + 1})
}

func (e *Emitter) current() *Page {
	return &e.pages[len(e.pages)-1]
}

// resolveX turns a fragment's alignment into an absolute x coordinate
func (e *Emitter) resolveX(f StyledFragment) float64 {
	switch f.Align {
	case AlignCenter:
		return (e.cfg.PageWidth - f.Width) / 2
	case AlignRight:
		return e.cfg.PageWidth - e.cfg.MarginRight - f.Width
	default:
		return e.cfg.MarginLeft + f.Offset
	}
}

// Text places a fragment on the current page at baseline y
func (e *Emitter) Text(role LineRole, f StyledFragment, y float64) {
	frag := f
	e.current().Items = append(e.current().Items, Item{
		Kind:     ItemText,
		Role:     role,
		Fragment: &frag,
		X:        e.resolveX(f),
		Y:        y,
	})
}

// Rule draws a horizontal line on the current page
func (e *Emitter) Rule(role LineRole, x1, x2, y, thickness float64) {
	e.current().Items = append(e.current().Items, Item{
		Kind:      ItemRule,
		Role:      role,
		X:         x1,
		X2:        x2,
		Y:         y,
		Thickness: thickness,
	})
}

// Finish returns the accumulated document
func (e *Emitter) Finish(filename string, header HeaderBlock) *Document {
	return &Document{
		Filename:   filename,
		PageWidth:  e.cfg.PageWidth,
		PageHeight: e.cfg.PageHeight,
		Header:     header,
		Pages:      e.pages,
	}
}
