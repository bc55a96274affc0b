package rendering

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jonathan/resume-pdf/internal/layout"
)

// DefaultFontFamily is the core font used when none is configured
const DefaultFontFamily = "Helvetica"

var coreFonts = map[string]string{
	"helvetica": "Helvetica",
	"arial":     "Arial",
	"times":     "Times",
	"courier":   "Courier",
}

// CoreFont returns the canonical name of a built-in PDF font family, or
// false if family is not one.
func CoreFont(family string) (string, bool) {
	name, ok := coreFonts[strings.ToLower(strings.TrimSpace(family))]
	return name, ok
}

// Options controls the font and document metadata
type Options struct {
	FontFamily string
	Title      string
	Author     string
	Compress   bool
	MaxPages   int       // 0 means unlimited
	CreatedAt  time.Time // zero means now
}

// PDF is a single fpdf document. It measures text for the layout engine with
// the same font metrics it later draws with, so a PDF must not be shared
// between concurrent layouts.
type PDF struct {
	cfg    layout.Config
	doc    *fpdf.Fpdf
	tr     func(string) string
	family string
	drawn  bool
}

// NewPDF creates an empty document sized to cfg
func NewPDF(cfg layout.Config, opts Options) (*PDF, error) {
	family := DefaultFontFamily
	if opts.FontFamily != "" {
		name, ok := CoreFont(opts.FontFamily)
		if !ok {
			return nil, &RenderError{Message: fmt.Sprintf("unsupported font family %q", opts.FontFamily)}
		}
		family = name
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	doc.SetMargins(cfg.MarginLeft, cfg.MarginTop, cfg.MarginRight)
	doc.SetAutoPageBreak(false, cfg.MarginBottom)
	doc.SetCompression(opts.Compress)
	doc.SetCreator("resume-pdf", true)
	if opts.Title != "" {
		doc.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		doc.SetAuthor(opts.Author, true)
	}
	if !opts.CreatedAt.IsZero() {
		doc.SetCreationDate(opts.CreatedAt)
		doc.SetModificationDate(opts.CreatedAt)
	}

	return &PDF{
		cfg:    cfg,
		doc:    doc,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
		family: family,
	}, nil
}

func (p *PDF) setFont(style layout.Style) {
	weight := ""
	if style.Bold {
		weight = "B"
	}
	p.doc.SetFont(p.family, weight, style.Size)
}

// encode converts UTF-8 text to the cp1252 bytes the core fonts expect
func (p *PDF) encode(text string) string {
	return p.tr(EscapeCoreFont(text))
}

// TextWidth returns the width of text in millimetres
func (p *PDF) TextWidth(text string, style layout.Style) float64 {
	p.setFont(style)
	return p.doc.GetStringWidth(p.encode(text))
}

// SplitText wraps text on word boundaries to fit width
func (p *PDF) SplitText(text string, width float64, style layout.Style) []string {
	p.setFont(style)
	return layout.WrapWords(text, width, func(s string) float64 {
		return p.doc.GetStringWidth(p.encode(s))
	})
}

// Error returns the first error recorded by the underlying document
func (p *PDF) Error() error {
	return p.doc.Error()
}

// Draw paints every page of doc. It may be called once per PDF.
func (p *PDF) Draw(doc *layout.Document) error {
	if p.drawn {
		return &RenderError{Message: "document already drawn"}
	}
	p.drawn = true

	for _, page := range doc.Pages {
		p.doc.AddPage()
		for _, it := range page.Items {
			switch it.Kind {
			case layout.ItemText:
				if it.Fragment == nil {
					continue
				}
				p.setFont(it.Fragment.Style)
				p.doc.Text(it.X, it.Y, p.encode(it.Fragment.Text))
			case layout.ItemRule:
				p.doc.SetLineWidth(it.Thickness)
				p.doc.Line(it.X, it.Y, it.X2, it.Y)
			}
		}
	}

	if err := p.doc.Error(); err != nil {
		return &RenderError{Message: "failed to draw document", Cause: err}
	}
	return nil
}

// PageCount returns the number of pages drawn so far
func (p *PDF) PageCount() int {
	return p.doc.PageCount()
}

// Output writes the finished PDF to w
func (p *PDF) Output(w io.Writer) error {
	if err := p.doc.Output(w); err != nil {
		return &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return nil
}
