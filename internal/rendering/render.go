package rendering

import (
	"context"
	"io"
	"log"

	"github.com/jonathan/resume-pdf/internal/layout"
)

// Input is one text blob to render
type Input struct {
	Text     string
	Filename string
	Kind     string
}

// Layout lays out in against a fresh PDF's font metrics and returns both, so
// the caller can inspect the document before drawing it.
func Layout(ctx context.Context, in Input, cfg layout.Config, opts Options) (*layout.Document, *PDF, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	p, err := NewPDF(cfg, opts)
	if err != nil {
		return nil, nil, err
	}
	engine, err := layout.NewEngine(cfg, p)
	if err != nil {
		return nil, nil, &RenderError{Message: "failed to create layout engine", Cause: err}
	}

	doc, err := engine.Layout(layout.NewRawDocument(in.Text), in.Filename)
	if err != nil {
		return nil, nil, &RenderError{Message: "layout failed", Cause: err}
	}
	doc.Kind = in.Kind

	if opts.MaxPages > 0 && doc.PageCount() > opts.MaxPages {
		return doc, nil, &PageLimitError{Pages: doc.PageCount(), Limit: opts.MaxPages}
	}
	return doc, p, nil
}

// Render lays out in, draws it, and writes the PDF to w
func Render(ctx context.Context, in Input, cfg layout.Config, opts Options, w io.Writer) (*layout.Document, error) {
	doc, p, err := Layout(ctx, in, cfg, opts)
	if err != nil {
		return doc, err
	}
	if err := p.Draw(doc); err != nil {
		return doc, err
	}
	if err := ctx.Err(); err != nil {
		return doc, err
	}
	if err := p.Output(w); err != nil {
		return doc, err
	}

	log.Printf("[render] %s: %d page(s), %d heading(s)", in.Filename, doc.PageCount(), len(doc.Headings()))
	return doc, nil
}
