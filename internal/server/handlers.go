package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-pdf/internal/ingestion"
	"github.com/jonathan/resume-pdf/internal/layout"
	"github.com/jonathan/resume-pdf/internal/rendering"
	"github.com/jonathan/resume-pdf/internal/schemas"
	"github.com/jonathan/resume-pdf/internal/types"
	embedded "github.com/jonathan/resume-pdf/schemas"
)

// renderInput is a decoded, validated and ingested request
type renderInput struct {
	req  types.RenderRequest
	text string
}

// decodeRequest reads the body, checks it against the request schema and the
// struct tags, and converts the text from its declared format.
func (s *Server) decodeRequest(r *http.Request) (*renderInput, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &ErrBodyTooLarge{Limit: maxErr.Limit}
		}
		return nil, &ErrValidation{Field: "body", Message: "failed to read request body"}
	}

	var req types.RenderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := schemas.Validate(embedded.RenderRequest, body); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	format, err := ingestion.ParseFormat(req.Format)
	if err != nil {
		return nil, &ErrValidation{Field: "format", Message: err.Error()}
	}
	text, err := ingestion.Ingest(r.Context(), req.Text, format)
	if err != nil {
		return nil, err
	}
	return &renderInput{req: req, text: text}, nil
}

func (in *renderInput) toInput() rendering.Input {
	return rendering.Input{
		Text:     in.text,
		Filename: in.req.OutputFilename(),
		Kind:     string(in.req.DocumentKind()),
	}
}

// handleRender lays out and draws the request text and returns the PDF as
// an attachment.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ri := in.toInput()
	var buf bytes.Buffer
	doc, err := rendering.Render(r.Context(), ri, s.layout, s.render.RenderOptions(documentTitle(ri.Filename)), &buf)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": ri.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Page-Count", strconv.Itoa(doc.PageCount()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[server] error writing PDF: %v", err)
	}
}

// handleLayout returns the positioned document without drawing it
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ri := in.toInput()
	doc, _, err := rendering.Layout(r.Context(), ri, s.layout, s.render.RenderOptions(documentTitle(ri.Filename)))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.NewLayoutResponse(doc))
}

// handleClassify returns the header block and the role of every line
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	raw := layout.NewRawDocument(in.text)
	s.jsonResponse(w, http.StatusOK, types.ClassifyResponse{
		Header: layout.ExtractHeader(raw, s.layout.ContactSeparator),
		Lines:  layout.ClassifyDocument(raw),
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.HealthResponse{Status: "ok", Version: s.version})
}

// documentTitle derives a PDF title from a download filename
func documentTitle(filename string) string {
	title := strings.TrimSuffix(filename, ".pdf")
	return strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(title))
}
