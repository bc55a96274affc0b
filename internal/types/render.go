// Package types provides the request and response types shared by the CLI and HTTP server.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-pdf/internal/layout"
)

// DocumentKind names what a rendered document is
type DocumentKind string

const (
	KindResume      DocumentKind = "resume"
	KindCoverLetter DocumentKind = "cover_letter"
)

// DefaultFilename returns the download name used when none is given
func (k DocumentKind) DefaultFilename() string {
	if k == KindCoverLetter {
		return "cover-letter.pdf"
	}
	return "tailored-resume.pdf"
}

// ParseKind accepts "resume", "cover_letter" or "cover-letter", ignoring case.
// An empty name is a resume.
func ParseKind(name string) (DocumentKind, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "", string(KindResume):
		return KindResume, nil
	case string(KindCoverLetter):
		return KindCoverLetter, nil
	default:
		return "", fmt.Errorf("unknown document kind %q (want resume or cover_letter)", name)
	}
}

// RenderRequest is the body of the render, layout and classify endpoints.
type RenderRequest struct {
	Text     string `json:"text" validate:"required"`
	Filename string `json:"filename,omitempty" validate:"omitempty,max=200,excludesall=/\\"`
	Kind     string `json:"kind,omitempty" validate:"omitempty,oneof=resume cover_letter cover-letter"`
	Format   string `json:"format,omitempty" validate:"omitempty,oneof=text html markdown md"`
}

// Validate validates the RenderRequest using the validator.
func (r *RenderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// DocumentKind returns the parsed kind, defaulting to a resume
func (r *RenderRequest) DocumentKind() DocumentKind {
	k, err := ParseKind(r.Kind)
	if err != nil {
		return KindResume
	}
	return k
}

// OutputFilename returns the requested filename with a .pdf extension, or
// the default for the document kind.
func (r *RenderRequest) OutputFilename() string {
	name := strings.TrimSpace(r.Filename)
	if name == "" {
		return r.DocumentKind().DefaultFilename()
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// LayoutResponse describes a laid-out document without drawing it
type LayoutResponse struct {
	Document *layout.Document `json:"document"`
	Pages    int              `json:"pages"`
	Headings []string         `json:"headings"`
}

// NewLayoutResponse summarises doc
func NewLayoutResponse(doc *layout.Document) LayoutResponse {
	headings := doc.Headings()
	if headings == nil {
		headings = []string{}
	}
	return LayoutResponse{Document: doc, Pages: doc.PageCount(), Headings: headings}
}

// ClassifyResponse lists the role of every input line
type ClassifyResponse struct {
	Header layout.HeaderBlock      `json:"header"`
	Lines  []layout.ClassifiedLine `json:"lines"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
