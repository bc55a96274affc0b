// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/jonathan/resume-pdf/internal/layout"
	"github.com/jonathan/resume-pdf/internal/rendering"
	"github.com/jonathan/resume-pdf/internal/schemas"
	embedded "github.com/jonathan/resume-pdf/schemas"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; zero values fall back to defaults or CLI flags.
// Lengths are in millimetres.
type Config struct {
	// Page geometry
	PageSize     string  `json:"page_size,omitempty" yaml:"page_size,omitempty" validate:"omitempty,oneof=A4 Letter Legal a4 letter legal"`
	PageWidth    float64 `json:"page_width,omitempty" yaml:"page_width,omitempty" validate:"gte=0"`
	PageHeight   float64 `json:"page_height,omitempty" yaml:"page_height,omitempty" validate:"gte=0"`
	MarginLeft   float64 `json:"margin_left,omitempty" yaml:"margin_left,omitempty" validate:"gte=0"`
	MarginRight  float64 `json:"margin_right,omitempty" yaml:"margin_right,omitempty" validate:"gte=0"`
	MarginTop    float64 `json:"margin_top,omitempty" yaml:"margin_top,omitempty" validate:"gte=0"`
	MarginBottom float64 `json:"margin_bottom,omitempty" yaml:"margin_bottom,omitempty" validate:"gte=0"`

	// Typography
	FontFamily       string `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	ContactSeparator string `json:"contact_separator,omitempty" yaml:"contact_separator,omitempty"`

	// Output
	OutDir   string `json:"out_dir,omitempty" yaml:"out_dir,omitempty"`
	MaxPages int    `json:"max_pages,omitempty" yaml:"max_pages,omitempty" validate:"gte=0"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Author   string `json:"author,omitempty" yaml:"author,omitempty"`
	Compress bool   `json:"compress,omitempty" yaml:"compress,omitempty"`

	// Behavior
	Port    int  `json:"port,omitempty" yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed layout information
}

// pageSizes maps named paper sizes to portrait width and height
var pageSizes = map[string][2]float64{
	"a4":     {210, 297},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

// Defaults returns the built-in configuration: A4, Helvetica, server port 8080
func Defaults() Config {
	d := layout.DefaultConfig()
	return Config{
		PageSize:         "A4",
		MarginLeft:       d.MarginLeft,
		MarginRight:      d.MarginRight,
		MarginTop:        d.MarginTop,
		MarginBottom:     d.MarginBottom,
		FontFamily:       rendering.DefaultFontFamily,
		ContactSeparator: d.ContactSeparator,
		Port:             8080,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data, filepath.Ext(path))
}

// ParseConfig decodes config data. ext selects YAML for ".yaml" and ".yml";
// anything else is parsed as JSON.
func ParseConfig(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
		if err := schemas.Validate(embedded.Config, data); err != nil {
			return nil, fmt.Errorf("config does not match schema: %w", err)
		}
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values and that the
// resulting page geometry leaves room for content.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if (c.PageWidth == 0) != (c.PageHeight == 0) {
		return fmt.Errorf("config error: 'page_width' and 'page_height' must be set together")
	}
	if c.FontFamily != "" {
		if _, ok := rendering.CoreFont(c.FontFamily); !ok {
			return fmt.Errorf("config error: unsupported font family %q (use Helvetica, Arial, Times or Courier)", c.FontFamily)
		}
	}

	if err := c.LayoutConfig().Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.PageSize == "" {
		result.PageSize = defaults.PageSize
	}
	if result.FontFamily == "" {
		result.FontFamily = defaults.FontFamily
	}
	if result.ContactSeparator == "" {
		result.ContactSeparator = defaults.ContactSeparator
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Title == "" {
		result.Title = defaults.Title
	}
	if result.Author == "" {
		result.Author = defaults.Author
	}

	// Numeric fields: use default if zero
	if result.PageWidth == 0 && result.PageHeight == 0 {
		result.PageWidth = defaults.PageWidth
		result.PageHeight = defaults.PageHeight
	}
	if result.MarginLeft == 0 {
		result.MarginLeft = defaults.MarginLeft
	}
	if result.MarginRight == 0 {
		result.MarginRight = defaults.MarginRight
	}
	if result.MarginTop == 0 {
		result.MarginTop = defaults.MarginTop
	}
	if result.MarginBottom == 0 {
		result.MarginBottom = defaults.MarginBottom
	}
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// LayoutConfig converts the configuration into layout geometry. Explicit
// page dimensions take precedence over PageSize; zero margins keep the
// layout defaults.
func (c *Config) LayoutConfig() layout.Config {
	lc := layout.DefaultConfig()

	if size, ok := pageSizes[strings.ToLower(c.PageSize)]; ok {
		lc.PageWidth, lc.PageHeight = size[0], size[1]
	}
	if c.PageWidth > 0 && c.PageHeight > 0 {
		lc.PageWidth, lc.PageHeight = c.PageWidth, c.PageHeight
	}
	if c.MarginLeft > 0 {
		lc.MarginLeft = c.MarginLeft
	}
	if c.MarginRight > 0 {
		lc.MarginRight = c.MarginRight
	}
	if c.MarginTop > 0 {
		lc.MarginTop = c.MarginTop
	}
	if c.MarginBottom > 0 {
		lc.MarginBottom = c.MarginBottom
	}
	if c.ContactSeparator != "" {
		lc.ContactSeparator = c.ContactSeparator
	}
	return lc
}

// RenderOptions returns the PDF options for a document with the given title.
// A configured title wins over docTitle.
func (c *Config) RenderOptions(docTitle string) rendering.Options {
	title := c.Title
	if title == "" {
		title = docTitle
	}
	return rendering.Options{
		FontFamily: c.FontFamily,
		Title:      title,
		Author:     c.Author,
		Compress:   c.Compress,
		MaxPages:   c.MaxPages,
	}
}
