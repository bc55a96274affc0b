package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-pdf/internal/schemas"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"page_size": "Letter",
		"font_family": "Times",
		"max_pages": 2,
		"title": "Jane Doe Resume",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Letter", cfg.PageSize)
	assert.Equal(t, "Times", cfg.FontFamily)
	assert.Equal(t, 2, cfg.MaxPages)
	assert.Equal(t, "Jane Doe Resume", cfg.Title)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := "page_size: Legal\nmargin_left: 25\nmargin_right: 25\ncontact_separator: \" | \"\nport: 9090\n"

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "Legal", cfg.PageSize)
	assert.Equal(t, 25.0, cfg.MarginLeft)
	assert.Equal(t, " | ", cfg.ContactSeparator)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_YAMLUnknownField(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	err := os.WriteFile(tmpFile, []byte("page_colour: blue\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_JSONUnknownField(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{"page_colour": "blue"}`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config does not match schema")

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{name: "empty config", cfg: Config{}},
		{name: "defaults", cfg: Defaults()},
		{name: "letter with custom margins", cfg: Config{PageSize: "letter", MarginLeft: 25, MarginRight: 25}},
		{name: "negative max pages", cfg: Config{MaxPages: -1}, wantErr: true, errMsg: "MaxPages"},
		{name: "negative margin", cfg: Config{MarginTop: -5}, wantErr: true, errMsg: "MarginTop"},
		{name: "unknown page size", cfg: Config{PageSize: "B5"}, wantErr: true, errMsg: "PageSize"},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: true, errMsg: "Port"},
		{name: "width without height", cfg: Config{PageWidth: 200}, wantErr: true, errMsg: "must be set together"},
		{name: "unsupported font", cfg: Config{FontFamily: "Comic Sans"}, wantErr: true, errMsg: "unsupported font family"},
		{name: "margins swallow the page", cfg: Config{MarginLeft: 120, MarginRight: 100}, wantErr: true, errMsg: "too narrow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		PageSize:   "Letter",
		MarginLeft: 25,
		Title:      "Mine",
	}

	result := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "Letter", result.PageSize)
	assert.Equal(t, 25.0, result.MarginLeft)
	assert.Equal(t, 18.0, result.MarginRight)
	assert.Equal(t, 20.0, result.MarginBottom)
	assert.Equal(t, "Helvetica", result.FontFamily)
	assert.Equal(t, "  •  ", result.ContactSeparator)
	assert.Equal(t, "Mine", result.Title)
	assert.Equal(t, 8080, result.Port)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{FontFamily: "Courier", MaxPages: 3}

	result := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "Courier", result.FontFamily)
	assert.Equal(t, 3, result.MaxPages)
	assert.Empty(t, result.PageSize)
}

func TestLayoutConfig(t *testing.T) {
	t.Run("defaults to A4", func(t *testing.T) {
		lc := (&Config{}).LayoutConfig()
		assert.Equal(t, 210.0, lc.PageWidth)
		assert.Equal(t, 297.0, lc.PageHeight)
		assert.Equal(t, 174.0, lc.ColumnWidth())
	})

	t.Run("named size", func(t *testing.T) {
		lc := (&Config{PageSize: "Letter"}).LayoutConfig()
		assert.Equal(t, 215.9, lc.PageWidth)
		assert.Equal(t, 279.4, lc.PageHeight)
	})

	t.Run("explicit dimensions win", func(t *testing.T) {
		lc := (&Config{PageSize: "Letter", PageWidth: 200, PageHeight: 250}).LayoutConfig()
		assert.Equal(t, 200.0, lc.PageWidth)
		assert.Equal(t, 250.0, lc.PageHeight)
	})

	t.Run("margins and separator", func(t *testing.T) {
		lc := (&Config{MarginLeft: 20, MarginBottom: 25, ContactSeparator: " | "}).LayoutConfig()
		assert.Equal(t, 20.0, lc.MarginLeft)
		assert.Equal(t, 18.0, lc.MarginRight)
		assert.Equal(t, 272.0, lc.BreakLimit())
		assert.Equal(t, " | ", lc.ContactSeparator)
	})
}

func TestRenderOptions(t *testing.T) {
	cfg := &Config{FontFamily: "Times", Author: "Jane Doe", MaxPages: 2, Compress: true}

	opts := cfg.RenderOptions("tailored-resume")
	assert.Equal(t, "Times", opts.FontFamily)
	assert.Equal(t, "tailored-resume", opts.Title)
	assert.Equal(t, "Jane Doe", opts.Author)
	assert.Equal(t, 2, opts.MaxPages)
	assert.True(t, opts.Compress)

	cfg.Title = "Configured"
	assert.Equal(t, "Configured", cfg.RenderOptions("ignored").Title)
}
