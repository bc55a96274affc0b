package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_StripsMarkdownHeadings(t *testing.T) {
	input := "# Jane Doe\n## Work Experience\n####### Not a heading"
	result := CleanText(input)

	assert.Equal(t, "Jane Doe\nWork Experience\n####### Not a heading", result)
}

func TestCleanText_StripsEmphasis(t *testing.T) {
	result := CleanText("**Senior Engineer**, __Acme Corp__ (2021 - Present)")

	assert.Equal(t, "Senior Engineer, Acme Corp (2021 - Present)", result)
}

func TestCleanText_ConvertsListMarkers(t *testing.T) {
	input := "* Item 1\n+ Item 2\n- Item 3\n• Item 4"
	result := CleanText(input)

	assert.Equal(t, "• Item 1\n• Item 2\n- Item 3\n• Item 4", result)
}

func TestCleanText_DropsRuleLines(t *testing.T) {
	input := "Above\n***\n___\n-----\nBelow"
	result := CleanText(input)

	assert.Equal(t, "Above\n\n-----\nBelow", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Line    with    multiple    spaces   "
	result := CleanText(input)

	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Line 1\n\n\n\n\nLine 2"
	result := CleanText(input)

	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	result := CleanText(input)

	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_ComposesUnicode(t *testing.T) {
	result := CleanText("Rene\u0301 Fa\u0301bregas")

	assert.Equal(t, "Ren\u00e9 F\u00e1bregas", result)
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
}

func TestCleanText_OnlyWhitespace(t *testing.T) {
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Test with émojis 🚀 and spéciàl chàracters"
	result := CleanText(input)

	assert.Contains(t, result, "émojis")
	assert.Contains(t, result, "🚀")
	assert.Contains(t, result, "spéciàl chàracters")
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatHTML, DetectFormat("resume.HTML"))
	assert.Equal(t, FormatHTML, DetectFormat("/tmp/cv.htm"))
	assert.Equal(t, FormatMarkdown, DetectFormat("cover-letter.md"))
	assert.Equal(t, FormatText, DetectFormat("resume.txt"))
	assert.Equal(t, FormatText, DetectFormat("-"))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"HTML", FormatHTML, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"docx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIngest_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Ingest(ctx, "text", FormatText)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIngestFromReader(t *testing.T) {
	text, meta, err := IngestFromReader(context.Background(), strings.NewReader("# Jane Doe\n\n\n\n* Item"), FormatText, "stdin")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\n\n• Item", text)
	assert.Equal(t, "stdin", meta.Source)
	assert.Equal(t, computeHash(text), meta.Hash)
}

func TestIngestFromFile_Success(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	err := os.WriteFile(testFile, []byte("Jane Doe\n\nSUMMARY\nDescription here"), 0644)
	require.NoError(t, err)

	cleanedText, metadata, err := IngestFromFile(context.Background(), testFile)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\n\nSUMMARY\nDescription here", cleanedText)
	require.NotNil(t, metadata)
	assert.Equal(t, testFile, metadata.Source)
	assert.Len(t, metadata.Hash, 64)
	assert.NotEmpty(t, metadata.Timestamp)
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	cleanedText, metadata, err := IngestFromFile(context.Background(), "/nonexistent/file.txt")

	assert.Error(t, err)
	assert.Empty(t, cleanedText)
	assert.Nil(t, metadata)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromFile_HashUniqueness(t *testing.T) {
	tmpDir := t.TempDir()

	testFile1 := filepath.Join(tmpDir, "test1.txt")
	testFile2 := filepath.Join(tmpDir, "test2.txt")

	require.NoError(t, os.WriteFile(testFile1, []byte("Content 1"), 0644))
	require.NoError(t, os.WriteFile(testFile2, []byte("Content 2"), 0644))

	_, metadata1, err := IngestFromFile(context.Background(), testFile1)
	require.NoError(t, err)
	_, metadata2, err := IngestFromFile(context.Background(), testFile2)
	require.NoError(t, err)

	assert.NotEqual(t, metadata1.Hash, metadata2.Hash)
}
