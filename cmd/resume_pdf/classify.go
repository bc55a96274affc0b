package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pdf/internal/ingestion"
	"github.com/jonathan/resume-pdf/internal/layout"
	"github.com/jonathan/resume-pdf/internal/observability"
	"github.com/jonathan/resume-pdf/internal/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <input>",
	Short: "Print the role assigned to each input line",
	Long:  `Runs the header extractor and line classifier over one input ("-" for stdin) without laying it out.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

var (
	classifyJSON    bool
	classifyFormat  string
	classifyVerbose bool
)

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Print the header and lines as JSON")
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", "", "Input format: text, markdown or html (default: from file extension)")
	classifyCmd.Flags().BoolVarP(&classifyVerbose, "verbose", "v", false, "Print header and role summaries")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	src := args[0]
	format := ingestion.DetectFormat(src)
	if classifyFormat != "" {
		f, err := ingestion.ParseFormat(classifyFormat)
		if err != nil {
			return err
		}
		format = f
	}

	var r io.Reader = cmd.InOrStdin()
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", src, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	text, _, err := ingestion.IngestFromReader(cmd.Context(), r, format, src)
	if err != nil {
		return err
	}

	resp := classifyText(text)
	if classifyVerbose {
		p := observability.NewTerminalPrinter(os.Stderr)
		p.PrintHeader(resp.Header)
		p.PrintClassification(resp.Lines)
	}
	return writeClassification(cmd.OutOrStdout(), resp, classifyJSON)
}

// classifyText extracts the header and classifies every line of text
func classifyText(text string) types.ClassifyResponse {
	raw := layout.NewRawDocument(text)
	return types.ClassifyResponse{
		Header: layout.ExtractHeader(raw, layout.DefaultConfig().ContactSeparator),
		Lines:  layout.ClassifyDocument(raw),
	}
}

// writeClassification prints one "line  role  text" row per input line, or
// the whole response as indented JSON.
func writeClassification(w io.Writer, resp types.ClassifyResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	for _, l := range resp.Lines {
		role := l.Role.String()
		if l.Header {
			role += "*"
		}
		if _, err := fmt.Fprintf(w, "%4d  %-16s %s\n", l.Index+1, role, l.Text); err != nil {
			return err
		}
	}
	return nil
}
