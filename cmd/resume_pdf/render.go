package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-pdf/internal/config"
	"github.com/jonathan/resume-pdf/internal/ingestion"
	"github.com/jonathan/resume-pdf/internal/layout"
	"github.com/jonathan/resume-pdf/internal/observability"
	"github.com/jonathan/resume-pdf/internal/rendering"
	"github.com/jonathan/resume-pdf/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render <input>...",
	Short: "Render text files as PDF",
	Long: `Lays out each input and writes <name>.pdf next to it, or into --out-dir.
Inputs may be plain text, Markdown (.md) or HTML (.html, .htm); "-" reads stdin.
Several inputs are rendered concurrently.

Configuration can be loaded from a JSON or YAML file using --config or $RESUME_PDF_CONFIG.
Command-line flags override config file values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

var (
	renderOutDir     string
	renderOut        string
	renderKind       string
	renderFormat     string
	renderConfigPath string
	renderPageSize   string
	renderMaxPages   int
	renderMeta       bool
	renderVerbose    bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "d", "", "Directory for output files (default: next to each input, or the current directory for stdin)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output PDF path (single input only)")
	renderCmd.Flags().StringVarP(&renderKind, "kind", "k", "resume", "Document kind: resume or cover_letter")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "Input format: text, markdown or html (default: from file extension)")
	renderCmd.Flags().StringVarP(&renderConfigPath, "config", "c", "", "Path to a JSON or YAML config file")
	renderCmd.Flags().StringVar(&renderPageSize, "page-size", "", "Page size: A4, Letter or Legal")
	renderCmd.Flags().IntVar(&renderMaxPages, "max-pages", 0, "Fail when a document needs more pages (0 = unlimited)")
	renderCmd.Flags().BoolVar(&renderMeta, "meta", false, "Write a <name>.meta.json sidecar with hash, pages and headings")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print header and layout summaries")

	rootCmd.AddCommand(renderCmd)
}

// renderJob is one input to render
type renderJob struct {
	Source string // file path, or "-" for stdin
	Output string
	Format ingestion.Format
	Kind   types.DocumentKind
}

// renderResult is the outcome of one job
type renderResult struct {
	Job      renderJob
	Document *layout.Document
	Metadata *ingestion.Metadata
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(renderConfigPath, renderVerbose, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	// Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir = renderOutDir
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = renderPageSize
		cfg.PageWidth, cfg.PageHeight = 0, 0
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.MaxPages = renderMaxPages
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = renderVerbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	kind, err := types.ParseKind(renderKind)
	if err != nil {
		return err
	}
	jobs, err := planJobs(args, renderOut, cfg.OutDir, renderFormat, kind)
	if err != nil {
		return err
	}

	results, err := renderAll(cmd.Context(), cfg, jobs, cmd.InOrStdin(), renderMeta)
	for _, res := range results {
		if res.Document == nil {
			continue
		}
		if cfg.Verbose {
			p := observability.NewTerminalPrinter(os.Stderr)
			p.PrintHeader(res.Document.Header)
			p.PrintLayoutSummary(res.Document, res.Job.Output)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d page(s) -> %s\n", res.Job.Source, res.Document.PageCount(), res.Job.Output)
	}
	return err
}

// planJobs resolves the output path and input format for each argument.
func planJobs(args []string, out, outDir, format string, kind types.DocumentKind) ([]renderJob, error) {
	if out != "" && len(args) > 1 {
		return nil, fmt.Errorf("--out can only be used with a single input")
	}

	var forced ingestion.Format
	if format != "" {
		f, err := ingestion.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		forced = f
	}

	jobs := make([]renderJob, 0, len(args))
	seen := make(map[string]string, len(args))
	for _, src := range args {
		job := renderJob{Source: src, Kind: kind, Format: forced}
		if job.Format == "" {
			job.Format = ingestion.DetectFormat(src)
		}

		switch {
		case out != "":
			job.Output = out
		case src == "-":
			job.Output = filepath.Join(outDir, kind.DefaultFilename())
		default:
			dir := outDir
			if dir == "" {
				dir = filepath.Dir(src)
			}
			base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
			job.Output = filepath.Join(dir, base+".pdf")
		}

		if prev, ok := seen[job.Output]; ok {
			return nil, fmt.Errorf("%s and %s would both write %s", prev, src, job.Output)
		}
		seen[job.Output] = src
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// renderAll renders jobs concurrently, each with its own engine and PDF.
// Results are returned in job order; a failed job leaves a nil Document.
func renderAll(ctx context.Context, cfg config.Config, jobs []renderJob, stdin io.Reader, writeMeta bool) ([]renderResult, error) {
	var stdinText []byte
	for _, job := range jobs {
		if job.Source != "-" {
			continue
		}
		if stdinText != nil {
			return nil, fmt.Errorf("stdin can only be read once")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		stdinText = data
	}

	lc := cfg.LayoutConfig()
	results := make([]renderResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		results[i].Job = job
		g.Go(func() error {
			var src io.Reader = bytes.NewReader(stdinText)
			if job.Source != "-" {
				f, err := os.Open(job.Source)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", job.Source, err)
				}
				defer func() { _ = f.Close() }()
				src = f
			}

			text, meta, err := ingestion.IngestFromReader(ctx, src, job.Format, job.Source)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Source, err)
			}

			doc, err := renderFile(ctx, cfg, lc, job, text)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Source, err)
			}

			meta.Kind = string(job.Kind)
			meta.Name = doc.Header.Name
			meta.Pages = doc.PageCount()
			meta.Headings = doc.Headings()
			meta.Output = job.Output
			if writeMeta {
				if err := ingestion.WriteMetadata(metaPath(job.Output), meta); err != nil {
					return err
				}
			}

			results[i].Document = doc
			results[i].Metadata = meta
			return nil
		})
	}
	return results, g.Wait()
}

// renderFile renders text and writes the PDF to job.Output
func renderFile(ctx context.Context, cfg config.Config, lc layout.Config, job renderJob, text string) (*layout.Document, error) {
	filename := filepath.Base(job.Output)
	in := rendering.Input{Text: text, Filename: filename, Kind: string(job.Kind)}

	var buf bytes.Buffer
	doc, err := rendering.Render(ctx, in, lc, cfg.RenderOptions(strings.TrimSuffix(filename, ".pdf")), &buf)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(job.Output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(job.Output, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}
	return doc, nil
}

// metaPath returns the sidecar path for a PDF: out/resume.pdf -> out/resume.meta.json
func metaPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".meta.json"
}
