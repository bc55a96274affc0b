// Package main provides the resume_pdf command line tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "resume_pdf",
	Short:   "Lay out plain-text resumes and cover letters as PDF",
	Long:    "resume_pdf classifies each line of a plain-text resume or cover letter, lays it out on fixed-size pages and writes a PDF. It also serves the same pipeline over HTTP.",
	Version: version,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if _, err := maxprocs.Set(maxprocs.Logger(func(string, ...any) {})); err != nil {
		log.Printf("[main] failed to set GOMAXPROCS: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
