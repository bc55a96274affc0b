package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-pdf/internal/config"
)

// configEnv names the config file used when --config is not given
const configEnv = "RESUME_PDF_CONFIG"

// loadConfig reads the config file at path, or at $RESUME_PDF_CONFIG when
// path is empty, and fills unset fields from the built-in defaults. With
// neither set it returns the defaults.
func loadConfig(path string, verbose bool, log io.Writer) (config.Config, error) {
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		return config.Defaults(), nil
	}

	loaded, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return config.Config{}, err
	}
	if verbose {
		_, _ = fmt.Fprintf(log, "Loaded config from: %s\n", path)
	}
	return loaded.MergeWithDefaults(config.Defaults()), nil
}
