package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pdf/internal/config"
	"github.com/jonathan/resume-pdf/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server that exposes POST /render, /layout and /classify and GET /health.

The port is taken from --port, then $PORT, then the config file, then 8080.
Body size, timeouts and rate limits are read from MAX_BODY_BYTES,
REQUEST_TIMEOUT_SECONDS, SHUTDOWN_TIMEOUT_SECONDS and RATE_LIMIT_*.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath, false, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	port, err := resolvePort(cmd.Flags().Changed("port"), servePort, os.Getenv("PORT"), cfg)
	if err != nil {
		return err
	}

	env, err := config.NewServerEnv()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:    port,
		Version: version,
		Render:  cfg,
		Env:     *env,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cmd.Context())
}

// resolvePort applies flag, then $PORT, then config precedence
func resolvePort(flagSet bool, flagPort int, envPort string, cfg config.Config) (int, error) {
	port := cfg.Port
	if envPort != "" {
		p, err := strconv.Atoi(envPort)
		if err != nil {
			return 0, fmt.Errorf("invalid PORT %q: %w", envPort, err)
		}
		port = p
	}
	if flagSet {
		port = flagPort
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return port, nil
}
