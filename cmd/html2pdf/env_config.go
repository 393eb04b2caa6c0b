package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/config"
)

// envPrefix starts every variable read by the CLI.
const envPrefix = "HTML2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // HTML2PDF_CONFIG: config file name or path
	Timeout    time.Duration // HTML2PDF_TIMEOUT: per-document timeout
	InputDir   string        // HTML2PDF_INPUT_DIR: default input directory
	OutputDir  string        // HTML2PDF_OUTPUT_DIR: default output directory
	Format     string        // HTML2PDF_FORMAT: paper format
	Engine     string        // HTML2PDF_ENGINE: rod or chromedp
	Workers    int           // HTML2PDF_WORKERS: parallel workers
}

// knownEnvVars lists valid HTML2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2PDF_CONFIG":     true,
	"HTML2PDF_TIMEOUT":    true,
	"HTML2PDF_INPUT_DIR":  true,
	"HTML2PDF_OUTPUT_DIR": true,
	"HTML2PDF_FORMAT":     true,
	"HTML2PDF_ENGINE":     true,
	"HTML2PDF_WORKERS":    true,
	"HTML2PDF_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("HTML2PDF_CONFIG"),
		InputDir:   getenv("HTML2PDF_INPUT_DIR"),
		OutputDir:  getenv("HTML2PDF_OUTPUT_DIR"),
		Format:     getenv("HTML2PDF_FORMAT"),
		Engine:     getenv("HTML2PDF_ENGINE"),
	}

	if timeout := getenv("HTML2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("HTML2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2PDF_* variables.
// Helps catch typos like HTML2PDF_TIMOUT.
func warnUnknownEnvVars(environ []string, w io.Writer) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Format != "" && cfg.Page.Format == "" {
		cfg.Page.Format = env.Format
	}
	if env.Engine != "" && cfg.Browser.Engine == "" {
		cfg.Browser.Engine = env.Engine
	}
	if env.Timeout > 0 && cfg.Browser.Timeout == "" {
		cfg.Browser.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}
