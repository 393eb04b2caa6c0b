package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/mdsource"
)

// ErrDataURIMultiple is returned when --data-uri meets more than one input file.
var ErrDataURIMultiple = errors.New("--data-uri accepts a single input file")

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment, log *zap.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Environ(), env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// Precedence: flags > env > file > library defaults.
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputs, err := resolveInputs(positionalArgs, cfg)
	if err != nil {
		return err
	}
	output := flags.output
	if output == "" {
		output = cfg.Output.DefaultDir
	}

	files, err := discoverFiles(inputs, output)
	if err != nil {
		return err
	}
	if len(files) == 1 && cfg.Output.Filename != "" && !isPDFPath(output) {
		files[0].OutputPath = filepath.Join(filepath.Dir(files[0].OutputPath), html2pdf.NormalizeFilename(cfg.Output.Filename))
	}
	if flags.dataURI && len(files) > 1 {
		return fmt.Errorf("%w: found %d files", ErrDataURIMultiple, len(files))
	}

	opts, err := buildConverterOptions(cfg, log)
	if err != nil {
		return err
	}

	size := min(html2pdf.ResolvePoolSize(cfg.Workers), len(files))
	log.Debug("starting conversion", zap.Int("files", len(files)), zap.Int("workers", size))
	pool := env.NewPool(size, opts...)
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			log.Warn("closing converter pool", zap.Error(cerr))
		}
	}()

	params := &conversionParams{
		job:     buildJobConfig(cfg),
		loader:  mdsource.NewLoader(cfg.Markdown.Style),
		dataURI: flags.dataURI,
		engine:  cfg.Browser.Engine,
	}

	results := convertBatch(ctx, pool, files, params, env)

	return printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
}

// loadConfig loads the config named by flag, falling back to the
// HTML2PDF_CONFIG value. Neither set means library defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(searchedPaths(err)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// searchedPaths extracts the locations listed by a config lookup failure.
func searchedPaths(err error) []string {
	_, tried, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(tried, ", ")
}

// resolveInputs returns the positional inputs, or the configured default
// input directory when none are given.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// hintFor returns a troubleshooting hint matching a conversion error.
func hintFor(err error, engine string) string {
	switch {
	case errors.Is(err, html2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, html2pdf.ErrRenderFailure), errors.Is(err, html2pdf.ErrPageLoad):
		return hints.ForRender(engine)
	}
	return ""
}
