package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
	"github.com/alnah/go-mdexport/internal/highlight"
	"github.com/alnah/go-mdexport/internal/hints"
	"github.com/alnah/go-mdexport/internal/pdf"
)

// ErrConversionFailed is returned when at least one file failed to export.
var ErrConversionFailed = errors.New("conversion failed")

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	// Config name: flag > MDEXPORT_CONFIG
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configName != "" {
		var err error
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(triedPaths(err)))
			}
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	formats, err := resolveFormats(cfg.Output.Formats)
	if err != nil {
		return err
	}

	if cfg.Code.HighlightEnabled() && cfg.Code.Style != "" {
		if err := highlight.CheckStyle(cfg.Code.Style); err != nil {
			return fmt.Errorf("%w%s", err, hints.ForCodeStyle(highlight.Styles()))
		}
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}

	exp, err := mdexport.NewExporter(buildExporterOptions(cfg, page)...)
	if err != nil {
		return err
	}

	if !flags.common.quiet && slices.Contains(formats, mdexport.FormatPDF) {
		fonts := pdf.LoadFonts(cfg.Fonts.CJK)
		if flags.common.verbose {
			fmt.Fprintf(env.Stderr, "PDF font: %s %s\n", fonts.Source, fonts.Path)
		}
		if w := fonts.Warning(); w != "" {
			fmt.Fprintf(env.Stderr, "warning: %s%s\n", w, hints.ForCJKFont())
		}
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	params := &conversionParams{
		formats:       formats,
		title:         flags.title,
		nameFromTitle: flags.nameFromTitle,
		workers:       mdexport.ResolveWorkers(min(workers, mdexport.MaxWorkers)),
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), min(params.workers, len(files)))
	}

	start := env.Now()
	results := convertBatch(ctx, exp, files, params)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Finished in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failedCount, len(results))
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if len(flags.formats) > 0 {
		cfg.Output.Formats = flags.formats
	}
	if flags.cjkFont != "" {
		cfg.Fonts.CJK = flags.cjkFont
	}

	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	if flags.code.style != "" {
		cfg.Code.Style = flags.code.style
	}
	if flags.code.noHighlight {
		off := false
		cfg.Code.Highlight = &off
	}
}

// resolveFormats parses configured format names, defaulting to every format.
// Duplicates are dropped.
func resolveFormats(names []string) ([]mdexport.Format, error) {
	if len(names) == 0 {
		return mdexport.Formats(), nil
	}

	var formats []mdexport.Format
	for _, name := range names {
		f, err := mdexport.ParseFormat(name)
		if err != nil {
			return nil, fmt.Errorf("%w%s", err, hints.ForFormat())
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// buildPageSettings creates page settings from config, filling unset fields
// with defaults.
func buildPageSettings(cfg *config.Config) (*mdexport.PageSettings, error) {
	ps := mdexport.DefaultPageSettings()
	if cfg.Page.Size != "" {
		ps.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		ps.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin > 0 {
		ps.Margin = cfg.Page.Margin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// buildExporterOptions translates config into exporter options. Font
// warnings are reported by the CLI itself, so none is wired here.
func buildExporterOptions(cfg *config.Config, page *mdexport.PageSettings) []mdexport.Option {
	opts := []mdexport.Option{mdexport.WithPageSettings(page)}

	if cfg.Title.Fallback != "" {
		opts = append(opts, mdexport.WithFallbackTitle(cfg.Title.Fallback))
	}
	if cfg.Title.FileName != "" {
		opts = append(opts, mdexport.WithFallbackFileName(cfg.Title.FileName))
	}
	if cfg.Fonts.CJK != "" {
		opts = append(opts, mdexport.WithCJKFont(cfg.Fonts.CJK))
	}
	if cfg.Code.HighlightEnabled() {
		opts = append(opts, mdexport.WithCodeHighlighting(cfg.Code.Style))
	} else {
		opts = append(opts, mdexport.WithoutCodeHighlighting())
	}

	return opts
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// triedPaths extracts the searched locations from a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
