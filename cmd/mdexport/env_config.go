package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-mdexport/internal/config"
)

// envPrefix namespaces the environment variables read by the CLI.
const envPrefix = "MDEXPORT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string   // MDEXPORT_CONFIG: config file name or path
	InputDir   string   // MDEXPORT_INPUT_DIR: default input directory
	OutputDir  string   // MDEXPORT_OUTPUT_DIR: default output directory
	Formats    []string // MDEXPORT_FORMATS: comma-separated formats
	PageSize   string   // MDEXPORT_PAGE_SIZE: a4, letter, legal
	CJKFont    string   // MDEXPORT_CJK_FONT: TrueType font path
	CodeStyle  string   // MDEXPORT_CODE_STYLE: chroma style name
	Workers    int      // MDEXPORT_WORKERS: parallel workers
}

// knownEnvVars lists valid MDEXPORT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDEXPORT_CONFIG":     true,
	"MDEXPORT_INPUT_DIR":  true,
	"MDEXPORT_OUTPUT_DIR": true,
	"MDEXPORT_FORMATS":    true,
	"MDEXPORT_PAGE_SIZE":  true,
	"MDEXPORT_CJK_FONT":   true,
	"MDEXPORT_CODE_STYLE": true,
	"MDEXPORT_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDEXPORT_CONFIG"),
		InputDir:   getenv("MDEXPORT_INPUT_DIR"),
		OutputDir:  getenv("MDEXPORT_OUTPUT_DIR"),
		PageSize:   getenv("MDEXPORT_PAGE_SIZE"),
		CJKFont:    getenv("MDEXPORT_CJK_FONT"),
		CodeStyle:  getenv("MDEXPORT_CODE_STYLE"),
	}

	if formats := getenv("MDEXPORT_FORMATS"); formats != "" {
		for _, f := range strings.Split(formats, ",") {
			if f = strings.TrimSpace(f); f != "" {
				cfg.Formats = append(cfg.Formats, f)
			}
		}
	}

	if workers := getenv("MDEXPORT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDEXPORT_* variables.
// Helps catch typos like MDEXPORT_FORMAT instead of MDEXPORT_FORMATS.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if len(env.Formats) > 0 && len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = env.Formats
	}
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}
	if env.CJKFont != "" && cfg.Fonts.CJK == "" {
		cfg.Fonts.CJK = env.CJKFont
	}
	if env.CodeStyle != "" && cfg.Code.Style == "" {
		cfg.Code.Style = env.CodeStyle
	}
}
