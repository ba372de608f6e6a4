package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200  // Fallback heading
	MaxFileNameLength    = 100  // Fallback file name stem
	MaxPathLength        = 4096 // Font file and directories
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxStyleLength       = 50   // chroma style name
)

// appDir is the directory under the user config dir searched for named configs.
const appDir = "go-mdexport"

// Config holds all configuration for document export.
type Config struct {
	Title  TitleConfig  `yaml:"title"`
	Page   PageConfig   `yaml:"page"`
	Fonts  FontsConfig  `yaml:"fonts"`
	Code   CodeConfig   `yaml:"code"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
}

// TitleConfig defines what untitled documents are called.
type TitleConfig struct {
	Fallback string `yaml:"fallback"` // Heading for untitled documents (empty = library default)
	FileName string `yaml:"fileName"` // File name stem for untitled documents (empty = "draft")
}

// PageConfig defines page settings shared by both formats.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "a4")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// FontsConfig defines PDF font selection.
type FontsConfig struct {
	CJK string `yaml:"cjk"` // TrueType font path (empty = search system fonts)
}

// CodeConfig defines code block rendering.
type CodeConfig struct {
	Highlight *bool  `yaml:"highlight"` // nil = enabled
	Style     string `yaml:"style"`     // chroma style name (empty = default)
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Formats    []string `yaml:"formats"`    // "docx", "pdf" (empty = both)
}

// HighlightEnabled reports whether code highlighting is on.
func (c *CodeConfig) HighlightEnabled() bool {
	return c.Highlight == nil || *c.Highlight
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"title.fallback", c.Title.Fallback, MaxTitleLength},
		{"title.fileName", c.Title.FileName, MaxFileNameLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"fonts.cjk", c.Fonts.CJK, MaxPathLength},
		{"code.style", c.Code.Style, MaxStyleLength},
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if strings.ContainsAny(c.Title.FileName, `/\`) {
		return fmt.Errorf("%w: title.fileName %q must not contain path separators", ErrInvalidValue, c.Title.FileName)
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: page.size %q (must be letter, a4, or legal)", ErrInvalidValue, c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative, got %.2f", ErrInvalidValue, c.Page.Margin)
	}

	for i, f := range c.Output.Formats {
		switch strings.TrimPrefix(strings.ToLower(f), ".") {
		case "docx", "pdf":
		default:
			return fmt.Errorf("%w: output.formats[%d] %q (must be docx or pdf)", ErrInvalidValue, i, f)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that defers every choice to the
// library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdexport/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
