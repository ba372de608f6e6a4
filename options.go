package mdexport

import (
	"io"

	"github.com/alnah/go-mdexport/internal/highlight"
)

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds internal configuration for Exporter.
type exporterConfig struct {
	page             *PageSettings
	fallbackTitle    string
	fallbackFileName string
	cjkFont          string
	highlight        bool
	codeStyle        string
	warnings         io.Writer
}

func defaultConfig() exporterConfig {
	return exporterConfig{
		page:             DefaultPageSettings(),
		fallbackTitle:    DefaultFallbackTitle,
		fallbackFileName: DefaultFallbackFileName,
		highlight:        true,
		codeStyle:        highlight.DefaultStyle,
	}
}

// WithPageSettings sets the page size, orientation and margins.
// A nil value keeps the defaults (A4 portrait, half-inch margins).
func WithPageSettings(p *PageSettings) Option {
	return func(e *Exporter) {
		if p != nil {
			e.cfg.page = p
		}
	}
}

// WithFallbackTitle sets the heading written when a document has no title.
func WithFallbackTitle(title string) Option {
	return func(e *Exporter) {
		e.cfg.fallbackTitle = title
	}
}

// WithFallbackFileName sets the file name stem used when a document has no
// title.
func WithFallbackFileName(name string) Option {
	return func(e *Exporter) {
		e.cfg.fallbackFileName = name
	}
}

// WithCJKFont sets the TrueType font used for PDF text. Without it the
// system font directories are searched for a Japanese face.
func WithCJKFont(path string) Option {
	return func(e *Exporter) {
		e.cfg.cjkFont = path
	}
}

// WithCodeHighlighting colours fenced code blocks that name a language,
// using the given chroma style. An empty style selects the default.
func WithCodeHighlighting(style string) Option {
	return func(e *Exporter) {
		e.cfg.highlight = true
		if style != "" {
			e.cfg.codeStyle = style
		}
	}
}

// WithoutCodeHighlighting renders all code blocks uncoloured.
func WithoutCodeHighlighting() Option {
	return func(e *Exporter) {
		e.cfg.highlight = false
	}
}

// WithWarnings sets where recoverable problems are reported, such as a
// missing CJK font. Each problem is reported once per process. Warnings are
// discarded by default.
func WithWarnings(w io.Writer) Option {
	return func(e *Exporter) {
		e.cfg.warnings = w
	}
}
