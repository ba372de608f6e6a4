// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

const frontMatterFence = "---"

// SplitFrontMatter separates a leading YAML block delimited by "---" lines
// from the rest of a Markdown document. ok is false, and body is the whole
// input, when the document does not open with a fence or the block is never
// closed.
func SplitFrontMatter(doc string) (front, body string, ok bool) {
	doc = strings.TrimPrefix(doc, "\ufeff")
	first, rest, found := strings.Cut(doc, "\n")
	if !found || strings.TrimRight(first, " \t\r") != frontMatterFence {
		return "", doc, false
	}

	var lines []string
	for {
		line, tail, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t\r") == frontMatterFence {
			return strings.Join(lines, "\n"), tail, true
		}
		if !more {
			return "", doc, false
		}
		lines = append(lines, line)
		rest = tail
	}
}

// Meta is the front matter recognised in Markdown documents. Other keys
// are ignored.
type Meta struct {
	Title string `yaml:"title"`
}

// ParseFrontMatter strips front matter from doc and decodes it. A document
// without front matter returns a zero Meta and doc unchanged. An empty
// block is valid.
func ParseFrontMatter(doc string) (Meta, string, error) {
	front, body, ok := SplitFrontMatter(doc)
	if !ok {
		return Meta{}, doc, nil
	}
	var meta Meta
	if strings.TrimSpace(front) == "" {
		return meta, body, nil
	}
	if err := Unmarshal([]byte(front), &meta); err != nil {
		return Meta{}, doc, fmt.Errorf("front matter: %w", err)
	}
	return meta, body, nil
}
