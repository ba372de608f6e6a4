// Package highlight colours fenced code blocks for the document renderers.
package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// ErrUnknownStyle is returned by CheckStyle for names chroma does not know.
var ErrUnknownStyle = errors.New("unknown code style")

// CheckStyle reports whether name is a registered chroma style. Lines
// silently falls back for unknown names, so callers validate user input
// here first.
func CheckStyle(name string) error {
	if _, ok := styles.Registry[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return nil
}

// Styles lists the registered style names in sorted order.
func Styles() []string {
	return styles.Names()
}

// Span is a run of code text with uniform colouring.
// Color is "RRGGBB" without a leading '#', or empty for the default colour.
type Span struct {
	Text   string
	Color  string
	Bold   bool
	Italic bool
}

// RGB returns the span colour as components. ok is false when the span uses
// the default colour.
func (s Span) RGB() (r, g, b int, ok bool) {
	if len(s.Color) != 6 {
		return 0, 0, 0, false
	}
	var v [3]int
	for i := range v {
		hi, lo := hexValue(s.Color[2*i]), hexValue(s.Color[2*i+1])
		if hi < 0 || lo < 0 {
			return 0, 0, 0, false
		}
		v[i] = hi<<4 | lo
	}
	return v[0], v[1], v[2], true
}

// Lines tokenises code written in lang and returns one span list per source
// line, so len(result) == len(strings.Split(code, "\n")).
// ok is false when lang is empty or unknown, or tokenising fails; callers then
// render the code uncoloured.
func Lines(lang, code, style string) (lines [][]Span, ok bool) {
	if strings.TrimSpace(lang) == "" {
		return nil, false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, false
	}
	lexer = chroma.Coalesce(lexer)

	if style == "" {
		style = DefaultStyle
	}
	st := styles.Get(style)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, false
	}

	want := len(strings.Split(code, "\n"))
	lines = make([][]Span, 1, want)
	for _, tok := range it.Tokens() {
		entry := st.Get(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			span := Span{
				Text:   part,
				Bold:   entry.Bold == chroma.Yes,
				Italic: entry.Italic == chroma.Yes,
			}
			if entry.Colour.IsSet() {
				span.Color = strings.TrimPrefix(entry.Colour.String(), "#")
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], span)
		}
	}

	// Lexers may append a trailing newline; keep the source line count.
	for len(lines) < want {
		lines = append(lines, nil)
	}
	return lines[:want], true
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
